package config

/**
 * config.go - config file definitions
 */

/**
 * Config file top-level object
 */
type Config struct {
	Logging  LoggingConfig     `toml:"logging" json:"logging"`
	Api      ApiConfig         `toml:"api" json:"api"`
	Metrics  MetricsConfig     `toml:"metrics" json:"metrics"`
	Zones    ZonesConfig       `toml:"zones" json:"zones"`
	Defaults ConnectionOptions `toml:"defaults" json:"defaults"`
	Servers  map[string]Server `toml:"servers" json:"servers"`
}

/**
 * Logging config section
 */
type LoggingConfig struct {
	Level  string `toml:"level" json:"level"`
	Output string `toml:"output" json:"output"`

	/* File rotation, only when output is a path */
	MaxSize    int `toml:"max_size" json:"max_size,omitempty"`
	MaxBackups int `toml:"max_backups" json:"max_backups,omitempty"`
	MaxAge     int `toml:"max_age" json:"max_age,omitempty"`
}

/**
 * Api config section
 */
type ApiConfig struct {
	Enabled   bool                `toml:"enabled" json:"enabled"`
	Bind      string              `toml:"bind" json:"bind"`
	Cors      bool                `toml:"cors" json:"cors"`
	BasicAuth *ApiBasicAuthConfig `toml:"basic_auth" json:"basic_auth,omitempty"`

	/* Status endpoint switch, enabled when unset */
	Status *bool `toml:"status" json:"status,omitempty"`

	/* How long a rendered status document may be served from cache, "0" disables */
	CacheTtl string `toml:"cache_ttl" json:"cache_ttl,omitempty"`
}

/**
 * Api Basic Auth Config
 */
type ApiBasicAuthConfig struct {
	Login    string `toml:"login" json:"login"`
	Password string `toml:"password" json:"password"`
}

/**
 * Metrics config section
 */
type MetricsConfig struct {
	Enabled bool   `toml:"enabled" json:"enabled"`
	Bind    string `toml:"bind" json:"bind"`
}

/**
 * Statistics zones section
 */
type ZonesConfig struct {

	/* Zone budgets: "512k", "1m", "1 MiB" */
	ServerZoneSize   string `toml:"server_zone_size" json:"server_zone_size,omitempty"`
	UpstreamZoneSize string `toml:"upstream_zone_size" json:"upstream_zone_size,omitempty"`

	/* Zone switches, enabled when unset */
	Server   *bool `toml:"server" json:"server,omitempty"`
	Upstream *bool `toml:"upstream" json:"upstream,omitempty"`
}

/**
 * Default values can be overriden in server
 */
type ConnectionOptions struct {
	ClientIdleTimeout        *string `toml:"client_idle_timeout" json:"client_idle_timeout,omitempty"`
	BackendIdleTimeout       *string `toml:"backend_idle_timeout" json:"backend_idle_timeout,omitempty"`
	BackendConnectionTimeout *string `toml:"backend_connection_timeout" json:"backend_connection_timeout,omitempty"`
}

/**
 * Server section config
 */
type Server struct {
	ConnectionOptions

	// hostname:port
	Bind string `toml:"bind" json:"bind"`

	// Name recorded in the server zone, section name when empty
	ServerName string `toml:"server_name" json:"server_name,omitempty"`

	// Upstream group name recorded in the upstream zone
	Upstream string `toml:"upstream" json:"upstream"`

	// "host:port weight=N" lines
	Backends []string `toml:"backends" json:"backends"`

	// roundrobin | iphash | weight
	Balance string `toml:"balance" json:"balance"`

	// Expect PROXY protocol header on accepted connections
	AcceptProxy bool `toml:"accept_proxy" json:"accept_proxy,omitempty"`
}

/**
 * Returns value of optional switch, def when unset
 */
func Enabled(flag *bool, def bool) bool {
	if flag == nil {
		return def
	}
	return *flag
}
