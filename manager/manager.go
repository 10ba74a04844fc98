package manager

/**
 * manager.go - owns the statistics store and manages proxy servers
 */

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/vtsd/vtsd/balance"
	"github.com/vtsd/vtsd/collector"
	"github.com/vtsd/vtsd/config"
	"github.com/vtsd/vtsd/info"
	"github.com/vtsd/vtsd/logging"
	"github.com/vtsd/vtsd/server"
	"github.com/vtsd/vtsd/stats"
	"github.com/vtsd/vtsd/utils"
	"github.com/vtsd/vtsd/utils/codec"
)

/* Map of app current servers */
var servers = struct {
	sync.RWMutex
	m map[string]*server.Server
}{m: make(map[string]*server.Server)}

/* default configuration for server */
var defaults config.ConnectionOptions

/* original cfg read from the file */
var originalCfg config.Config

/* Statistics store and its event entry point */
var store *stats.Store
var events *collector.Collector

/**
 * Initialize manager from the initial/default configuration
 */
func Initialize(cfg config.Config) {

	log := logging.For("manager")
	log.Info("Initializing...")

	originalCfg = cfg
	defaults = cfg.Defaults

	s, err := NewStore(cfg.Zones)
	if err != nil {
		log.Fatal(err)
	}

	store = s
	events = collector.New(store)

	// Go through config and start servers for each server
	for name, serverCfg := range cfg.Servers {
		if err := Create(name, serverCfg); err != nil {
			log.Fatal(err)
		}
	}

	log.Info("Initialized")
}

/**
 * Builds statistics store from zones config
 */
func NewStore(cfg config.ZonesConfig) (*stats.Store, error) {

	log := logging.For("manager")

	opts := stats.DefaultOptions()
	opts.ServerEnabled = config.Enabled(cfg.Server, true)
	opts.UpstreamEnabled = config.Enabled(cfg.Upstream, true)

	var err error
	if opts.ServerZoneSize, err = utils.ParseSizeOrDefault(cfg.ServerZoneSize, stats.DefaultZoneSize); err != nil {
		return nil, fmt.Errorf("server_zone_size: %w", err)
	}
	if opts.UpstreamZoneSize, err = utils.ParseSizeOrDefault(cfg.UpstreamZoneSize, stats.DefaultZoneSize); err != nil {
		return nil, fmt.Errorf("upstream_zone_size: %w", err)
	}

	opts.Info = stats.Info{Version: info.Version, StartTime: info.StartTime}
	if opts.Info.StartTime.IsZero() {
		opts.Info.StartTime = time.Now()
	}
	if opts.Info.Hostname, err = os.Hostname(); err != nil {
		log.Warn("Could not get hostname: ", err)
	}

	log.Info("Zone budgets: server ", humanize.IBytes(uint64(opts.ServerZoneSize)),
		", upstream ", humanize.IBytes(uint64(opts.UpstreamZoneSize)))

	return stats.NewStore(opts), nil
}

/**
 * Active statistics store, nil before Initialize
 */
func Store() *stats.Store {
	return store
}

/**
 * Event entry point bound to the store, nil before Initialize
 */
func Collector() *collector.Collector {
	return events
}

/**
 * Dumps current configuration with the actual
 * [servers] section in format
 */
func DumpConfig(format string) (string, error) {

	cfg := originalCfg
	cfg.Servers = All()

	return codec.Encode(cfg, format)
}

/**
 * Returns map of servers with configurations
 */
func All() map[string]config.Server {
	result := map[string]config.Server{}

	servers.RLock()
	for name, server := range servers.m {
		result[name] = server.Cfg()
	}
	servers.RUnlock()

	return result
}

/**
 * Returns server configuration by name
 */
func Get(name string) (config.Server, bool) {

	servers.RLock()
	server, ok := servers.m[name]
	servers.RUnlock()

	if !ok {
		return config.Server{}, false
	}

	return server.Cfg(), true
}

/**
 * Create new server and launch it
 */
func Create(name string, cfg config.Server) error {

	if events == nil {
		return errors.New("Manager is not initialized")
	}

	servers.Lock()
	defer servers.Unlock()

	if _, ok := servers.m[name]; ok {
		return errors.New("Server with this name already exists: " + name)
	}

	c, err := prepareConfig(name, cfg, defaults)
	if err != nil {
		return err
	}

	server, err := server.New(name, c, events, store.Connections())
	if err != nil {
		return err
	}

	if err = server.Start(); err != nil {
		return err
	}

	servers.m[name] = server

	return nil
}

/**
 * Delete server stopping all active connections.
 * Its statistics stay in the store
 */
func Delete(name string) error {

	servers.Lock()
	defer servers.Unlock()

	server, ok := servers.m[name]
	if !ok {
		return errors.New("Server not found")
	}

	server.Stop()
	delete(servers.m, name)

	return nil
}

/**
 * Prepare config (merge default configuration, and try to validate)
 */
func prepareConfig(name string, server config.Server, defaults config.ConnectionOptions) (config.Server, error) {

	if server.Bind == "" {
		return config.Server{}, errors.New("No bind specified")
	}

	if len(server.Backends) == 0 {
		return config.Server{}, errors.New("No backends specified for " + name)
	}

	if server.Balance == "" {
		server.Balance = balance.DefaultBalance
	}

	if _, err := balance.New(server.Balance); err != nil {
		return config.Server{}, err
	}

	server.ServerName = strings.TrimSpace(server.ServerName)
	server.Upstream = strings.TrimSpace(server.Upstream)
	if server.Upstream == "" {
		server.Upstream = name
	}

	if server.ClientIdleTimeout == nil {
		server.ClientIdleTimeout = defaults.ClientIdleTimeout
	}

	if server.BackendIdleTimeout == nil {
		server.BackendIdleTimeout = defaults.BackendIdleTimeout
	}

	if server.BackendConnectionTimeout == nil {
		server.BackendConnectionTimeout = defaults.BackendConnectionTimeout
	}

	return server, nil
}
