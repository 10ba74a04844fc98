package stats

/**
 * report.go - point in time statistics report
 */

import (
	"time"

	"github.com/vtsd/vtsd/core"
	"github.com/vtsd/vtsd/stats/counters"
)

/**
 * Snapshot of one zone
 */
type ZoneReport[K StatKey[K]] struct {
	Name     string
	Enabled  bool
	Capacity int
	Records  []Record[K]
	Counters counters.Snapshot
}

/**
 * Instance the report was taken on
 */
type Info struct {
	Hostname  string
	Version   string
	StartTime time.Time
}

/**
 * Time since StartTime at generation, zero when unknown
 */
func (this *Report) Uptime() time.Duration {
	if this.Info.StartTime.IsZero() || this.GeneratedAt.Before(this.Info.StartTime) {
		return 0
	}
	return this.GeneratedAt.Sub(this.Info.StartTime)
}

/**
 * Report of both zones
 */
type Report struct {
	GeneratedAt time.Time
	Info        Info
	Servers     ZoneReport[core.ServerKey]
	Upstreams   ZoneReport[core.UpstreamKey]

	/* Client connections of the proxy servers */
	Connections counters.ConnectionsSnapshot

	/* Sum of dropped keys over both zones */
	DroppedKeys uint64
}

/**
 * Server records with the given name, at most one
 */
func (this *Report) Server(name string) []Record[core.ServerKey] {
	result := []Record[core.ServerKey]{}
	for _, r := range this.Servers.Records {
		if r.Key.Name == name {
			result = append(result, r)
		}
	}
	return result
}

/**
 * Upstream records of one upstream group
 */
func (this *Report) Upstream(name string) []Record[core.UpstreamKey] {
	result := []Record[core.UpstreamKey]{}
	for _, r := range this.Upstreams.Records {
		if r.Key.Upstream == name {
			result = append(result, r)
		}
	}
	return result
}
