package stats

/**
 * store.go - statistics store owning server and upstream zones
 */

import (
	"time"

	"github.com/vtsd/vtsd/core"
	"github.com/vtsd/vtsd/logging"
	"github.com/vtsd/vtsd/stats/counters"
)

const (
	/* Default zone budget, bytes */
	DefaultZoneSize = 1 << 20

	ServerZone   = "server"
	UpstreamZone = "upstream"
)

/**
 * Store construction options
 */
type Options struct {

	/* Zone budgets in bytes */
	ServerZoneSize   int64
	UpstreamZoneSize int64

	/* Disabled zones ignore their events */
	ServerEnabled   bool
	UpstreamEnabled bool

	/* Time source, time.Now if nil */
	Clock func() time.Time

	/* Reported as is */
	Info Info
}

/**
 * Options with both zones enabled and default sizes
 */
func DefaultOptions() Options {
	return Options{
		ServerZoneSize:   DefaultZoneSize,
		UpstreamZoneSize: DefaultZoneSize,
		ServerEnabled:    true,
		UpstreamEnabled:  true,
	}
}

/**
 * Store accumulates traffic statistics. It is safe for
 * concurrent use by any number of writers and readers
 */
type Store struct {
	servers   *zoneHandler[core.ServerKey]
	upstreams *zoneHandler[core.UpstreamKey]

	/* Counters of disabled zones */
	serverDisabled   counters.Counters
	upstreamDisabled counters.Counters

	connections counters.Connections

	info Info
	now  func() time.Time
}

/**
 * Creates new store
 */
func NewStore(opts Options) *Store {

	log := logging.For("stats")

	s := &Store{now: opts.Clock, info: opts.Info}
	if s.now == nil {
		s.now = time.Now
	}

	if opts.ServerEnabled {
		capacity := CapacityFor(opts.ServerZoneSize)
		s.servers = newZoneHandler(NewZone[core.ServerKey](ServerZone, capacity), log)
		log.Info("Server zone: ", capacity, " entries")
	} else {
		log.Info("Server zone disabled")
	}

	if opts.UpstreamEnabled {
		capacity := CapacityFor(opts.UpstreamZoneSize)
		s.upstreams = newZoneHandler(NewZone[core.UpstreamKey](UpstreamZone, capacity), log)
		log.Info("Upstream zone: ", capacity, " entries")
	} else {
		log.Info("Upstream zone disabled")
	}

	return s
}

/**
 * Records one finished request in the server zone
 */
func (this *Store) RecordServerEvent(server string, status int, bytesIn, bytesOut, responseTimeMs uint64) {

	if this.servers == nil {
		this.serverDisabled.Discarded.Add(1)
		return
	}

	this.servers.record(core.ServerKey{Name: server}, Delta{
		Status:       status,
		BytesIn:      bytesIn,
		BytesOut:     bytesOut,
		ResponseTime: responseTimeMs,
		Now:          this.epochMs(),
	})
}

/**
 * Records the upstream leg of a finished request.
 * Empty upstream name means no upstream was used, this is a no-op
 */
func (this *Store) RecordUpstreamEvent(upstream, peer string, status int, bytesSent, bytesReceived, upstreamResponseTimeMs uint64) {

	if this.upstreams == nil {
		this.upstreamDisabled.Discarded.Add(1)
		return
	}

	if upstream == "" {
		this.upstreams.counters.Discarded.Add(1)
		return
	}

	this.upstreams.record(core.UpstreamKey{Upstream: upstream, Peer: peer}, Delta{
		Status:       status,
		BytesIn:      bytesReceived,
		BytesOut:     bytesSent,
		ResponseTime: upstreamResponseTimeMs,
		Now:          this.epochMs(),
	})
}

/**
 * Convenience wrappers for event values
 */
func (this *Store) RecordServer(e core.ServerEvent) {
	this.RecordServerEvent(e.Server, e.Status, e.BytesIn, e.BytesOut, e.ResponseTime)
}

func (this *Store) RecordUpstream(e core.UpstreamEvent) {
	this.RecordUpstreamEvent(e.Upstream, e.Peer, e.Status, e.BytesSent, e.BytesReceived, e.ResponseTime)
}

/**
 * Copies both zones out into a report
 */
func (this *Store) ExportSnapshot() Report {

	r := Report{
		GeneratedAt: this.now(),
		Info:        this.info,
		Connections: this.connections.Snapshot(),
	}

	if this.servers != nil {
		r.Servers = this.servers.report()
	} else {
		r.Servers = ZoneReport[core.ServerKey]{Name: ServerZone, Counters: this.serverDisabled.Snapshot()}
	}

	if this.upstreams != nil {
		r.Upstreams = this.upstreams.report()
	} else {
		r.Upstreams = ZoneReport[core.UpstreamKey]{Name: UpstreamZone, Counters: this.upstreamDisabled.Snapshot()}
	}

	r.DroppedKeys = r.Servers.Counters.Dropped + r.Upstreams.Counters.Dropped

	return r
}

/**
 * Connection counters fed by the proxy servers
 */
func (this *Store) Connections() *counters.Connections {
	return &this.connections
}

/**
 * Number of dropped keys so far, over both zones
 */
func (this *Store) DroppedKeys() uint64 {
	var n uint64
	if this.servers != nil {
		n += this.servers.counters.Dropped.Load()
	}
	if this.upstreams != nil {
		n += this.upstreams.counters.Dropped.Load()
	}
	return n
}

func (this *Store) epochMs() uint64 {
	ms := this.now().UnixMilli()
	if ms < 0 {
		return 0
	}
	return uint64(ms)
}
