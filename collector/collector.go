package collector

/**
 * collector.go - turns finished requests into zone events
 *
 * The store expects well formed events: names already trimmed and
 * defaulted. This package does that normalization and decides which
 * status code and timing belong to which zone.
 */

import (
	"strings"
	"time"

	"github.com/vtsd/vtsd/core"
	"github.com/vtsd/vtsd/utils"
)

const (
	/* Substituted for an empty server name */
	DefaultServerName = "_"

	/* Substituted for an empty peer address */
	DefaultPeer = "-"
)

/**
 * Event sink, implemented by stats.Store
 */
type Recorder interface {
	RecordServerEvent(server string, status int, bytesIn, bytesOut, responseTimeMs uint64)
	RecordUpstreamEvent(upstream, peer string, status int, bytesSent, bytesReceived, upstreamResponseTimeMs uint64)
}

/**
 * Everything known about one finished request
 */
type Request struct {
	Server string

	/* Empty when no upstream was used */
	Upstream string
	Peer     string

	/* Status sent to the client, 0 if none */
	Status int

	/* Status received from the upstream, 0 if none */
	UpstreamStatus int

	/* Client side byte counters */
	BytesIn  uint64
	BytesOut uint64

	/* Upstream side byte counters */
	UpstreamBytesSent     uint64
	UpstreamBytesReceived uint64

	/* Total request lifetime */
	RequestTime time.Duration

	/* Upstream leg only */
	UpstreamResponseTime time.Duration
}

/**
 * Collector normalizes and forwards events
 */
type Collector struct {
	recorder Recorder
}

/**
 * Creates new collector writing into recorder
 */
func New(recorder Recorder) *Collector {
	return &Collector{recorder: recorder}
}

/**
 * Records server zone event
 */
func (this *Collector) Server(e core.ServerEvent) {
	this.recorder.RecordServerEvent(Normalize(e.Server, DefaultServerName), e.Status, e.BytesIn, e.BytesOut, e.ResponseTime)
}

/**
 * Records upstream zone event. Upstream name is trimmed but never
 * defaulted, empty means no upstream was used
 */
func (this *Collector) Upstream(e core.UpstreamEvent) {
	this.recorder.RecordUpstreamEvent(strings.TrimSpace(e.Upstream), Normalize(e.Peer, DefaultPeer),
		e.Status, e.BytesSent, e.BytesReceived, e.ResponseTime)
}

/**
 * Records a finished request: always a server event, and an upstream
 * event when an upstream was used
 */
func (this *Collector) Request(r Request) {

	this.Server(core.ServerEvent{
		Server:       r.Server,
		Status:       ResolveStatus(r.Status, r.UpstreamStatus),
		BytesIn:      r.BytesIn,
		BytesOut:     r.BytesOut,
		ResponseTime: utils.Millis(r.RequestTime),
	})

	if strings.TrimSpace(r.Upstream) == "" {
		return
	}

	this.Upstream(core.UpstreamEvent{
		Upstream:      r.Upstream,
		Peer:          r.Peer,
		Status:        ResolveStatus(r.UpstreamStatus, r.Status),
		BytesSent:     r.UpstreamBytesSent,
		BytesReceived: r.UpstreamBytesReceived,
		ResponseTime:  utils.Millis(r.UpstreamResponseTime),
	})
}

/**
 * Trims name and substitutes fallback when nothing is left
 */
func Normalize(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return name
}

/**
 * Picks preferred status, then fallback. When neither was observed
 * the result is core.StatusNone, never a made up 200
 */
func ResolveStatus(preferred, fallback int) int {
	if preferred > 0 {
		return preferred
	}
	if fallback > 0 {
		return fallback
	}
	return core.StatusNone
}
