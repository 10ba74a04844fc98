package counters

/**
 * connections.go - client connection counters
 */

import (
	"sync/atomic"
)

/**
 * Connection gauges and totals, shared by every proxy server
 */
type Connections struct {

	/* Open connections */
	Active atomic.Int64

	/* Accepted, no request started yet */
	Reading atomic.Int64

	/* Serving a request */
	Writing atomic.Int64

	/* Idle keep-alive */
	Waiting atomic.Int64

	/* Totals since start */
	Accepted atomic.Uint64
	Handled  atomic.Uint64
}

/**
 * Point in time copy of Connections
 */
type ConnectionsSnapshot struct {
	Active   uint64 `json:"active"`
	Reading  uint64 `json:"reading"`
	Writing  uint64 `json:"writing"`
	Waiting  uint64 `json:"waiting"`
	Accepted uint64 `json:"accepted"`
	Handled  uint64 `json:"handled"`
}

/**
 * Copy current values out. Gauges read mid transition never go below zero
 */
func (this *Connections) Snapshot() ConnectionsSnapshot {
	return ConnectionsSnapshot{
		Active:   gauge(this.Active.Load()),
		Reading:  gauge(this.Reading.Load()),
		Writing:  gauge(this.Writing.Load()),
		Waiting:  gauge(this.Waiting.Load()),
		Accepted: this.Accepted.Load(),
		Handled:  this.Handled.Load(),
	}
}

func gauge(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return uint64(v)
}
