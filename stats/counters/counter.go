package counters

/**
 * counter.go - zone level event counters
 */

import (
	"sync/atomic"
)

/**
 * Zone counters, safe for concurrent use
 */
type Counters struct {

	/* Events applied to an entry */
	Events atomic.Uint64

	/* Events lost because a new key did not fit into the zone */
	Dropped atomic.Uint64

	/* Events ignored on purpose: disabled zone or no upstream used */
	Discarded atomic.Uint64
}

/**
 * Point in time copy of Counters
 */
type Snapshot struct {
	Events    uint64 `json:"events"`
	Dropped   uint64 `json:"dropped"`
	Discarded uint64 `json:"discarded"`
}

/**
 * Copy current values out
 */
func (this *Counters) Snapshot() Snapshot {
	return Snapshot{
		Events:    this.Events.Load(),
		Dropped:   this.Dropped.Load(),
		Discarded: this.Discarded.Load(),
	}
}
