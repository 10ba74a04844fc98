package server

/**
 * conns.go - client connection state accounting
 */

import (
	"net"
	"net/http"
	"sync"

	"github.com/vtsd/vtsd/stats/counters"
)

/**
 * Follows http.Server connection states and moves
 * the shared connection counters accordingly
 */
type connTracker struct {
	counters *counters.Connections

	mutex  sync.Mutex
	states map[net.Conn]http.ConnState
}

func newConnTracker(c *counters.Connections) *connTracker {
	return &connTracker{
		counters: c,
		states:   make(map[net.Conn]http.ConnState),
	}
}

/**
 * http.Server ConnState hook
 */
func (this *connTracker) track(conn net.Conn, state http.ConnState) {

	this.mutex.Lock()
	prev, known := this.states[conn]
	switch state {
	case http.StateHijacked, http.StateClosed:
		delete(this.states, conn)
	default:
		this.states[conn] = state
	}
	this.mutex.Unlock()

	c := this.counters

	if state == http.StateNew {
		c.Accepted.Add(1)
		c.Handled.Add(1)
		c.Active.Add(1)
	}

	if known {
		this.gauge(prev).Add(-1)
	}

	switch state {
	case http.StateHijacked, http.StateClosed:
		if known {
			c.Active.Add(-1)
		}
	default:
		this.gauge(state).Add(1)
	}
}

func (this *connTracker) gauge(state http.ConnState) interface{ Add(int64) int64 } {
	switch state {
	case http.StateActive:
		return &this.counters.Writing
	case http.StateIdle:
		return &this.counters.Waiting
	default:
		return &this.counters.Reading
	}
}
