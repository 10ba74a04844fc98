package balance

/**
 * roundrobin.go - roundrobin balance impl
 */

import (
	"errors"
	"sync/atomic"

	"github.com/vtsd/vtsd/core"
)

/**
 * Roundrobin balancer, safe for concurrent requests
 */
type RoundrobinBalancer struct {

	/* Next backend position */
	current atomic.Uint64
}

/**
 * Elect backend using roundrobin strategy. Backends are expected
 * in stable order, the server keeps them sorted by address
 */
func (b *RoundrobinBalancer) Elect(context core.Context, backends []*core.Backend) (*core.Backend, error) {

	if len(backends) == 0 {
		return nil, errors.New("Can't elect backend, Backends empty")
	}

	n := b.current.Add(1) - 1
	return backends[n%uint64(len(backends))], nil
}
