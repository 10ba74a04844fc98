package balance

/**
 * iphash.go - semi-consistent iphash balance impl
 */

import (
	"errors"

	"github.com/cespare/xxhash/v2"
	"github.com/vtsd/vtsd/core"
)

/**
 * Iphash balancer
 */
type IphashBalancer struct{}

/**
 * Elect backend with the highest hash of client ip and backend
 * address, so clients of surviving backends stay put when one is removed
 */
func (b *IphashBalancer) Elect(context core.Context, backends []*core.Backend) (*core.Backend, error) {

	if len(backends) == 0 {
		return nil, errors.New("Can't elect backend, Backends empty")
	}

	var result *core.Backend
	var bestHash uint64

	for i, backend := range backends {
		d := xxhash.New()
		d.Write(context.Ip())
		d.WriteString(backend.Address())
		if h := d.Sum64(); result == nil || h > bestHash {
			bestHash = h
			result = backends[i]
		}
	}

	return result, nil
}
