package balance

/**
 * weight.go - weighted random balance impl
 */

import (
	"errors"
	"math/rand"

	"github.com/vtsd/vtsd/core"
)

/**
 * Weight balancer
 */
type WeightBalancer struct{}

/**
 * Elect backend randomly in proportion to its weight.
 * Backends with weight 0 are elected only when all weights are 0
 */
func (b *WeightBalancer) Elect(context core.Context, backends []*core.Backend) (*core.Backend, error) {

	if len(backends) == 0 {
		return nil, errors.New("Can't elect backend, Backends empty")
	}

	total := 0
	for _, backend := range backends {
		if backend.Weight > 0 {
			total += backend.Weight
		}
	}

	if total == 0 {
		return backends[rand.Intn(len(backends))], nil
	}

	r := rand.Intn(total)
	for _, backend := range backends {
		if backend.Weight <= 0 {
			continue
		}
		if r < backend.Weight {
			return backend, nil
		}
		r -= backend.Weight
	}

	return nil, errors.New("Can't elect backend")
}
