package balance

/**
 * registry.go - balancers registry
 */

import (
	"fmt"

	"github.com/vtsd/vtsd/core"
)

/* Strategy used when none is configured */
const DefaultBalance = "roundrobin"

/**
 * Registry of available Balancers
 */
var typeRegistry = map[string]func() core.Balancer{
	"roundrobin": func() core.Balancer { return &RoundrobinBalancer{} },
	"iphash":     func() core.Balancer { return &IphashBalancer{} },
	"weight":     func() core.Balancer { return &WeightBalancer{} },
}

/**
 * Create new Balancer based on balancing strategy
 */
func New(balance string) (core.Balancer, error) {
	if balance == "" {
		balance = DefaultBalance
	}
	constructor, ok := typeRegistry[balance]
	if !ok {
		return nil, fmt.Errorf("unsupported balance %q", balance)
	}
	return constructor(), nil
}
