package core

/**
 * backend.go - backend definition
 */

import (
	"fmt"
)

/**
 * Backend means upstream peer
 */
type Backend struct {
	Target
	Weight int `json:"weight"`
}

/**
 * Get backends target address
 */
func (this *Backend) Address() string {
	return this.Target.Address()
}

/**
 * String conversion
 */
func (this Backend) String() string {
	return fmt.Sprintf("{%s w=%d}", this.Address(), this.Weight)
}
