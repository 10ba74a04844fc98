package core

/**
 * key.go - statistics keys
 *
 * Keys are compared by exact byte equality. Trimming and default
 * substitution happen before a key is built (see collector package).
 */

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

/**
 * Server zone key
 */
type ServerKey struct {
	Name string `json:"server"`
}

/**
 * Upstream zone key: upstream group name and peer address
 */
type UpstreamKey struct {
	Upstream string `json:"upstream"`
	Peer     string `json:"peer"`
}

func (this ServerKey) Hash() uint64 {
	return xxhash.Sum64String(this.Name)
}

func (this ServerKey) Compare(other ServerKey) int {
	return strings.Compare(this.Name, other.Name)
}

func (this ServerKey) String() string {
	return this.Name
}

/**
 * Upstream and peer are separated by a NUL byte so that
 * ("ab", "c") and ("a", "bc") never share a digest input
 */
func (this UpstreamKey) Hash() uint64 {
	d := xxhash.New()
	d.WriteString(this.Upstream)
	d.Write([]byte{0})
	d.WriteString(this.Peer)
	return d.Sum64()
}

func (this UpstreamKey) Compare(other UpstreamKey) int {
	if c := strings.Compare(this.Upstream, other.Upstream); c != 0 {
		return c
	}
	return strings.Compare(this.Peer, other.Peer)
}

func (this UpstreamKey) String() string {
	return this.Upstream + "/" + this.Peer
}
