package core

/**
 * context.go - balancing context
 */

import (
	"net"
)

/**
 * Context of a client request being balanced
 */
type Context interface {
	String() string
	Ip() net.IP
	Port() int
}
