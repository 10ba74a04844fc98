package info

/**
 * info.go - build and runtime information, set at startup
 */

import (
	"time"
)

var (
	/* Set with ldflags while build */
	Version  string = "dev"
	Revision string
	Branch   string

	StartTime time.Time

	/* Where the configuration came from */
	Configuration interface{}
)
