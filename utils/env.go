package utils

/**
 * env.go - env vars helpers
 */

import (
	"os"
	"regexp"
)

var envVarRe = regexp.MustCompile(`\$\{([^}]*)\}`)

//
// SubstituteEnvVars replaces placeholders ${...} with env var value
//
func SubstituteEnvVars(data string) string {
	return envVarRe.ReplaceAllStringFunc(data, func(v string) string {
		return os.Getenv(v[2 : len(v)-1])
	})
}
