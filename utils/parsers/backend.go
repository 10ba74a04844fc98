package parsers

/**
 * backend.go - backend parser utils
 */

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/vtsd/vtsd/core"
)

const (
	DEFAULT_BACKEND_PATTERN = `^(?P<host>\S+):(?P<port>\d+)(\sweight=(?P<weight>\d+))?$`
)

var defaultBackendRe = regexp.MustCompile(DEFAULT_BACKEND_PATTERN)

/**
 * Do parsing of backend line with default pattern
 */
func ParseBackendDefault(line string) (*core.Backend, error) {
	return parseBackend(line, defaultBackendRe)
}

/**
 * Do parsing of backend line
 */
func ParseBackend(line string, pattern string) (*core.Backend, error) {
	reg, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return parseBackend(line, reg)
}

func parseBackend(line string, reg *regexp.Regexp) (*core.Backend, error) {

	//trim string
	line = strings.TrimSpace(line)

	match := reg.FindStringSubmatch(line)
	if len(match) == 0 {
		return nil, errors.New("Cant parse " + line)
	}

	result := make(map[string]string)

	// get named capturing groups
	for i, name := range reg.SubexpNames() {
		if name != "" {
			result[name] = match[i]
		}
	}

	weight, err := strconv.Atoi(result["weight"])
	if err != nil {
		weight = 1
	}

	return &core.Backend{
		Target: core.Target{
			Host: result["host"],
			Port: result["port"],
		},
		Weight: weight,
	}, nil
}
