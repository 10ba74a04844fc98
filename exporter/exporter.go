package exporter

/**
 * exporter.go - status report rendering
 *
 * Rendering is a pure function of a stats.Report: it performs no I/O
 * and never touches the zones the report was taken from.
 */

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vtsd/vtsd/stats"
)

/**
 * Version of the rendered document layout
 */
const Version = 1

const (
	FormatJSON       = "json"
	FormatPrometheus = "prometheus"
	FormatText       = "text"
)

var ErrUnknownFormat = errors.New("unknown status format")

/**
 * Renderer turns a report into bytes
 */
type renderer struct {
	contentType string
	render      func(stats.Report) ([]byte, error)
}

var renderers = map[string]renderer{
	FormatJSON:       {"application/json; charset=utf-8", renderJSON},
	FormatPrometheus: {"text/plain; version=0.0.4; charset=utf-8", renderPrometheus},
	FormatText:       {"text/plain; charset=utf-8", renderText},
}

/**
 * Render report in the given format
 */
func Render(r stats.Report, format string) ([]byte, error) {
	rn, ok := renderers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return rn.render(r)
}

/**
 * Content type of the given format
 */
func ContentType(format string) string {
	return renderers[format].contentType
}

/**
 * Supported formats, sorted
 */
func Formats() []string {
	result := make([]string, 0, len(renderers))
	for f := range renderers {
		result = append(result, f)
	}
	sort.Strings(result)
	return result
}
