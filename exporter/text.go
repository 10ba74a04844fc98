package exporter

/**
 * text.go - human readable status summary
 */

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/vtsd/vtsd/core"
	"github.com/vtsd/vtsd/stats"
)

func renderText(r stats.Report) ([]byte, error) {

	buf := new(bytes.Buffer)

	fmt.Fprintf(buf, "# vtsd status v%d\n", Version)
	fmt.Fprintf(buf, "# Generated: %s\n", r.GeneratedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(buf, "# Host: %s, version: %s, uptime: %s\n",
		EscapeKey(r.Info.Hostname), EscapeKey(r.Info.Version), r.Uptime().Truncate(time.Second))

	c := r.Connections
	fmt.Fprintf(buf, "# Connections: active %d, reading %d, writing %d, waiting %d, accepted %d, handled %d\n",
		c.Active, c.Reading, c.Writing, c.Waiting, c.Accepted, c.Handled)
	fmt.Fprintf(buf, "# Dropped keys: %d\n\n", r.DroppedKeys)

	writeZoneHeader(buf, r.Servers.Name, r.Servers.Enabled, len(r.Servers.Records), r.Servers.Capacity, r.Servers.Counters.Dropped)
	if r.Servers.Enabled {
		w := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "server\trequests\tin\tout\t1xx\t2xx\t3xx\t4xx\t5xx\tother\tmean\tmin\tmax")
		for _, rec := range r.Servers.Records {
			fmt.Fprintf(w, "%s\t%s\n", EscapeKey(rec.Key.Name), entryColumns(rec.Entry))
		}
		w.Flush()
		writeTotals(buf, serverEntries(r.Servers.Records))
	}

	buf.WriteByte('\n')

	writeZoneHeader(buf, r.Upstreams.Name, r.Upstreams.Enabled, len(r.Upstreams.Records), r.Upstreams.Capacity, r.Upstreams.Counters.Dropped)
	if r.Upstreams.Enabled {
		w := tabwriter.NewWriter(buf, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "upstream\tpeer\trequests\tin\tout\t1xx\t2xx\t3xx\t4xx\t5xx\tother\tmean\tmin\tmax")
		for _, rec := range r.Upstreams.Records {
			fmt.Fprintf(w, "%s\t%s\t%s\n", EscapeKey(rec.Key.Upstream), EscapeKey(rec.Key.Peer), entryColumns(rec.Entry))
		}
		w.Flush()
		writeTotals(buf, upstreamEntries(r.Upstreams.Records))
	}

	return buf.Bytes(), nil
}

func writeZoneHeader(buf *bytes.Buffer, name string, enabled bool, entries, capacity int, dropped uint64) {
	if !enabled {
		fmt.Fprintf(buf, "## %s zone: disabled\n", name)
		return
	}
	fmt.Fprintf(buf, "## %s zone: %d/%d entries, %d dropped\n", name, entries, capacity, dropped)
}

func entryColumns(e stats.Entry) string {
	return fmt.Sprintf("%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%dms\t%dms\t%dms",
		e.Requests, e.BytesIn, e.BytesOut,
		e.Bucket(core.Status1xx), e.Bucket(core.Status2xx), e.Bucket(core.Status3xx),
		e.Bucket(core.Status4xx), e.Bucket(core.Status5xx), e.Bucket(core.StatusOther),
		e.Mean(), e.Min(), e.Max())
}

func writeTotals(buf *bytes.Buffer, entries []stats.Entry) {
	var requests, s2xx, s4xx, s5xx uint64
	for i := range entries {
		requests += entries[i].Requests
		s2xx += entries[i].Bucket(core.Status2xx)
		s4xx += entries[i].Bucket(core.Status4xx)
		s5xx += entries[i].Bucket(core.Status5xx)
	}
	fmt.Fprintf(buf, "# Total requests: %d, 2xx: %d, 4xx: %d, 5xx: %d\n", requests, s2xx, s4xx, s5xx)
}

func serverEntries(records []stats.Record[core.ServerKey]) []stats.Entry {
	result := make([]stats.Entry, len(records))
	for i := range records {
		result[i] = records[i].Entry
	}
	return result
}

func upstreamEntries(records []stats.Record[core.UpstreamKey]) []stats.Entry {
	result := make([]stats.Entry, len(records))
	for i := range records {
		result[i] = records[i].Entry
	}
	return result
}
