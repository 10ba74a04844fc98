package exporter

/**
 * prometheus.go - prometheus exposition of a report
 */

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/vtsd/vtsd/core"
	"github.com/vtsd/vtsd/stats"
)

const (
	Namespace = "vts"
)

/**
 * Metric descriptors of one zone kind
 */
type entryDescs struct {
	requests     *prometheus.Desc
	bytes        *prometheus.Desc
	responses    *prometheus.Desc
	responseTime *prometheus.Desc
	lastUpdate   *prometheus.Desc
}

func newEntryDescs(subsystem string, labels []string) entryDescs {
	with := func(extra ...string) []string {
		return append(append([]string{}, labels...), extra...)
	}
	return entryDescs{
		requests: prometheus.NewDesc(prometheus.BuildFQName(Namespace, subsystem, "requests_total"),
			"Total requests.", labels, nil),
		bytes: prometheus.NewDesc(prometheus.BuildFQName(Namespace, subsystem, "bytes_total"),
			"Total bytes by direction.", with("direction"), nil),
		responses: prometheus.NewDesc(prometheus.BuildFQName(Namespace, subsystem, "responses_total"),
			"Responses by status class.", with("status"), nil),
		responseTime: prometheus.NewDesc(prometheus.BuildFQName(Namespace, subsystem, "response_time_milliseconds"),
			"Response time mean, min and max.", with("type"), nil),
		lastUpdate: prometheus.NewDesc(prometheus.BuildFQName(Namespace, subsystem, "last_update_epoch_milliseconds"),
			"Time of the latest event.", labels, nil),
	}
}

/**
 * Collector exposes reports produced by source as prometheus metrics
 */
type Collector struct {
	source func() stats.Report

	server   entryDescs
	upstream entryDescs

	zoneEntries  *prometheus.Desc
	zoneCapacity *prometheus.Desc
	zoneDropped  *prometheus.Desc

	info             *prometheus.Desc
	uptime           *prometheus.Desc
	connections      *prometheus.Desc
	connectionsTotal *prometheus.Desc
}

/**
 * Creates collector. source is called once per Collect
 */
func NewCollector(source func() stats.Report) *Collector {
	return &Collector{
		source:   source,
		server:   newEntryDescs("server", []string{"server"}),
		upstream: newEntryDescs("upstream", []string{"upstream", "peer"}),
		zoneEntries: prometheus.NewDesc(prometheus.BuildFQName(Namespace, "zone", "entries"),
			"Keys admitted into the zone.", []string{"zone"}, nil),
		zoneCapacity: prometheus.NewDesc(prometheus.BuildFQName(Namespace, "zone", "capacity"),
			"Maximum number of keys in the zone.", []string{"zone"}, nil),
		zoneDropped: prometheus.NewDesc(prometheus.BuildFQName(Namespace, "zone", "dropped_keys_total"),
			"Events lost because the zone was full.", []string{"zone"}, nil),
		info: prometheus.NewDesc(prometheus.BuildFQName(Namespace, "", "info"),
			"Proxy instance information.", []string{"hostname", "version"}, nil),
		uptime: prometheus.NewDesc(prometheus.BuildFQName(Namespace, "", "uptime_seconds"),
			"Seconds since the proxy started.", nil, nil),
		connections: prometheus.NewDesc(prometheus.BuildFQName(Namespace, "", "connections"),
			"Client connections by state.", []string{"state"}, nil),
		connectionsTotal: prometheus.NewDesc(prometheus.BuildFQName(Namespace, "", "connections_total"),
			"Client connections accepted and handled.", []string{"state"}, nil),
	}
}

/**
 * Describe implements prometheus.Collector
 */
func (this *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []entryDescs{this.server, this.upstream} {
		ch <- d.requests
		ch <- d.bytes
		ch <- d.responses
		ch <- d.responseTime
		ch <- d.lastUpdate
	}
	ch <- this.zoneEntries
	ch <- this.zoneCapacity
	ch <- this.zoneDropped
	ch <- this.info
	ch <- this.uptime
	ch <- this.connections
	ch <- this.connectionsTotal
}

/**
 * Collect implements prometheus.Collector
 */
func (this *Collector) Collect(ch chan<- prometheus.Metric) {

	r := this.source()

	send(ch, this.info, prometheus.GaugeValue, 1, EscapeKey(r.Info.Hostname), EscapeKey(r.Info.Version))
	send(ch, this.uptime, prometheus.GaugeValue, r.Uptime().Seconds())

	c := r.Connections
	send(ch, this.connections, prometheus.GaugeValue, float64(c.Active), "active")
	send(ch, this.connections, prometheus.GaugeValue, float64(c.Reading), "reading")
	send(ch, this.connections, prometheus.GaugeValue, float64(c.Writing), "writing")
	send(ch, this.connections, prometheus.GaugeValue, float64(c.Waiting), "waiting")
	send(ch, this.connectionsTotal, prometheus.CounterValue, float64(c.Accepted), "accepted")
	send(ch, this.connectionsTotal, prometheus.CounterValue, float64(c.Handled), "handled")

	for _, rec := range r.Servers.Records {
		collectEntry(ch, this.server, rec.Entry, EscapeKey(rec.Key.Name))
	}
	for _, rec := range r.Upstreams.Records {
		collectEntry(ch, this.upstream, rec.Entry, EscapeKey(rec.Key.Upstream), EscapeKey(rec.Key.Peer))
	}

	zones := []struct {
		name     string
		entries  int
		capacity int
		dropped  uint64
	}{
		{r.Servers.Name, len(r.Servers.Records), r.Servers.Capacity, r.Servers.Counters.Dropped},
		{r.Upstreams.Name, len(r.Upstreams.Records), r.Upstreams.Capacity, r.Upstreams.Counters.Dropped},
	}

	for _, z := range zones {
		send(ch, this.zoneEntries, prometheus.GaugeValue, float64(z.entries), z.name)
		send(ch, this.zoneCapacity, prometheus.GaugeValue, float64(z.capacity), z.name)
		send(ch, this.zoneDropped, prometheus.CounterValue, float64(z.dropped), z.name)
	}
}

func collectEntry(ch chan<- prometheus.Metric, d entryDescs, e stats.Entry, labels ...string) {

	with := func(extra string) []string {
		return append(append(make([]string, 0, len(labels)+1), labels...), extra)
	}

	send(ch, d.requests, prometheus.CounterValue, float64(e.Requests), labels...)
	send(ch, d.bytes, prometheus.CounterValue, float64(e.BytesIn), with("in")...)
	send(ch, d.bytes, prometheus.CounterValue, float64(e.BytesOut), with("out")...)

	for class, name := range core.StatusClassNames {
		send(ch, d.responses, prometheus.CounterValue, float64(e.Bucket(class)), with(name)...)
	}

	send(ch, d.responseTime, prometheus.GaugeValue, float64(e.Mean()), with("mean")...)
	send(ch, d.responseTime, prometheus.GaugeValue, float64(e.Min()), with("min")...)
	send(ch, d.responseTime, prometheus.GaugeValue, float64(e.Max()), with("max")...)

	send(ch, d.lastUpdate, prometheus.GaugeValue, float64(e.LastUpdateEpochMs), labels...)
}

/**
 * Sends const metric. Label values are escaped by callers, so an
 * error here is a label count mismatch and is reported by Gather
 */
func send(ch chan<- prometheus.Metric, desc *prometheus.Desc, vt prometheus.ValueType, v float64, labels ...string) {
	m, err := prometheus.NewConstMetric(desc, vt, v, labels...)
	if err != nil {
		m = prometheus.NewInvalidMetric(desc, err)
	}
	ch <- m
}

func renderPrometheus(r stats.Report) ([]byte, error) {

	reg := prometheus.NewRegistry()
	if err := reg.Register(NewCollector(func() stats.Report { return r })); err != nil {
		return nil, fmt.Errorf("render prometheus: %w", err)
	}

	families, err := reg.Gather()
	if err != nil {
		return nil, fmt.Errorf("render prometheus: %w", err)
	}

	buf := new(bytes.Buffer)
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(buf, mf); err != nil {
			return nil, fmt.Errorf("render prometheus: %w", err)
		}
	}

	return buf.Bytes(), nil
}
