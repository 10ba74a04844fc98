package exporter

/**
 * json.go - json status document
 */

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/vtsd/vtsd/core"
	"github.com/vtsd/vtsd/stats"
	"github.com/vtsd/vtsd/stats/counters"
)

/**
 * Top level status document
 */
type Document struct {
	Version       int                          `json:"version"`
	GeneratedAt   time.Time                    `json:"generated_at"`
	Info          InfoDocument                 `json:"info"`
	Connections   counters.ConnectionsSnapshot `json:"connections"`
	DroppedKeys   uint64                       `json:"dropped_keys"`
	ServerZones   ZoneDocument[ServerItem]     `json:"server_zones"`
	UpstreamZones ZoneDocument[UpstreamItem]   `json:"upstream_zones"`
}

/**
 * Instance the document was generated on
 */
type InfoDocument struct {
	Hostname      string    `json:"hostname"`
	Version       string    `json:"version"`
	StartTime     time.Time `json:"start_time"`
	UptimeSeconds uint64    `json:"uptime_seconds"`
}

/**
 * One zone in the document
 */
type ZoneDocument[T any] struct {
	Enabled     bool   `json:"enabled"`
	Capacity    int    `json:"capacity"`
	Entries     int    `json:"entries"`
	Events      uint64 `json:"events"`
	DroppedKeys uint64 `json:"dropped_keys"`
	Discarded   uint64 `json:"discarded"`
	Items       []T    `json:"items"`
}

/**
 * Statistics of one entry
 */
type Item struct {
	RequestCount      uint64       `json:"request_count"`
	BytesIn           uint64       `json:"bytes_in"`
	BytesOut          uint64       `json:"bytes_out"`
	Responses         Responses    `json:"responses"`
	ResponseTime      ResponseTime `json:"response_time"`
	LastUpdateEpochMs uint64       `json:"last_update_epoch_ms"`
}

/**
 * Server zone entry
 */
type ServerItem struct {
	Server string `json:"server"`
	Item
}

/**
 * Upstream zone entry
 */
type UpstreamItem struct {
	Upstream string `json:"upstream"`
	Peer     string `json:"peer"`
	Item
}

/**
 * Responses by status class
 */
type Responses struct {
	Status1xx uint64 `json:"1xx"`
	Status2xx uint64 `json:"2xx"`
	Status3xx uint64 `json:"3xx"`
	Status4xx uint64 `json:"4xx"`
	Status5xx uint64 `json:"5xx"`
	Other     uint64 `json:"other"`
}

/**
 * Response time aggregates, milliseconds
 */
type ResponseTime struct {
	Total uint64 `json:"total"`
	Count uint64 `json:"count"`
	Mean  uint64 `json:"mean"`
	Min   uint64 `json:"min"`
	Max   uint64 `json:"max"`
}

/**
 * Builds json document of a report
 */
func NewDocument(r stats.Report) Document {

	doc := Document{
		Version:     Version,
		GeneratedAt: r.GeneratedAt,
		Info: InfoDocument{
			Hostname:      EscapeKey(r.Info.Hostname),
			Version:       EscapeKey(r.Info.Version),
			StartTime:     r.Info.StartTime,
			UptimeSeconds: uint64(r.Uptime().Seconds()),
		},
		Connections:   r.Connections,
		DroppedKeys:   r.DroppedKeys,
		ServerZones:   newZoneDocument(&r.Servers, ServerItems(r.Servers.Records)),
		UpstreamZones: newZoneDocument(&r.Upstreams, UpstreamItems(r.Upstreams.Records)),
	}

	return doc
}

/**
 * Server zone items
 */
func ServerItems(records []stats.Record[core.ServerKey]) []ServerItem {
	result := make([]ServerItem, 0, len(records))
	for _, rec := range records {
		result = append(result, ServerItem{
			Server: EscapeKey(rec.Key.Name),
			Item:   newItem(rec.Entry),
		})
	}
	return result
}

/**
 * Upstream zone items
 */
func UpstreamItems(records []stats.Record[core.UpstreamKey]) []UpstreamItem {
	result := make([]UpstreamItem, 0, len(records))
	for _, rec := range records {
		result = append(result, UpstreamItem{
			Upstream: EscapeKey(rec.Key.Upstream),
			Peer:     EscapeKey(rec.Key.Peer),
			Item:     newItem(rec.Entry),
		})
	}
	return result
}

func newZoneDocument[K stats.StatKey[K], T any](z *stats.ZoneReport[K], items []T) ZoneDocument[T] {
	return ZoneDocument[T]{
		Enabled:     z.Enabled,
		Capacity:    z.Capacity,
		Entries:     len(z.Records),
		Events:      z.Counters.Events,
		DroppedKeys: z.Counters.Dropped,
		Discarded:   z.Counters.Discarded,
		Items:       items,
	}
}

func newItem(e stats.Entry) Item {
	return Item{
		RequestCount: e.Requests,
		BytesIn:      e.BytesIn,
		BytesOut:     e.BytesOut,
		Responses: Responses{
			Status1xx: e.Bucket(core.Status1xx),
			Status2xx: e.Bucket(core.Status2xx),
			Status3xx: e.Bucket(core.Status3xx),
			Status4xx: e.Bucket(core.Status4xx),
			Status5xx: e.Bucket(core.Status5xx),
			Other:     e.Bucket(core.StatusOther),
		},
		ResponseTime: ResponseTime{
			Total: e.ResponseTimeTotal,
			Count: e.ResponseTimeCount,
			Mean:  e.Mean(),
			Min:   e.Min(),
			Max:   e.Max(),
		},
		LastUpdateEpochMs: e.LastUpdateEpochMs,
	}
}

func renderJSON(r stats.Report) ([]byte, error) {
	b, err := json.MarshalIndent(NewDocument(r), "", "    ")
	if err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	return b, nil
}
