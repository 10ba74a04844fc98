package core

/**
 * event.go - request completion events
 */

/**
 * Server zone event, one per finished request
 */
type ServerEvent struct {
	Server string `json:"server"`
	Status int    `json:"status"`

	/* Bytes received from the client */
	BytesIn uint64 `json:"bytes_in"`

	/* Bytes sent to the client */
	BytesOut uint64 `json:"bytes_out"`

	/* Total request lifetime, milliseconds */
	ResponseTime uint64 `json:"response_time_ms"`
}

/**
 * Upstream zone event, only when an upstream was used
 */
type UpstreamEvent struct {
	Upstream string `json:"upstream"`
	Peer     string `json:"peer"`
	Status   int    `json:"status"`

	/* Bytes sent to the peer */
	BytesSent uint64 `json:"bytes_sent"`

	/* Bytes received from the peer */
	BytesReceived uint64 `json:"bytes_received"`

	/* Time spent waiting on the peer, milliseconds */
	ResponseTime uint64 `json:"upstream_response_time_ms"`
}
