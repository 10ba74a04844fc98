package collector

import (
	"testing"
	"time"

	"github.com/vtsd/vtsd/core"
)

type serverCall struct {
	server            string
	status            int
	bytesIn, bytesOut uint64
	responseTimeMs    uint64
}

type upstreamCall struct {
	upstream, peer string
	status         int
	sent, received uint64
	responseTimeMs uint64
}

/**
 * Recorder remembering every call
 */
type recorder struct {
	servers   []serverCall
	upstreams []upstreamCall
}

func (r *recorder) RecordServerEvent(server string, status int, bytesIn, bytesOut, responseTimeMs uint64) {
	r.servers = append(r.servers, serverCall{server, status, bytesIn, bytesOut, responseTimeMs})
}

func (r *recorder) RecordUpstreamEvent(upstream, peer string, status int, bytesSent, bytesReceived, upstreamResponseTimeMs uint64) {
	r.upstreams = append(r.upstreams, upstreamCall{upstream, peer, status, bytesSent, bytesReceived, upstreamResponseTimeMs})
}

func TestNormalize(t *testing.T) {

	cases := []struct {
		in, fallback, out string
	}{
		{"api", DefaultServerName, "api"},
		{"  api\t", DefaultServerName, "api"},
		{"", DefaultServerName, "_"},
		{"   ", DefaultPeer, "-"},
	}

	for _, c := range cases {
		if got := Normalize(c.in, c.fallback); got != c.out {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.out)
		}
	}
}

func TestResolveStatus(t *testing.T) {

	cases := []struct {
		preferred, fallback, out int
	}{
		{200, 502, 200},
		{0, 502, 502},
		{0, 0, core.StatusNone},
		{-1, 0, core.StatusNone},
	}

	for _, c := range cases {
		if got := ResolveStatus(c.preferred, c.fallback); got != c.out {
			t.Errorf("ResolveStatus(%d, %d) = %d, want %d", c.preferred, c.fallback, got, c.out)
		}
	}
}

func TestRequestWithUpstream(t *testing.T) {

	r := &recorder{}
	c := New(r)

	c.Request(Request{
		Server:                " api ",
		Upstream:              "backend",
		Peer:                  "10.0.0.1:80",
		Status:                0,
		UpstreamStatus:        503,
		BytesIn:               100,
		BytesOut:              200,
		UpstreamBytesSent:     90,
		UpstreamBytesReceived: 180,
		RequestTime:           25 * time.Millisecond,
		UpstreamResponseTime:  20*time.Millisecond + 900*time.Microsecond,
	})

	if len(r.servers) != 1 || len(r.upstreams) != 1 {
		t.Fatal("Calls ", len(r.servers), " ", len(r.upstreams))
	}

	if r.servers[0] != (serverCall{"api", 503, 100, 200, 25}) {
		t.Error("Server call ", r.servers[0])
	}

	if r.upstreams[0] != (upstreamCall{"backend", "10.0.0.1:80", 503, 90, 180, 20}) {
		t.Error("Upstream call ", r.upstreams[0])
	}
}

func TestRequestWithoutUpstream(t *testing.T) {

	r := &recorder{}
	c := New(r)

	c.Request(Request{Server: "", Upstream: "  ", Status: 404})

	if len(r.upstreams) != 0 {
		t.Error("Upstream recorded without upstream")
	}

	if len(r.servers) != 1 || r.servers[0].server != DefaultServerName || r.servers[0].status != 404 {
		t.Error("Server call ", r.servers)
	}
}

func TestUpstreamDefaultsPeer(t *testing.T) {

	r := &recorder{}
	New(r).Upstream(core.UpstreamEvent{Upstream: " backend ", Peer: ""})

	if r.upstreams[0].upstream != "backend" || r.upstreams[0].peer != DefaultPeer {
		t.Error("Upstream call ", r.upstreams[0])
	}
}
