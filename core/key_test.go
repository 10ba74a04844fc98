package core

import (
	"testing"
)

func TestStatusClass(t *testing.T) {

	cases := []struct {
		code  int
		class int
	}{
		{0, StatusOther},
		{99, StatusOther},
		{100, Status1xx},
		{200, Status2xx},
		{204, Status2xx},
		{301, Status3xx},
		{404, Status4xx},
		{499, Status4xx},
		{500, Status5xx},
		{599, Status5xx},
		{600, StatusOther},
		{999, StatusOther},
		{-1, StatusOther},
	}

	for _, c := range cases {
		if got := StatusClass(c.code); got != c.class {
			t.Errorf("StatusClass(%d) = %d, want %d", c.code, got, c.class)
		}
	}
}

func TestUpstreamKeyHashSeparatesParts(t *testing.T) {

	a := UpstreamKey{Upstream: "ab", Peer: "c"}
	b := UpstreamKey{Upstream: "a", Peer: "bc"}

	if a == b {
		t.Fatal("Keys expected to differ")
	}

	if a.Hash() == b.Hash() {
		t.Error("Hash collision on shifted separator")
	}
}

func TestKeysAreExact(t *testing.T) {

	if (ServerKey{"api"}) == (ServerKey{"api "}) {
		t.Error("Trailing space must make a different key")
	}

	if (ServerKey{"api"}).Hash() != (ServerKey{"api"}).Hash() {
		t.Error("Equal keys must hash equally")
	}
}

func TestUpstreamKeyCompare(t *testing.T) {

	a := UpstreamKey{"backend", "10.0.0.1:80"}
	b := UpstreamKey{"backend", "10.0.0.2:80"}
	c := UpstreamKey{"cache", "10.0.0.0:80"}

	if a.Compare(b) >= 0 || b.Compare(c) >= 0 || c.Compare(a) <= 0 {
		t.Error("Unexpected order")
	}

	if a.Compare(a) != 0 {
		t.Error("Key must equal itself")
	}

	if a.String() != "backend/10.0.0.1:80" {
		t.Error("Unexpected string ", a.String())
	}
}
