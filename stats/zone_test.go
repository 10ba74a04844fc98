package stats

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/vtsd/vtsd/core"
)

func TestCapacityFor(t *testing.T) {

	cases := []struct {
		size     int64
		capacity int
	}{
		{0, 1},
		{-5, 1},
		{EntryBudget - 1, 1},
		{EntryBudget, 1},
		{10 * EntryBudget, 10},
		{1 << 20, (1 << 20) / EntryBudget},
	}

	for _, c := range cases {
		if got := CapacityFor(c.size); got != c.capacity {
			t.Errorf("CapacityFor(%d) = %d, want %d", c.size, got, c.capacity)
		}
	}
}

func TestGetOrInsertReturnsSameEntry(t *testing.T) {

	z := NewZone[core.ServerKey]("server", 4)

	h1, err := z.GetOrInsert(core.ServerKey{Name: "api"})
	if err != nil {
		t.Fatal(err)
	}
	h2, err := z.GetOrInsert(core.ServerKey{Name: "api"})
	if err != nil {
		t.Fatal(err)
	}

	if h1 != h2 {
		t.Error("Same key must resolve to the same handle")
	}

	if z.Len() != 1 {
		t.Error("Len ", z.Len())
	}

	e, ok := z.Lookup(core.ServerKey{Name: "api"})
	if !ok {
		t.Fatal("Key not found")
	}
	if e.Requests != 0 || e.ResponseTimeMin != unsetMin {
		t.Error("New entry is not zero: ", e)
	}
}

func TestZoneCapacityExceeded(t *testing.T) {

	z := NewZone[core.ServerKey]("server", 2)

	for _, name := range []string{"a", "b"} {
		if _, err := z.GetOrInsert(core.ServerKey{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	_, err := z.GetOrInsert(core.ServerKey{Name: "c"})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatal("Expected ErrCapacityExceeded, got ", err)
	}

	// existing keys are still reachable
	if _, err := z.GetOrInsert(core.ServerKey{Name: "a"}); err != nil {
		t.Error("Existing key refused: ", err)
	}

	if _, ok := z.Lookup(core.ServerKey{Name: "c"}); ok {
		t.Error("Refused key must not be present")
	}
}

func TestApplyZeroHandle(t *testing.T) {
	z := NewZone[core.ServerKey]("server", 1)
	z.Apply(Handle[core.ServerKey]{}, func(e *Entry) {
		t.Error("Update called for zero handle")
	})
}

func TestSnapshotOrdered(t *testing.T) {

	z := NewZone[core.UpstreamKey]("upstream", 16)

	keys := []core.UpstreamKey{
		{Upstream: "b", Peer: "2"}, {Upstream: "a", Peer: "9"}, {Upstream: "b", Peer: "1"}, {Upstream: "c", Peer: "0"}, {Upstream: "a", Peer: "1"},
	}

	for _, k := range keys {
		h, err := z.GetOrInsert(k)
		if err != nil {
			t.Fatal(err)
		}
		z.Apply(h, Delta{Status: 200}.Apply)
	}

	snap := z.Snapshot()
	if len(snap) != len(keys) {
		t.Fatal("Snapshot size ", len(snap))
	}

	for i := 1; i < len(snap); i++ {
		if snap[i-1].Key.Compare(snap[i].Key) >= 0 {
			t.Error("Snapshot not ordered at ", i, ": ", snap[i-1].Key, " ", snap[i].Key)
		}
	}

	if snap[0].Key != (core.UpstreamKey{Upstream: "a", Peer: "1"}) {
		t.Error("First key ", snap[0].Key)
	}

	// snapshot is a copy
	snap[0].Entry.Requests = 100
	if e, _ := z.Lookup(snap[0].Key); e.Requests != 1 {
		t.Error("Snapshot aliases zone storage")
	}
}

func TestConcurrentInsertRespectsCapacity(t *testing.T) {

	const capacity = 50
	const writers = 16
	const keys = 200

	z := NewZone[core.ServerKey]("server", capacity)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < keys; i++ {
				if h, err := z.GetOrInsert(core.ServerKey{Name: fmt.Sprint("srv-", i)}); err == nil {
					z.Apply(h, Delta{Status: 200}.Apply)
				}
			}
		}()
	}
	wg.Wait()

	if z.Len() != capacity {
		t.Error("Len ", z.Len(), ", want ", capacity)
	}

	snap := z.Snapshot()
	if len(snap) != capacity {
		t.Error("Snapshot size ", len(snap))
	}

	seen := map[core.ServerKey]bool{}
	for _, r := range snap {
		if seen[r.Key] {
			t.Error("Duplicate key ", r.Key)
		}
		seen[r.Key] = true
	}
}

func TestConcurrentApplySameKey(t *testing.T) {

	const writers = 8
	const events = 1000

	z := NewZone[core.ServerKey]("server", 1)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < events; i++ {
				h, err := z.GetOrInsert(core.ServerKey{Name: "api"})
				if err != nil {
					t.Error(err)
					return
				}
				z.Apply(h, Delta{Status: 200, BytesIn: 2}.Apply)
			}
		}()
	}

	// readers run alongside writers
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			for _, r := range z.Snapshot() {
				if r.Entry.BytesIn != 2*r.Entry.Requests {
					t.Error("Torn entry: ", r.Entry.Requests, " requests, ", r.Entry.BytesIn, " bytes")
					return
				}
			}
		}
	}()

	wg.Wait()
	<-done

	e, _ := z.Lookup(core.ServerKey{Name: "api"})
	if e.Requests != writers*events {
		t.Error("Requests ", e.Requests, ", want ", writers*events)
	}
}
