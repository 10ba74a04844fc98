package balance

import (
	"fmt"
	"math/rand"
	"net"
	"sync"
	"testing"

	"github.com/vtsd/vtsd/core"
)

type dummyContext struct {
	ip   net.IP
	port int
}

func (d dummyContext) String() string {
	return fmt.Sprintf("%v:%v", d.Ip(), d.Port())
}

func (d dummyContext) Ip() net.IP {
	return d.ip
}

func (d dummyContext) Port() int {
	return d.port
}

// Prepare list of backends, for testing purposes they end with .1, .2, .3 etc
func prepareBackends(base string, n int) []*core.Backend {
	backends := make([]*core.Backend, n)

	for i := 0; i < n; i++ {
		backends[i] = &core.Backend{
			Target: core.Target{
				Host: fmt.Sprintf("%s.%d", base, i+1),
				Port: fmt.Sprintf("%d", 1000+i),
			},
			Weight: 1,
		}
	}

	return backends
}

// Prepare random list of clients
func prepareClients(n int) []dummyContext {

	clients := make([]dummyContext, n)

	for i := 0; i < n; i++ {
		clients[i] = dummyContext{
			ip: net.IPv4(byte(rand.Intn(256)), byte(rand.Intn(256)), byte(rand.Intn(256)), byte(rand.Intn(256))),
		}
	}

	return clients
}

func TestNew(t *testing.T) {

	for _, name := range []string{"", "roundrobin", "iphash", "weight"} {
		if _, err := New(name); err != nil {
			t.Error(name, ": ", err)
		}
	}

	if _, err := New("leastconn"); err == nil {
		t.Error("Expected error for unknown balance")
	}
}

func TestEmptyBackends(t *testing.T) {
	for _, b := range []core.Balancer{&RoundrobinBalancer{}, &IphashBalancer{}, &WeightBalancer{}} {
		if _, err := b.Elect(dummyContext{}, nil); err == nil {
			t.Errorf("%T elected from empty list", b)
		}
	}
}

func TestRoundrobinCycles(t *testing.T) {

	balancer := &RoundrobinBalancer{}
	backends := prepareBackends("127.0.0", 3)

	for i := 0; i < 9; i++ {
		b, err := balancer.Elect(dummyContext{}, backends)
		if err != nil {
			t.Fatal(err)
		}
		if b != backends[i%3] {
			t.Error("Step ", i, ": elected ", b)
		}
	}
}

func TestRoundrobinConcurrent(t *testing.T) {

	balancer := &RoundrobinBalancer{}
	backends := prepareBackends("127.0.0", 4)

	var mu sync.Mutex
	hits := map[*core.Backend]int{}

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				b, _ := balancer.Elect(dummyContext{}, backends)
				mu.Lock()
				hits[b]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	for _, b := range backends {
		if hits[b] != 200 {
			t.Error(b, " elected ", hits[b], " times")
		}
	}
}

func TestIphashStable(t *testing.T) {

	balancer := &IphashBalancer{}
	backends := prepareBackends("10.0.0", 5)

	for _, client := range prepareClients(100) {
		first, err := balancer.Elect(client, backends)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 3; i++ {
			if b, _ := balancer.Elect(client, backends); b != first {
				t.Fatal("Client ", client, " moved from ", first, " to ", b)
			}
		}
	}
}

func TestIphashRemovingBackendKeepsOtherClients(t *testing.T) {

	balancer := &IphashBalancer{}
	backends := prepareBackends("10.0.0", 10)
	clients := prepareClients(1000)

	before := map[string]*core.Backend{}
	for _, c := range clients {
		b, _ := balancer.Elect(c, backends)
		before[c.ip.String()] = b
	}

	removed := backends[3]
	rest := append(append([]*core.Backend{}, backends[:3]...), backends[4:]...)

	for _, c := range clients {
		b, _ := balancer.Elect(c, rest)
		if prev := before[c.ip.String()]; prev != removed && prev != b {
			t.Error("Client ", c.ip, " moved from ", prev, " to ", b)
		}
	}
}

func TestWeightOnlyPositiveElected(t *testing.T) {

	balancer := &WeightBalancer{}
	backends := prepareBackends("10.0.0", 3)
	backends[0].Weight = 0
	backends[1].Weight = 1
	backends[2].Weight = 3

	hits := map[*core.Backend]int{}
	for i := 0; i < 4000; i++ {
		b, err := balancer.Elect(dummyContext{}, backends)
		if err != nil {
			t.Fatal(err)
		}
		hits[b]++
	}

	if hits[backends[0]] != 0 {
		t.Error("Zero weight backend elected")
	}

	// 1:3 split, generous bounds
	if hits[backends[2]] < 2*hits[backends[1]] {
		t.Error("Unexpected distribution ", hits[backends[1]], " vs ", hits[backends[2]])
	}
}

func TestWeightAllZero(t *testing.T) {

	balancer := &WeightBalancer{}
	backends := prepareBackends("10.0.0", 2)
	for _, b := range backends {
		b.Weight = 0
	}

	if b, err := balancer.Elect(dummyContext{}, backends); err != nil || b == nil {
		t.Error("Expected election among zero weights: ", err)
	}
}
