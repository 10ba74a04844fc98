package stats

/**
 * zone.go - fixed capacity keyed entry table
 *
 * Slots are preallocated once. A key is admitted by reserving the next
 * free slot and registering it in its shard index; registered slots are
 * never removed. Each slot carries its own mutex, so updates of
 * different keys never share a lock.
 */

import (
	"errors"
	"slices"
	"sync"
	"sync/atomic"
)

const (
	/* Bytes of zone budget accounted per entry */
	EntryBudget = 256

	/* Number of index shards, power of two */
	shardCount = 64
	shardMask  = shardCount - 1
)

/**
 * Returned when a new key does not fit into a full zone
 */
var ErrCapacityExceeded = errors.New("zone capacity exceeded")

/**
 * Key constraint for zones
 */
type StatKey[K any] interface {
	comparable
	Hash() uint64
	Compare(K) int
	String() string
}

/**
 * Preallocated storage for one key
 */
type slot[K StatKey[K]] struct {
	mu    sync.Mutex
	key   K
	entry Entry
}

/**
 * Part of the key index
 */
type shard[K StatKey[K]] struct {
	sync.RWMutex
	index map[K]*slot[K]
}

/**
 * Opaque reference to a zone entry
 */
type Handle[K StatKey[K]] struct {
	slot *slot[K]
}

/**
 * Key with a copy of its entry
 */
type Record[K StatKey[K]] struct {
	Key   K
	Entry Entry
}

/**
 * Zone is a bounded table of entries
 */
type Zone[K StatKey[K]] struct {

	/* Zone name, e.g. "server" */
	name string

	/* Preallocated slots, len == capacity */
	arena []slot[K]

	/* Reserved slots */
	used atomic.Int64

	shards [shardCount]shard[K]
}

/**
 * Capacity in entries for a byte budget, at least one
 */
func CapacityFor(size int64) int {
	n := size / EntryBudget
	if n < 1 {
		return 1
	}
	return int(n)
}

/**
 * Creates new zone able to hold capacity entries
 */
func NewZone[K StatKey[K]](name string, capacity int) *Zone[K] {

	if capacity < 1 {
		capacity = 1
	}

	z := &Zone[K]{
		name:  name,
		arena: make([]slot[K], capacity),
	}

	for i := range z.shards {
		z.shards[i].index = make(map[K]*slot[K])
	}

	return z
}

func (this *Zone[K]) Name() string {
	return this.name
}

func (this *Zone[K]) Capacity() int {
	return len(this.arena)
}

/**
 * Number of admitted keys
 */
func (this *Zone[K]) Len() int {
	return int(this.used.Load())
}

/**
 * Returns handle for key, creating a zero entry if absent.
 * Fails with ErrCapacityExceeded for a new key in a full zone
 */
func (this *Zone[K]) GetOrInsert(key K) (Handle[K], error) {

	sh := &this.shards[key.Hash()&shardMask]

	sh.RLock()
	s, ok := sh.index[key]
	sh.RUnlock()

	if ok {
		return Handle[K]{s}, nil
	}

	sh.Lock()
	defer sh.Unlock()

	// lost the race to another writer of the same key
	if s, ok = sh.index[key]; ok {
		return Handle[K]{s}, nil
	}

	i, ok := this.reserve()
	if !ok {
		return Handle[K]{}, ErrCapacityExceeded
	}

	s = &this.arena[i]
	s.key = key
	s.entry = NewEntry()
	sh.index[key] = s

	return Handle[K]{s}, nil
}

/**
 * Reserves next free slot index
 */
func (this *Zone[K]) reserve() (int, bool) {
	for {
		n := this.used.Load()
		if n >= int64(len(this.arena)) {
			return 0, false
		}
		if this.used.CompareAndSwap(n, n+1) {
			return int(n), true
		}
	}
}

/**
 * Applies fn to the entry behind handle under the entry lock
 */
func (this *Zone[K]) Apply(h Handle[K], fn UpdateFn) {
	if h.slot == nil {
		return
	}
	h.slot.mu.Lock()
	fn(&h.slot.entry)
	h.slot.mu.Unlock()
}

/**
 * Copy of the entry for key, if present
 */
func (this *Zone[K]) Lookup(key K) (Entry, bool) {

	sh := &this.shards[key.Hash()&shardMask]

	sh.RLock()
	s, ok := sh.index[key]
	sh.RUnlock()

	if !ok {
		return Entry{}, false
	}

	return s.copy(), true
}

/**
 * Copies every entry out, ordered by key. Each entry is internally
 * consistent; the zone as a whole is not frozen during the walk
 */
func (this *Zone[K]) Snapshot() []Record[K] {

	slots := make([]*slot[K], 0, this.Len())
	for i := range this.shards {
		sh := &this.shards[i]
		sh.RLock()
		for _, s := range sh.index {
			slots = append(slots, s)
		}
		sh.RUnlock()
	}

	result := make([]Record[K], 0, len(slots))
	for _, s := range slots {
		result = append(result, Record[K]{Key: s.key, Entry: s.copy()})
	}

	slices.SortFunc(result, func(a, b Record[K]) int {
		return a.Key.Compare(b.Key)
	})

	return result
}

func (this *slot[K]) copy() Entry {
	this.mu.Lock()
	e := this.entry
	this.mu.Unlock()
	return e
}
