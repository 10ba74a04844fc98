package stats

import (
	"math"
	"testing"

	"github.com/vtsd/vtsd/core"
)

func TestDeltaBuckets(t *testing.T) {

	e := NewEntry()

	for _, status := range []int{200, 201, 404, 500, 999, 0, 101, 302} {
		Delta{Status: status}.Apply(&e)
	}

	want := [core.StatusClasses]uint64{2, 1, 2, 1, 1, 1}
	if e.Responses != want {
		t.Errorf("Buckets %v, want %v", e.Responses, want)
	}

	if e.Requests != 8 {
		t.Error("Requests ", e.Requests)
	}

	var sum uint64
	for _, v := range e.Responses {
		sum += v
	}
	if sum != e.Requests {
		t.Error("Bucket sum ", sum, " differs from requests ", e.Requests)
	}
}

func TestEntryExtrema(t *testing.T) {

	e := NewEntry()

	if e.Min() != 0 || e.Max() != 0 || e.Mean() != 0 {
		t.Fatal("Fresh entry must report zero response times")
	}

	for _, rt := range []uint64{120, 45, 300} {
		Delta{Status: 200, ResponseTime: rt}.Apply(&e)
	}

	if e.Min() != 45 {
		t.Error("Min ", e.Min())
	}
	if e.Max() != 300 {
		t.Error("Max ", e.Max())
	}
	if e.ResponseTimeTotal != 465 || e.ResponseTimeCount != 3 {
		t.Error("Total ", e.ResponseTimeTotal, " count ", e.ResponseTimeCount)
	}
	if e.Mean() != 155 {
		t.Error("Mean ", e.Mean())
	}
}

func TestZeroResponseTimeSetsMin(t *testing.T) {

	e := NewEntry()
	Delta{Status: 200, ResponseTime: 0}.Apply(&e)

	if e.ResponseTimeMin != 0 || e.Min() != 0 {
		t.Error("Min ", e.ResponseTimeMin)
	}
	if e.ResponseTimeCount != 1 {
		t.Error("Count ", e.ResponseTimeCount)
	}
}

func TestDeltaSaturates(t *testing.T) {

	e := NewEntry()
	e.BytesIn = math.MaxUint64 - 10
	e.ResponseTimeTotal = math.MaxUint64 - 1

	Delta{Status: 200, BytesIn: 100, ResponseTime: 5}.Apply(&e)

	if e.BytesIn != math.MaxUint64 {
		t.Error("BytesIn wrapped: ", e.BytesIn)
	}
	if e.ResponseTimeTotal != math.MaxUint64 {
		t.Error("Total wrapped: ", e.ResponseTimeTotal)
	}

	Delta{Status: 200, BytesIn: 1}.Apply(&e)
	if e.BytesIn != math.MaxUint64 {
		t.Error("Saturated counter moved: ", e.BytesIn)
	}
}

func TestDeltaLastUpdate(t *testing.T) {

	e := NewEntry()
	Delta{Status: 200, Now: 1000}.Apply(&e)
	Delta{Status: 200, Now: 2500}.Apply(&e)

	if e.LastUpdateEpochMs != 2500 {
		t.Error("LastUpdateEpochMs ", e.LastUpdateEpochMs)
	}
}

func TestBucketOutOfRange(t *testing.T) {
	e := NewEntry()
	if e.Bucket(-1) != 0 || e.Bucket(core.StatusClasses) != 0 {
		t.Error("Out of range bucket must read as zero")
	}
}
