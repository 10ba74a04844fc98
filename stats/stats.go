package stats

/**
 * stats.go - statistics entry and its update delta
 */

import (
	"math"

	"github.com/vtsd/vtsd/core"
)

/**
 * Sentinel for response time minimum before the first observation
 */
const unsetMin = math.MaxUint64

/**
 * Counters and extrema of one statistics key
 */
type Entry struct {

	/* Total requests */
	Requests uint64

	/* Received / transmitted bytes, saturating */
	BytesIn  uint64
	BytesOut uint64

	/* Responses by status class, indexed by core.StatusClass */
	Responses [core.StatusClasses]uint64

	/* Response time aggregates, milliseconds */
	ResponseTimeTotal uint64
	ResponseTimeCount uint64
	ResponseTimeMin   uint64
	ResponseTimeMax   uint64

	/* Time of the latest event */
	LastUpdateEpochMs uint64
}

/**
 * Zero entry with extrema unset
 */
func NewEntry() Entry {
	return Entry{ResponseTimeMin: unsetMin}
}

/**
 * Mean response time or 0 if nothing was observed
 */
func (this *Entry) Mean() uint64 {
	if this.ResponseTimeCount == 0 {
		return 0
	}
	return this.ResponseTimeTotal / this.ResponseTimeCount
}

/**
 * Minimum response time or 0 if unset
 */
func (this *Entry) Min() uint64 {
	if this.ResponseTimeCount == 0 {
		return 0
	}
	return this.ResponseTimeMin
}

/**
 * Maximum response time or 0 if unset
 */
func (this *Entry) Max() uint64 {
	return this.ResponseTimeMax
}

/**
 * Responses in the given status class
 */
func (this *Entry) Bucket(class int) uint64 {
	if class < 0 || class >= core.StatusClasses {
		return 0
	}
	return this.Responses[class]
}

/**
 * Mutation of an entry, executed under the entry lock
 */
type UpdateFn func(*Entry)

/**
 * One request worth of changes
 */
type Delta struct {
	Status       int
	BytesIn      uint64
	BytesOut     uint64
	ResponseTime uint64
	Now          uint64
}

/**
 * Apply delta to entry
 */
func (this Delta) Apply(e *Entry) {

	e.Requests = addSat(e.Requests, 1)
	e.BytesIn = addSat(e.BytesIn, this.BytesIn)
	e.BytesOut = addSat(e.BytesOut, this.BytesOut)

	class := core.StatusClass(this.Status)
	e.Responses[class] = addSat(e.Responses[class], 1)

	e.ResponseTimeTotal = addSat(e.ResponseTimeTotal, this.ResponseTime)
	e.ResponseTimeCount = addSat(e.ResponseTimeCount, 1)
	if this.ResponseTime < e.ResponseTimeMin {
		e.ResponseTimeMin = this.ResponseTime
	}
	if this.ResponseTime > e.ResponseTimeMax {
		e.ResponseTimeMax = this.ResponseTime
	}

	e.LastUpdateEpochMs = this.Now
}

/**
 * Add that sticks at MaxUint64 instead of wrapping
 */
func addSat(a, b uint64) uint64 {
	s := a + b
	if s < a {
		return math.MaxUint64
	}
	return s
}
