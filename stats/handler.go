package stats

/**
 * handler.go - zone update path shared by both zones
 */

import (
	"github.com/sirupsen/logrus"
	"github.com/vtsd/vtsd/stats/counters"
)

/**
 * Zone together with its counters
 */
type zoneHandler[K StatKey[K]] struct {
	zone     *Zone[K]
	counters counters.Counters
	log      *logrus.Entry
}

func newZoneHandler[K StatKey[K]](zone *Zone[K], log *logrus.Entry) *zoneHandler[K] {
	return &zoneHandler[K]{
		zone: zone,
		log:  log.WithField("zone", zone.Name()),
	}
}

/**
 * Locates or creates the entry for key and applies delta.
 * Capacity exhaustion is absorbed into the dropped counter
 */
func (this *zoneHandler[K]) record(key K, delta Delta) {

	h, err := this.zone.GetOrInsert(key)
	if err != nil {
		if this.counters.Dropped.Add(1) == 1 {
			this.log.Warn("Zone is full (", this.zone.Capacity(), " entries), dropping new key ", key.String())
		} else {
			this.log.Debug("Dropping new key ", key.String())
		}
		return
	}

	this.zone.Apply(h, delta.Apply)
	this.counters.Events.Add(1)
}

/**
 * Zone report
 */
func (this *zoneHandler[K]) report() ZoneReport[K] {
	return ZoneReport[K]{
		Name:     this.zone.Name(),
		Enabled:  true,
		Capacity: this.zone.Capacity(),
		Records:  this.zone.Snapshot(),
		Counters: this.counters.Snapshot(),
	}
}
