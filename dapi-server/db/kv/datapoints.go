package kv

import (
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
)

// Datapoint returns the datapoint stored under id, or nil if none was written.
// Read-only transactions are served from the cache when possible.
func (t *transaction) Datapoint(id [32]byte) (*primitives.Datapoint, error) {
	cache := t.store.datapointCache
	if !t.writable && cache != nil {
		if v, ok := cache.Get(id); ok {
			if dp, ok := v.(*primitives.Datapoint); ok {
				datapointCacheHit.Inc()
				return dp.Copy(), nil
			}
		}
		datapointCacheMiss.Inc()
	}
	enc := t.tx.Bucket(datapointsBucket).Get(id[:])
	if enc == nil {
		return nil, nil
	}
	dp, err := primitives.UnmarshalDatapoint(enc)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode datapoint %#x", id)
	}
	if !t.writable && cache != nil {
		t.store.cacheDatapoint(t.tx.ID(), id, dp.Copy())
	}
	return dp, nil
}

// SaveDatapoint overwrites the datapoint stored under id.
func (t *transaction) SaveDatapoint(id [32]byte, dp *primitives.Datapoint) error {
	if dp == nil {
		return errors.New("cannot save nil datapoint")
	}
	if err := t.tx.Bucket(datapointsBucket).Put(id[:], dp.Marshal()); err != nil {
		return errors.Wrapf(err, "could not save datapoint %#x", id)
	}
	if t.written == nil {
		t.written = make(map[[32]byte]*primitives.Datapoint)
	}
	t.written[id] = dp.Copy()
	return nil
}
