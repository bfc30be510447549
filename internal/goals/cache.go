package goals

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/2beens/goalpost/internal/progress"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneHour               = 60 * 60
	projectionCacheExpire = oneHour * 6
)

// ProjectionCache keeps rendered projections keyed by a digest of their
// inputs. Appending a checkpoint changes the digest, so stale entries are
// simply never looked up again; the TTL sweeps them out.
type ProjectionCache struct {
	cache *freecache.Cache
}

func NewProjectionCache() *ProjectionCache {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte
	return &ProjectionCache{
		cache: freecache.NewCache(cacheSize),
	}
}

// key digests everything the projection depends on: the checkpoint series,
// the goal targets, the fallback rate and the calendar date of "now".
func (pc *ProjectionCache) key(
	goal *Goal,
	checkpoints []progress.Checkpoint,
	fallbackRate float64,
	now time.Time,
) []byte {
	h := sha1.New()

	var buf [8]byte
	writeFloat := func(v float64) {
		binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}

	binary.BigEndian.PutUint64(buf[:], uint64(goal.ID))
	h.Write(buf[:])
	writeFloat(goal.StartValue)
	writeFloat(goal.TargetValue)
	writeFloat(goal.CurrentValue)
	writeFloat(fallbackRate)
	h.Write([]byte(now.UTC().Format("2006-01-02")))

	for _, c := range checkpoints {
		binary.BigEndian.PutUint64(buf[:], uint64(c.Timestamp.Unix()))
		h.Write(buf[:])
		writeFloat(c.Value)
	}

	return h.Sum(nil)
}

func (pc *ProjectionCache) Get(
	goal *Goal,
	checkpoints []progress.Checkpoint,
	fallbackRate float64,
	now time.Time,
) []byte {
	projectionBytes, err := pc.cache.Get(pc.key(goal, checkpoints, fallbackRate, now))
	if err != nil {
		// freecache returns ErrNotFound for a plain miss
		return nil
	}
	log.Tracef("projection for goal %d found in cache", goal.ID)
	return projectionBytes
}

func (pc *ProjectionCache) Set(
	goal *Goal,
	checkpoints []progress.Checkpoint,
	fallbackRate float64,
	now time.Time,
	projectionBytes []byte,
) {
	if err := pc.cache.Set(pc.key(goal, checkpoints, fallbackRate, now), projectionBytes, projectionCacheExpire); err != nil {
		log.Errorf("failed to set projection cache for goal %d: %s", goal.ID, err)
	}
}

func (pc *ProjectionCache) String() string {
	return fmt.Sprintf("projection cache, entries: %d", pc.cache.EntryCount())
}
