package ingest

import (
	"sync"
	"time"
)

// ProgressFunc receives an insert snapshot after every finished batch.
// It runs under the stats mutex and must stay light.
type ProgressFunc func(s Snapshot)

// Snapshot is a point-in-time copy of insert progress.
type Snapshot struct {
	Total    int
	Inserted int
	Failed   int
	Percent  float64
	Rate     float64
	ETA      time.Duration
}

// insertStats accumulates batch results across the worker pool.
type insertStats struct {
	mu       sync.Mutex
	total    int
	inserted int
	failed   int
	started  time.Time
	onBatch  ProgressFunc
}

func newInsertStats(total int, onBatch ProgressFunc) *insertStats {
	return &insertStats{
		total:   total,
		started: time.Now(),
		onBatch: onBatch,
	}
}

func (s *insertStats) record(inserted, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inserted += inserted
	s.failed += failed

	if s.onBatch != nil {
		s.onBatch(s.snapshotLocked())
	}
}

func (s *insertStats) snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *insertStats) snapshotLocked() Snapshot {
	done := s.inserted + s.failed

	snap := Snapshot{
		Total:    s.total,
		Inserted: s.inserted,
		Failed:   s.failed,
	}

	if s.total > 0 {
		snap.Percent = float64(done) / float64(s.total) * 100
	}

	elapsed := time.Since(s.started).Seconds()
	if elapsed > 0 && done > 0 {
		snap.Rate = float64(done) / elapsed
		remaining := float64(s.total - done)
		snap.ETA = time.Duration(remaining/snap.Rate) * time.Second
	}

	return snap
}
