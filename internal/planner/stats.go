package planner

import (
	"sync"
	"time"
)

// Statistics tracks running counters across every plan produced by a
// Planner: totals, per-query-type counts, failures and a running mean
// execution time. It is the only statefulness the planner carries beyond
// the optional PlanCache.
type Statistics struct {
	mu sync.Mutex

	Total        uint64
	SelectCount  uint64
	InsertCount  uint64
	UpdateCount  uint64
	DeleteCount  uint64
	Failed       uint64
	meanSeconds  float64
}

// Record folds one statement's outcome and elapsed time into the running
// statistics.
func (s *Statistics) Record(qt QueryType, elapsed time.Duration, failed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Total++
	switch qt {
	case QuerySelect:
		s.SelectCount++
	case QueryInsert:
		s.InsertCount++
	case QueryUpdate:
		s.UpdateCount++
	case QueryDelete:
		s.DeleteCount++
	}
	if failed {
		s.Failed++
	}

	seconds := elapsed.Seconds()
	s.meanSeconds += (seconds - s.meanSeconds) / float64(s.Total)
}

// Snapshot is a point-in-time copy of Statistics safe to hand to callers.
type Snapshot struct {
	Total             uint64
	SelectCount       uint64
	InsertCount       uint64
	UpdateCount       uint64
	DeleteCount       uint64
	Failed            uint64
	MeanExecSeconds   float64
}

// Snapshot returns a copy of the current counters.
func (s *Statistics) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Total:           s.Total,
		SelectCount:     s.SelectCount,
		InsertCount:     s.InsertCount,
		UpdateCount:     s.UpdateCount,
		DeleteCount:     s.DeleteCount,
		Failed:          s.Failed,
		MeanExecSeconds: s.meanSeconds,
	}
}

// Reset zeroes every counter.
func (s *Statistics) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s = Statistics{}
}
