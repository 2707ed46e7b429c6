package planner

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/ampere207/hyper-vault/internal/sqlfront"
)

// Planner ties together plan lowering, the optional plan cache and the
// running query statistics. It holds no reference to the storage engine;
// Validate is called separately by whoever owns the catalog. It accepts a
// logger, mirroring persistence.Open, even though today it only forwards
// it to the cache it's given — the planner is the natural place to log
// future planning-level events alongside the cache's hit/miss lines.
type Planner struct {
	cache *PlanCache
	stats *Statistics
	log   zerolog.Logger
}

// New builds a Planner. Pass a nil cache to disable caching entirely.
func New(cache *PlanCache, log zerolog.Logger) *Planner {
	return &Planner{cache: cache, stats: &Statistics{}, log: log}
}

// Plan lowers sql's already-parsed statement into a Plan, consulting and
// populating the plan cache (if any) by the statement's original source
// text. Cache hits and misses never change the returned Plan's contents.
func (p *Planner) Plan(sql string, stmt sqlfront.Statement) (*Plan, error) {
	if p.cache != nil {
		if cached, ok := p.cache.Get(sql); ok {
			return cached, nil
		}
	}

	plan, err := Lower(stmt)
	if err != nil {
		return nil, err
	}
	if p.cache != nil {
		p.cache.Set(sql, plan)
	}
	return plan, nil
}

// RecordOutcome folds a statement's elapsed execution time and success
// state into the planner's running statistics.
func (p *Planner) RecordOutcome(qt QueryType, elapsed time.Duration, failed bool) {
	p.stats.Record(qt, elapsed, failed)
}

// Stats returns a snapshot of the planner's running statistics.
func (p *Planner) Stats() Snapshot {
	return p.stats.Snapshot()
}

// ResetStats zeroes the planner's running statistics.
func (p *Planner) ResetStats() {
	p.stats.Reset()
}
