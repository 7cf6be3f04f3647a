package parallel

import "time"

// SearchParams configures a best-first search run.
type SearchParams struct {
	NumWorkers  int
	NodeBudget  int64         // workers stop taking items once this many children are scored
	LogCapacity int           // result log entries kept; the oldest are evicted
	IdleTimeout time.Duration // a worker exits after waiting this long for an item
	KeepBest    int           // children re-queued per expansion
	DepthWindow int           // plies below the deepest line still considered at the end
	QueueSize   int           // cap on queued items; 0 leaves the queue unbounded
}

func DefaultParams() SearchParams {
	return SearchParams{
		NumWorkers:  8,
		NodeBudget:  1_000_000,
		LogCapacity: 100_000,
		IdleTimeout: time.Second,
		KeepBest:    8,
		DepthWindow: 2,
	}
}

// withDefaults fills zero fields from DefaultParams.
func (p SearchParams) withDefaults() SearchParams {
	d := DefaultParams()
	if p.NumWorkers <= 0 {
		p.NumWorkers = d.NumWorkers
	}
	if p.NodeBudget <= 0 {
		p.NodeBudget = d.NodeBudget
	}
	if p.LogCapacity <= 0 {
		p.LogCapacity = d.LogCapacity
	}
	if p.IdleTimeout <= 0 {
		p.IdleTimeout = d.IdleTimeout
	}
	if p.KeepBest <= 0 {
		p.KeepBest = d.KeepBest
	}
	if p.DepthWindow < 0 {
		p.DepthWindow = d.DepthWindow
	}
	if p.QueueSize < 0 {
		p.QueueSize = 0
	}
	return p
}
