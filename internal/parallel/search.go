package parallel

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"shogi/internal/engine"
	"shogi/internal/shogi"
)

type workItem struct {
	pos  *shogi.Position
	path []shogi.Move
}

type scoredChild struct {
	pos   *shogi.Position
	path  []shogi.Move
	score int
}

// Searcher runs a best-first expansion over a fixed pool of workers that
// share a work queue, a capped result log and a node counter. Results depend
// on scheduling and are not reproducible between runs.
type Searcher struct {
	params SearchParams
	Log    *logrus.Entry
}

func NewSearcher(params SearchParams) *Searcher {
	return &Searcher{
		params: params.withDefaults(),
		Log:    logrus.WithField("engine", "parallel"),
	}
}

func (s *Searcher) Params() SearchParams { return s.params }

// Search returns the selected line and its score. ok is false when the side
// to move has no legal move or nothing was scored.
func (s *Searcher) Search(pos *shogi.Position) (engine.SearchResult, bool) {
	start := time.Now()
	rootMoves := pos.LegalMoves(pos.SideToMove)
	if len(rootMoves) == 0 {
		return engine.SearchResult{}, false
	}

	queue := newWorkQueue(s.params.QueueSize)
	for _, succ := range rootMoves {
		queue.seed(workItem{pos: succ.Pos, path: []shogi.Move{succ.Move}})
	}
	results := newResultLog(s.params.LogCapacity)
	var nodes atomic.Int64

	var g errgroup.Group
	for i := 0; i < s.params.NumWorkers; i++ {
		id := i
		g.Go(func() error {
			err := s.work(queue, results, &nodes)
			if err != nil {
				s.logger().Warnf("worker %d stopped: %v", id, err)
			} else {
				s.logger().Debugf("worker %d done", id)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		s.logger().Warnf("search finished with failed workers: %v", err)
	}

	line, ok := selectLine(results.snapshot(), s.params.DepthWindow, pos.SideToMove)
	if !ok {
		return engine.SearchResult{}, false
	}
	res := engine.SearchResult{
		PV:       line.Path,
		Score:    line.Score,
		Depth:    len(line.Path),
		Nodes:    nodes.Load(),
		TimeUsed: time.Since(start),
	}
	s.logger().Infof("search depth: %d, nodes: %d, log entries: %d, score: %d, time: %v, pv: %v",
		res.Depth, res.Nodes, results.count(), res.Score, res.TimeUsed, res.PV)
	return res, true
}

func (s *Searcher) work(queue *workQueue, results *resultLog, nodes *atomic.Int64) error {
	idle := time.NewTimer(s.params.IdleTimeout)
	defer idle.Stop()

	for {
		if nodes.Load() > s.params.NodeBudget {
			return nil
		}
		it, ok := queue.pop()
		if !ok {
			idle.Reset(s.params.IdleTimeout)
			select {
			case <-queue.ready:
				continue
			case <-idle.C:
				return nil
			}
		}
		if err := s.expand(it, queue, results, nodes); err != nil {
			return err
		}
	}
}

// expand scores every child of it, logs them and queues the best few.
func (s *Searcher) expand(it workItem, queue *workQueue, results *resultLog, nodes *atomic.Int64) error {
	succ := it.pos.LegalMoves(it.pos.SideToMove)
	if len(succ) == 0 {
		return nil
	}
	children := make([]scoredChild, len(succ))
	for i, sc := range succ {
		path := append(it.path[:len(it.path):len(it.path)], sc.Move)
		score := engine.Evaluate(sc.Pos)
		results.add(Entry{Path: path, Score: score})
		nodes.Add(1)
		children[i] = scoredChild{pos: sc.Pos, path: path, score: score}
	}

	for _, c := range keepBest(children, s.params.KeepBest, it.pos.SideToMove) {
		if err := queue.push(workItem{pos: c.pos, path: c.path}); err != nil {
			return err
		}
	}
	return nil
}

// keepBest returns at most k children, highest scores first when mover is
// Sente and lowest first otherwise.
func keepBest(children []scoredChild, k int, mover shogi.Side) []scoredChild {
	sort.SliceStable(children, func(i, j int) bool {
		if mover == shogi.Sente {
			return children[i].score > children[j].score
		}
		return children[i].score < children[j].score
	})
	if len(children) > k {
		children = children[:k]
	}
	return children
}

// selectLine keeps the entries within window plies of the deepest one and
// picks the lowest score when Gote chooses at the root, else the highest.
func selectLine(entries []Entry, window int, rootSide shogi.Side) (Entry, bool) {
	if len(entries) == 0 {
		return Entry{}, false
	}
	deepest := lo.MaxBy(entries, func(a, b Entry) bool { return len(a.Path) > len(b.Path) })
	minLen := max(0, len(deepest.Path)-window)
	deep := lo.Filter(entries, func(e Entry, _ int) bool { return len(e.Path) >= minLen })

	sort.SliceStable(deep, func(i, j int) bool { return deep[i].Score < deep[j].Score })
	if rootSide == shogi.Gote {
		return deep[0], true
	}
	return deep[len(deep)-1], true
}

func (s *Searcher) logger() *logrus.Entry {
	if s.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return s.Log
}
