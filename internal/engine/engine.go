package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	"shogi/internal/shogi"
)

// Engine runs the sequential alpha-beta search.
type Engine struct {
	Log *logrus.Entry
}

func NewEngine() *Engine {
	return &Engine{Log: logrus.WithField("engine", "alphabeta")}
}

// Search looks cfg.MaxDepth plies ahead of pos. Sente maximizes, Gote
// minimizes. ok is false when the side to move has no legal move; the
// result still carries the mate score in that case. A depth 0 search scores
// pos itself and also returns ok == false, having no line to report.
func (e *Engine) Search(pos *shogi.Position, cfg SearchConfig) (SearchResult, bool) {
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = DefaultDepth
	}
	start := time.Now()
	sc := &SearchContext{}

	res, _ := AlphaBeta(sc, pos, nil, -scoreInf, scoreInf, cfg.MaxDepth, pos.SideToMove == shogi.Sente)
	res.Depth = cfg.MaxDepth
	res.Nodes = sc.Nodes
	res.TimeUsed = time.Since(start)

	e.logger().Infof("search depth: %d, nodes: %d, score: %d, time: %v, pv: %v",
		res.Depth, res.Nodes, res.Score, res.TimeUsed, res.PV)
	return res, len(res.PV) > 0
}

func (e *Engine) logger() *logrus.Entry {
	if e.Log == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return e.Log
}
