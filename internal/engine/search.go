package engine

import (
	"time"

	"shogi/internal/shogi"
)

const (
	// MateScore is the score of a checkmated side to move, negated for the
	// maximizing side.
	MateScore = 29999

	// window bound, comfortably outside every reachable score
	scoreInf = 50000

	DefaultDepth = 5
)

// SearchConfig bounds one search.
type SearchConfig struct {
	MaxDepth int // plies; 0 scores the root only, negative means DefaultDepth
}

// SearchResult is the principal variation and its score (Sente positive).
type SearchResult struct {
	PV       []shogi.Move
	Score    int
	Depth    int
	Nodes    int64
	TimeUsed time.Duration
}

// BestMove returns the first move of the PV.
func (r SearchResult) BestMove() (shogi.Move, bool) {
	if len(r.PV) == 0 {
		return shogi.Move{}, false
	}
	return r.PV[0], true
}

// SearchContext carries the per-search counters. Callers create a fresh one
// for every search.
type SearchContext struct {
	Nodes int64
}

// AlphaBeta is a fail-hard alpha-beta search. path is the line leading to
// pos; children extend it without sharing its backing array.
//
// The returned score is always the final bound of this node. ok is false
// when no child improved the bound, in which case the returned PV is path.
func AlphaBeta(sc *SearchContext, pos *shogi.Position, path []shogi.Move, alpha, beta, maxPly int, maximizing bool) (SearchResult, bool) {
	sc.Nodes++

	succ := pos.LegalMoves(pos.SideToMove)
	if len(succ) == 0 {
		score := MateScore
		if maximizing {
			score = -MateScore
		}
		return SearchResult{PV: path, Score: score}, true
	}
	if len(path) >= maxPly {
		return SearchResult{PV: path, Score: Evaluate(pos)}, true
	}

	var best []shogi.Move
	found := false
	for _, s := range succ {
		line := append(path[:len(path):len(path)], s.Move)
		child, ok := AlphaBeta(sc, s.Pos, line, alpha, beta, maxPly, !maximizing)
		if !ok {
			child.PV = line
		}
		if maximizing {
			if child.Score > alpha {
				alpha = child.Score
				best, found = child.PV, true
			}
		} else {
			if child.Score < beta {
				beta = child.Score
				best, found = child.PV, true
			}
		}
		if alpha >= beta {
			break
		}
	}

	bound := beta
	if maximizing {
		bound = alpha
	}
	if !found {
		return SearchResult{PV: path, Score: bound}, false
	}
	return SearchResult{PV: best, Score: bound}, true
}
