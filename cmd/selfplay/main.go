package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"shogi/internal/engine"
	"shogi/internal/parallel"
	"shogi/internal/shogi"
)

type player struct {
	name   string
	search func(pos *shogi.Position) (engine.SearchResult, bool)
}

func main() {
	abDepth := flag.Int("ab-depth", 3, "alpha-beta search depth")
	nodes := flag.Int64("nodes", 20000, "parallel search node budget")
	workers := flag.Int("workers", 8, "parallel search workers")
	totalGames := flag.Int("games", 2, "number of games to play")
	maxMoves := flag.Int("maxmoves", 200, "max plies per game")
	flag.Parse()

	e := engine.NewEngine()
	ab := player{
		name: fmt.Sprintf("alpha-beta (depth %d)", *abDepth),
		search: func(pos *shogi.Position) (engine.SearchResult, bool) {
			return e.Search(pos, engine.SearchConfig{MaxDepth: *abDepth})
		},
	}
	params := parallel.DefaultParams()
	params.NodeBudget = *nodes
	params.NumWorkers = *workers
	searcher := parallel.NewSearcher(params)
	pbf := player{
		name:   fmt.Sprintf("parallel (%d nodes)", *nodes),
		search: searcher.Search,
	}

	wins := map[string]int{}
	for g := 0; g < *totalGames; g++ {
		sente, gote := ab, pbf
		if g%2 == 1 {
			sente, gote = pbf, ab
		}
		fmt.Printf("\n=== Game %d: sente [%s] vs gote [%s] ===\n", g+1, sente.name, gote.name)
		switch playGame(sente, gote, *maxMoves) {
		case shogi.Sente:
			wins[sente.name]++
			fmt.Printf("Result: %s wins\n", sente.name)
		case shogi.Gote:
			wins[gote.name]++
			fmt.Printf("Result: %s wins\n", gote.name)
		default:
			wins["draw"]++
			fmt.Println("Result: draw")
		}
	}

	fmt.Printf("\n=== Final Score ===\n")
	fmt.Printf("%s: %d\n", ab.name, wins[ab.name])
	fmt.Printf("%s: %d\n", pbf.name, wins[pbf.name])
	fmt.Printf("draws: %d\n", wins["draw"])
}

// playGame returns the winning side, or NoSide when the ply limit is reached.
func playGame(sente, gote player, maxMoves int) shogi.Side {
	pos := shogi.NewInitialPosition()
	for i := 0; i < maxMoves; i++ {
		p := sente
		if pos.SideToMove == shogi.Gote {
			p = gote
		}

		start := time.Now()
		res, ok := p.search(pos)
		best, has := res.BestMove()
		if !ok || !has {
			// no move: side to move loses
			return pos.SideToMove.Opponent()
		}
		took := time.Since(start)
		logrus.Infof("%3d %s %-6s score=%d nodes=%d time=%v", i+1, pos.SideToMove, best, res.Score, res.Nodes, took)

		if err := pos.Apply(best); err != nil {
			logrus.Errorf("engine %s played %s: %v", p.name, best, err)
			return pos.SideToMove.Opponent()
		}
		if !pos.KingExists(shogi.Sente) {
			return shogi.Gote
		}
		if !pos.KingExists(shogi.Gote) {
			return shogi.Sente
		}
	}
	return shogi.NoSide
}
