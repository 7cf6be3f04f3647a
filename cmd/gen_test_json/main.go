package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"shogi/internal/shogi"
)

// TestCase is one position from a random playout with its legal moves, for
// cross-checking other move generators.
type TestCase struct {
	SFEN       string   `json:"sfen"`
	InCheck    bool     `json:"in_check"`
	LegalMoves []string `json:"legal_moves"`
	Perft2     int      `json:"perft2,omitempty"`
}

func main() {
	numGames := flag.Int("games", 10, "random games to play")
	maxMoves := flag.Int("maxmoves", 300, "max plies per game")
	perft := flag.Bool("perft", false, "also record perft(2) for each position")
	out := flag.String("out", "movegen_test_data.json", "output file")
	flag.Parse()

	var testCases []TestCase
	for g := 0; g < *numGames; g++ {
		pos := shogi.NewInitialPosition()
		for ply := 0; ply < *maxMoves; ply++ {
			legal := pos.GenerateLegalMoves()
			tc := TestCase{
				SFEN:       pos.Encode(),
				InCheck:    pos.IsInCheck(pos.SideToMove),
				LegalMoves: lo.Map(legal, func(m shogi.Move, _ int) string { return m.String() }),
			}
			if *perft {
				tc.Perft2 = pos.Perft(2)
			}
			testCases = append(testCases, tc)
			if len(legal) == 0 {
				break
			}
			if err := pos.Apply(legal[frand.Intn(len(legal))]); err != nil {
				fmt.Fprintf(os.Stderr, "game %d ply %d: %v\n", g, ply, err)
				break
			}
		}
	}

	data, err := json.MarshalIndent(testCases, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Generated %d test cases from %d random games to %s\n", len(testCases), *numGames, *out)
}
