package main

import (
	"flag"
	"fmt"
	"os"

	"shogi/internal/shogi"
)

func main() {
	sfen := flag.String("sfen", shogi.StartSFEN, "position to inspect")
	depth := flag.Int("perft", 2, "perft depth")
	flag.Parse()

	pos, err := shogi.DecodePosition(*sfen)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("SFEN:", pos.Encode())
	fmt.Println("Legal moves:", len(pos.GenerateLegalMoves()))
	fmt.Println("In check:", pos.IsInCheck(pos.SideToMove))
	for d := 1; d <= *depth; d++ {
		fmt.Printf("perft(%d) = %d\n", d, pos.Perft(d))
	}
}
