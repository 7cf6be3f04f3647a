package parallel

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"shogi/internal/engine"
	"shogi/internal/shogi"
)

func TestResultLogEvictsOldest(t *testing.T) {
	l := newResultLog(3)
	for i := 0; i < 5; i++ {
		l.add(Entry{Score: i})
	}
	if n := l.count(); n != 3 {
		t.Fatalf("count = %d, want 3", n)
	}
	got := l.snapshot()
	want := []int{4, 3, 2}
	for i, e := range got {
		if e.Score != want[i] {
			t.Fatalf("snapshot[%d] = %d, want %d (newest first)", i, e.Score, want[i])
		}
	}
}

func TestResultLogConcurrentAdds(t *testing.T) {
	l := newResultLog(100)
	done := make(chan struct{})
	for w := 0; w < 8; w++ {
		go func() {
			for i := 0; i < 1000; i++ {
				l.add(Entry{Score: i})
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < 8; w++ {
		<-done
	}
	if n := len(l.snapshot()); n != 100 {
		t.Fatalf("snapshot len = %d, want 100", n)
	}
}

func TestKeepBest(t *testing.T) {
	mk := func(scores ...int) []scoredChild {
		out := make([]scoredChild, len(scores))
		for i, s := range scores {
			out[i] = scoredChild{score: s}
		}
		return out
	}
	scoresOf := func(cs []scoredChild) string {
		s := ""
		for _, c := range cs {
			s += fmt.Sprintf("%d ", c.score)
		}
		return s
	}

	got := keepBest(mk(3, 9, -1, 7, 0, 12, 5, 5, 8, 2), 8, shogi.Sente)
	if s := scoresOf(got); s != "12 9 8 7 5 5 3 2 " {
		t.Fatalf("sente keep = %s", s)
	}
	got = keepBest(mk(3, 9, -1, 7, 0, 12, 5, 5, 8, 2), 8, shogi.Gote)
	if s := scoresOf(got); s != "-1 0 2 3 5 5 7 8 " {
		t.Fatalf("gote keep = %s", s)
	}
	got = keepBest(mk(4, 1), 8, shogi.Sente)
	if len(got) != 2 {
		t.Fatalf("short list trimmed to %d", len(got))
	}
}

func TestSelectLine(t *testing.T) {
	m := shogi.NewMovement(shogi.Sq(7, 7), shogi.Sq(7, 6), false)
	path := func(n int) []shogi.Move {
		p := make([]shogi.Move, n)
		for i := range p {
			p[i] = m
		}
		return p
	}
	entries := []Entry{
		{Path: path(6), Score: 4},
		{Path: path(4), Score: -3},
		{Path: path(5), Score: 10},
		{Path: path(3), Score: 99}, // too shallow
		{Path: path(3), Score: -99},
	}

	got, ok := selectLine(entries, 2, shogi.Sente)
	if !ok || got.Score != 10 {
		t.Fatalf("sente pick = %d,%v want 10", got.Score, ok)
	}
	got, ok = selectLine(entries, 2, shogi.Gote)
	if !ok || got.Score != -3 {
		t.Fatalf("gote pick = %d,%v want -3", got.Score, ok)
	}
	got, _ = selectLine(entries, 0, shogi.Gote)
	if got.Score != 4 {
		t.Fatalf("window 0 pick = %d, want 4", got.Score)
	}
	if _, ok := selectLine(nil, 2, shogi.Sente); ok {
		t.Fatalf("empty log selected a line")
	}
}

func smallParams() SearchParams {
	p := DefaultParams()
	p.NodeBudget = 3000
	p.IdleTimeout = 200 * time.Millisecond
	return p
}

func TestSearchReturnsLegalLine(t *testing.T) {
	pos := shogi.NewInitialPosition()
	res, ok := NewSearcher(smallParams()).Search(pos)
	if !ok || len(res.PV) == 0 {
		t.Fatalf("no result")
	}
	if res.Nodes < 3000 {
		t.Fatalf("nodes = %d, want budget reached", res.Nodes)
	}

	// the line replays legally and its score is the evaluation of its end
	cur := pos
	for i, mv := range res.PV {
		legal := false
		for _, m := range cur.GenerateLegalMoves() {
			if m == mv {
				legal = true
				break
			}
		}
		if !legal {
			t.Fatalf("pv[%d] %s is not legal in %s", i, mv, cur)
		}
		next, err := cur.ApplyMove(mv)
		if err != nil {
			t.Fatalf("apply pv[%d] %s: %v", i, mv, err)
		}
		cur = next
	}
	if got := engine.Evaluate(cur); got != res.Score {
		t.Fatalf("score %d, evaluation of pv end %d", res.Score, got)
	}
}

func TestSearchPrefersCapture(t *testing.T) {
	pos, err := shogi.DecodePosition("4k4/7r1/9/9/9/9/9/7R1/4K4 b - 1")
	if err != nil {
		t.Fatal(err)
	}
	// one worker drains the seeded root moves first, so the capture line is
	// always expanded before the budget runs out
	p := smallParams()
	p.DepthWindow = 10
	p.NodeBudget = 2000
	p.NumWorkers = 1
	res, ok := NewSearcher(p).Search(pos)
	if !ok {
		t.Fatalf("no result")
	}
	if res.Score < 45 {
		t.Fatalf("score = %d, want the rook capture to show up", res.Score)
	}
}

func TestSearchMatedRoot(t *testing.T) {
	pos, err := shogi.DecodePosition("4k4/4G4/4P4/9/9/9/9/9/4K4 w - 1")
	if err != nil {
		t.Fatal(err)
	}
	if res, ok := NewSearcher(smallParams()).Search(pos); ok {
		t.Fatalf("mated root returned %v", res.PV)
	}
}

func TestWorkQueueUnboundedFIFO(t *testing.T) {
	q := newWorkQueue(0)
	const n = 1 << 18
	for i := 0; i < n; i++ {
		if err := q.push(workItem{path: make([]shogi.Move, i%7)}); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if q.len() != n {
		t.Fatalf("len = %d, want %d", q.len(), n)
	}
	for i := 0; i < n; i++ {
		it, ok := q.pop()
		if !ok || len(it.path) != i%7 {
			t.Fatalf("pop %d = %v, %v", i, len(it.path), ok)
		}
	}
	if _, ok := q.pop(); ok {
		t.Fatalf("pop from empty queue succeeded")
	}
}

func TestWorkQueueLimit(t *testing.T) {
	q := newWorkQueue(2)
	q.seed(workItem{}, workItem{}, workItem{})
	if q.len() != 3 {
		t.Fatalf("seed len = %d, want 3", q.len())
	}
	if err := q.push(workItem{}); !errors.Is(err, ErrQueueFull) {
		t.Fatalf("push over limit err = %v", err)
	}
	q.pop()
	q.pop()
	if err := q.push(workItem{}); err != nil {
		t.Fatalf("push under limit: %v", err)
	}
}

func TestWorkQueueWakesWaiter(t *testing.T) {
	q := newWorkQueue(0)
	got := make(chan bool, 1)
	go func() {
		select {
		case <-q.ready:
			_, ok := q.pop()
			got <- ok
		case <-time.After(time.Second):
			got <- false
		}
	}()
	if err := q.push(workItem{}); err != nil {
		t.Fatal(err)
	}
	if !<-got {
		t.Fatalf("waiting worker was not woken")
	}
}

func TestSearchSurvivesTinyQueue(t *testing.T) {
	p := smallParams()
	p.QueueSize = 1
	res, ok := NewSearcher(p).Search(shogi.NewInitialPosition())
	if !ok || len(res.PV) == 0 {
		t.Fatalf("no result with a tiny queue")
	}
}

func TestParamsDefaults(t *testing.T) {
	p := SearchParams{DepthWindow: 2}.withDefaults()
	if p != DefaultParams() {
		t.Fatalf("zero params = %+v, want defaults", p)
	}
	// a zero depth window is a valid setting
	if p := (SearchParams{}).withDefaults(); p.DepthWindow != 0 {
		t.Fatalf("depth window = %d, want 0", p.DepthWindow)
	}
	d := DefaultParams()
	if d.NumWorkers != 8 || d.LogCapacity != 100_000 || d.IdleTimeout != time.Second || d.KeepBest != 8 || d.DepthWindow != 2 || d.QueueSize != 0 {
		t.Fatalf("unexpected defaults %+v", d)
	}
}
