package usi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"lukechampine.com/frand"

	"shogi/internal/engine"
	"shogi/internal/parallel"
	"shogi/internal/shogi"
)

const (
	EngineAlphaBeta = "alphabeta"
	EngineParallel  = "parallel"
)

// Engine holds the state of one USI session.
type Engine struct {
	pos *shogi.Position

	kind    string
	depth   int
	nodes   int64
	threads int
}

func CreateEngine() *Engine {
	p := parallel.DefaultParams()
	return &Engine{
		kind:    EngineAlphaBeta,
		depth:   engine.DefaultDepth,
		nodes:   p.NodeBudget,
		threads: p.NumWorkers,
	}
}

// Serve reads commands from r until "quit" or EOF, answering on w.
func Serve(r io.Reader, w io.Writer) error {
	eng := CreateEngine()
	ctx := CreateCmdCtx(w)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd := strings.TrimSpace(scanner.Text())
		if cmd == "" {
			continue
		}
		eng.ExecCommand(ctx, cmd)
		if cmd == "quit" {
			logrus.Infof("engine quit")
			return nil
		}
	}
	return scanner.Err()
}

func (e *Engine) ExecCommand(ctx *CmdCtx, cmdStr string) {
	logrus.Infof("cmd: %s", cmdStr)
	cmdParam := strings.SplitN(cmdStr, " ", 2)
	args := ""
	if len(cmdParam) > 1 {
		args = cmdParam[1]
	}
	switch cmdParam[0] {
	case "usi":
		e.usi(ctx)
	case "isready":
		ctx.fPrintln("readyok")
	case "setoption":
		e.setOption(args)
	case "usinewgame", "gameover":
		e.pos = nil
	case "position":
		e.position(args)
	case "go":
		e.goThink(ctx, args)
	case "quit":
	default:
		logrus.Warnf("unknown command: %s", cmdStr)
	}
}

func (e *Engine) usi(ctx *CmdCtx) {
	ctx.fPrintln("id name Shogi Core 1.0")
	ctx.fPrintln("id author shogi developers")
	ctx.fPrintln("option name Engine type combo default " + EngineAlphaBeta + " var " + EngineAlphaBeta + " var " + EngineParallel)
	ctx.fPrintln(fmt.Sprintf("option name Depth type spin default %d min 1 max 16", engine.DefaultDepth))
	ctx.fPrintln(fmt.Sprintf("option name Nodes type spin default %d min 1 max 100000000", parallel.DefaultParams().NodeBudget))
	ctx.fPrintln(fmt.Sprintf("option name Threads type spin default %d min 1 max 256", parallel.DefaultParams().NumWorkers))
	ctx.fPrintln("usiok")
}

// setOption handles "name <id> value <x>".
func (e *Engine) setOption(args string) {
	fields := strings.Fields(args)
	if len(fields) != 4 || fields[0] != "name" || fields[2] != "value" {
		logrus.Warnf("malformed setoption: %q", args)
		return
	}
	name, value := fields[1], fields[3]
	switch strings.ToLower(name) {
	case "engine":
		if value != EngineAlphaBeta && value != EngineParallel {
			logrus.Warnf("unknown engine %q", value)
			return
		}
		e.kind = value
	case "depth":
		if n, ok := positiveInt(value); ok {
			e.depth = n
		}
	case "nodes":
		if n, ok := positiveInt(value); ok {
			e.nodes = int64(n)
		}
	case "threads":
		if n, ok := positiveInt(value); ok {
			e.threads = n
		}
	default:
		logrus.Warnf("unknown option %q", name)
	}
}

func positiveInt(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		logrus.Warnf("bad option value %q", s)
		return 0, false
	}
	return n, true
}

func (e *Engine) position(positionStr string) {
	pos, err := parsePosition(positionStr)
	if err != nil {
		logrus.Errorf("parse position failure, position: %s, err: %v", positionStr, err)
	}
	e.pos = pos
}

// parsePosition handles "startpos [moves ...]" and
// "sfen <board> <turn> <hands> [<counter>] [moves ...]".
func parsePosition(positionStr string) (*shogi.Position, error) {
	parts := strings.Fields(positionStr)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty position command")
	}

	var pos *shogi.Position
	i := 0
	switch parts[0] {
	case "startpos":
		pos = shogi.NewInitialPosition()
		i = 1
	case "sfen":
		end := 1
		for end < len(parts) && parts[end] != "moves" {
			end++
		}
		p, err := shogi.DecodePosition(strings.Join(parts[1:end], " "))
		if err != nil {
			return nil, err
		}
		pos = p
		i = end
	default:
		return nil, fmt.Errorf("unknown position kind %q", parts[0])
	}

	if i == len(parts) {
		return pos, nil
	}
	if parts[i] != "moves" {
		return nil, fmt.Errorf("unexpected %q after position", parts[i])
	}
	for _, text := range parts[i+1:] {
		mv, err := shogi.DecodeMove(text)
		if err != nil {
			return nil, err
		}
		if err := pos.Apply(mv); err != nil {
			return nil, fmt.Errorf("move %s: %w", text, err)
		}
	}
	return pos, nil
}

// goThink searches the current position. Time controls are accepted and
// ignored; "depth" and "nodes" override the options for this search.
func (e *Engine) goThink(ctx *CmdCtx, args string) {
	if e.pos == nil {
		logrus.Errorf("go without a position")
		ctx.fPrintln("bestmove resign")
		return
	}
	depth, nodes := e.depth, e.nodes
	fields := strings.Fields(args)
	for i := 0; i+1 < len(fields); i++ {
		n, err := strconv.Atoi(fields[i+1])
		if err != nil || n < 1 {
			continue
		}
		switch fields[i] {
		case "depth":
			depth = n
		case "nodes":
			nodes = int64(n)
		}
	}

	res, ok := e.search(depth, nodes)
	if ok {
		score := res.Score
		if e.pos.SideToMove == shogi.Gote {
			score = -score
		}
		pv := lo.Map(res.PV, func(m shogi.Move, _ int) string { return m.String() })
		ctx.fPrintln(fmt.Sprintf("info depth %d nodes %d score cp %d pv %s",
			len(res.PV), res.Nodes, score, strings.Join(pv, " ")))
		ctx.fPrintln("bestmove " + res.PV[0].String())
		return
	}

	moves := e.pos.GenerateLegalMoves()
	if len(moves) == 0 {
		ctx.fPrintln("bestmove resign")
		return
	}
	mv := moves[frand.Intn(len(moves))]
	logrus.Warnf("no search result, playing random move %s", mv)
	ctx.fPrintln("bestmove " + mv.String())
}

func (e *Engine) search(depth int, nodes int64) (engine.SearchResult, bool) {
	if e.kind == EngineParallel {
		p := parallel.DefaultParams()
		p.NodeBudget = nodes
		p.NumWorkers = e.threads
		return parallel.NewSearcher(p).Search(e.pos)
	}
	return engine.NewEngine().Search(e.pos, engine.SearchConfig{MaxDepth: depth})
}

type CmdCtx struct {
	output io.Writer
}

func CreateCmdCtx(writer io.Writer) *CmdCtx {
	return &CmdCtx{writer}
}

func (ctx *CmdCtx) fPrintln(a ...interface{}) {
	logrus.Infof("usi: %v", a)
	_, err := fmt.Fprintln(ctx.output, a...)
	if err != nil {
		logrus.Errorf("output write failure. %v, err=%v", a, err)
	}
}
