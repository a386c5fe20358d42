//////////////////////////////////////////////////////
// uci.go
// line-oriented UCI command dispatch: uci, isready, position, go (incl.
// go perft <n>), stop, quit/exit
// zurichess sources: interface.go Execute/uci/isready/position/go_/stop;
// line-reading loop shape follows treepeck-chego's sibling package
// convention of one small file per protocol concern
//////////////////////////////////////////////////////

package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/seekerror/logw"

	"github.com/Forsinge/Piston/engine"
	"github.com/Forsinge/Piston/fen"
)

// EngineName/EngineAuthor are reported in response to the `uci` command.
const (
	EngineName   = "Piston"
	EngineAuthor = "Forsinge"
)

// Loop reads UCI commands from in, one line at a time, and writes replies
// to out, until a `quit` or `exit` command is read or in reaches EOF. ctx
// is threaded through to every search so a cancelled context stops an
// in-flight `go` the same way `stop` does.
type Loop struct {
	state *engine.SearchState
	pos   engine.Position
	tc    *engine.TimeControl

	// moves is the Loop's own move table, used only to resolve `position
	// ... moves ...` and never touched by a running search's goroutine:
	// that search allocates its own private table, so the two can never
	// race over the same MoveTable.
	moves *engine.MoveTable

	out io.Writer

	// DefaultMoveTime is the soft search budget a bare `go` (no explicit
	// movetime) uses. Zero means engine.DefaultMoveTimeMS.
	DefaultMoveTime time.Duration
}

// NewLoop builds a Loop around the given SearchState, starting at the
// standard chess position.
func NewLoop(state *engine.SearchState, out io.Writer) *Loop {
	startpos, err := fen.Parse(fen.StartPos)
	if err != nil {
		panic(err) // fen.StartPos is a constant; a parse failure is a bug
	}
	return &Loop{state: state, pos: startpos, moves: engine.NewMoveTable(), out: out}
}

// Run drains in line by line until quit/exit or EOF.
func (l *Loop) Run(ctx context.Context, in io.Reader) {
	scan := bufio.NewScanner(in)
	scan.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		logw.Infof(ctx, "uci <- %s", line)
		if l.dispatch(ctx, line) {
			return
		}
	}
	if err := scan.Err(); err != nil {
		logw.Errorf(ctx, "uci: reading stdin: %v", err)
	}
}

// dispatch handles a single command line, returning true if the loop
// should exit.
func (l *Loop) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "uci":
		l.cmdUCI()
	case "isready":
		l.printf("readyok\n")
	case "ucinewgame":
		l.cmdUCINewGame()
	case "position":
		l.cmdPosition(args)
	case "go":
		l.cmdGo(ctx, args)
	case "stop":
		if l.tc != nil {
			l.tc.Stop()
		}
	case "setoption":
		l.cmdSetOption(args)
	case "quit", "exit":
		if l.tc != nil {
			l.tc.Stop()
		}
		return true
	default:
		logw.Warnf(ctx, "uci: unhandled command %q", cmd)
	}
	return false
}

func (l *Loop) printf(format string, a ...interface{}) {
	fmt.Fprintf(l.out, format, a...)
}

func (l *Loop) cmdUCI() {
	l.printf("id name %s\n", EngineName)
	l.printf("id author %s\n", EngineAuthor)
	l.printf("option name Hash type spin default %d min 1 max 268435456\n", engine.DefaultTTEntries)
	l.printf("uciok\n")
}

func (l *Loop) cmdUCINewGame() {
	if !l.state.NewGameGeneration() {
		l.printf("info string ucinewgame ignored: search in progress\n")
	}
}

// cmdPosition parses `position startpos [moves ...]` or
// `position fen <6 tokens> [moves ...]`.
func (l *Loop) cmdPosition(args []string) {
	if len(args) == 0 {
		return
	}

	i := 0
	switch args[0] {
	case "startpos":
		p, err := fen.Parse(fen.StartPos)
		if err != nil {
			panic(err)
		}
		l.pos = p
		i = 1
	case "fen":
		if len(args) < 7 {
			return
		}
		p, err := fen.Parse(strings.Join(args[1:7], " "))
		if err != nil {
			return
		}
		l.pos = p
		i = 7
	default:
		return
	}

	if i < len(args) && args[i] == "moves" {
		for _, uciMove := range args[i+1:] {
			m, ok := findMove(&l.pos, l.moves, uciMove)
			if !ok {
				return
			}
			l.pos = engine.MakeMove(&l.pos, m)
		}
	}
}

// findMove matches a long-algebraic UCI move string against the
// position's legal moves: Move.UCI() renders a candidate and the first
// legal move whose rendering matches wins.
func findMove(pos *engine.Position, table *engine.MoveTable, uciMove string) (engine.Move, bool) {
	for _, m := range engine.GenerateMoves(pos, table) {
		if m.UCI() == uciMove {
			return m, true
		}
	}
	return engine.NoMove, false
}

// cmdGo runs `go perft <n>` to completion on the loop's own goroutine, so
// no further command is read until its counts are written; anything else
// starts an iterative-deepening search on a background goroutine, under
// the soft move-time limit named by `movetime` or, absent that, the
// engine's default.
func (l *Loop) cmdGo(ctx context.Context, args []string) {
	if len(args) >= 2 && args[0] == "perft" {
		depth, err := strconv.Atoi(args[1])
		if err != nil {
			return
		}
		l.runPerft(depth)
		return
	}

	moveTime := l.DefaultMoveTime
	if moveTime <= 0 {
		moveTime = time.Duration(engine.DefaultMoveTimeMS) * time.Millisecond
	}
	for i := 0; i < len(args); i++ {
		if args[i] == "movetime" && i+1 < len(args) {
			i++
			ms, err := strconv.Atoi(args[i])
			if err == nil {
				moveTime = time.Duration(ms) * time.Millisecond
			}
		}
	}

	if !l.state.TryAcquire() {
		l.printf("info string A search is already in progress!\n")
		return
	}

	l.tc = engine.NewTimeControl(moveTime)
	go l.runSearch(ctx, l.tc)
}

func (l *Loop) runSearch(ctx context.Context, tc *engine.TimeControl) {
	defer l.state.Release()

	start := time.Now()
	root := l.pos
	result := engine.Search(ctx, l.state, &root, tc, engine.MaxPly, func(r engine.Result) {
		l.printf("info score cp %d nodes %d time %d depth %d pv %s\n",
			r.Score, r.Stats.Nodes, time.Since(start).Milliseconds(), r.Depth, r.BestMove.UCI())
	})

	best := "0000"
	if result.BestMove != engine.NoMove {
		best = result.BestMove.UCI()
	}
	l.printf("bestmove %s\n", best)
}

// runPerft reports per-root-move divide counts followed by the total, the
// conventional `go perft` console output.
func (l *Loop) runPerft(depth int) {
	table := engine.NewMoveTable()
	entries, total := engine.PerftDivide(&l.pos, depth, table)
	for _, e := range entries {
		l.printf("%s: %d\n", e.Move.UCI(), e.Nodes)
	}
	l.printf("\nNodes searched: %d\n", total)
}

// cmdSetOption recognizes `setoption name Hash value <n>`, reallocating
// the transposition table to the requested size in entries. Unknown
// options are accepted and ignored, per UCI convention.
func (l *Loop) cmdSetOption(args []string) {
	name, value, ok := parseSetOption(args)
	if !ok {
		return
	}
	if strings.EqualFold(name, "Hash") {
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return
		}
		if !l.state.ResizeTT(n) {
			l.printf("info string Hash resize ignored: search in progress\n")
		}
	}
}

// parseSetOption splits `name <words...> value <words...>` into its name
// and value parts; UCI option names may contain spaces.
func parseSetOption(args []string) (name, value string, ok bool) {
	var nameWords, valueWords []string
	dest := &nameWords
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "name":
			dest = &nameWords
		case "value":
			dest = &valueWords
		default:
			*dest = append(*dest, args[i])
		}
	}
	if len(nameWords) == 0 {
		return "", "", false
	}
	return strings.Join(nameWords, " "), strings.Join(valueWords, " "), true
}
