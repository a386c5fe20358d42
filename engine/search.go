//////////////////////////////////////////////////////
// search.go
// iterative-deepening principal variation search with quiescence, a
// transposition table, killer moves and staged move ordering; cooperative
// cancellation via a stop flag polled at every node
// zurichess sources: search.go searchTree/tryMove/search/Play skeleton,
// atomicFlag/TimeControl, trimmed to the simpler algorithm this engine's
// search specifies (no null-move/LMR/futility/aspiration windows)
//////////////////////////////////////////////////////

package engine

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Score bounds. Loss/Draw are returned, not clamped through alpha-beta, so
// a mate found deep in the tree still compares correctly against a mate
// found shallower: Loss is offset by ply at the call site the same way a
// mate score is conventionally adjusted.
const (
	Loss       int16 = -30000
	Draw       int16 = 0
	Win        int16 = 30000
	sentinelTerminate int16 = 32000 // TERMINATE: not a real score, never stored in the TT
)

// DefaultMoveTimeMS is the soft search time limit used for a bare `go`
// command with no explicit time control.
const DefaultMoveTimeMS = 4000

// TimeControl bounds how long a search may run, simplified to the single
// move-time budget this engine's `go` handling needs.
type TimeControl struct {
	MoveTime time.Duration
	stopped  atomicFlag
}

// NewTimeControl returns a TimeControl with the given soft move-time
// budget (DefaultMoveTimeMS if d is zero).
func NewTimeControl(d time.Duration) *TimeControl {
	if d <= 0 {
		d = DefaultMoveTimeMS * time.Millisecond
	}
	return &TimeControl{MoveTime: d}
}

// Stop requests that the search unwind as soon as it next polls.
func (tc *TimeControl) Stop() { tc.stopped.set() }

// Stopped reports whether a stop has been requested.
func (tc *TimeControl) Stopped() bool { return tc.stopped.get() }

// atomicFlag is a bool that can only ever be set, readable without the
// caller holding any lock of its own: the search thread polls it at
// every pvs entry, and a lock this cheap is never worth replacing with
// lock-free tricks.
type atomicFlag struct {
	lock sync.Mutex
	flag bool
}

func (f *atomicFlag) set() {
	f.lock.Lock()
	f.flag = true
	f.lock.Unlock()
}

func (f *atomicFlag) get() bool {
	f.lock.Lock()
	v := f.flag
	f.lock.Unlock()
	return v
}

// trylock provides the SearchState's non-blocking try-lock semantics: fn
// runs under the lock and its bool result is returned directly, so a
// caller that finds the state already busy can decide not to block.
type trylock struct {
	mu sync.Mutex
}

func (t *trylock) tryLock(fn func() bool) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn()
}

// Stats collects per-search counters surfaced in UCI info lines.
type Stats struct {
	Nodes int64
	Depth int
}

// Result is the outcome of a completed (or cancelled) search.
type Result struct {
	BestMove Move
	Score    int16
	Depth    int
	Stats    Stats
}

// SearchState is the process-wide shared state: the transposition table
// is allocated once and reused across searches, surviving between them so
// later searches benefit from earlier ones. The move table and killer
// table are NOT here — each search allocates its own, privately owned by
// the goroutine running it, so a `position`/`setoption`/`ucinewgame`
// handled on the main UCI loop while a search is in flight can never
// race with that search's move generation or killer updates. A single
// mutex guards the fields that remain shared (TT and the running flag);
// the UCI `go` handler takes the lock non-blockingly and rejects a new
// search outright if one is already running, and the commands that would
// otherwise mutate the TT out from under a running search (Hash resize,
// ucinewgame) go through the same lock and refuse while running is set.
type SearchState struct {
	TT *TranspositionTable

	mu      trylock
	running bool
}

// NewSearchState allocates the shared engine state once at startup.
func NewSearchState(ttEntries int) *SearchState {
	return &SearchState{
		TT: NewTranspositionTable(ttEntries),
	}
}

// TryAcquire attempts to mark a search as running, non-blockingly. It
// reports false — and changes nothing — if a search is already in
// progress.
func (s *SearchState) TryAcquire() bool {
	return s.mu.tryLock(func() bool {
		if s.running {
			return false
		}
		s.running = true
		return true
	})
}

// Release marks the search as finished.
func (s *SearchState) Release() {
	s.mu.tryLock(func() bool {
		s.running = false
		return true
	})
}

// ResizeTT reallocates the transposition table to n entries, non-blockingly.
// It reports false — and changes nothing — while a search is running, so
// a `setoption name Hash` handled mid-search can't swap the table out from
// under the goroutine reading and writing it.
func (s *SearchState) ResizeTT(n int) bool {
	return s.mu.tryLock(func() bool {
		if s.running {
			return false
		}
		s.TT = NewTranspositionTable(n)
		return true
	})
}

// NewGameGeneration bumps the TT's age for a fresh game, non-blockingly. It
// reports false and changes nothing while a search is running.
func (s *SearchState) NewGameGeneration() bool {
	return s.mu.tryLock(func() bool {
		if s.running {
			return false
		}
		s.TT.NewGeneration()
		return true
	})
}

// Search runs iterative deepening from depth 1 to maxDepth (MaxPly if
// non-positive) on root, using a background timer goroutine coordinated
// through an errgroup the way the ambient concurrency stack wires
// worker+timer pairs. progress, if non-nil, is called after each
// completed root iteration with the info line's fields.
func Search(ctx context.Context, state *SearchState, root *Position, tc *TimeControl, maxDepth int, progress func(Result)) Result {
	if maxDepth <= 0 || maxDepth > MaxPly {
		maxDepth = MaxPly
	}
	state.TT.NewGeneration()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		timer := time.NewTimer(tc.MoveTime)
		defer timer.Stop()
		select {
		case <-timer.C:
			tc.Stop()
		case <-ctx.Done():
			tc.Stop()
		}
		return nil
	})

	s := &searcher{state: state, tc: tc, stats: Stats{}, moves: NewMoveTable(), killers: NewKillerTable()}
	root.MovePtr = 0

	rootMoves := GenerateMoves(root, s.moves)
	ordered := make([]Move, len(rootMoves))
	copy(ordered, rootMoves)

	var best Result
	for depth := 1; depth <= maxDepth; depth++ {
		bestMove := NoMove
		bestEval := Loss
		terminated := false

		for i, m := range ordered {
			child := MakeMove(root, m)
			child.HalfMove = 1
			raw := s.pvs(&child, -Win, -bestEval, int16(depth-1), 1)
			if raw == sentinelTerminate {
				terminated = true
				break
			}
			eval := -raw
			if i == 0 || eval > bestEval {
				bestEval = eval
				bestMove = m
			}
		}

		if terminated {
			break
		}

		state.TT.Place(root.Key, bestEval, OutcomeExact, int16(depth), bestMove)
		best = Result{BestMove: bestMove, Score: bestEval, Depth: depth, Stats: s.stats}
		if progress != nil {
			progress(best)
		}

		sortRootMoves(root, ordered, state.TT)

		if tc.Stopped() {
			break
		}
	}

	tc.Stop()
	_ = g.Wait()
	return best
}

// sortRootMoves re-sorts the root move list by the evaluation the last
// completed iteration found for each move's resulting position, looked up
// from the TT, descending.
func sortRootMoves(root *Position, moves []Move, tt *TranspositionTable) {
	score := make(map[Move]int16, len(moves))
	for _, m := range moves {
		child := MakeMove(root, m)
		if eval, _, _, _, ok := tt.Probe(child.Key); ok {
			score[m] = -eval
		} else {
			score[m] = Loss
		}
	}
	for i := 1; i < len(moves); i++ {
		j := i
		for j > 0 && score[moves[j-1]] < score[moves[j]] {
			moves[j-1], moves[j] = moves[j], moves[j-1]
			j--
		}
	}
}

// searcher carries the mutable per-search scratch state pvs/quiesce need:
// the shared TT, a move table and killer table private to this search
// (never touched by any other goroutine), and node/cancellation
// bookkeeping.
type searcher struct {
	state   *SearchState
	tc      *TimeControl
	stats   Stats
	moves   *MoveTable
	killers *KillerTable
}

// pvs implements the internal principal-variation search: probe the TT
// for a possible immediate cutoff, build the staged picker, search the
// first move with a full window and every subsequent move with a zero
// window, re-searching on a fail-high that isn't already a zero-window
// search.
func (s *searcher) pvs(pos *Position, alpha, beta, depthLeft int16, ply int) int16 {
	if s.tc.Stopped() {
		return sentinelTerminate
	}
	s.stats.Nodes++

	if depthLeft <= 0 {
		return s.quiesce(pos, alpha, beta, ply)
	}

	ttMove := NoMove
	if storedEval, outcome, storedDepth, refutation, ok := s.state.TT.Probe(pos.Key); ok {
		ttMove = refutation
		if score, cut := ProbeCutoff(storedEval, outcome, storedDepth, alpha, beta, depthLeft); cut {
			return score
		}
	}

	kingSq := pos.KingSquare(true)
	occNoKing := pos.All &^ BITS[kingSq]
	enemyAttacks := AttacksBy(pos, false, occNoKing)

	legalMoves := GenerateMoves(pos, s.moves)
	if len(legalMoves) == 0 {
		if enemyAttacks.Has(kingSq) {
			return Loss + int16(ply)
		}
		return Draw
	}

	k1, k2 := s.killers.Get(ply)
	picker := NewMovePicker(pos, legalMoves, ttMove, k1, k2, enemyAttacks)

	besteval := Loss
	first := true
	var refuteMove Move
	var refuteStage pickerStage

	for {
		m := picker.Next()
		if m == NoMove {
			break
		}

		child := MakeMove(pos, m)
		child.MovePtr = childMovePtr(pos.MovePtr)

		var eval int16
		if first {
			raw := s.pvs(&child, -beta, -alpha, depthLeft-1, ply+1)
			if raw == sentinelTerminate {
				return sentinelTerminate
			}
			eval = -raw
		} else {
			raw := s.pvs(&child, -besteval-1, -besteval, depthLeft-1, ply+1)
			if raw == sentinelTerminate {
				return sentinelTerminate
			}
			eval = -raw
			if eval > besteval && beta-alpha > 1 {
				raw = s.pvs(&child, -beta, -besteval, depthLeft-1, ply+1)
				if raw == sentinelTerminate {
					return sentinelTerminate
				}
				eval = -raw
			}
		}

		if first || eval > besteval {
			besteval = eval
			refuteMove = m
			refuteStage = picker.LastStage()
		}
		first = false

		if besteval >= beta {
			if refuteStage == stageQuiet {
				s.killers.Add(ply, refuteMove)
			}
			s.state.TT.Place(pos.Key, beta, OutcomeLowerBound, depthLeft, refuteMove)
			return beta
		}
	}

	// alpha here is still the window this node was entered with: nothing
	// above narrows it, since the zero-window re-search probes against
	// besteval rather than alpha. Classifying against the entry alpha is
	// what makes besteval > alpha distinguish a pv-node from an all-node.
	outcome := OutcomeUpperBound
	if besteval > alpha {
		outcome = OutcomeExact
	}
	s.state.TT.Place(pos.Key, besteval, outcome, depthLeft, refuteMove)
	return besteval
}

// quiesce extends search beyond the horizon along captures, promotions,
// and check evasions, to avoid misjudging a position mid-exchange.
func (s *searcher) quiesce(pos *Position, alpha, beta int16, ply int) int16 {
	if s.tc.Stopped() {
		return sentinelTerminate
	}
	s.stats.Nodes++

	standing := Eval(pos)
	if standing >= beta {
		return beta
	}
	besteval := alpha
	if standing > besteval {
		besteval = standing
	}

	kingSq := pos.KingSquare(true)
	occNoKing := pos.All &^ BITS[kingSq]
	enemyAttacks := AttacksBy(pos, false, occNoKing)
	inCheck := enemyAttacks.Has(kingSq)

	legalMoves := GenerateMoves(pos, s.moves)
	if len(legalMoves) == 0 {
		if inCheck {
			return Loss + int16(ply)
		}
		return Draw
	}

	var candidates []Move
	if inCheck {
		candidates = legalMoves
	} else {
		for _, m := range legalMoves {
			if isTactical(pos, m) {
				candidates = append(candidates, m)
			}
		}
	}

	for _, m := range candidates {
		child := MakeMove(pos, m)
		child.MovePtr = childMovePtr(pos.MovePtr)

		raw := s.quiesce(&child, -beta, -besteval, ply+1)
		if raw == sentinelTerminate {
			return sentinelTerminate
		}
		eval := -raw
		if eval >= beta {
			return beta
		}
		if eval > besteval {
			besteval = eval
		}
	}
	return besteval
}
