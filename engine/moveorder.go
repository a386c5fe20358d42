//////////////////////////////////////////////////////
// moveorder.go
// the staged move picker: a lazy state machine producing one move per
// call, trying the TT move, then killers, then scored tactical and quiet
// moves in priority order
// zurichess sources: search.go moveStack/stack PopMove state machine
//////////////////////////////////////////////////////

package engine

// pickerStage names a state in the picker's lazy state machine.
type pickerStage int

const (
	stageTTMove pickerStage = iota
	stageKiller1
	stageKiller2
	stageGenTactical
	stageHighPrio
	stageGenQuiet
	stageQuiet
	stageLowPrio
	stageEnd
)

// MovePicker lazily produces the legal moves of a position in priority
// order, suspending between stages so a search that cuts off early never
// pays for generating moves it doesn't need. Construct with NewMovePicker
// once legal moves for the node are already in the move table.
type MovePicker struct {
	pos    *Position
	moves  []Move
	stage  pickerStage
	ttMove Move
	killer [2]Move

	enemyAttacks Bitboard // cached attack mask, used by the scoring formulas

	tactical      []Move
	tacticalScore []int

	quiet      []Move
	quietScore []int

	emitted map[Move]bool

	// lastStage records which stage delivered the most recently returned
	// move, so the caller can tell a Quiet-stage cutoff from any other:
	// classifying by delivering stage rather than by the picker's current
	// state, since the TT-move and killer stages advance the state to the
	// next stage before returning their move.
	lastStage pickerStage
}

// NewMovePicker builds a picker over pos's legal moves (already generated
// into moves), seeded with the TT move hint and this ply's killers.
func NewMovePicker(pos *Position, moves []Move, ttMove Move, killer1, killer2 Move, enemyAttacks Bitboard) *MovePicker {
	return &MovePicker{
		pos:          pos,
		moves:        moves,
		stage:        stageTTMove,
		ttMove:       ttMove,
		killer:       [2]Move{killer1, killer2},
		enemyAttacks: enemyAttacks,
		emitted:      make(map[Move]bool, len(moves)),
	}
}

// LastStage reports which stage delivered the most recently returned move.
func (mp *MovePicker) LastStage() pickerStage { return mp.lastStage }

// contains reports whether m is among pos's legal moves this ply.
func (mp *MovePicker) contains(m Move) bool {
	if m == NoMove {
		return false
	}
	for _, cand := range mp.moves {
		if cand == m {
			return true
		}
	}
	return false
}

// Next returns the next move in priority order, or NoMove when exhausted.
func (mp *MovePicker) Next() Move {
	for {
		switch mp.stage {
		case stageTTMove:
			mp.stage = stageKiller1
			if mp.contains(mp.ttMove) && !mp.emitted[mp.ttMove] {
				mp.emitted[mp.ttMove] = true
				mp.lastStage = stageTTMove
				return mp.ttMove
			}

		case stageKiller1:
			mp.stage = stageKiller2
			if mp.contains(mp.killer[0]) && !mp.emitted[mp.killer[0]] {
				mp.emitted[mp.killer[0]] = true
				mp.lastStage = stageKiller1
				return mp.killer[0]
			}

		case stageKiller2:
			mp.stage = stageGenTactical
			if mp.contains(mp.killer[1]) && !mp.emitted[mp.killer[1]] {
				mp.emitted[mp.killer[1]] = true
				mp.lastStage = stageKiller2
				return mp.killer[1]
			}

		case stageGenTactical:
			mp.stage = stageHighPrio
			mp.genTactical()

		case stageHighPrio:
			if m, ok := mp.popBestTactical(0); ok {
				mp.lastStage = stageHighPrio
				return m
			}
			mp.stage = stageGenQuiet

		case stageGenQuiet:
			mp.stage = stageQuiet
			mp.genQuiet()

		case stageQuiet:
			if m, ok := mp.popBestQuiet(); ok {
				mp.lastStage = stageQuiet
				return m
			}
			mp.stage = stageLowPrio

		case stageLowPrio:
			if m, ok := mp.popBestTactical(minInt); ok {
				mp.lastStage = stageLowPrio
				return m
			}
			mp.stage = stageEnd

		case stageEnd:
			return NoMove
		}
	}
}

const minInt = -1 << 31

func (mp *MovePicker) genTactical() {
	for _, m := range mp.moves {
		if mp.emitted[m] {
			continue
		}
		if !isTactical(mp.pos, m) {
			continue
		}
		mp.tactical = append(mp.tactical, m)
		mp.tacticalScore = append(mp.tacticalScore, scoreTactical(mp.pos, m, mp.enemyAttacks))
	}
}

func (mp *MovePicker) genQuiet() {
	for _, m := range mp.moves {
		if mp.emitted[m] {
			continue
		}
		if isTactical(mp.pos, m) {
			continue
		}
		mp.quiet = append(mp.quiet, m)
		mp.quietScore = append(mp.quietScore, scoreQuiet(mp.pos, m, mp.enemyAttacks))
	}
}

// popBestTactical pops the highest-scored remaining tactical move whose
// score is >= minScore, or reports false if none qualifies.
func (mp *MovePicker) popBestTactical(minScore int) (Move, bool) {
	best := -1
	for i, m := range mp.tactical {
		if mp.emitted[m] {
			continue
		}
		if best == -1 || mp.tacticalScore[i] > mp.tacticalScore[best] {
			best = i
		}
	}
	if best == -1 || mp.tacticalScore[best] < minScore {
		return NoMove, false
	}
	m := mp.tactical[best]
	mp.emitted[m] = true
	return m, true
}

func (mp *MovePicker) popBestQuiet() (Move, bool) {
	best := -1
	for i, m := range mp.quiet {
		if mp.emitted[m] {
			continue
		}
		if best == -1 || mp.quietScore[i] > mp.quietScore[best] {
			best = i
		}
	}
	if best == -1 {
		return NoMove, false
	}
	m := mp.quiet[best]
	mp.emitted[m] = true
	return m, true
}

// isTactical reports whether m is a capture, en-passant capture, or
// promotion — the move classes the GenTactical stage scores. Captures are
// detected against pos directly, since Move itself carries no capture
// flag: it packs only origin, target, tier and code.
func isTactical(pos *Position, m Move) bool {
	if m.Code().IsPromotion() || m.Code() == CodeEnPassant {
		return true
	}
	return pos.Enemy.Has(m.Target())
}

func scoreTactical(pos *Position, m Move, enemyAttacks Bitboard) int {
	if m.Code() == CodeEnPassant {
		return int(PieceValue[TierPawn])
	}
	if m.Code().IsPromotion() {
		targetVal := capturedValue(pos, m.Target())
		return int(PieceValue[m.Code().PromotionTier()]) + targetVal
	}
	targetVal := capturedValue(pos, m.Target())
	attackerVal := int(PieceValue[m.Tier()])
	if !enemyAttacks.Has(m.Target()) {
		return targetVal
	}
	if attackerVal <= targetVal {
		return targetVal - attackerVal
	}
	return -1
}

func scoreQuiet(pos *Position, m Move, enemyAttacks Bitboard) int {
	switch m.Code() {
	case CodeDoublePush:
		return 160
	case CodeCastleShort, CodeCastleLong:
		return 400
	}
	attackerVal := int(PieceValue[m.Tier()])
	if enemyAttacks.Has(m.Origin()) {
		return attackerVal
	}
	if !enemyAttacks.Has(m.Target()) && m.Tier() != TierKing {
		return attackerVal / 2
	}
	return 0
}

func capturedValue(pos *Position, target Square) int {
	tier, ok := pos.tierAt(target)
	if !ok {
		return 0
	}
	return int(PieceValue[tier])
}
