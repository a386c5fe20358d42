//////////////////////////////////////////////////////
// killers.go
// killer-move table: quiet moves that recently caused a beta cutoff at a
// given ply, tried early at sibling nodes
// zurichess sources: search.go moveStack.killer
//////////////////////////////////////////////////////

package engine

// KillerTable holds, for each ply, the two most recent quiet moves that
// caused a beta cutoff there. Slot 0 is the most recently added.
type KillerTable struct {
	killers [MaxPly][2]Move
}

// NewKillerTable returns an empty killer table.
func NewKillerTable() *KillerTable {
	kt := &KillerTable{}
	kt.Clear()
	return kt
}

// Clear resets every slot to NoMove, the state a fresh table starts in.
// A killer move from one position rarely refutes anything in an unrelated
// one, so each search gets its own table rather than inheriting stale
// entries from the last search.
func (kt *KillerTable) Clear() {
	for ply := range kt.killers {
		kt.killers[ply][0] = NoMove
		kt.killers[ply][1] = NoMove
	}
}

// Get returns the two killer moves recorded at ply.
func (kt *KillerTable) Get(ply int) (Move, Move) {
	return kt.killers[ply][0], kt.killers[ply][1]
}

// Add records m as the newest killer at ply, demoting the previous
// slot-0 killer to slot 1. Duplicate insertion is a no-op.
func (kt *KillerTable) Add(ply int, m Move) {
	if kt.killers[ply][0] == m {
		return
	}
	kt.killers[ply][1] = kt.killers[ply][0]
	kt.killers[ply][0] = m
}
