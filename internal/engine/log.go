package engine

// MoveLog is the ordered history of moves, most recent first. It is the
// sole source of truth for game progress; boards, turns and outcomes are
// always derived from it, never stored alongside it.
//
// The log must never hold two moves at the same coordinate. That contract
// belongs to the caller; Materialize does not re-check it and will simply
// let the move replayed last win the cell.
type MoveLog []Move

// Record returns a new log with the move prepended. The receiver is left
// untouched and is never aliased by the result, so callers holding the
// prior log keep seeing the prior contents.
func (l MoveLog) Record(m Move) MoveLog {
	next := make(MoveLog, 0, len(l)+1)
	next = append(next, m)
	next = append(next, l...)
	return next
}

// ActivePlayer derives whose turn it is from the log alone. An empty log
// belongs to the first mover; otherwise only the head entry matters,
// because the caller records strictly alternating marks.
func ActivePlayer(l MoveLog) Mark {
	if len(l) == 0 {
		return FirstMover
	}
	if l[0].Mark == FirstMover {
		return FirstMover.Other()
	}
	return FirstMover
}
