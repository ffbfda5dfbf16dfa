package engine

// Board is the derived 3x3 grid of current cell contents. A board only
// exists as the return value of Materialize; nothing in this package keeps
// one between calls.
type Board [3][3]Mark

// Materialize replays the log onto a blank grid and returns it by value.
// Replay order does not matter while the log holds at most one move per
// coordinate. Mutating the result cannot be observed through any prior or
// later board.
func Materialize(l MoveLog) Board {
	var board Board
	for _, mv := range l {
		board[mv.Row][mv.Col] = mv.Mark
	}
	return board
}

// At returns the cell content at the given coordinate.
func (b Board) At(row, col int) Mark {
	return b[row][col]
}

// IsFull reports whether every cell carries a mark.
func (b Board) IsFull() bool {
	for r := range [3]int{} {
		for c := range [3]int{} {
			if b[r][c] == None {
				return false
			}
		}
	}
	return true
}

// Cells converts the board to a row-major slice of slices, for consumers
// that want to range over it without knowing the fixed dimensions.
func (b Board) Cells() [][]Mark {
	cells := make([][]Mark, 3)
	for r := range [3]int{} {
		cells[r] = make([]Mark, 3)
		for c := range [3]int{} {
			cells[r][c] = b[r][c]
		}
	}
	return cells
}
