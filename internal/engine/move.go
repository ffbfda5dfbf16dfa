package engine

// Mark represents the mark of a player (X, O) or an empty cell.
type Mark string

const (
	// Cell / player marks
	None  Mark = ""
	MarkX Mark = "X"
	MarkO Mark = "O"

	// FirstMover is the mark that opens every game.
	FirstMover = MarkX

	// Board boundaries
	BorderMin = 0 // First index of the board
	BorderMax = 2 // Last index of the board
)

// Move is one placed mark at one board coordinate. It is created once, by
// the caller, when a player claims an empty cell, and never mutated.
type Move struct {
	Row  int  `json:"row"`
	Col  int  `json:"col"`
	Mark Mark `json:"mark"`
}

// InBounds reports whether the move's coordinate lies on the board.
func (m Move) InBounds() bool {
	return m.Row >= BorderMin && m.Row <= BorderMax && m.Col >= BorderMin && m.Col <= BorderMax
}

// Other returns the opposing mark. Other of None is None.
func (m Mark) Other() Mark {
	switch m {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return None
	}
}
