package engine

// Status is the derived result class of a board.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

// Coordinate is a (row, col) pair on the board.
type Coordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Line is one winning triple of board coordinates.
type Line [3]Coordinate

// WinningLines are the 8 fixed triples that constitute a win: three rows,
// three columns, two diagonals, in that order. Evaluate scans the whole
// table, so on a board with two complete lines the later entry wins.
var WinningLines = [8]Line{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Outcome is the derived result of a board. It is recomputed from the
// board plus the registry on every query; the winner's display name is
// looked up at evaluation time, never baked in.
type Outcome struct {
	Status     Status `json:"status"`
	Winner     Mark   `json:"winner,omitempty"`
	WinnerName string `json:"winner_name,omitempty"`
}

// Evaluate inspects the board against the winning-line table. A line wins
// when its first cell is non-empty and all three cells are equal. Draw is
// a full board with no complete line. Total over any well-formed board.
func Evaluate(board Board, players Registry) Outcome {
	winner := None
	for _, line := range WinningLines {
		a := board[line[0].Row][line[0].Col]
		b := board[line[1].Row][line[1].Col]
		c := board[line[2].Row][line[2].Col]
		if a != None && a == b && b == c {
			winner = a
		}
	}

	if winner != None {
		return Outcome{
			Status:     StatusWon,
			Winner:     winner,
			WinnerName: players.Name(winner),
		}
	}

	if board.IsFull() {
		return Outcome{Status: StatusDraw}
	}

	return Outcome{Status: StatusInProgress}
}
