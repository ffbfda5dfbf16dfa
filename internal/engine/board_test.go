package engine

import "testing"

func countMarks(b Board) int {
	n := 0
	for r := range [3]int{} {
		for c := range [3]int{} {
			if b[r][c] != None {
				n++
			}
		}
	}
	return n
}

func TestMaterialize_EmptyLog(t *testing.T) {
	board := Materialize(MoveLog{})
	if board != (Board{}) {
		t.Errorf("Materialize(empty) got = %v, want all-empty board", board)
	}
}

func TestMaterialize_OneCellPerMove(t *testing.T) {
	for n := 0; n <= 9; n++ {
		log := alternatingLog(n)
		board := Materialize(log)

		if got := countMarks(board); got != n {
			t.Errorf("Materialize(log of %d) non-empty cells got = %d, want %d", n, got, n)
		}
		for _, mv := range log {
			if got := board.At(mv.Row, mv.Col); got != mv.Mark {
				t.Errorf("cell (%d,%d) got = %v, want %v", mv.Row, mv.Col, got, mv.Mark)
			}
		}
	}
}

func TestMaterialize_Idempotent(t *testing.T) {
	log := alternatingLog(5)
	first := Materialize(log)
	second := Materialize(log)
	if first != second {
		t.Errorf("Materialize() not idempotent: %v vs %v", first, second)
	}
}

func TestMaterialize_FreshGridPerCall(t *testing.T) {
	log := alternatingLog(3)
	board := Materialize(log)
	board[2][2] = MarkO

	again := Materialize(log)
	if again[2][2] != None {
		t.Errorf("Materialize() returned an aliased grid: cell (2,2) got = %v, want empty", again[2][2])
	}
}

func TestBoardIsFull(t *testing.T) {
	tests := []struct {
		name  string
		board Board
		want  bool
	}{
		{
			name:  "Empty board is not full",
			board: Board{},
			want:  false,
		},
		{
			name: "Partial board is not full",
			board: Board{
				{MarkX, None, None},
				{None, MarkO, None},
				{None, None, None},
			},
			want: false,
		},
		{
			name: "Full board is full",
			board: Board{
				{MarkX, MarkO, MarkX},
				{MarkX, MarkO, MarkO},
				{MarkO, MarkX, MarkX},
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.board.IsFull(); got != tt.want {
				t.Errorf("IsFull() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoardCells(t *testing.T) {
	board := Materialize(alternatingLog(2))
	cells := board.Cells()

	if len(cells) != 3 {
		t.Fatalf("Cells() rows got = %d, want 3", len(cells))
	}
	for r := range cells {
		if len(cells[r]) != 3 {
			t.Fatalf("Cells() row %d length got = %d, want 3", r, len(cells[r]))
		}
		for c := range cells[r] {
			if cells[r][c] != board[r][c] {
				t.Errorf("Cells()[%d][%d] got = %v, want %v", r, c, cells[r][c], board[r][c])
			}
		}
	}
}
