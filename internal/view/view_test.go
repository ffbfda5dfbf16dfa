package view

import (
	"testing"
	"ticboard/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_InProgress(t *testing.T) {
	log := engine.MoveLog{}.Record(engine.Move{Row: 1, Col: 1, Mark: engine.MarkX})
	board := engine.Materialize(log)
	players := engine.NewRegistry()

	tree := Render(board, engine.Evaluate(board, players), players, engine.ActivePlayer(log))

	require.Len(t, tree.Cells, 9)
	assert.Equal(t, engine.StatusInProgress, tree.Status)
	assert.Equal(t, engine.MarkO, tree.Active)
	assert.Equal(t, "Player 2's turn", tree.StatusLine)

	// Keys come from coordinates, and occupied cells are not playable.
	center := tree.Cells[4]
	assert.Equal(t, "1-1", center.Key)
	assert.Equal(t, engine.MarkX, center.Mark)
	assert.False(t, center.Playable)
	assert.True(t, tree.Cells[0].Playable)
}

func TestRender_Won(t *testing.T) {
	board := engine.Board{
		{engine.MarkX, engine.MarkX, engine.MarkX},
		{engine.None, engine.MarkO, engine.None},
		{engine.MarkO, engine.None, engine.None},
	}
	players := engine.NewRegistry().Rename(engine.MarkX, "Ada")

	tree := Render(board, engine.Evaluate(board, players), players, engine.MarkO)

	assert.Equal(t, engine.StatusWon, tree.Status)
	assert.Equal(t, "Ada wins!", tree.StatusLine)
	assert.Equal(t, engine.None, tree.Active, "no active player once finished")
	for _, cell := range tree.Cells {
		assert.False(t, cell.Playable, "cell %s playable after game over", cell.Key)
	}
}

func TestRender_Draw(t *testing.T) {
	board := engine.Board{
		{engine.MarkX, engine.MarkO, engine.MarkX},
		{engine.MarkX, engine.MarkO, engine.MarkO},
		{engine.MarkO, engine.MarkX, engine.MarkX},
	}
	players := engine.NewRegistry()

	tree := Render(board, engine.Evaluate(board, players), players, engine.MarkO)

	assert.Equal(t, engine.StatusDraw, tree.Status)
	assert.Equal(t, "It's a draw!", tree.StatusLine)
}

func TestRender_Pure(t *testing.T) {
	board := engine.Board{}
	players := engine.NewRegistry()
	first := Render(board, engine.Evaluate(board, players), players, engine.MarkX)
	second := Render(board, engine.Evaluate(board, players), players, engine.MarkX)
	assert.Equal(t, first, second)
}
