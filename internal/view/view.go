// Package view turns a derived game snapshot into a declarative render
// tree. The tree is plain data: whatever presentation layer consumes it
// (websocket client, test) decides how to draw it.
package view

import (
	"fmt"
	"ticboard/internal/engine"
)

// Cell is one grid node. Key is derived from the fixed coordinate pair,
// not the cell's position in the list, so identity stays stable across
// re-renders.
type Cell struct {
	Key      string      `json:"key"`
	Row      int         `json:"row"`
	Col      int         `json:"col"`
	Mark     engine.Mark `json:"mark"`
	Playable bool        `json:"playable"`
}

// Tree is the full render output for one snapshot.
type Tree struct {
	Cells      []Cell            `json:"cells"`
	Status     engine.Status     `json:"status"`
	StatusLine string            `json:"status_line"`
	Active     engine.Mark       `json:"active,omitempty"`
	Players    map[string]string `json:"players"`
}

// Render derives the tree from the pipeline outputs. Pure: same inputs,
// same tree.
func Render(board engine.Board, outcome engine.Outcome, players engine.Registry, active engine.Mark) Tree {
	inProgress := outcome.Status == engine.StatusInProgress

	cells := make([]Cell, 0, 9)
	for r, row := range board.Cells() {
		for c, mark := range row {
			cells = append(cells, Cell{
				Key:      fmt.Sprintf("%d-%d", r, c),
				Row:      r,
				Col:      c,
				Mark:     mark,
				Playable: inProgress && mark == engine.None,
			})
		}
	}

	names := map[string]string{
		string(engine.MarkX): players.Name(engine.MarkX),
		string(engine.MarkO): players.Name(engine.MarkO),
	}

	tree := Tree{
		Cells:   cells,
		Status:  outcome.Status,
		Players: names,
	}

	switch outcome.Status {
	case engine.StatusWon:
		tree.StatusLine = fmt.Sprintf("%s wins!", outcome.WinnerName)
	case engine.StatusDraw:
		tree.StatusLine = "It's a draw!"
	default:
		tree.Active = active
		tree.StatusLine = fmt.Sprintf("%s's turn", players.Name(active))
	}

	return tree
}
