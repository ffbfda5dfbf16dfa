package proto

import "ticboard/internal/view"

// Client message types.
const (
	TypeMove    = "move"
	TypeRename  = "rename"
	TypeRestart = "restart"
)

// ClientToServerMessage represents a message from the client to the server.
type ClientToServerMessage struct {
	Type     string `json:"type" validate:"required,oneof=move rename restart"`
	Position []int  `json:"position,omitempty" validate:"omitempty,len=2,dive,min=0,max=2"`
	Mark     string `json:"mark,omitempty" validate:"omitempty,oneof=X O"`
	Name     string `json:"name,omitempty" validate:"omitempty,min=1,max=32"`
}

// ServerToClientMessage represents a message from the server to the client.
// Every successful update carries the full re-derived render tree; errors
// carry a reason instead.
type ServerToClientMessage struct {
	Type      string     `json:"type"`
	SessionID string     `json:"session_id,omitempty"`
	Reason    string     `json:"reason,omitempty"`
	View      *view.Tree `json:"view,omitempty"`
}
