package models

// MoveRequest is one cell claim. The mark is optional: when omitted the
// move is recorded for whichever player is active.
type MoveRequest struct {
	Row  int    `json:"row" binding:"min=0,max=2"`
	Col  int    `json:"col" binding:"min=0,max=2"`
	Mark string `json:"mark" binding:"omitempty,oneof=X O"`
}

// RenameRequest changes one player's display name.
type RenameRequest struct {
	Mark string `json:"mark" binding:"required,oneof=X O"`
	Name string `json:"name" binding:"required,min=1,max=32"`
}

// SessionResponse is the REST shape of a derived session snapshot.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	View      any    `json:"view"`
}
