package controller

import (
	"errors"
	"net/http"
	"ticboard/internal/api/models"
	"ticboard/internal/api/response"
	"ticboard/internal/engine"
	"ticboard/internal/hub"
	"ticboard/internal/repository"
	"ticboard/internal/session"
	"ticboard/internal/view"

	"github.com/gin-gonic/gin"
)

// SessionController exposes the game pipeline over REST: one endpoint per
// state-update request, each returning the freshly derived view.
type SessionController struct {
	hub *hub.Hub
}

// NewSessionController creates a new SessionController.
func NewSessionController(h *hub.Hub) *SessionController {
	return &SessionController{hub: h}
}

func sessionResponse(id string, snap session.Snapshot) models.SessionResponse {
	tree := view.Render(snap.Board, snap.Outcome, snap.Players, snap.Active)
	return models.SessionResponse{SessionID: id, View: tree}
}

// Create starts a new game session.
func (sc *SessionController) Create(c *gin.Context) {
	snap, id, err := sc.hub.Create(c.Request.Context())
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.SuccessResponse(c, sessionResponse(id, snap))
}

// Get returns the current derived view of a session.
func (sc *SessionController) Get(c *gin.Context) {
	id := c.Param("id")
	snap, err := sc.hub.Snapshot(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, sessionErrorStatus(err), err.Error())
		return
	}
	response.SuccessResponse(c, sessionResponse(id, snap))
}

// Move records one move on a session.
func (sc *SessionController) Move(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id := c.Param("id")
	mark := engine.Mark(req.Mark)
	if mark == engine.None {
		snap, err := sc.hub.Snapshot(c.Request.Context(), id)
		if err != nil {
			response.ErrorResponse(c, sessionErrorStatus(err), err.Error())
			return
		}
		mark = snap.Active
	}

	snap, err := sc.hub.Apply(c.Request.Context(), id, engine.Move{Row: req.Row, Col: req.Col, Mark: mark})
	if err != nil {
		response.ErrorResponse(c, sessionErrorStatus(err), err.Error())
		return
	}
	response.SuccessResponse(c, sessionResponse(id, snap))
}

// Rename changes a player's display name.
func (sc *SessionController) Rename(c *gin.Context) {
	var req models.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id := c.Param("id")
	snap, err := sc.hub.Rename(c.Request.Context(), id, engine.Mark(req.Mark), req.Name)
	if err != nil {
		response.ErrorResponse(c, sessionErrorStatus(err), err.Error())
		return
	}
	response.SuccessResponse(c, sessionResponse(id, snap))
}

// Restart resets a session to game-start state.
func (sc *SessionController) Restart(c *gin.Context) {
	id := c.Param("id")
	snap, err := sc.hub.Restart(c.Request.Context(), id)
	if err != nil {
		response.ErrorResponse(c, sessionErrorStatus(err), err.Error())
		return
	}
	response.SuccessResponse(c, sessionResponse(id, snap))
}

func sessionErrorStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrCellOccupied),
		errors.Is(err, session.ErrNotYourTurn),
		errors.Is(err, session.ErrGameOver):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
