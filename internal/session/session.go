package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"ticboard/internal/engine"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("session")

// Contract violations surfaced at the session boundary. The engine below
// this layer assumes well-formed input; these checks keep that assumption
// true.
var (
	ErrOutOfRange   = errors.New("move is off the board")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrGameOver     = errors.New("game is already finished")
)

// State is one immutable snapshot of everything the derivation pipeline
// reads: the move log and the player registry. Updates never modify a
// State in place; they produce a new one.
type State struct {
	Log     engine.MoveLog  `json:"log"`
	Players engine.Registry `json:"players"`
}

// NewState returns the game-start state: empty log, default names.
func NewState() State {
	return State{
		Log:     engine.MoveLog{},
		Players: engine.NewRegistry(),
	}
}

// Snapshot is a State plus everything derived from it in one pipeline
// pass: active player, materialized board and evaluated outcome.
type Snapshot struct {
	State
	Active  engine.Mark    `json:"active"`
	Board   engine.Board   `json:"board"`
	Outcome engine.Outcome `json:"outcome"`
}

// Derive runs the full pipeline over a state.
func Derive(st State) Snapshot {
	board := engine.Materialize(st.Log)
	return Snapshot{
		State:   st,
		Active:  engine.ActivePlayer(st.Log),
		Board:   board,
		Outcome: engine.Evaluate(board, st.Players),
	}
}

// Subscriber receives every snapshot the session publishes after a
// successful update.
type Subscriber func(Snapshot)

// Session owns the current State for one game and is the only writer of
// it. Every update swaps in a whole new State and re-publishes the derived
// snapshot to subscribers; nothing downstream ever sees a half-applied
// update.
type Session struct {
	ID string

	mu    sync.Mutex
	state State
	subs  []Subscriber

	// pubMu is acquired before mu is released on every update, so
	// snapshots reach subscribers in the order they were derived.
	pubMu sync.Mutex
}

// New creates a session at game start.
func New(id string) *Session {
	return &Session{ID: id, state: NewState()}
}

// Restore creates a session around a previously saved state.
func Restore(id string, st State) *Session {
	if st.Log == nil {
		st.Log = engine.MoveLog{}
	}
	if st.Players == nil {
		st.Players = engine.NewRegistry()
	}
	return &Session{ID: id, state: st}
}

// Subscribe registers a subscriber for future snapshots.
func (s *Session) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Snapshot derives the current view without changing anything.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	st := s.state
	s.mu.Unlock()
	return Derive(st)
}

// State returns the current raw state, for persistence.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Apply validates and records one move, returning the freshly derived
// snapshot. The occupied-cell and turn checks live here so the engine's
// no-duplicate-coordinate precondition always holds for logs this session
// owns.
func (s *Session) Apply(ctx context.Context, move engine.Move) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "session.Apply", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.Int("move.row", move.Row),
		attribute.Int("move.col", move.Col),
		attribute.String("move.mark", string(move.Mark)),
	))
	defer span.End()

	if !move.InBounds() {
		return Snapshot{}, ErrOutOfRange
	}

	s.mu.Lock()
	current := Derive(s.state)

	if current.Outcome.Status != engine.StatusInProgress {
		s.mu.Unlock()
		return Snapshot{}, ErrGameOver
	}
	if move.Mark != current.Active {
		s.mu.Unlock()
		return Snapshot{}, ErrNotYourTurn
	}
	if current.Board.At(move.Row, move.Col) != engine.None {
		s.mu.Unlock()
		return Snapshot{}, ErrCellOccupied
	}

	s.state = State{
		Log:     s.state.Log.Record(move),
		Players: s.state.Players,
	}
	next := Derive(s.state)
	subs := append([]Subscriber(nil), s.subs...)
	s.pubMu.Lock()
	s.mu.Unlock()

	slog.InfoContext(ctx, "move applied",
		"session.id", s.ID, "mark", move.Mark, "row", move.Row, "col", move.Col,
		"status", next.Outcome.Status)

	publish(subs, next)
	s.pubMu.Unlock()
	return next, nil
}

// Rename swaps in a registry copy with the mark renamed. Renames are legal
// at any point of the game, including after a result was derived.
func (s *Session) Rename(ctx context.Context, mark engine.Mark, name string) Snapshot {
	_, span := tracer.Start(ctx, "session.Rename", trace.WithAttributes(
		attribute.String("session.id", s.ID),
		attribute.String("player.mark", string(mark)),
	))
	defer span.End()

	s.mu.Lock()
	s.state = State{
		Log:     s.state.Log,
		Players: s.state.Players.Rename(mark, name),
	}
	next := Derive(s.state)
	subs := append([]Subscriber(nil), s.subs...)
	s.pubMu.Lock()
	s.mu.Unlock()

	publish(subs, next)
	s.pubMu.Unlock()
	return next
}

// Restart resets the session to its game-start state: empty move log,
// default display names.
func (s *Session) Restart(ctx context.Context) Snapshot {
	_, span := tracer.Start(ctx, "session.Restart", trace.WithAttributes(
		attribute.String("session.id", s.ID),
	))
	defer span.End()

	s.mu.Lock()
	s.state = NewState()
	next := Derive(s.state)
	subs := append([]Subscriber(nil), s.subs...)
	s.pubMu.Lock()
	s.mu.Unlock()

	slog.InfoContext(ctx, "session restarted", "session.id", s.ID)

	publish(subs, next)
	s.pubMu.Unlock()
	return next
}

func publish(subs []Subscriber, snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
