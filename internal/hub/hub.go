package hub

import (
	"context"
	"log/slog"
	"sync"
	"ticboard/internal/engine"
	"ticboard/internal/events"
	"ticboard/internal/repository"
	"ticboard/internal/session"
	"ticboard/internal/view"
	"ticboard/pkg/proto"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("hub")

// Hub owns every live session and fans derived snapshots out to the
// clients watching it. A session is one shared screen: all attached
// clients see the same board, and any of them may submit the active
// player's move.
type Hub struct {
	mu       sync.Mutex
	sessions map[string]*liveSession

	repo repository.SessionRepository
	rdb  *redis.Client
}

// NewHub creates a new hub.
func NewHub(repo repository.SessionRepository, rdb *redis.Client) *Hub {
	return &Hub{
		sessions: make(map[string]*liveSession),
		repo:     repo,
		rdb:      rdb,
	}
}

// liveSession pairs a session controller with the clients watching it.
type liveSession struct {
	sess *session.Session

	mu      sync.Mutex
	clients map[*Client]struct{}
}

func (ls *liveSession) add(c *Client) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.clients[c] = struct{}{}
}

// detach removes a client from its session. When the last watcher leaves,
// the live session is dropped from the hub; a finished game is also
// deleted from the repository, while in-progress state stays there until
// its TTL lapses so a returning client can revive it.
func (h *Hub) detach(ls *liveSession, c *Client) {
	h.mu.Lock()
	ls.mu.Lock()
	delete(ls.clients, c)
	empty := len(ls.clients) == 0
	if empty {
		delete(h.sessions, ls.sess.ID)
	}
	ls.mu.Unlock()
	h.mu.Unlock()

	if !empty {
		return
	}

	ctx := context.Background()
	if ls.sess.Snapshot().Outcome.Status != engine.StatusInProgress {
		if err := h.repo.Delete(ctx, ls.sess.ID); err != nil {
			slog.ErrorContext(ctx, "failed to delete finished session", "session.id", ls.sess.ID, "error", err)
		}
	}
	slog.InfoContext(ctx, "session evicted", "session.id", ls.sess.ID)
}

// broadcast sends a message to every client watching the session.
func (ls *liveSession) broadcast(msg *proto.ServerToClientMessage) {
	ls.mu.Lock()
	clients := make([]*Client, 0, len(ls.clients))
	for c := range ls.clients {
		clients = append(clients, c)
	}
	ls.mu.Unlock()

	for _, c := range clients {
		if err := c.write(msg); err != nil {
			slog.Warn("error writing message to client", "session.id", ls.sess.ID, "error", err)
		}
	}
}

// Create mints a new session at game-start state, persists it and
// announces it on the events channel.
func (h *Hub) Create(ctx context.Context) (session.Snapshot, string, error) {
	ctx, span := tracer.Start(ctx, "hub.Create")
	defer span.End()

	id := uuid.New().String()
	span.SetAttributes(attribute.String("session.id", id))

	ls := h.adopt(session.New(id))

	if err := h.repo.Save(ctx, id, ls.sess.State()); err != nil {
		return session.Snapshot{}, "", err
	}
	snap := ls.sess.Snapshot()

	h.publishEvent(ctx, events.TypeSessionStarted, events.SessionStartedPayload{SessionID: id})
	slog.InfoContext(ctx, "session created", "session.id", id)

	return snap, id, nil
}

// adopt registers a session with the hub and wires the hub in as its
// subscriber, so every published snapshot is persisted and broadcast.
func (h *Hub) adopt(s *session.Session) *liveSession {
	ls := &liveSession{
		sess:    s,
		clients: make(map[*Client]struct{}),
	}
	s.Subscribe(func(snap session.Snapshot) {
		h.onUpdate(s.ID, ls, snap)
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	// A concurrent caller may have adopted the same id first.
	if existing, ok := h.sessions[s.ID]; ok {
		return existing
	}
	h.sessions[s.ID] = ls
	return ls
}

// get returns the live session, reviving it from the repository when the
// hub does not hold it in memory.
func (h *Hub) get(ctx context.Context, id string) (*liveSession, error) {
	h.mu.Lock()
	ls, ok := h.sessions[id]
	h.mu.Unlock()
	if ok {
		return ls, nil
	}

	st, err := h.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return h.adopt(session.Restore(id, st)), nil
}

// onUpdate runs on every snapshot a session publishes: persist the new
// state, redraw every watching client, announce terminal outcomes.
func (h *Hub) onUpdate(id string, ls *liveSession, snap session.Snapshot) {
	ctx := context.Background()
	ctx, span := tracer.Start(ctx, "hub.onUpdate", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.String("outcome.status", string(snap.Outcome.Status)),
	))
	defer span.End()

	if err := h.repo.Save(ctx, id, snap.State); err != nil {
		slog.ErrorContext(ctx, "failed to persist session state", "session.id", id, "error", err)
		span.RecordError(err)
	}

	tree := view.Render(snap.Board, snap.Outcome, snap.Players, snap.Active)
	ls.broadcast(&proto.ServerToClientMessage{
		Type:      "update",
		SessionID: id,
		View:      &tree,
	})

	if snap.Outcome.Status != engine.StatusInProgress {
		h.publishEvent(ctx, events.TypeSessionFinished, events.SessionFinishedPayload{
			SessionID:  id,
			Status:     string(snap.Outcome.Status),
			WinnerName: snap.Outcome.WinnerName,
			Moves:      len(snap.Log),
		})
	}
}

// Snapshot derives the current view of a session without changing it.
func (h *Hub) Snapshot(ctx context.Context, id string) (session.Snapshot, error) {
	ls, err := h.get(ctx, id)
	if err != nil {
		return session.Snapshot{}, err
	}
	return ls.sess.Snapshot(), nil
}

// Apply records one move on a session.
func (h *Hub) Apply(ctx context.Context, id string, mv engine.Move) (session.Snapshot, error) {
	ls, err := h.get(ctx, id)
	if err != nil {
		return session.Snapshot{}, err
	}
	return ls.sess.Apply(ctx, mv)
}

// Rename changes a player's display name in a session.
func (h *Hub) Rename(ctx context.Context, id string, mark engine.Mark, name string) (session.Snapshot, error) {
	ls, err := h.get(ctx, id)
	if err != nil {
		return session.Snapshot{}, err
	}
	return ls.sess.Rename(ctx, mark, name), nil
}

// Restart resets a session to game-start state.
func (h *Hub) Restart(ctx context.Context, id string) (session.Snapshot, error) {
	ls, err := h.get(ctx, id)
	if err != nil {
		return session.Snapshot{}, err
	}
	snap := ls.sess.Restart(ctx)
	h.publishEvent(ctx, events.TypeSessionRestarted, events.SessionRestartedPayload{SessionID: id})
	return snap, nil
}

func (h *Hub) publishEvent(ctx context.Context, eventType string, payload any) {
	data, err := events.Marshal(eventType, payload)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal event", "event", eventType, "error", err)
		return
	}
	if err := h.rdb.Publish(ctx, events.EventsChannel, data).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to publish event", "event", eventType, "error", err)
	}
}
