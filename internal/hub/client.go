package hub

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"ticboard/internal/engine"
	"ticboard/internal/events"
	"ticboard/internal/validator"
	"ticboard/internal/view"
	"ticboard/pkg/proto"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Connection is an interface that abstracts the websocket connection.
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

// Client is one connected watcher of a session.
type Client struct {
	conn Connection
	mu   sync.Mutex
}

func (c *Client) write(msg *proto.ServerToClientMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Attach adds a connection to a session as a watching client, sends it the
// current snapshot, and starts pumping its messages.
func (h *Hub) Attach(ctx context.Context, id string, conn Connection) error {
	ctx, span := tracer.Start(ctx, "hub.Attach", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()

	ls, err := h.get(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Could not attach to session")
		return err
	}

	client := &Client{conn: conn}
	ls.add(client)

	snap := ls.sess.Snapshot()
	tree := view.Render(snap.Board, snap.Outcome, snap.Players, snap.Active)
	if err := client.write(&proto.ServerToClientMessage{
		Type:      "update",
		SessionID: id,
		View:      &tree,
	}); err != nil {
		slog.WarnContext(ctx, "failed to send initial snapshot", "session.id", id, "error", err)
	}

	go h.readPump(ls, client)
	return nil
}

// readPump pumps messages from one client into its session until the
// connection drops.
func (h *Hub) readPump(ls *liveSession, client *Client) {
	defer func() {
		h.detach(ls, client)
		client.conn.Close()
		slog.Info("client detached", "session.id", ls.sess.ID)
	}()

	for {
		_, raw, err := client.conn.ReadMessage()
		if err != nil {
			slog.Warn("client connection error", "session.id", ls.sess.ID, "error", err)
			return
		}
		h.handleMessage(ls, client, raw)
	}
}

// handleMessage validates and dispatches one client message. Rejections go
// back to the sender only; successful updates reach every client through
// the session's subscriber.
func (h *Hub) handleMessage(ls *liveSession, client *Client, raw []byte) {
	ctx := context.Background()
	ctx, span := tracer.Start(ctx, "hub.handleMessage", trace.WithAttributes(
		attribute.String("session.id", ls.sess.ID),
	))
	defer span.End()

	var msg proto.ClientToServerMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		slog.ErrorContext(ctx, "error unmarshalling message", "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Error unmarshalling message")
		h.reject(client, "malformed message")
		return
	}

	if err := validator.GetValidator().Struct(msg); err != nil {
		slog.WarnContext(ctx, "invalid message from client", "session.id", ls.sess.ID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid message format")
		h.reject(client, "invalid message")
		return
	}

	span.SetAttributes(attribute.String("message.type", msg.Type))

	switch msg.Type {
	case proto.TypeMove:
		if len(msg.Position) != 2 {
			h.reject(client, "move requires a position")
			return
		}
		mark := engine.Mark(msg.Mark)
		if mark == engine.None {
			// Hot-seat clients submit for whoever is up.
			mark = ls.sess.Snapshot().Active
		}
		mv := engine.Move{Row: msg.Position[0], Col: msg.Position[1], Mark: mark}
		if _, err := ls.sess.Apply(ctx, mv); err != nil {
			span.RecordError(err)
			h.reject(client, err.Error())
		}

	case proto.TypeRename:
		if msg.Mark == "" || msg.Name == "" {
			h.reject(client, "rename requires a mark and a name")
			return
		}
		ls.sess.Rename(ctx, engine.Mark(msg.Mark), msg.Name)

	case proto.TypeRestart:
		ls.sess.Restart(ctx)
		h.publishEvent(ctx, events.TypeSessionRestarted, events.SessionRestartedPayload{SessionID: ls.sess.ID})
	}
}

func (h *Hub) reject(client *Client, reason string) {
	if err := client.write(&proto.ServerToClientMessage{Type: "error", Reason: reason}); err != nil {
		slog.Warn("failed to send rejection", "error", err)
	}
}
