package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"ticboard/internal/engine"
	"ticboard/internal/session"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("repository.session")

// ErrSessionNotFound is returned when no state is stored under the id.
var ErrSessionNotFound = errors.New("session not found")

// Redis hash fields. Only the move log and the registry are stored — the
// board is always re-materialized from the log on load, never persisted.
const (
	fieldLog     = "log"
	fieldPlayers = "players"
)

// SessionRepository stores live session state across redraws. Entries
// expire after the configured TTL so nothing outlives an abandoned game.
type SessionRepository interface {
	Save(ctx context.Context, id string, st session.State) error
	FindByID(ctx context.Context, id string) (session.State, error)
	Delete(ctx context.Context, id string) error
}

type redisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSessionRepository creates a new Redis-based SessionRepository.
func NewSessionRepository(rdb *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{rdb: rdb, ttl: ttl}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

// Save writes the session state and refreshes its TTL.
func (r *redisSessionRepository) Save(ctx context.Context, id string, st session.State) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Save")
	defer span.End()

	logJSON, err := json.Marshal(st.Log)
	if err != nil {
		return fmt.Errorf("failed to marshal move log: %w", err)
	}
	playersJSON, err := json.Marshal(st.Players)
	if err != nil {
		return fmt.Errorf("failed to marshal player registry: %w", err)
	}

	key := sessionKey(id)
	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, key, fieldLog, logJSON)
	pipe.HSet(ctx, key, fieldPlayers, playersJSON)
	pipe.Expire(ctx, key, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session in redis: %w", err)
	}
	return nil
}

// FindByID loads a stored session state.
func (r *redisSessionRepository) FindByID(ctx context.Context, id string) (session.State, error) {
	ctx, span := tracer.Start(ctx, "SessionRepository.FindByID")
	defer span.End()

	data, err := r.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return session.State{}, fmt.Errorf("failed to get session state from redis: %w", err)
	}
	if len(data) == 0 {
		return session.State{}, ErrSessionNotFound
	}

	var log engine.MoveLog
	if err := json.Unmarshal([]byte(data[fieldLog]), &log); err != nil {
		return session.State{}, fmt.Errorf("failed to unmarshal move log: %w", err)
	}
	var players engine.Registry
	if err := json.Unmarshal([]byte(data[fieldPlayers]), &players); err != nil {
		return session.State{}, fmt.Errorf("failed to unmarshal player registry: %w", err)
	}

	return session.State{Log: log, Players: players}, nil
}

// Delete removes the session state.
func (r *redisSessionRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "SessionRepository.Delete")
	defer span.End()

	return r.rdb.Del(ctx, sessionKey(id)).Err()
}
