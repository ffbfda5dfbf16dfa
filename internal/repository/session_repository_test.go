package repository

import (
	"context"
	"testing"
	"ticboard/internal/engine"
	"ticboard/internal/session"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) SessionRepository {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewSessionRepository(rdb, time.Hour)
}

func TestSessionRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	st := session.State{
		Log: engine.MoveLog{
			{Row: 1, Col: 1, Mark: engine.MarkO},
			{Row: 0, Col: 0, Mark: engine.MarkX},
		},
		Players: engine.NewRegistry().Rename(engine.MarkX, "Ada"),
	}
	require.NoError(t, repo.Save(ctx, "s1", st))

	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, st.Log, got.Log)
	assert.Equal(t, "Ada", got.Players.Name(engine.MarkX))

	// The loaded log re-derives the same board.
	assert.Equal(t, engine.Materialize(st.Log), engine.Materialize(got.Log))
}

func TestSessionRepository_FindMissing(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.FindByID(context.Background(), "nope")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	first := session.NewState()
	require.NoError(t, repo.Save(ctx, "s1", first))

	second := session.State{
		Log:     first.Log.Record(engine.Move{Row: 2, Col: 2, Mark: engine.MarkX}),
		Players: first.Players,
	}
	require.NoError(t, repo.Save(ctx, "s1", second))

	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Log, 1)
	assert.Equal(t, engine.MarkX, got.Log[0].Mark)
}

func TestSessionRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	require.NoError(t, repo.Save(ctx, "s1", session.NewState()))
	require.NoError(t, repo.Delete(ctx, "s1"))

	_, err := repo.FindByID(ctx, "s1")
	require.ErrorIs(t, err, ErrSessionNotFound)
}
