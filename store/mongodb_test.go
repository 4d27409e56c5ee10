package store

import (
	"context"
	"testing"
	"time"

	"github.com/ic-coder123/bookverse/config"
	"github.com/ic-coder123/bookverse/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderWithoutURI(t *testing.T) {
	p := NewProvider("", "bookbridge", time.Second)
	assert.False(t, p.Configured())

	db, err := p.Handle(context.Background())
	require.NoError(t, err)
	assert.Nil(t, db)

	db, err = p.Handle(context.Background())
	require.NoError(t, err)
	assert.Nil(t, db)

	assert.NoError(t, p.Close(context.Background()))
}

func TestProviderBadURI(t *testing.T) {
	p := NewProvider("not-a-mongodb-uri", "bookbridge", time.Second)
	assert.True(t, p.Configured())

	db, err := p.Handle(context.Background())
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestMongoStorageUnavailable(t *testing.T) {
	ctx := context.Background()
	s := NewMongoStorage(NewProvider("", "bookbridge", time.Second))

	_, err := s.GetAllBooks(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = s.CreateBook(ctx, models.NewBook{Title: "X"})
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = s.CreateReview(ctx, models.NewReview{BookID: 1, Rating: 5})
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = s.DeleteBook(ctx, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, s.LikeReview(ctx, 1), ErrUnavailable)
	assert.ErrorIs(t, s.UpdateChallengeProgress(ctx, 1, 1, 1), ErrUnavailable)
	_, err = s.JoinChallenge(ctx, 1, 1)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, s.Ping(ctx), ErrUnavailable)
	assert.ErrorIs(t, s.EnsureIndexes(ctx), ErrUnavailable)
	assert.NoError(t, s.Close(ctx))
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, &config.Config{DBName: "bookbridge", MongoTimeout: time.Second}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MemStorage{}, s)

	// Nothing listens on port 1: Open still succeeds and the failure
	// belongs to the first operation.
	s, err = Open(ctx, &config.Config{MongoURI: "mongodb://127.0.0.1:1", DBName: "bookbridge", MongoTimeout: 200 * time.Millisecond}, nil)
	require.NoError(t, err)
	require.IsType(t, &MongoStorage{}, s)

	_, err = s.GetAllBooks(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.False(t, s.(*MongoStorage).indexed)
	assert.Error(t, s.Ping(ctx))
	assert.NoError(t, s.Close(ctx))
}
