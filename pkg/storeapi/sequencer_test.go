package storeapi

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSequencerCancelsSuperseded(t *testing.T) {
	s := NewSequencer()

	oldCtx, oldTicket := s.Begin(context.Background(), "bills:customer")
	newCtx, newTicket := s.Begin(context.Background(), "bills:customer")

	assert.ErrorIs(t, oldCtx.Err(), context.Canceled)
	assert.NoError(t, newCtx.Err())
	assert.False(t, oldTicket.Current())
	assert.True(t, newTicket.Current())

	newTicket.Done()
	oldTicket.Done()
	assert.False(t, oldTicket.Current())
}

func TestSequencerKeysAreIndependent(t *testing.T) {
	s := NewSequencer()
	ctxA, a := s.Begin(context.Background(), "a")
	_, b := s.Begin(context.Background(), "b")

	assert.NoError(t, ctxA.Err())
	assert.True(t, a.Current())
	assert.True(t, b.Current())
}

func TestSequencerGenerationsAreNotReused(t *testing.T) {
	s := NewSequencer()
	_, first := s.Begin(context.Background(), "k")
	_, second := s.Begin(context.Background(), "k")
	second.Done()

	_, third := s.Begin(context.Background(), "k")
	assert.False(t, first.Current())
	assert.True(t, third.Current())
}

func TestLatestDiscardsStaleResult(t *testing.T) {
	s := NewSequencer()
	started := make(chan struct{})
	release := make(chan struct{})
	staleDone := make(chan error, 1)

	go func() {
		_, err := Latest(context.Background(), s, "view", func(ctx context.Context) (string, error) {
			close(started)
			<-release
			return "stale", nil
		})
		staleDone <- err
	}()

	<-started
	fresh, err := Latest(context.Background(), s, "view", func(ctx context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", fresh)

	close(release)
	assert.True(t, errors.Is(<-staleDone, ErrSuperseded))
}
