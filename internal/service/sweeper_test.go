package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/theater-ticketing/internal/logger"
)

func TestSweeper_Sweep(t *testing.T) {
	l := &mockLedger{}
	s := NewSweeper(l, time.Minute, logger.Discard())

	l.On("ReleaseExpired", mock.Anything, t0).Return(4, nil).Once()
	n, err := s.Sweep(context.Background(), t0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	l.On("ReleaseExpired", mock.Anything, t0).Return(0, errors.New("db error")).Once()
	_, err = s.Sweep(context.Background(), t0)
	assert.Error(t, err)
}

func TestSweeper_StartTicks(t *testing.T) {
	l := &mockLedger{}
	s := NewSweeper(l, 20*time.Millisecond, logger.Discard())
	l.On("ReleaseExpired", mock.Anything, mock.Anything).Return(0, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()
	s.Start(ctx)

	assert.GreaterOrEqual(t, len(l.Calls), 1)
}

func TestSweeper_StartHandlesError(t *testing.T) {
	l := &mockLedger{}
	s := NewSweeper(l, 20*time.Millisecond, logger.Discard())
	l.On("ReleaseExpired", mock.Anything, mock.Anything).Return(0, errors.New("db error"))

	ctx, cancel := context.WithTimeout(context.Background(), 70*time.Millisecond)
	defer cancel()
	s.Start(ctx)

	assert.GreaterOrEqual(t, len(l.Calls), 1)
}

func TestSweeper_StopsOnContextCancel(t *testing.T) {
	s := NewSweeper(&mockLedger{}, time.Second, logger.Discard())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop on context cancel")
	}
}
