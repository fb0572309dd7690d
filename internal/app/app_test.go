package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type fakeServer struct {
	startErr error
	stopped  atomic.Bool
}

func (s *fakeServer) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *fakeServer) Stop(ctx context.Context) error {
	s.stopped.Store(true)
	return nil
}

func TestRunStopsServersOnCancel(t *testing.T) {
	a, b := &fakeServer{}, &fakeServer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- NewApp(a, b).Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	if !a.stopped.Load() || !b.stopped.Load() {
		t.Error("expected every server to be stopped")
	}
}

func TestRunReturnsStartError(t *testing.T) {
	boom := errors.New("bind: address already in use")
	healthy := &fakeServer{}

	err := NewApp(healthy, &fakeServer{startErr: boom}).Run(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected start error, got %v", err)
	}
	if !healthy.stopped.Load() {
		t.Error("healthy server should be stopped when a sibling fails")
	}
}
