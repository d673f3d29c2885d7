package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_AddJob(t *testing.T) {
	s := New(time.UTC)

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{name: "daily recurring", spec: "5 0 * * *"},
		{name: "monthly email", spec: "0 9 1 * *"},
		{name: "descriptor", spec: "@daily"},
		{name: "seconds field rejected", spec: "0 5 0 * * *", wantErr: true},
		{name: "garbage", spec: "not a spec", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.AddJob(tt.name, tt.spec, func(context.Context) error { return nil })
			if (err != nil) != tt.wantErr {
				t.Errorf("AddJob(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
			}
		})
	}

	if got := s.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestScheduler_NextRunUsesLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		t.Skipf("time zone data unavailable: %v", err)
	}

	s := New(loc)
	if err := s.AddJob("recurring", "5 0 * * *", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s.cron.Start()
	defer s.cron.Stop()

	entries := s.cron.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	next := entries[0].Next.In(loc)
	if next.Hour() != 0 || next.Minute() != 5 {
		t.Errorf("next run = %v, want 00:05 local time", next)
	}
}

func TestScheduler_WrapLogsFailuresAndRuns(t *testing.T) {
	s := New(time.UTC)

	var calls atomic.Int32
	s.wrap("ok", func(ctx context.Context) error {
		calls.Add(1)
		return ctx.Err()
	})()
	s.wrap("failing", func(context.Context) error {
		calls.Add(1)
		return errors.New("boom")
	})()

	if got := calls.Load(); got != 2 {
		t.Errorf("calls = %d, want 2", got)
	}
}

func TestScheduler_RunStopsOnCancel(t *testing.T) {
	s := New(time.UTC)
	if err := s.AddJob("noop", "@hourly", func(context.Context) error { return nil }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}

	if s.ctx.Err() == nil {
		t.Error("expected job context to be cancelled")
	}
}
