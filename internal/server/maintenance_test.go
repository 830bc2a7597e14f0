package server

import (
	"io"
	"log/slog"
	"testing"
)

type countingSweeper struct {
	calls int
}

func (c *countingSweeper) Sweep() int {
	c.calls++
	return 1
}

func TestMaintenanceRunOnce(t *testing.T) {
	a, b := &countingSweeper{}, &countingSweeper{}
	m, err := NewMaintenance(slog.New(slog.NewTextHandler(io.Discard, nil)), map[string]Sweeper{"cache": a, "otp": b})
	if err != nil {
		t.Fatalf("NewMaintenance failed: %v", err)
	}

	m.RunOnce()
	if a.calls != 1 || b.calls != 1 {
		t.Errorf("calls = %d/%d, want 1/1", a.calls, b.calls)
	}

	m.Start()
	m.Stop()
}
