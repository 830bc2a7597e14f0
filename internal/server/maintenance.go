package server

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Sweeper drops expired in-memory state and reports how much it removed.
type Sweeper interface {
	Sweep() int
}

// Maintenance runs hourly sweeps over in-memory state.
type Maintenance struct {
	cron     *cron.Cron
	sweepers map[string]Sweeper
	logger   *slog.Logger
}

// NewMaintenance schedules an hourly sweep of every named sweeper.
func NewMaintenance(logger *slog.Logger, sweepers map[string]Sweeper) (*Maintenance, error) {
	m := &Maintenance{
		cron:     cron.New(),
		sweepers: sweepers,
		logger:   logger,
	}
	if _, err := m.cron.AddFunc("@hourly", m.RunOnce); err != nil {
		return nil, err
	}
	return m, nil
}

// RunOnce sweeps every registered sweeper now.
func (m *Maintenance) RunOnce() {
	for name, s := range m.sweepers {
		if removed := s.Sweep(); removed > 0 {
			m.logger.Debug("Swept expired entries", "target", name, "removed", removed)
		}
	}
}

// Start begins the schedule in its own goroutine.
func (m *Maintenance) Start() {
	m.cron.Start()
}

// Stop halts the schedule and waits for a running sweep to finish.
func (m *Maintenance) Stop() {
	<-m.cron.Stop().Done()
}
