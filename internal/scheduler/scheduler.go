// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic backend health probe that feeds the
// readiness endpoint.
package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSchedule probes the backend every 30 seconds.
const DefaultSchedule = "@every 30s"

// probeTimeout bounds a single health check.
const probeTimeout = 5 * time.Second

// Prober checks whether the backend is reachable.
type Prober interface {
	Health(ctx context.Context) error
}

// Status is the result of the most recent probe.
type Status struct {
	Healthy     bool      `json:"healthy"`
	LastChecked time.Time `json:"last_checked"`
	Error       string    `json:"error,omitempty"`
}

// Scheduler handles the scheduled backend health probe.
type Scheduler struct {
	prober   Prober
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
	status   atomic.Pointer[Status]
}

// New creates a new scheduler instance. An empty schedule uses DefaultSchedule.
func New(prober Prober, schedule string, logger *slog.Logger) *Scheduler {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	return &Scheduler{
		prober:   prober,
		schedule: schedule,
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger,
	}
}

// Start runs one probe immediately and then schedules the rest.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		s.Probe(context.Background())
	})
	if err != nil {
		return err
	}

	s.Probe(context.Background())
	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", s.schedule, "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// Probe checks the backend now and records the result. State changes are logged.
func (s *Scheduler) Probe(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	next := Status{Healthy: true, LastChecked: time.Now()}
	if err := s.prober.Health(ctx); err != nil {
		next.Healthy = false
		next.Error = err.Error()
	}

	prev := s.status.Swap(&next)
	switch {
	case !next.Healthy && (prev == nil || prev.Healthy):
		s.logger.Warn("backend health check failed", "error", next.Error)
	case next.Healthy && prev != nil && !prev.Healthy:
		s.logger.Info("backend healthy again")
	}
	return next
}

// Status returns the most recent probe result. Before the first probe the
// backend is reported as not healthy.
func (s *Scheduler) Status() Status {
	if st := s.status.Load(); st != nil {
		return *st
	}
	return Status{}
}

// Ready reports whether the last probe succeeded.
func (s *Scheduler) Ready() bool {
	return s.Status().Healthy
}
