// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package tasks runs scheduled maintenance jobs.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultRunTimeout bounds a single reconciliation run.
const DefaultRunTimeout = 2 * time.Minute

// LikeRepairer rewrites drifted like counters and returns how many
// contents it repaired. *store.CounterStore implements it.
type LikeRepairer interface {
	ReconcileLikes(ctx context.Context) (int64, error)
}

// LikeReconciler periodically recomputes like_count from the like rows.
// comment_count is not touched: whether it counts all comments or only
// approved ones is undecided.
type LikeReconciler struct {
	repairer   LikeRepairer
	cron       *cron.Cron
	timeout    time.Duration
	onRepaired func(n int64)
}

// NewLikeReconciler creates a reconciler. onRepaired, if not nil, is
// called after every successful run with the number of repaired rows.
func NewLikeReconciler(r LikeRepairer, onRepaired func(n int64)) *LikeReconciler {
	return &LikeReconciler{
		repairer:   r,
		cron:       cron.New(),
		timeout:    DefaultRunTimeout,
		onRepaired: onRepaired,
	}
}

// Run executes one reconciliation.
func (l *LikeReconciler) Run(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	start := time.Now()
	n, err := l.repairer.ReconcileLikes(ctx)
	if err != nil {
		slog.Error("like reconciliation failed", "error", err)
		return 0, err
	}
	if l.onRepaired != nil {
		l.onRepaired(n)
	}
	if n > 0 {
		slog.Warn("like counters repaired", "contents", n, "duration", time.Since(start))
	} else {
		slog.Debug("like counters consistent", "duration", time.Since(start))
	}
	return n, nil
}

// Start schedules Run with a cron spec such as "@every 10m" and starts
// the scheduler in the background.
func (l *LikeReconciler) Start(schedule string) error {
	id, err := l.cron.AddFunc(schedule, func() {
		l.Run(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule like reconciliation %q: %w", schedule, err)
	}
	l.cron.Start()
	slog.Info("like reconciliation scheduled", "schedule", schedule, "entry", int(id))
	return nil
}

// Stop stops the scheduler and waits for a running job to finish or ctx
// to expire.
func (l *LikeReconciler) Stop(ctx context.Context) {
	done := l.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
