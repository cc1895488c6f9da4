package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/taskspace/internal/infrastructure/journal"
)

// PrunerConfig controls how often and how far back the journal is trimmed.
type PrunerConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// JournalPruner removes journal entries older than the retention window on a cron schedule.
type JournalPruner struct {
	store  *journal.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    PrunerConfig
	now    func() time.Time
}

func NewJournalPruner(store *journal.Store, logger *zap.Logger, cfg PrunerConfig) (*JournalPruner, error) {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 14 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &JournalPruner{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
		now:    time.Now,
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := p.cron.AddFunc(schedule, func() {
		if _, err := p.Prune(); err != nil {
			p.logger.Error("journal prune failed", zap.Error(err))
		}
	}); err != nil {
		return nil, fmt.Errorf("schedule journal pruner: %w", err)
	}
	return p, nil
}

// Start launches the cron scheduler.
func (p *JournalPruner) Start() {
	if p == nil || p.cron == nil {
		return
	}
	p.cron.Start()
	p.logger.Info("journal pruner started", zap.Duration("interval", p.cfg.Interval), zap.Duration("retention", p.cfg.Retention))
}

// Stop waits for a running prune to finish or ctx to expire.
func (p *JournalPruner) Stop(ctx context.Context) {
	if p == nil || p.cron == nil {
		return
	}
	stopCtx := p.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	p.logger.Info("journal pruner stopped")
}

// Prune removes expired entries synchronously.
func (p *JournalPruner) Prune() (int, error) {
	if p == nil || p.store == nil {
		return 0, nil
	}
	removed, err := p.store.Cleanup(p.now().Add(-p.cfg.Retention))
	if err != nil {
		return removed, err
	}
	if removed > 0 {
		p.logger.Info("journal pruned", zap.Int("removed", removed))
	}
	return removed, nil
}
