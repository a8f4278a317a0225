package retention

import (
	"context"
	"log/slog"
	"time"

	"agri/pkg/audit/repository"
)

// Pruner deletes system logs older than the retention window.
type Pruner struct {
	repo      repository.AuditRepository
	retention time.Duration
	log       *slog.Logger
	now       func() time.Time
	// OnPruned is called with the number of rows removed by each pass.
	OnPruned func(int64)
}

func New(repo repository.AuditRepository, retention time.Duration, log *slog.Logger) *Pruner {
	return &Pruner{
		repo:      repo,
		retention: retention,
		log:       log.With("component", "audit_retention"),
		now:       time.Now,
	}
}

func (p *Pruner) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := p.now().UTC().Add(-p.retention)
	n, err := p.repo.Prune(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	p.log.InfoContext(ctx, "system logs pruned", "cutoff", cutoff, "deleted", n)
	if p.OnPruned != nil {
		p.OnPruned(n)
	}
	return n, nil
}

// Run prunes once immediately and then on every tick until ctx is done.
func (p *Pruner) Run(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		if _, err := p.PruneOnce(ctx); err != nil && ctx.Err() == nil {
			p.log.WarnContext(ctx, "prune failed", "err", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
	}
}
