package cache

import (
	"context"
	"log/slog"
	"time"

	"bilancio/internal/log"
)

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Janitor sweeps expired entries out of registered caches on an interval.
type Janitor struct {
	interval time.Duration
	caches   []Cleaner
}

func NewJanitor(interval time.Duration, caches ...Cleaner) *Janitor {
	return &Janitor{interval: interval, caches: caches}
}

// Run sweeps until ctx is cancelled. It always returns nil so a
// coordinated shutdown does not surface as an error.
func (j *Janitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := 0
			for _, c := range j.caches {
				removed += c.CleanExpired()
			}
			if removed > 0 {
				slog.Debug("Removed expired cache entries",
					log.FieldComponent, log.ComponentCache,
					"count", removed)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
