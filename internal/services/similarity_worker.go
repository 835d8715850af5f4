package services

import (
	"context"
	"time"

	"github.com/devfolio/devfolio-backend/internal/logger"
)

// SimilarityWorker periodically rebuilds the similarity graph. It runs one
// rebuild at a time; a rebuild still in flight when the ticker fires again
// is simply allowed to finish first since runs are sequential on this
// goroutine.
type SimilarityWorker struct {
	log      *logger.Logger
	updater  SimilarityUpdateService
	interval time.Duration
}

func NewSimilarityWorker(baseLog *logger.Logger, updater SimilarityUpdateService, interval time.Duration) *SimilarityWorker {
	return &SimilarityWorker{
		log:      baseLog.With("component", "SimilarityWorker"),
		updater:  updater,
		interval: interval,
	}
}

// Start launches the refresh loop. A non-positive interval disables it.
func (w *SimilarityWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		w.log.Info("Periodic similarity refresh disabled")
		return
	}
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				w.runOnce(ctx)
			}
		}
	}()
}

func (w *SimilarityWorker) runOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("Similarity refresh panic", "panic", r)
		}
	}()
	if _, err := w.updater.UpdateAll(ctx); err != nil {
		w.log.Warn("Similarity refresh failed", "error", err)
	}
}
