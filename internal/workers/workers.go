package workers

import (
	"context"

	"github.com/SAMAymen/formix/internal/config"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles every background worker of the server process.
func NewWorkers(ctx context.Context, services *service.Services, cfg config.Workers, log *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			newTokenRefreshWorker(ctx, services.AccountService, cfg.RefreshInterval, log),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
