// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"time"

	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/service"
)

const defaultRefreshInterval = 5 * time.Minute

// tokenRefreshWorker periodically refreshes provider access tokens that are
// about to expire, so the ingestion path rarely has to refresh inline.
type tokenRefreshWorker struct {
	ctx            context.Context
	accountService service.AccountService
	interval       time.Duration

	logger *logger.Logger
}

func newTokenRefreshWorker(ctx context.Context, accountService service.AccountService, interval time.Duration, log *logger.Logger) Worker {
	if interval <= 0 {
		interval = defaultRefreshInterval
	}

	return &tokenRefreshWorker{
		ctx:            ctx,
		accountService: accountService,
		interval:       interval,
		logger:         log,
	}
}

// Run spawns the refresh loop. The goroutine exits when the worker context is
// cancelled.
func (w *tokenRefreshWorker) Run() {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info().Dur("interval", w.interval).Msg("token refresh worker started")

		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info().Msg("token refresh worker stopped")
				return
			case <-ticker.C:
				refreshed, err := w.accountService.RefreshExpiring(w.ctx)
				if err != nil {
					w.logger.Err(err).Msg("token refresh sweep failed")
					continue
				}
				if refreshed > 0 {
					w.logger.Info().Int("refreshed", refreshed).Msg("token refresh sweep completed")
				}
			}
		}
	}()
}
