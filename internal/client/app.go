package client

import (
	"context"
	"errors"

	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/service"
	"github.com/SAMAymen/formix/internal/store"
	"github.com/SAMAymen/formix/internal/tui"
)

type App struct {
	services   *service.ClientServices
	localStore store.LocalStore
	tui        *tui.TUI
	logger     *logger.Logger
}

func NewApp(services *service.ClientServices, localStore store.LocalStore, ui *tui.TUI, log *logger.Logger) (*App, error) {
	return &App{
		services:   services,
		localStore: localStore,
		tui:        ui,
		logger:     log,
	}, nil
}

// Run drives the widget until the visitor quits. A deliberate quit is not an
// error.
func (a *App) Run() error {
	defer func() {
		if err := a.localStore.Close(); err != nil {
			a.logger.Err(err).Msg("closing local storage")
		}
	}()

	err := a.tui.Run(context.Background())
	if errors.Is(err, tui.ErrUserQuit) {
		return nil
	}
	return err
}
