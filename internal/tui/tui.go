// Package tui renders a formix form as an interactive terminal widget:
// schema-driven inputs, inline validation, draft autosave, and submission
// with the same guards the embedded web widget applies.
package tui

import (
	"context"
	"errors"

	"github.com/SAMAymen/formix/internal/config"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/service"
	"github.com/SAMAymen/formix/internal/store"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	services *service.ClientServices
	cfg      config.ClientWidget
	logger   *logger.Logger
}

func New(services *service.ClientServices, cfg config.ClientWidget, log *logger.Logger) (*TUI, error) {
	return &TUI{services: services, cfg: cfg, logger: log}, nil
}

// Run loads the schema and any saved draft, then drives the widget until the
// visitor quits. Returns ErrUserQuit on a deliberate exit.
func (t *TUI) Run(ctx context.Context) error {
	schema, fromCache, err := t.services.SchemaService.LoadSchema(ctx, t.cfg.FormID)
	if err != nil {
		return err
	}
	if fromCache {
		t.logger.Info().Str("form_id", schema.FormID).Msg("rendering cached schema, server unreachable")
	}

	draft, err := t.services.DraftService.LoadDraft(ctx, schema.FormID)
	if err != nil {
		if !errors.Is(err, store.ErrDraftNotFound) {
			t.logger.Err(err).Str("form_id", schema.FormID).Msg("draft load failed, starting empty")
		}
		draft = nil
	}

	model := newWidgetModel(ctx, t.services, t.cfg, schema, fromCache, draft)
	finalModel, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if runErr != nil {
		return runErr
	}

	result, ok := finalModel.(widgetModel)
	if !ok {
		return tea.ErrProgramKilled
	}
	if result.quitByUser {
		return ErrUserQuit
	}

	return nil
}
