package service

import (
	"context"
	"fmt"

	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
)

// clientDraftService is the concrete implementation of ClientDraftService.
type clientDraftService struct {
	localStore store.LocalStore

	logger *logger.Logger
}

// NewClientDraftService constructs a ClientDraftService over the local store.
func NewClientDraftService(localStore store.LocalStore, logger *logger.Logger) ClientDraftService {
	return &clientDraftService{
		localStore: localStore,
		logger:     logger,
	}
}

func (c *clientDraftService) SaveDraft(ctx context.Context, formID string, values map[string][]string) error {
	if err := c.localStore.SaveDraft(ctx, formID, values); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (c *clientDraftService) LoadDraft(ctx context.Context, formID string) (map[string][]string, error) {
	values, err := c.localStore.LoadDraft(ctx, formID)
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (c *clientDraftService) ClearDraft(ctx context.Context, formID string) error {
	if err := c.localStore.ClearDraft(ctx, formID); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
