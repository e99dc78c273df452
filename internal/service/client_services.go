package service

import (
	"github.com/SAMAymen/formix/internal/adapter"
	"github.com/SAMAymen/formix/internal/logger"
	"github.com/SAMAymen/formix/internal/store"
)

type ClientServices struct {
	SchemaService ClientSchemaService
	WidgetService ClientWidgetService
	DraftService  ClientDraftService
}

func NewClientServices(localStore store.LocalStore, api adapter.WidgetAPI, logger *logger.Logger) (*ClientServices, error) {
	widgetSvc, err := NewClientWidgetService(api, localStore, logger)
	if err != nil {
		return nil, err
	}

	return &ClientServices{
		SchemaService: NewClientSchemaService(api, localStore, logger),
		WidgetService: widgetSvc,
		DraftService:  NewClientDraftService(localStore, logger),
	}, nil
}
