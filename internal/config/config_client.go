package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the widget transport layer.
type ClientAdapter struct {
	// ServerURL is the formix server base URL.
	ServerURL string
	// RequestTimeout is the default timeout for outbound widget requests.
	RequestTimeout time.Duration
}

// ClientStorage groups widget-side storage settings.
type ClientStorage struct {
	// CachePath is the sqlite file backing the schema cache and draft store.
	// Empty selects an in-memory database.
	CachePath string
}

// ClientWidget holds the per-run widget settings.
type ClientWidget struct {
	// FormID selects the form to render.
	FormID string
	// SuccessText, when non-empty, overrides the server success message.
	SuccessText string
}

// ClientConfig is the top-level widget client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage
	Widget  ClientWidget
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the widget runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			ServerURL:      cfg.Client.ServerURL,
			RequestTimeout: cfg.Client.RequestTimeout,
		},
		Storage: ClientStorage{
			CachePath: cfg.Client.CachePath,
		},
		Widget: ClientWidget{
			FormID:      cfg.Client.FormID,
			SuccessText: cfg.Client.SuccessText,
		},
	}

	return clientCfg, clientCfg.validate()
}
