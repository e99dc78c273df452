// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// applyDefaults fills provider endpoints and operational knobs that are
// almost never overridden outside tests.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = "localhost:8080"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 30 * time.Second
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = "formix"
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = 24 * time.Hour
	}
	if cfg.App.BaseURL == "" {
		cfg.App.BaseURL = "http://" + cfg.Server.HTTPAddress
	}

	if cfg.Google.AuthURL == "" {
		cfg.Google.AuthURL = "https://accounts.google.com/o/oauth2/v2/auth"
	}
	if cfg.Google.TokenURL == "" {
		cfg.Google.TokenURL = "https://oauth2.googleapis.com/token"
	}
	if cfg.Google.SheetsBaseURL == "" {
		cfg.Google.SheetsBaseURL = "https://sheets.googleapis.com"
	}
	if cfg.Google.Scopes == "" {
		cfg.Google.Scopes = "https://www.googleapis.com/auth/spreadsheets"
	}
	if cfg.Google.RedirectURL == "" {
		cfg.Google.RedirectURL = cfg.App.BaseURL + "/api/google/callback"
	}

	if cfg.Workers.RefreshInterval == 0 {
		cfg.Workers.RefreshInterval = 5 * time.Minute
	}

	if cfg.Client.ServerURL == "" {
		cfg.Client.ServerURL = "http://localhost:8080"
	}
	if cfg.Client.RequestTimeout == 0 {
		cfg.Client.RequestTimeout = 15 * time.Second
	}
}

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the server cannot start without.
func (cfg *StructuredConfig) validate() error {
	// DSN and Google credentials are deliberately not required here: the
	// widget client builds the same StructuredConfig and needs neither.
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.ServerURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Widget.FormID == "" {
		return ErrInvalidWidgetConfigs
	}

	return nil
}
