package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid widget adapter settings
	// (for example, missing server URL or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidWidgetConfigs indicates the widget cannot run because no
	// form id was provided.
	ErrInvalidWidgetConfigs = errors.New("invalid widget configuration: form id is required")
)
