package service

import "errors"

// Client-side sentinel errors for the widget services.
var (
	// ErrSessionExpired means the widget session token outlived its TTL; the
	// widget must be reloaded before submitting.
	ErrSessionExpired = errors.New("widget session expired")

	// ErrCooldownActive means a submission was attempted within the cooldown
	// window after the previous one from the same widget instance.
	ErrCooldownActive = errors.New("submission cooldown active")

	// ErrSchemaUnavailable means the schema could not be fetched and no cached
	// copy exists.
	ErrSchemaUnavailable = errors.New("form schema unavailable")
)
