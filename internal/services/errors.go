// Package services defines the business logic for duplicate detection.
// This file centralizes common service-level error values so that they can be
// consistently returned by service methods and checked by callers.
//
// These errors are intended for internal use by the service layer and translation
// into user-facing messages or HTTP status codes should be performed at the
// handler/controller layer.
package services

import "errors"

var (
	// ErrInvalidChat is returned when a message arrives without a chat
	// scope. Dedup is strictly per chat; there is no global namespace to
	// fall back to.
	ErrInvalidChat = errors.New("chat id required")

	// ErrStore wraps storage failures during message processing. The
	// affected message is dropped without a reply; subsequent messages are
	// unaffected.
	ErrStore = errors.New("record store failure")
)
