package redisfeed

import "go.trai.ch/zerr"

var (
	// ErrInvalidEvent is returned when publishing an event without a kind.
	ErrInvalidEvent = zerr.New("invalid market event")

	// ErrDecodeEvent is reported on a subscription's error channel for payloads that are not market events.
	ErrDecodeEvent = zerr.New("failed to decode market event")
)
