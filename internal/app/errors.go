package app

import "go.trai.ch/zerr"

var (
	// ErrFeedClosed is returned by Watch when the quote feed ends before the context is cancelled.
	ErrFeedClosed = zerr.New("quote feed closed")

	// ErrUnknownFormat is returned for an unsupported report format.
	ErrUnknownFormat = zerr.New("unknown report format")
)
