package config

import "go.trai.ch/zerr"

// ErrInvalidDate is returned when a date in a book file does not match DateLayout.
var ErrInvalidDate = zerr.New("invalid date")
