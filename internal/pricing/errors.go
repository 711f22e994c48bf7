package pricing

import "go.trai.ch/zerr"

var (
	// ErrInvalidQuantity is returned when a position quantity is not a finite number.
	ErrInvalidQuantity = zerr.New("quantity must be finite")

	// ErrUnexpectedArguments is returned when an engine hands a position an argument payload it cannot fill.
	ErrUnexpectedArguments = zerr.New("unexpected argument payload")

	// ErrCrossedMarket is returned when the bid is above the ask.
	ErrCrossedMarket = zerr.New("crossed market")
)
