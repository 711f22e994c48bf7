package market

import "go.trai.ch/zerr"

var (
	// ErrSourceCount is returned when a derived quote declares the wrong number of sources for its operation.
	ErrSourceCount = zerr.New("wrong number of sources")

	// ErrWrongKind is returned when an operation targets a node of the wrong kind.
	ErrWrongKind = zerr.New("node has the wrong kind")

	// ErrMissingInput is returned when an engine declares no quote for a required input.
	ErrMissingInput = zerr.New("missing engine input")
)
