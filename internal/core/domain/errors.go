package domain

import "go.trai.ch/zerr"

var (
	// ErrEmptyHandle is returned when dereferencing a handle that has no target.
	ErrEmptyHandle = zerr.New("empty handle cannot be dereferenced")

	// ErrMissingComputationStrategy is returned when a lazy object has no calculator configured.
	ErrMissingComputationStrategy = zerr.New("no computation strategy configured")

	// ErrMissingEngine is returned when an instrument is valued without a pricing engine.
	ErrMissingEngine = zerr.New("null pricing engine")

	// ErrInvalidArguments is returned when an argument payload fails validation.
	ErrInvalidArguments = zerr.New("invalid pricing engine arguments")

	// ErrComputationFailure is returned when a pricing engine fails internally.
	ErrComputationFailure = zerr.New("computation failed")

	// ErrValueNotProvided is returned when a computation completed without producing a value.
	ErrValueNotProvided = zerr.New("NPV not provided")

	// ErrResultNotProvided is returned when a computation completed without producing a requested result.
	ErrResultNotProvided = zerr.New("result not provided")

	// ErrUnexpectedResults is returned when a result payload does not carry instrument results.
	ErrUnexpectedResults = zerr.New("no instrument results returned from pricing engine")

	// ErrInvalidQuote is returned when reading a quote that holds no value.
	ErrInvalidQuote = zerr.New("invalid quote")

	// ErrNodeAlreadyExists is returned when a market node name is declared twice.
	ErrNodeAlreadyExists = zerr.New("node already exists")

	// ErrMissingDependency is returned when a node references a dependency that doesn't exist in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when a cycle is detected in the market dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrNodeNotFound is returned when a requested node is not found.
	ErrNodeNotFound = zerr.New("node not found")

	// ErrUnknownKind is returned for an unsupported engine, operation or event kind.
	ErrUnknownKind = zerr.New("unknown kind")

	// ErrNoInstruments is returned when a book declares no instruments to value.
	ErrNoInstruments = zerr.New("no instruments to value")

	// ErrValuationFailed is returned when at least one instrument in a run failed to value.
	ErrValuationFailed = zerr.New("valuation failed")
)
