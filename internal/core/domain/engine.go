package domain

// Arguments is the argument payload an instrument fills in before a computation.
type Arguments interface {
	// Validate rejects payloads the engine cannot compute with.
	Validate() error
}

// Results is the result payload an engine fills in during a computation.
type Results interface {
	// Reset returns the payload to its empty state.
	Reset()
}

// PricingEngine computes results from arguments on demand.
//
// Engines are observable so that instruments learn when the engine itself,
// or a market input it reads through a handle, changes. A single computation
// finishing is not a notification.
type PricingEngine interface {
	Observable
	Arguments() Arguments
	Results() Results
	// Reset clears the results. Arguments are repopulated by the caller on every cycle.
	Reset()
	// Calculate validates the arguments and populates the results.
	Calculate() error
}

// GenericEngine stores the typed payloads of a concrete engine. Concrete
// engines embed *GenericEngine and implement Calculate.
type GenericEngine[A Arguments, R Results] struct {
	Notifier
	args    A
	results R
}

// NewGenericEngine returns payload storage over args and results.
func NewGenericEngine[A Arguments, R Results](args A, results R) *GenericEngine[A, R] {
	return &GenericEngine[A, R]{args: args, results: results}
}

// Arguments returns the argument payload.
func (e *GenericEngine[A, R]) Arguments() Arguments {
	return e.args
}

// Results returns the result payload.
func (e *GenericEngine[A, R]) Results() Results {
	return e.results
}

// Args returns the typed argument payload.
func (e *GenericEngine[A, R]) Args() A {
	return e.args
}

// Res returns the typed result payload.
func (e *GenericEngine[A, R]) Res() R {
	return e.results
}

// Reset clears the result payload.
func (e *GenericEngine[A, R]) Reset() {
	e.results.Reset()
}

// Update re-broadcasts notifications from the engine's market inputs.
func (e *GenericEngine[A, R]) Update() {
	e.Publish()
}
