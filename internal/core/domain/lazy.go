package domain

// Calculator performs the computation whose results a LazyObject caches.
type Calculator interface {
	PerformCalculations() error
}

// LazyObject caches the results of an expensive computation and recomputes
// them on demand after an upstream dependency has changed.
//
// A LazyObject is both an Observer (subscribe it to the objects its results
// depend on) and an Observable (dependents subscribe to it). Concrete types
// embed *LazyObject and pass themselves as the Calculator; they must register
// the same pointer with their dependencies.
//
// The zero value is a fresh, unfrozen object without a calculator.
type LazyObject struct {
	Notifier
	calc       Calculator
	calculated bool
	frozen     bool
}

// NewLazyObject returns a fresh, unfrozen lazy object computing with calc.
func NewLazyObject(calc Calculator) *LazyObject {
	return &LazyObject{calc: calc}
}

// SetCalculator installs the computation strategy.
func (l *LazyObject) SetCalculator(calc Calculator) {
	l.calc = calc
}

// Update invalidates the cached results. A frozen object absorbs the
// notification. Otherwise a cached object becomes fresh and notifies its own
// observers; an object that is already fresh stays silent.
func (l *LazyObject) Update() {
	if l.frozen || !l.calculated {
		return
	}
	l.calculated = false
	l.Publish()
}

// Calculate runs the computation if the cached results are stale.
//
// The object is marked calculated before the computation starts so that a
// dependency cycle reads the stale value instead of recursing. If the
// computation fails or panics the object is left fresh and the failure is
// returned unchanged.
func (l *LazyObject) Calculate() error {
	if l.calculated {
		return nil
	}
	if l.calc == nil {
		return ErrMissingComputationStrategy
	}

	l.calculated = true
	done := false
	defer func() {
		if !done {
			l.calculated = false
		}
	}()

	if err := l.calc.PerformCalculations(); err != nil {
		return err
	}
	done = true
	return nil
}

// Recalculate forces a computation even when frozen and notifies observers
// afterwards, whether or not the computation succeeded.
func (l *LazyObject) Recalculate() error {
	wasFrozen := l.frozen
	l.calculated = false
	l.frozen = false
	defer func() {
		l.frozen = wasFrozen
		l.Publish()
	}()
	return l.Calculate()
}

// Freeze makes the object keep its current results when dependencies change.
func (l *LazyObject) Freeze() {
	l.frozen = true
}

// Unfreeze re-enables invalidation and notifies observers, since changes may
// have been absorbed while frozen.
func (l *LazyObject) Unfreeze() {
	l.frozen = false
	l.Publish()
}

// IsCalculated reports whether the cached results are current.
func (l *LazyObject) IsCalculated() bool {
	return l.calculated
}

// IsFrozen reports whether invalidation is suspended.
func (l *LazyObject) IsFrozen() bool {
	return l.frozen
}

// RegisterWith subscribes the object to o, so that changes in o invalidate it.
func (l *LazyObject) RegisterWith(o Observable) {
	if !isNil(o) {
		o.Subscribe(l)
	}
}

// UnregisterWith removes the subscription made by RegisterWith.
func (l *LazyObject) UnregisterWith(o Observable) {
	if !isNil(o) {
		o.Unsubscribe(l)
	}
}
