package domain

import (
	"math"

	"go.trai.ch/zerr"
)

// Quote is an observable market value.
type Quote interface {
	Observable
	// Value returns the current value, or ErrInvalidQuote if there is none.
	Value() (float64, error)
	// IsValid reports whether Value would succeed.
	IsValid() bool
}

// SimpleQuote is a settable Quote. Setting a different value notifies observers.
type SimpleQuote struct {
	Notifier
	value float64
	valid bool
}

// NewSimpleQuote returns a valid quote holding v.
func NewSimpleQuote(v float64) *SimpleQuote {
	return &SimpleQuote{value: v, valid: !math.IsNaN(v)}
}

// Value returns the quoted value.
func (q *SimpleQuote) Value() (float64, error) {
	if !q.valid {
		return 0, ErrInvalidQuote
	}
	return q.value, nil
}

// IsValid reports whether the quote holds a value.
func (q *SimpleQuote) IsValid() bool {
	return q.valid
}

// SetValue stores v and returns the difference from the previous value.
// Observers are notified only when the value actually changes.
func (q *SimpleQuote) SetValue(v float64) float64 {
	diff := v - q.value
	if q.valid && diff == 0 {
		return 0
	}
	q.value = v
	q.valid = !math.IsNaN(v)
	q.Publish()
	return diff
}

// Reset invalidates the quote.
func (q *SimpleQuote) Reset() {
	if !q.valid {
		return
	}
	q.valid = false
	q.Publish()
}

// DerivedQuote applies a unary function to another quote and caches the result.
type DerivedQuote struct {
	*LazyObject
	source Handle[Quote]
	fn     func(float64) float64
	value  float64
}

// NewDerivedQuote returns a quote computing fn(source).
func NewDerivedQuote(source Handle[Quote], fn func(float64) float64) *DerivedQuote {
	q := &DerivedQuote{source: source, fn: fn}
	q.LazyObject = NewLazyObject(q)
	q.RegisterWith(source)
	return q
}

// PerformCalculations implements Calculator.
func (q *DerivedQuote) PerformCalculations() error {
	in, err := readHandle(q.source)
	if err != nil {
		return err
	}
	q.value = q.fn(in)
	return nil
}

// Value returns fn(source), recomputing if the source changed.
func (q *DerivedQuote) Value() (float64, error) {
	if err := q.Calculate(); err != nil {
		return 0, err
	}
	return q.value, nil
}

// IsValid reports whether the source quote is valid.
func (q *DerivedQuote) IsValid() bool {
	src, err := q.source.Deref()
	return err == nil && src.IsValid()
}

// CompositeQuote applies a binary function to two quotes and caches the result.
type CompositeQuote struct {
	*LazyObject
	first  Handle[Quote]
	second Handle[Quote]
	fn     func(float64, float64) float64
	value  float64
}

// NewCompositeQuote returns a quote computing fn(first, second).
func NewCompositeQuote(first, second Handle[Quote], fn func(float64, float64) float64) *CompositeQuote {
	q := &CompositeQuote{first: first, second: second, fn: fn}
	q.LazyObject = NewLazyObject(q)
	q.RegisterWith(first)
	q.RegisterWith(second)
	return q
}

// PerformCalculations implements Calculator.
func (q *CompositeQuote) PerformCalculations() error {
	a, err := readHandle(q.first)
	if err != nil {
		return err
	}
	b, err := readHandle(q.second)
	if err != nil {
		return err
	}
	q.value = q.fn(a, b)
	return nil
}

// Value returns fn(first, second), recomputing if either input changed.
func (q *CompositeQuote) Value() (float64, error) {
	if err := q.Calculate(); err != nil {
		return 0, err
	}
	return q.value, nil
}

// IsValid reports whether both inputs are valid.
func (q *CompositeQuote) IsValid() bool {
	a, errA := q.first.Deref()
	b, errB := q.second.Deref()
	return errA == nil && errB == nil && a.IsValid() && b.IsValid()
}

func readHandle(h Handle[Quote]) (float64, error) {
	q, err := h.Deref()
	if err != nil {
		return 0, err
	}
	v, err := q.Value()
	if err != nil {
		return 0, zerr.Wrap(err, "failed to read source quote")
	}
	return v, nil
}
