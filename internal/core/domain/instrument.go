package domain

import (
	"errors"
	"fmt"
	"maps"

	"go.trai.ch/zerr"
)

// InstrumentResults is the result payload engines use to value instruments.
// Engine-specific payloads embed it to stay readable by Instrument.
type InstrumentResults struct {
	Value         *float64
	ErrorEstimate *float64
	Additional    map[string]any
}

// Reset clears every result.
func (r *InstrumentResults) Reset() {
	r.Value = nil
	r.ErrorEstimate = nil
	clear(r.Additional)
}

// Base returns r. Payloads embedding InstrumentResults inherit it.
func (r *InstrumentResults) Base() *InstrumentResults {
	return r
}

// SetAdditional records a tagged auxiliary result.
func (r *InstrumentResults) SetAdditional(tag string, value any) {
	if r.Additional == nil {
		r.Additional = make(map[string]any)
	}
	r.Additional[tag] = value
}

// Contract is the instrument-specific part of an Instrument.
type Contract interface {
	// IsExpired reports whether the instrument is no longer tradable.
	IsExpired() bool
	// SetupArguments fills the engine's argument payload from the instrument's terms.
	SetupArguments(args Arguments) error
}

// ResultFetcher is implemented by contracts whose engines return payloads
// that do not embed InstrumentResults.
type ResultFetcher interface {
	FetchResults(r Results) error
}

// Instrument values a Contract by delegating to a PricingEngine and caching
// the outcome until the engine or the instrument's inputs change.
type Instrument struct {
	*LazyObject
	contract      Contract
	engine        PricingEngine
	npv           *float64
	errorEstimate *float64
	additional    map[string]any
}

// NewInstrument returns a fresh instrument for c without a pricing engine.
func NewInstrument(c Contract) *Instrument {
	i := &Instrument{
		contract:   c,
		additional: make(map[string]any),
	}
	i.LazyObject = NewLazyObject(i)
	return i
}

// SetPricingEngine replaces the engine, moves the subscription from the old
// engine to the new one and invalidates the instrument.
func (i *Instrument) SetPricingEngine(e PricingEngine) {
	if !isNil(i.engine) {
		i.engine.Unsubscribe(i.LazyObject)
	}
	if isNil(e) {
		i.engine = nil
	} else {
		i.engine = e
		i.engine.Subscribe(i.LazyObject)
	}
	i.Update()
}

// Engine returns the current pricing engine, or nil.
func (i *Instrument) Engine() PricingEngine {
	return i.engine
}

// IsExpired reports whether the contract has expired.
func (i *Instrument) IsExpired() bool {
	return i.contract != nil && i.contract.IsExpired()
}

// PerformCalculations implements Calculator.
func (i *Instrument) PerformCalculations() error {
	if i.contract == nil {
		return ErrMissingComputationStrategy
	}
	if i.contract.IsExpired() {
		i.setupExpired()
		return nil
	}
	if i.engine == nil {
		return ErrMissingEngine
	}

	i.engine.Reset()
	args := i.engine.Arguments()
	if err := i.contract.SetupArguments(args); err != nil {
		return invalidArguments(err)
	}
	if err := args.Validate(); err != nil {
		return invalidArguments(err)
	}
	if err := i.engine.Calculate(); err != nil {
		if errors.Is(err, ErrInvalidArguments) {
			return err
		}
		return computationFailure(err)
	}
	return i.fetchResults(i.engine.Results())
}

func (i *Instrument) fetchResults(r Results) error {
	if f, ok := i.contract.(ResultFetcher); ok {
		return f.FetchResults(r)
	}
	carrier, ok := r.(interface{ Base() *InstrumentResults })
	if !ok {
		return zerr.With(zerr.Wrap(ErrUnexpectedResults, "cannot read engine results"), "payload", fmt.Sprintf("%T", r))
	}
	i.StoreResults(carrier.Base())
	return nil
}

// StoreResults copies res into the instrument's cached results.
// Contracts implementing ResultFetcher call it from FetchResults.
func (i *Instrument) StoreResults(res *InstrumentResults) {
	i.npv = copyFloat(res.Value)
	i.errorEstimate = copyFloat(res.ErrorEstimate)
	i.additional = maps.Clone(res.Additional)
	if i.additional == nil {
		i.additional = make(map[string]any)
	}
}

func (i *Instrument) setupExpired() {
	i.npv = nil
	i.errorEstimate = nil
	clear(i.additional)
}

// NPV returns the net present value, computing it if needed.
func (i *Instrument) NPV() (float64, error) {
	if err := i.Calculate(); err != nil {
		return 0, err
	}
	if i.npv == nil {
		return 0, ErrValueNotProvided
	}
	return *i.npv, nil
}

// ErrorEstimate returns the engine's error estimate for the NPV.
func (i *Instrument) ErrorEstimate() (float64, error) {
	if err := i.Calculate(); err != nil {
		return 0, err
	}
	if i.errorEstimate == nil {
		return 0, zerr.With(zerr.Wrap(ErrResultNotProvided, "error estimate"), "result", "error_estimate")
	}
	return *i.errorEstimate, nil
}

// Result returns the additional result recorded under tag.
func (i *Instrument) Result(tag string) (any, error) {
	if err := i.Calculate(); err != nil {
		return nil, err
	}
	v, ok := i.additional[tag]
	if !ok {
		return nil, zerr.With(zerr.Wrap(ErrResultNotProvided, tag), "result", tag)
	}
	return v, nil
}

// AdditionalResults returns a copy of every additional result.
func (i *Instrument) AdditionalResults() (map[string]any, error) {
	if err := i.Calculate(); err != nil {
		return nil, err
	}
	return maps.Clone(i.additional), nil
}

// ResultAs returns the additional result recorded under tag as a T.
func ResultAs[T any](i *Instrument, tag string) (T, error) {
	var zero T
	v, err := i.Result(tag)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, zerr.With(
			zerr.With(zerr.Wrap(ErrResultNotProvided, tag), "result", tag),
			"type", fmt.Sprintf("%T", v),
		)
	}
	return typed, nil
}

func invalidArguments(err error) error {
	if errors.Is(err, ErrInvalidArguments) {
		return err
	}
	return errors.Join(ErrInvalidArguments, err)
}

func computationFailure(err error) error {
	if errors.Is(err, ErrComputationFailure) {
		return err
	}
	return errors.Join(ErrComputationFailure, err)
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Float returns a pointer to v, for filling optional result fields.
func Float(v float64) *float64 {
	return &v
}
