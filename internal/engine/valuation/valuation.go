// Package valuation values the instruments of a live market and records the outcome.
package valuation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/core/ports"
	"go.trai.ch/quant/internal/market"
	"go.trai.ch/zerr"
)

// Valuer values instruments, skipping the write when a stored valuation
// already carries the same inputs and results.
type Valuer struct {
	hasher    ports.Hasher
	store     ports.ValuationStore
	telemetry ports.Telemetry
	now       func() time.Time
}

// New creates a new Valuer.
func New(hasher ports.Hasher, store ports.ValuationStore, telemetry ports.Telemetry) *Valuer {
	return &Valuer{
		hasher:    hasher,
		store:     store,
		telemetry: telemetry,
		now:       time.Now,
	}
}

// Value values the named instruments of m, or every instrument when names is
// empty. The report always covers every requested instrument. When any of them
// fails the returned error matches domain.ErrValuationFailed.
func (v *Valuer) Value(ctx context.Context, m *market.Market, names []string) (*domain.Report, error) {
	if len(names) == 0 {
		names = m.Instruments()
	}

	report := &domain.Report{
		Book:       m.Name(),
		RunID:      uuid.NewString(),
		Date:       m.Date(),
		Valuations: make([]domain.Valuation, 0, len(names)),
	}

	var errs error
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return report, errors.Join(errs, err)
		}

		val, err := v.value(ctx, m, name, report.RunID)
		report.Valuations = append(report.Valuations, val)
		if err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "instrument valuation failed"), "instrument", name))
		}
	}

	if errs != nil {
		return report, errors.Join(domain.ErrValuationFailed, errs)
	}
	return report, nil
}

func (v *Valuer) value(ctx context.Context, m *market.Market, name, runID string) (domain.Valuation, error) {
	_, vertex := v.telemetry.Record(ctx, fmt.Sprintf("%s/%s", m.Name(), name))

	val := domain.Valuation{
		Instrument: name,
		Status:     domain.StatusRunning,
		RunID:      runID,
		Timestamp:  v.now(),
	}

	res, err := m.Evaluate(name)
	val.Inputs = res.Inputs
	if err != nil {
		return v.fail(vertex, m.Name(), val, err)
	}

	fingerprint, err := v.hasher.Fingerprint(name, res.Date, res.Inputs)
	if err != nil {
		return v.fail(vertex, m.Name(), val, err)
	}
	val.Fingerprint = fingerprint

	if res.Expired {
		val.Status = domain.StatusExpired
		vertex.Log(domain.LogLevelInfo, "instrument has expired")
	} else {
		val.Status = domain.StatusCompleted
		val.NPV = res.NPV
		val.ErrorEstimate = res.ErrorEstimate
		if len(res.Additional) > 0 {
			val.Additional = res.Additional
		}
		_, _ = fmt.Fprintf(vertex.Stdout(), "npv %g\n", *res.NPV)
	}

	if v.unchanged(vertex, m.Name(), &val) {
		if val.Status == domain.StatusCompleted {
			val.Status = domain.StatusUnchanged
		}
		vertex.Cached()
		vertex.Complete(nil)
		return val, nil
	}

	if err := v.store.Put(m.Name(), val); err != nil {
		vertex.Complete(err)
		return val, err
	}
	vertex.Complete(nil)
	return val, nil
}

func (v *Valuer) unchanged(vertex ports.Vertex, book string, val *domain.Valuation) bool {
	prev, err := v.store.Get(book, val.Instrument)
	if err != nil {
		vertex.Log(domain.LogLevelWarn, "failed to read stored valuation: "+err.Error())
		return false
	}
	return val.SameOutcome(prev)
}

func (v *Valuer) fail(vertex ports.Vertex, book string, val domain.Valuation, err error) (domain.Valuation, error) {
	val.Status = domain.StatusFailed
	val.Error = err.Error()
	vertex.Log(domain.LogLevelError, val.Error)
	vertex.Complete(err)

	if putErr := v.store.Put(book, val); putErr != nil {
		return val, errors.Join(err, putErr)
	}
	return val, err
}
