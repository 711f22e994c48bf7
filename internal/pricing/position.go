package pricing

import (
	"fmt"
	"time"

	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/zerr"
)

// Position is a quantity of an asset, optionally maturing on a given day.
type Position struct {
	*domain.Instrument
	quantity float64
	maturity time.Time
	date     *domain.EvaluationDate
}

// NewPosition returns a position of quantity units. A zero maturity never
// expires. When both maturity and date are set the position registers with
// date, so moving the evaluation date invalidates it.
func NewPosition(quantity float64, maturity time.Time, date *domain.EvaluationDate) *Position {
	if !maturity.IsZero() {
		y, m, d := maturity.Date()
		maturity = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	p := &Position{
		quantity: quantity,
		maturity: maturity,
		date:     date,
	}
	p.Instrument = domain.NewInstrument(p)
	if !maturity.IsZero() && date != nil {
		p.RegisterWith(date)
	}
	return p
}

// Quantity returns the number of units held.
func (p *Position) Quantity() float64 {
	return p.quantity
}

// Maturity returns the maturity date, or the zero time.
func (p *Position) Maturity() time.Time {
	return p.maturity
}

// IsExpired reports whether the maturity falls on or before the evaluation date.
func (p *Position) IsExpired() bool {
	if p.maturity.IsZero() || p.date == nil {
		return false
	}
	return !p.date.Date().Before(p.maturity)
}

// SetupArguments implements domain.Contract.
func (p *Position) SetupArguments(args domain.Arguments) error {
	a, ok := args.(*Arguments)
	if !ok {
		return zerr.With(zerr.Wrap(ErrUnexpectedArguments, "cannot set up position"), "payload", fmt.Sprintf("%T", args))
	}
	a.Quantity = p.quantity
	return nil
}
