// Package pricing provides the concrete engines and instruments valued on a market.
package pricing

import (
	"math"

	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/zerr"
)

// Arguments is the payload positions fill in for every engine in this package.
type Arguments struct {
	Quantity float64
}

// Validate rejects quantities that are not finite.
func (a *Arguments) Validate() error {
	if math.IsNaN(a.Quantity) || math.IsInf(a.Quantity, 0) {
		return zerr.With(zerr.Wrap(ErrInvalidQuantity, "invalid position"), "quantity", a.Quantity)
	}
	return nil
}

// Results is the payload every engine in this package fills in.
type Results struct {
	domain.InstrumentResults
}

// MarkToMarketEngine values a position at quantity times the quoted price.
type MarkToMarketEngine struct {
	*domain.GenericEngine[*Arguments, *Results]
	price domain.Handle[domain.Quote]
}

// NewMarkToMarketEngine returns an engine reading the price through h.
func NewMarkToMarketEngine(h domain.Handle[domain.Quote]) *MarkToMarketEngine {
	e := &MarkToMarketEngine{
		GenericEngine: domain.NewGenericEngine(&Arguments{}, &Results{}),
		price:         h,
	}
	h.Subscribe(e.GenericEngine)
	return e
}

// Calculate implements domain.PricingEngine.
func (e *MarkToMarketEngine) Calculate() error {
	price, err := read(e.price, "price")
	if err != nil {
		return err
	}
	res := e.Res()
	res.Value = domain.Float(e.Args().Quantity * price)
	res.SetAdditional("price", price)
	return nil
}

// BidAskEngine values a position at the mid of a two-sided quote and reports
// the half spread as the error estimate.
type BidAskEngine struct {
	*domain.GenericEngine[*Arguments, *Results]
	bid domain.Handle[domain.Quote]
	ask domain.Handle[domain.Quote]
}

// NewBidAskEngine returns an engine reading both sides of the market.
func NewBidAskEngine(bid, ask domain.Handle[domain.Quote]) *BidAskEngine {
	e := &BidAskEngine{
		GenericEngine: domain.NewGenericEngine(&Arguments{}, &Results{}),
		bid:           bid,
		ask:           ask,
	}
	bid.Subscribe(e.GenericEngine)
	ask.Subscribe(e.GenericEngine)
	return e
}

// Calculate implements domain.PricingEngine.
func (e *BidAskEngine) Calculate() error {
	bid, err := read(e.bid, "bid")
	if err != nil {
		return err
	}
	ask, err := read(e.ask, "ask")
	if err != nil {
		return err
	}
	if bid > ask {
		err := zerr.With(zerr.Wrap(ErrCrossedMarket, "cannot take mid"), "bid", bid)
		return zerr.With(err, "ask", ask)
	}

	qty := e.Args().Quantity
	mid := (bid + ask) / 2
	res := e.Res()
	res.Value = domain.Float(qty * mid)
	res.ErrorEstimate = domain.Float(math.Abs(qty) * (ask - bid) / 2)
	res.SetAdditional("bid", bid)
	res.SetAdditional("ask", ask)
	res.SetAdditional("mid", mid)
	return nil
}

func read(h domain.Handle[domain.Quote], input string) (float64, error) {
	q, err := h.Deref()
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to resolve input"), "input", input)
	}
	v, err := q.Value()
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to read input"), "input", input)
	}
	return v, nil
}
