package market_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/market"
)

var today = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func sampleBook() *domain.Book {
	return &domain.Book{
		Name:           "desk",
		EvaluationDate: today,
		Quotes:         map[string]float64{"bid": 99, "ask": 101, "spot": 42.5, "alt": 40},
		Derived: map[string]domain.DerivedSpec{
			"spot_x2": {Op: domain.OpScale, Sources: []string{"px"}, Factor: 2},
			"width":   {Op: domain.OpSpread, Sources: []string{"ask", "bid"}},
		},
		Links: map[string]domain.LinkSpec{
			"px": {Target: "spot", Observe: true},
		},
		Engines: map[string]domain.EngineSpec{
			"mtm":    {Kind: domain.EngineMarkToMarket, Price: "px"},
			"double": {Kind: domain.EngineMarkToMarket, Price: "spot_x2"},
			"quoted": {Kind: domain.EngineBidAsk, Bid: "bid", Ask: "ask"},
		},
		Instruments: map[string]domain.InstrumentSpec{
			"equity":  {Engine: "mtm", Quantity: 1},
			"levered": {Engine: "double", Quantity: 3},
			"bond":    {Engine: "quoted", Quantity: 2},
			"future":  {Engine: "mtm", Quantity: 1, Maturity: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)},
			"orphan":  {Quantity: 1},
		},
	}
}

func newMarket(t *testing.T) *market.Market {
	t.Helper()
	m, err := market.New(sampleBook())
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	m := newMarket(t)

	assert.Equal(t, "desk", m.Name())
	assert.Equal(t, today, m.Date())
	assert.Equal(t, []string{"bond", "equity", "future", "levered", "orphan"}, m.Instruments())

	v, err := m.Quote("width")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, v, 1e-12)

	v, err = m.Quote("px")
	require.NoError(t, err)
	assert.InDelta(t, 42.5, v, 1e-12)
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *domain.Book)
		target error
	}{
		{"NoInstruments", func(b *domain.Book) { b.Instruments = nil }, domain.ErrNoInstruments},
		{"UnknownEngine", func(b *domain.Book) {
			b.Engines["mc"] = domain.EngineSpec{Kind: "monte-carlo", Price: "spot"}
		}, domain.ErrUnknownKind},
		{"UnknownOp", func(b *domain.Book) {
			b.Derived["odd"] = domain.DerivedSpec{Op: "cube", Sources: []string{"spot"}}
		}, domain.ErrUnknownKind},
		{"SourceCount", func(b *domain.Book) {
			b.Derived["odd"] = domain.DerivedSpec{Op: domain.OpMean, Sources: []string{"spot"}}
		}, market.ErrSourceCount},
		{"MissingBid", func(b *domain.Book) {
			b.Engines["half"] = domain.EngineSpec{Kind: domain.EngineBidAsk, Ask: "ask"}
		}, market.ErrMissingInput},
		{"EngineReadsInstrument", func(b *domain.Book) {
			b.Engines["weird"] = domain.EngineSpec{Kind: domain.EngineMarkToMarket, Price: "equity"}
		}, market.ErrWrongKind},
		{"InstrumentOnQuote", func(b *domain.Book) {
			b.Instruments["bad"] = domain.InstrumentSpec{Engine: "spot", Quantity: 1}
		}, market.ErrWrongKind},
		{"Cycle", func(b *domain.Book) {
			b.Links["px"] = domain.LinkSpec{Target: "spot_x2", Observe: true}
		}, domain.ErrCycleDetected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := sampleBook()
			tt.mutate(b)
			_, err := market.New(b)
			require.ErrorIs(t, err, tt.target)
		})
	}
}

func TestEvaluate(t *testing.T) {
	m := newMarket(t)

	res, err := m.Evaluate("equity")
	require.NoError(t, err)
	require.NotNil(t, res.NPV)
	assert.InDelta(t, 42.5, *res.NPV, 1e-12)
	assert.Nil(t, res.ErrorEstimate)
	assert.Equal(t, map[string]float64{"price": 42.5}, res.Additional)
	assert.Equal(t, map[string]float64{"spot": 42.5}, res.Inputs)

	res, err = m.Evaluate("bond")
	require.NoError(t, err)
	assert.InDelta(t, 200.0, *res.NPV, 1e-12)
	require.NotNil(t, res.ErrorEstimate)
	assert.InDelta(t, 2.0, *res.ErrorEstimate, 1e-12)
	assert.Equal(t, map[string]float64{"ask": 101, "bid": 99}, res.Inputs)

	res, err = m.Evaluate("levered")
	require.NoError(t, err)
	assert.InDelta(t, 255.0, *res.NPV, 1e-12)
}

func TestEvaluate_MissingEngine(t *testing.T) {
	m := newMarket(t)

	_, err := m.Evaluate("orphan")
	require.ErrorIs(t, err, domain.ErrMissingEngine)

	_, err = m.Evaluate("ghost")
	require.ErrorIs(t, err, domain.ErrNodeNotFound)

	_, err = m.Evaluate("spot")
	require.ErrorIs(t, err, market.ErrWrongKind)
}

func TestSetQuote_InvalidatesDependents(t *testing.T) {
	m := newMarket(t)
	for _, name := range []string{"equity", "levered", "bond", "future"} {
		_, err := m.Evaluate(name)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"orphan"}, m.Stale())

	require.NoError(t, m.SetQuote("spot", 50))
	assert.Equal(t, []string{"equity", "future", "levered", "orphan"}, m.Stale())

	res, err := m.Evaluate("levered")
	require.NoError(t, err)
	assert.InDelta(t, 300.0, *res.NPV, 1e-12)

	require.ErrorIs(t, m.SetQuote("px", 1), market.ErrWrongKind)
	require.ErrorIs(t, m.SetQuote("nope", 1), domain.ErrNodeNotFound)
}

func TestRelink(t *testing.T) {
	m := newMarket(t)
	_, err := m.Evaluate("equity")
	require.NoError(t, err)

	require.NoError(t, m.Relink("px", "alt"))
	assert.Contains(t, m.Stale(), "equity")

	res, err := m.Evaluate("equity")
	require.NoError(t, err)
	assert.InDelta(t, 40.0, *res.NPV, 1e-12)
	assert.Equal(t, map[string]float64{"alt": 40}, res.Inputs)

	require.NoError(t, m.SetQuote("spot", 1))
	assert.NotContains(t, m.Stale(), "equity", "the old target no longer reaches the instrument")
}

func TestRelink_RejectsCycle(t *testing.T) {
	m := newMarket(t)

	err := m.Relink("px", "spot_x2")
	require.ErrorIs(t, err, domain.ErrCycleDetected)

	v, err := m.Quote("px")
	require.NoError(t, err)
	assert.InDelta(t, 42.5, v, 1e-12, "a rejected relink leaves the link in place")

	require.ErrorIs(t, m.Relink("px", "equity"), market.ErrWrongKind)
	require.ErrorIs(t, m.Relink("spot", "alt"), market.ErrWrongKind)
}

func TestRelink_Reset(t *testing.T) {
	m := newMarket(t)

	require.NoError(t, m.Relink("px", ""))
	_, err := m.Evaluate("equity")
	require.ErrorIs(t, err, domain.ErrEmptyHandle)

	require.NoError(t, m.Relink("px", "spot"))
	res, err := m.Evaluate("equity")
	require.NoError(t, err)
	assert.InDelta(t, 42.5, *res.NPV, 1e-12)
}

func TestFreezeUnfreeze(t *testing.T) {
	m := newMarket(t)
	_, err := m.Evaluate("equity")
	require.NoError(t, err)

	require.NoError(t, m.Freeze("equity"))
	require.NoError(t, m.SetQuote("spot", 45))
	assert.NotContains(t, m.Stale(), "equity")

	res, err := m.Evaluate("equity")
	require.NoError(t, err)
	assert.InDelta(t, 42.5, *res.NPV, 1e-12, "a frozen instrument keeps its results")

	require.NoError(t, m.Recalculate("equity"))
	res, err = m.Evaluate("equity")
	require.NoError(t, err)
	assert.InDelta(t, 45.0, *res.NPV, 1e-12)

	require.NoError(t, m.Unfreeze("equity"))
	require.NoError(t, m.SetQuote("spot", 46))
	assert.Contains(t, m.Stale(), "equity")

	require.ErrorIs(t, m.Freeze("spot"), market.ErrWrongKind)
	require.ErrorIs(t, m.Freeze("ghost"), domain.ErrNodeNotFound)
}

func TestUnfreeze_PicksUpAbsorbedChanges(t *testing.T) {
	m := newMarket(t)
	_, err := m.Evaluate("equity")
	require.NoError(t, err)

	require.NoError(t, m.Freeze("equity"))
	require.NoError(t, m.SetQuote("spot", 45))
	assert.NotContains(t, m.Stale(), "equity")

	require.NoError(t, m.Unfreeze("equity"))
	assert.Contains(t, m.Stale(), "equity")

	res, err := m.Evaluate("equity")
	require.NoError(t, err)
	assert.InDelta(t, 45.0, *res.NPV, 1e-12)
}

func TestUnfreeze_DerivedQuote(t *testing.T) {
	m := newMarket(t)
	_, err := m.Evaluate("levered")
	require.NoError(t, err)

	require.NoError(t, m.Freeze("spot_x2"))
	require.NoError(t, m.SetQuote("spot", 50))
	assert.NotContains(t, m.Stale(), "levered", "the frozen quote shields its dependents")

	require.NoError(t, m.Unfreeze("spot_x2"))
	assert.Contains(t, m.Stale(), "levered")

	res, err := m.Evaluate("levered")
	require.NoError(t, err)
	assert.InDelta(t, 300.0, *res.NPV, 1e-12)
}

func TestEvaluationDate_Expiry(t *testing.T) {
	m := newMarket(t)
	_, err := m.Evaluate("equity")
	require.NoError(t, err)

	res, err := m.Evaluate("future")
	require.NoError(t, err)
	assert.False(t, res.Expired)

	m.SetEvaluationDate(time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, m.Stale(), "future")
	assert.NotContains(t, m.Stale(), "equity")

	res, err = m.Evaluate("future")
	require.NoError(t, err)
	assert.True(t, res.Expired)
	assert.Nil(t, res.NPV)
}

func TestApply(t *testing.T) {
	m := newMarket(t)

	require.NoError(t, m.Apply(domain.MarketEvent{Kind: domain.EventQuote, Name: "spot", Value: 44}))
	require.NoError(t, m.Apply(domain.MarketEvent{Kind: domain.EventFreeze, Name: "equity"}))
	require.NoError(t, m.Apply(domain.MarketEvent{Kind: domain.EventUnfreeze, Name: "equity"}))
	require.NoError(t, m.Apply(domain.MarketEvent{Kind: domain.EventLink, Name: "px", Target: "alt"}))
	require.NoError(t, m.Apply(domain.MarketEvent{Kind: domain.EventDate, Date: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)}))

	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), m.Date())
	v, err := m.Quote("px")
	require.NoError(t, err)
	assert.InDelta(t, 40.0, v, 1e-12)

	err = m.Apply(domain.MarketEvent{Kind: "teleport"})
	require.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestApply_Recalculate(t *testing.T) {
	m := newMarket(t)
	_, err := m.Evaluate("equity")
	require.NoError(t, err)

	require.NoError(t, m.Apply(domain.MarketEvent{Kind: domain.EventFreeze, Name: "equity"}))
	require.NoError(t, m.SetQuote("spot", 47))
	require.NoError(t, m.Apply(domain.MarketEvent{Kind: domain.EventRecalculate, Name: "equity"}))

	assert.NotContains(t, m.Stale(), "equity")
	res, err := m.Evaluate("equity")
	require.NoError(t, err)
	assert.InDelta(t, 47.0, *res.NPV, 1e-12)

	require.NoError(t, m.SetQuote("spot", 48))
	assert.NotContains(t, m.Stale(), "equity", "recalculating keeps the instrument frozen")

	err = m.Apply(domain.MarketEvent{Kind: domain.EventRecalculate, Name: "spot"})
	require.ErrorIs(t, err, market.ErrWrongKind)
}

func TestInputs(t *testing.T) {
	m := newMarket(t)

	in, err := m.Inputs("levered")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"spot": 42.5}, in)

	_, err = m.Inputs("spot")
	require.ErrorIs(t, err, market.ErrWrongKind)
}
