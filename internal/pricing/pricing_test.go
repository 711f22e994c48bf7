package pricing_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/pricing"
)

func handle(q domain.Quote) domain.Handle[domain.Quote] {
	return domain.NewHandle(q, true)
}

func TestMarkToMarket(t *testing.T) {
	price := domain.NewSimpleQuote(42.50)
	pos := pricing.NewPosition(1, time.Time{}, nil)
	pos.SetPricingEngine(pricing.NewMarkToMarketEngine(handle(price)))

	npv, err := pos.NPV()
	require.NoError(t, err)
	assert.InDelta(t, 42.50, npv, 1e-12)

	_, err = pos.ErrorEstimate()
	require.ErrorIs(t, err, domain.ErrResultNotProvided)

	p, err := domain.ResultAs[float64](pos.Instrument, "price")
	require.NoError(t, err)
	assert.InDelta(t, 42.50, p, 1e-12)

	price.SetValue(40)
	assert.False(t, pos.IsCalculated())
	npv, err = pos.NPV()
	require.NoError(t, err)
	assert.InDelta(t, 40.0, npv, 1e-12)
}

func TestMarkToMarket_InvalidPrice(t *testing.T) {
	price := domain.NewSimpleQuote(math.NaN())
	pos := pricing.NewPosition(3, time.Time{}, nil)
	pos.SetPricingEngine(pricing.NewMarkToMarketEngine(handle(price)))

	_, err := pos.NPV()
	require.ErrorIs(t, err, domain.ErrComputationFailure)
	require.ErrorIs(t, err, domain.ErrInvalidQuote)
}

func TestMarkToMarket_EmptyHandle(t *testing.T) {
	link := domain.NewEmptyRelinkableHandle[domain.Quote]()
	pos := pricing.NewPosition(2, time.Time{}, nil)
	pos.SetPricingEngine(pricing.NewMarkToMarketEngine(link.Handle))

	_, err := pos.NPV()
	require.ErrorIs(t, err, domain.ErrEmptyHandle)

	link.LinkTo(domain.NewSimpleQuote(5), true)
	npv, err := pos.NPV()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, npv, 1e-12)
}

func TestBidAsk(t *testing.T) {
	bid := domain.NewSimpleQuote(99)
	ask := domain.NewSimpleQuote(101)
	pos := pricing.NewPosition(-2, time.Time{}, nil)
	pos.SetPricingEngine(pricing.NewBidAskEngine(handle(bid), handle(ask)))

	npv, err := pos.NPV()
	require.NoError(t, err)
	assert.InDelta(t, -200.0, npv, 1e-12)

	est, err := pos.ErrorEstimate()
	require.NoError(t, err)
	assert.InDelta(t, 2.0, est, 1e-12)

	extra, err := pos.AdditionalResults()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"bid": 99.0, "ask": 101.0, "mid": 100.0}, extra)

	ask.SetValue(103)
	npv, err = pos.NPV()
	require.NoError(t, err)
	assert.InDelta(t, -202.0, npv, 1e-12)
}

func TestBidAsk_CrossedMarket(t *testing.T) {
	pos := pricing.NewPosition(1, time.Time{}, nil)
	pos.SetPricingEngine(pricing.NewBidAskEngine(
		handle(domain.NewSimpleQuote(102)),
		handle(domain.NewSimpleQuote(101)),
	))

	_, err := pos.NPV()
	require.ErrorIs(t, err, pricing.ErrCrossedMarket)
	require.ErrorIs(t, err, domain.ErrComputationFailure)
}

func TestPosition_InvalidQuantity(t *testing.T) {
	pos := pricing.NewPosition(math.Inf(1), time.Time{}, nil)
	pos.SetPricingEngine(pricing.NewMarkToMarketEngine(handle(domain.NewSimpleQuote(1))))

	_, err := pos.NPV()
	require.ErrorIs(t, err, domain.ErrInvalidArguments)
	require.ErrorIs(t, err, pricing.ErrInvalidQuantity)
}

func TestPosition_Expiry(t *testing.T) {
	date := domain.NewEvaluationDate(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	maturity := time.Date(2026, 6, 30, 12, 0, 0, 0, time.UTC)
	pos := pricing.NewPosition(1, maturity, date)
	pos.SetPricingEngine(pricing.NewMarkToMarketEngine(handle(domain.NewSimpleQuote(10))))

	assert.Equal(t, time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC), pos.Maturity())
	assert.False(t, pos.IsExpired())
	npv, err := pos.NPV()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, npv, 1e-12)

	date.Set(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))
	assert.False(t, pos.IsCalculated(), "moving the evaluation date invalidates the position")
	assert.True(t, pos.IsExpired())

	_, err = pos.NPV()
	require.ErrorIs(t, err, domain.ErrValueNotProvided)

	date.Set(time.Date(2026, 6, 29, 0, 0, 0, 0, time.UTC))
	npv, err = pos.NPV()
	require.NoError(t, err)
	assert.InDelta(t, 10.0, npv, 1e-12)
}

func TestPosition_NoMaturityIgnoresDate(t *testing.T) {
	date := domain.NewEvaluationDate(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	pos := pricing.NewPosition(4, time.Time{}, date)

	assert.Equal(t, 0, date.Observers())
	assert.False(t, pos.IsExpired())
	assert.InDelta(t, 4.0, pos.Quantity(), 1e-12)
}

type foreignArgs struct{}

func (foreignArgs) Validate() error { return nil }

func TestPosition_UnexpectedArguments(t *testing.T) {
	pos := pricing.NewPosition(1, time.Time{}, nil)
	err := pos.SetupArguments(foreignArgs{})
	require.ErrorIs(t, err, pricing.ErrUnexpectedArguments)
}
