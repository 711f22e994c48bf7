package domain

import (
	"maps"
	"slices"
	"time"
)

// Derived quote operations.
const (
	OpScale  = "scale"
	OpShift  = "shift"
	OpSpread = "spread"
	OpSum    = "sum"
	OpMean   = "mean"
)

// Engine kinds.
const (
	EngineMarkToMarket = "mark-to-market"
	EngineBidAsk       = "bid-ask"
)

// DerivedSpec declares a quote computed from other quotes.
type DerivedSpec struct {
	Op      string
	Sources []string
	Factor  float64
	Offset  float64
}

// LinkSpec declares a relinkable handle over a quote.
type LinkSpec struct {
	Target  string
	Observe bool
}

// EngineSpec declares a pricing engine and the quotes it reads.
type EngineSpec struct {
	Kind  string
	Price string
	Bid   string
	Ask   string
}

// Inputs returns the names of the quotes the engine reads.
func (s EngineSpec) Inputs() []string {
	var out []string
	for _, name := range []string{s.Price, s.Bid, s.Ask} {
		if name != "" {
			out = append(out, name)
		}
	}
	return out
}

// InstrumentSpec declares a position valued by an engine.
type InstrumentSpec struct {
	Engine   string
	Quantity float64
	Maturity time.Time
}

// Book is the declarative description of a market: quotes, derived quotes,
// links, engines and the instruments valued with them.
type Book struct {
	Name           string
	EvaluationDate time.Time
	Quotes         map[string]float64
	Derived        map[string]DerivedSpec
	Links          map[string]LinkSpec
	Engines        map[string]EngineSpec
	Instruments    map[string]InstrumentSpec
}

// Graph builds and validates the dependency graph of the book.
func (b *Book) Graph() (*Graph, error) {
	g := NewGraph()

	for _, name := range slices.Sorted(maps.Keys(b.Quotes)) {
		if err := g.AddNode(&Node{Name: name, Kind: KindQuote}); err != nil {
			return nil, err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(b.Derived)) {
		spec := b.Derived[name]
		if err := g.AddNode(&Node{Name: name, Kind: KindDerived, Dependencies: slices.Clone(spec.Sources)}); err != nil {
			return nil, err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(b.Links)) {
		var deps []string
		if target := b.Links[name].Target; target != "" {
			deps = []string{target}
		}
		if err := g.AddNode(&Node{Name: name, Kind: KindLink, Dependencies: deps}); err != nil {
			return nil, err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(b.Engines)) {
		if err := g.AddNode(&Node{Name: name, Kind: KindEngine, Dependencies: b.Engines[name].Inputs()}); err != nil {
			return nil, err
		}
	}
	for _, name := range slices.Sorted(maps.Keys(b.Instruments)) {
		var deps []string
		if engine := b.Instruments[name].Engine; engine != "" {
			deps = []string{engine}
		}
		if err := g.AddNode(&Node{Name: name, Kind: KindInstrument, Dependencies: deps}); err != nil {
			return nil, err
		}
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}
