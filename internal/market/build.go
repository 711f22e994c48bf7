package market

import (
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/pricing"
	"go.trai.ch/zerr"
)

// forward exposes a link as a Quote so that links and derived quotes can
// read through other links.
type forward struct {
	domain.Handle[domain.Quote]
}

func (f forward) Value() (float64, error) {
	q, err := f.Deref()
	if err != nil {
		return 0, err
	}
	return q.Value()
}

func (f forward) IsValid() bool {
	q, err := f.Deref()
	return err == nil && q.IsValid()
}

func (m *Market) build(book *domain.Book) error {
	for node := range m.graph.Walk() {
		var err error
		switch node.Kind {
		case domain.KindQuote:
			m.quotes[node.Name] = domain.NewSimpleQuote(book.Quotes[node.Name])
		case domain.KindDerived:
			err = m.buildDerived(node.Name, book.Derived[node.Name])
		case domain.KindLink:
			spec := book.Links[node.Name]
			link := domain.NewEmptyRelinkableHandle[domain.Quote]()
			if spec.Target != "" {
				link.LinkTo(m.quote(spec.Target), spec.Observe)
			}
			m.links[node.Name] = link
			m.observe[node.Name] = spec.Observe
		case domain.KindEngine:
			err = m.buildEngine(node.Name, book.Engines[node.Name])
		case domain.KindInstrument:
			err = m.buildInstrument(node.Name, book.Instruments[node.Name])
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Market) buildDerived(name string, spec domain.DerivedSpec) error {
	var (
		unary  func(float64) float64
		binary func(float64, float64) float64
	)
	switch spec.Op {
	case domain.OpScale:
		factor := spec.Factor
		unary = func(v float64) float64 { return v * factor }
	case domain.OpShift:
		offset := spec.Offset
		unary = func(v float64) float64 { return v + offset }
	case domain.OpSpread:
		binary = func(a, b float64) float64 { return a - b }
	case domain.OpSum:
		binary = func(a, b float64) float64 { return a + b }
	case domain.OpMean:
		binary = func(a, b float64) float64 { return (a + b) / 2 }
	default:
		err := zerr.With(zerr.Wrap(domain.ErrUnknownKind, "unsupported derived quote"), "quote", name)
		return zerr.With(err, "op", spec.Op)
	}

	want := 1
	if binary != nil {
		want = 2
	}
	if len(spec.Sources) != want {
		err := zerr.With(zerr.Wrap(ErrSourceCount, "invalid derived quote"), "quote", name)
		return zerr.With(zerr.With(err, "want", want), "got", len(spec.Sources))
	}
	for _, src := range spec.Sources {
		if err := m.requireQuote(name, src); err != nil {
			return err
		}
	}

	var q interface {
		domain.Quote
		lazy
	}
	if unary != nil {
		q = domain.NewDerivedQuote(m.handle(spec.Sources[0]), unary)
	} else {
		q = domain.NewCompositeQuote(m.handle(spec.Sources[0]), m.handle(spec.Sources[1]), binary)
	}
	m.derived[name] = q
	m.lazies[name] = q
	return nil
}

func (m *Market) buildEngine(name string, spec domain.EngineSpec) error {
	for _, in := range spec.Inputs() {
		if err := m.requireQuote(name, in); err != nil {
			return err
		}
	}

	switch spec.Kind {
	case domain.EngineMarkToMarket:
		if spec.Price == "" {
			return zerr.With(zerr.With(zerr.Wrap(ErrMissingInput, "invalid engine"), "engine", name), "input", "price")
		}
		m.engines[name] = pricing.NewMarkToMarketEngine(m.handle(spec.Price))
	case domain.EngineBidAsk:
		if spec.Bid == "" || spec.Ask == "" {
			return zerr.With(zerr.With(zerr.Wrap(ErrMissingInput, "invalid engine"), "engine", name), "input", "bid/ask")
		}
		m.engines[name] = pricing.NewBidAskEngine(m.handle(spec.Bid), m.handle(spec.Ask))
	default:
		err := zerr.With(zerr.Wrap(domain.ErrUnknownKind, "unsupported pricing engine"), "engine", name)
		return zerr.With(err, "kind", spec.Kind)
	}
	return nil
}

func (m *Market) buildInstrument(name string, spec domain.InstrumentSpec) error {
	pos := pricing.NewPosition(spec.Quantity, spec.Maturity, m.date)
	if spec.Engine != "" {
		engine, ok := m.engines[spec.Engine]
		if !ok {
			err := zerr.With(zerr.Wrap(ErrWrongKind, "expected a pricing engine"), "node", name)
			return zerr.With(err, "dependency", spec.Engine)
		}
		pos.SetPricingEngine(engine)
	}
	m.instruments[name] = pos
	m.lazies[name] = pos
	return nil
}

// requireQuote checks that dep names a quote, derived quote or link.
func (m *Market) requireQuote(owner, dep string) error {
	node, ok := m.graph.Node(dep)
	if !ok {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrNodeNotFound, "unknown quote"), "node", owner), "dependency", dep)
	}
	switch node.Kind {
	case domain.KindQuote, domain.KindDerived, domain.KindLink:
		return nil
	default:
		err := zerr.With(zerr.Wrap(ErrWrongKind, "expected a quote"), "node", owner)
		return zerr.With(zerr.With(err, "dependency", dep), "kind", string(node.Kind))
	}
}

// quote returns the Quote registered under name, or nil.
func (m *Market) quote(name string) domain.Quote {
	if q, ok := m.quotes[name]; ok {
		return q
	}
	if q, ok := m.derived[name]; ok {
		return q
	}
	if l, ok := m.links[name]; ok {
		return forward{l.Handle}
	}
	return nil
}

// handle returns a handle over name. Links share their cell, so readers
// see every relink.
func (m *Market) handle(name string) domain.Handle[domain.Quote] {
	if l, ok := m.links[name]; ok {
		return l.Handle
	}
	return domain.NewHandle(m.quote(name), true)
}
