// Package market builds the live object graph of a book and serializes every
// access to it.
package market

import (
	"maps"
	"slices"
	"sync"
	"time"

	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/pricing"
	"go.trai.ch/zerr"
)

// lazy is the part of a lazy object the market drives directly.
type lazy interface {
	Freeze()
	Unfreeze()
	Update()
	Recalculate() error
	IsCalculated() bool
	IsFrozen() bool
}

// Market is the live object graph of one book. Objects in the graph are not
// safe for concurrent use, so every method takes the market's lock.
type Market struct {
	mu          sync.Mutex
	name        string
	graph       *domain.Graph
	date        *domain.EvaluationDate
	quotes      map[string]*domain.SimpleQuote
	derived     map[string]domain.Quote
	links       map[string]domain.RelinkableHandle[domain.Quote]
	observe     map[string]bool
	engines     map[string]domain.PricingEngine
	instruments map[string]*pricing.Position
	lazies      map[string]lazy
}

// Result is a snapshot of one instrument's valuation.
type Result struct {
	Instrument    string
	Expired       bool
	NPV           *float64
	ErrorEstimate *float64
	Additional    map[string]float64
	Inputs        map[string]float64
	Date          time.Time
}

// New builds the market described by book. A book without an evaluation
// date is valued as of today.
func New(book *domain.Book) (*Market, error) {
	if len(book.Instruments) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoInstruments, "cannot build market"), "book", book.Name)
	}
	g, err := book.Graph()
	if err != nil {
		return nil, zerr.With(err, "book", book.Name)
	}

	date := book.EvaluationDate
	if date.IsZero() {
		date = time.Now().UTC()
	}

	m := &Market{
		name:        book.Name,
		graph:       g,
		date:        domain.NewEvaluationDate(date),
		quotes:      make(map[string]*domain.SimpleQuote),
		derived:     make(map[string]domain.Quote),
		links:       make(map[string]domain.RelinkableHandle[domain.Quote]),
		observe:     make(map[string]bool),
		engines:     make(map[string]domain.PricingEngine),
		instruments: make(map[string]*pricing.Position),
		lazies:      make(map[string]lazy),
	}
	if err := m.build(book); err != nil {
		return nil, zerr.With(err, "book", book.Name)
	}
	return m, nil
}

// Name returns the name of the book the market was built from.
func (m *Market) Name() string {
	return m.name
}

// Date returns the current evaluation date.
func (m *Market) Date() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.date.Date()
}

// Instruments returns the sorted names of every instrument.
func (m *Market) Instruments() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Sorted(maps.Keys(m.instruments))
}

// Stale returns the sorted names of instruments whose cached results are out of date.
func (m *Market) Stale() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, name := range slices.Sorted(maps.Keys(m.instruments)) {
		if !m.instruments[name].IsCalculated() {
			out = append(out, name)
		}
	}
	return out
}

// SetQuote sets the simple quote name to v.
func (m *Market) SetQuote(name string, v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.quotes[name]
	if !ok {
		return m.notFound(name, domain.KindQuote)
	}
	q.SetValue(v)
	return nil
}

// Quote returns the current value of the quote, derived quote or link name.
func (m *Market) Quote(name string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q := m.quote(name)
	if q == nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrNodeNotFound, "unknown quote"), "node", name)
	}
	v, err := q.Value()
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to read quote"), "node", name)
	}
	return v, nil
}

// Relink points the link name at the quote target. An empty target resets the link.
// Relinks that would create a cycle are rejected and leave the market unchanged.
func (m *Market) Relink(name, target string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	link, ok := m.links[name]
	if !ok {
		return m.notFound(name, domain.KindLink)
	}

	if target == "" {
		if err := m.graph.SetDependencies(name, nil); err != nil {
			return err
		}
		link.Reset()
		return nil
	}

	if err := m.requireQuote(name, target); err != nil {
		return err
	}
	if err := m.graph.SetDependencies(name, []string{target}); err != nil {
		return zerr.With(err, "link", name)
	}
	link.LinkTo(m.quote(target), m.observe[name])
	return nil
}

// Freeze stops the derived quote or instrument name from reacting to changes.
func (m *Market) Freeze(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, err := m.lazy(name)
	if err != nil {
		return err
	}
	l.Freeze()
	return nil
}

// Unfreeze resumes change tracking for name and notifies its dependents.
// Changes absorbed while frozen are not recorded, so name is invalidated and
// recomputes on its next read.
func (m *Market) Unfreeze(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, err := m.lazy(name)
	if err != nil {
		return err
	}
	l.Unfreeze()
	l.Update()
	return nil
}

// Recalculate forces name to recompute, even when frozen.
func (m *Market) Recalculate(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, err := m.lazy(name)
	if err != nil {
		return err
	}
	return l.Recalculate()
}

// SetEvaluationDate moves the evaluation date.
func (m *Market) SetEvaluationDate(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.date.Set(t)
}

// Apply applies a market event.
func (m *Market) Apply(ev domain.MarketEvent) error {
	switch ev.Kind {
	case domain.EventQuote:
		return m.SetQuote(ev.Name, ev.Value)
	case domain.EventLink:
		return m.Relink(ev.Name, ev.Target)
	case domain.EventDate:
		m.SetEvaluationDate(ev.Date)
		return nil
	case domain.EventFreeze:
		return m.Freeze(ev.Name)
	case domain.EventUnfreeze:
		return m.Unfreeze(ev.Name)
	case domain.EventRecalculate:
		return m.Recalculate(ev.Name)
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownKind, "unsupported market event"), "kind", string(ev.Kind))
	}
}

// Inputs returns the current values of the simple quotes the instrument
// depends on. Invalid quotes are left out.
func (m *Market) Inputs(name string) (map[string]float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.instruments[name]; !ok {
		return nil, m.notFound(name, domain.KindInstrument)
	}
	return m.inputs(name), nil
}

func (m *Market) inputs(name string) map[string]float64 {
	out := make(map[string]float64)
	for _, dep := range m.graph.Upstream(name) {
		q, ok := m.quotes[dep]
		if !ok {
			continue
		}
		if v, err := q.Value(); err == nil {
			out[dep] = v
		}
	}
	return out
}

// Evaluate values the instrument name, reusing cached results when nothing
// it depends on has changed.
func (m *Market) Evaluate(name string) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos, ok := m.instruments[name]
	if !ok {
		return Result{}, m.notFound(name, domain.KindInstrument)
	}

	res := Result{
		Instrument: name,
		Inputs:     m.inputs(name),
		Date:       m.date.Date(),
	}
	if err := pos.Calculate(); err != nil {
		return res, err
	}
	if pos.IsExpired() {
		res.Expired = true
		return res, nil
	}

	npv, err := pos.NPV()
	if err != nil {
		return res, err
	}
	res.NPV = domain.Float(npv)
	if est, err := pos.ErrorEstimate(); err == nil {
		res.ErrorEstimate = domain.Float(est)
	}
	extra, err := pos.AdditionalResults()
	if err != nil {
		return res, err
	}
	res.Additional = make(map[string]float64, len(extra))
	for tag, v := range extra {
		if f, ok := v.(float64); ok {
			res.Additional[tag] = f
		}
	}
	return res, nil
}

func (m *Market) lazy(name string) (lazy, error) {
	l, ok := m.lazies[name]
	if !ok {
		if _, exists := m.graph.Node(name); exists {
			return nil, zerr.With(zerr.Wrap(ErrWrongKind, "not a lazy object"), "node", name)
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrNodeNotFound, "unknown lazy object"), "node", name)
	}
	return l, nil
}

func (m *Market) notFound(name string, kind domain.NodeKind) error {
	if node, exists := m.graph.Node(name); exists {
		err := zerr.With(zerr.Wrap(ErrWrongKind, "unexpected node"), "node", name)
		return zerr.With(zerr.With(err, "kind", string(node.Kind)), "want", string(kind))
	}
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrNodeNotFound, "unknown node"), "node", name), "want", string(kind))
}
