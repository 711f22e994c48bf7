package domain

import "time"

// EventKind identifies a market event.
type EventKind string

const (
	// EventQuote sets a simple quote to Value.
	EventQuote EventKind = "quote"
	// EventLink relinks the link Name to the quote Target.
	EventLink EventKind = "link"
	// EventDate moves the evaluation date to Date.
	EventDate EventKind = "date"
	// EventFreeze freezes the lazy object Name.
	EventFreeze EventKind = "freeze"
	// EventUnfreeze unfreezes the lazy object Name.
	EventUnfreeze EventKind = "unfreeze"
	// EventRecalculate forces the lazy object Name to recompute, even when frozen.
	EventRecalculate EventKind = "recalculate"
)

// MarketEvent is a change applied to a live market, typically received from a feed.
// An event without a Book applies to every book listening on the feed.
type MarketEvent struct {
	Kind   EventKind `json:"kind"`
	Book   string    `json:"book,omitempty"`
	Name   string    `json:"name,omitempty"`
	Value  float64   `json:"value,omitempty"`
	Target string    `json:"target,omitempty"`
	Date   time.Time `json:"date,omitzero"`
}

// AppliesTo reports whether the event targets book.
func (e MarketEvent) AppliesTo(book string) bool {
	return e.Book == "" || e.Book == book
}
