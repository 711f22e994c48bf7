package ports

import "go.trai.ch/quant/internal/core/domain"

// ValuationStore defines the interface for storing and retrieving valuations.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ValuationStore interface {
	// Get retrieves the last valuation of an instrument in a book.
	// Returns nil, nil if not found.
	Get(book, instrument string) (*domain.Valuation, error)

	// Put stores the valuation under the given book.
	Put(book string, v domain.Valuation) error
}
