package ports

import "time"

// Hasher defines the interface for fingerprinting valuation inputs.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Fingerprint computes a stable digest of an instrument's market inputs at a given date.
	Fingerprint(instrument string, date time.Time, inputs map[string]float64) (string, error)
}
