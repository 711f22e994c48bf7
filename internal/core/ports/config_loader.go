package ports

import "go.trai.ch/quant/internal/core/domain"

// ConfigLoader defines the interface for loading book definitions.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the book at path and returns its validated definition.
	Load(path string) (*domain.Book, error)
}
