package ports

import "go.trai.ch/quant/internal/core/domain"

// Renderer presents valuation reports to the user.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	Render(report *domain.Report) error
}
