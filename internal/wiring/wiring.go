// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/quant/internal/adapters/cas"
	_ "go.trai.ch/quant/internal/adapters/config"
	_ "go.trai.ch/quant/internal/adapters/fs"
	_ "go.trai.ch/quant/internal/adapters/logger"
	_ "go.trai.ch/quant/internal/adapters/redisfeed"
	_ "go.trai.ch/quant/internal/adapters/telemetry"
	_ "go.trai.ch/quant/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/quant/internal/app"
	_ "go.trai.ch/quant/internal/engine/valuation"
)
