package wiring_test

import (
	"context"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quant/internal/adapters/config"
	"go.trai.ch/quant/internal/app"
	"go.trai.ch/quant/internal/core/ports"
	"go.trai.ch/quant/internal/engine/valuation"
	_ "go.trai.ch/quant/internal/wiring"
)

// TestGraftDependencies ensures that the dependency injection graph is valid
// at compile/test time. It checks that every node declaring a dependency
// actually uses it, and every used dependency is declared.
func TestGraftDependencies(t *testing.T) {
	// graft.AssertDepsValid infers the dependency ID from the package name of
	// the type passed to Dep[T]. Hasher, Store, Logger and the other adapters
	// all resolve to "ports", so the check cannot tell them apart.
	t.Skip("Skipping Graft validation due to static analysis limitation with shared ports package")
	graft.AssertDepsValid(t, "../../internal")
}

func TestGraftResolves(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvTelemetry, config.TelemetryOff)

	components, _, err := graft.ExecuteFor[*app.Components](context.Background())
	require.NoError(t, err)
	require.NotNil(t, components.App)
	t.Cleanup(func() { require.NoError(t, components.Close()) })

	valuer, _, err := graft.ExecuteFor[*valuation.Valuer](context.Background())
	require.NoError(t, err)
	require.NotNil(t, valuer)

	watcher, _, err := graft.ExecuteFor[ports.BookWatcher](context.Background())
	require.NoError(t, err)
	require.NotNil(t, watcher)
}
