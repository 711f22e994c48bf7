package commands_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quant/cmd/quant/commands"
	"go.trai.ch/quant/internal/adapters/cas"
	"go.trai.ch/quant/internal/adapters/fs"
	"go.trai.ch/quant/internal/adapters/telemetry"
	"go.trai.ch/quant/internal/app"
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/core/ports/mocks"
	"go.trai.ch/quant/internal/engine/valuation"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader  *mocks.MockConfigLoader
	feed    *mocks.MockQuoteFeed
	watcher *mocks.MockBookWatcher
	logger  *mocks.MockLogger
	out     *bytes.Buffer
	cli     *commands.CLI
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	store, err := cas.NewStore(filepath.Join(t.TempDir(), "valuations.json"))
	require.NoError(t, err)

	f := &fixture{
		loader:  mocks.NewMockConfigLoader(ctrl),
		feed:    mocks.NewMockQuoteFeed(ctrl),
		watcher: mocks.NewMockBookWatcher(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
		out:     &bytes.Buffer{},
	}
	valuer := valuation.New(fs.NewHasher(), store, telemetry.NewNoOp())
	a := app.New(f.loader, valuer, f.feed, f.watcher, f.logger).WithOutput(f.out)
	f.cli = commands.New(a)
	return f
}

func book(name string) *domain.Book {
	return &domain.Book{
		Name:           name,
		EvaluationDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		Quotes:         map[string]float64{"spot": 42.5},
		Engines:        map[string]domain.EngineSpec{"mtm": {Kind: domain.EngineMarkToMarket, Price: "spot"}},
		Instruments: map[string]domain.InstrumentSpec{
			"equity": {Engine: "mtm", Quantity: 1},
			"hedge":  {Engine: "mtm", Quantity: -1},
		},
	}
}

func TestPrice_Default(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(book("desk"), nil).Times(1)

	f.cli.SetArgs([]string{"price"})
	err := f.cli.Execute(context.Background())
	require.NoError(t, err)

	assert.Contains(t, f.out.String(), "2 completed")
}

func TestPrice_Flags(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("desk.yaml").Return(book("desk"), nil).Times(1)
	f.loader.EXPECT().Load("other.yaml").Return(book("other"), nil).Times(1)

	f.cli.SetArgs([]string{"price", "-c", "desk.yaml", "-c", "other.yaml", "--format", "json", "hedge"})
	err := f.cli.Execute(context.Background())
	require.NoError(t, err)

	out := f.out.String()
	assert.Contains(t, out, `"book":"desk"`)
	assert.Contains(t, out, `"book":"other"`)
	assert.Contains(t, out, `"npv":-42.5`)
	assert.NotContains(t, out, `"instrument":"equity"`)
}

func TestPrice_UnknownFormat(t *testing.T) {
	f := newFixture(t)

	f.cli.SetArgs([]string{"price", "-o", "yaml"})
	err := f.cli.Execute(context.Background())
	require.ErrorIs(t, err, app.ErrUnknownFormat)
}

func TestWatch_Cancelled(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	sub := mocks.NewMockSubscription(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	f.loader.EXPECT().Load("desk.yaml").Return(book("desk"), nil)
	f.feed.EXPECT().Subscribe(gomock.Any()).Return(sub, nil)
	sub.EXPECT().Events().Return((<-chan domain.MarketEvent)(make(chan domain.MarketEvent)))
	sub.EXPECT().Errors().Return((<-chan error)(make(chan error)))
	sub.EXPECT().Close().Return(nil)
	f.logger.EXPECT().Info("watching book desk").Do(func(string) { cancel() })

	f.cli.SetArgs([]string{"watch", "-c", "desk.yaml"})
	err := f.cli.Execute(ctx)
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "2 completed")
}

func TestWatch_Reload(t *testing.T) {
	f := newFixture(t)
	ctrl := gomock.NewController(t)
	sub := mocks.NewMockSubscription(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	f.loader.EXPECT().Load(".").Return(book("desk"), nil)
	f.feed.EXPECT().Subscribe(gomock.Any()).Return(sub, nil)
	f.watcher.EXPECT().Watch(gomock.Any(), ".").Return((<-chan string)(make(chan string)), nil)
	sub.EXPECT().Events().Return((<-chan domain.MarketEvent)(make(chan domain.MarketEvent)))
	sub.EXPECT().Errors().Return((<-chan error)(make(chan error)))
	sub.EXPECT().Close().Return(nil)
	f.logger.EXPECT().Info("watching book desk").Do(func(string) { cancel() })

	f.cli.SetArgs([]string{"watch", "--reload", "equity"})
	err := f.cli.Execute(ctx)
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "1 completed")
}

func TestPublish(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want domain.MarketEvent
	}{
		{
			name: "Quote",
			args: []string{"publish", "quote", "spot", "43.25"},
			want: domain.MarketEvent{Kind: domain.EventQuote, Name: "spot", Value: 43.25},
		},
		{
			name: "Quote For Book",
			args: []string{"publish", "--book", "desk", "quote", "spot", "1"},
			want: domain.MarketEvent{Kind: domain.EventQuote, Book: "desk", Name: "spot", Value: 1},
		},
		{
			name: "Link",
			args: []string{"publish", "link", "px", "alt"},
			want: domain.MarketEvent{Kind: domain.EventLink, Name: "px", Target: "alt"},
		},
		{
			name: "Reset Link",
			args: []string{"publish", "link", "px"},
			want: domain.MarketEvent{Kind: domain.EventLink, Name: "px"},
		},
		{
			name: "Date",
			args: []string{"publish", "date", "2026-03-20"},
			want: domain.MarketEvent{Kind: domain.EventDate, Date: time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)},
		},
		{
			name: "Freeze",
			args: []string{"publish", "freeze", "equity"},
			want: domain.MarketEvent{Kind: domain.EventFreeze, Name: "equity"},
		},
		{
			name: "Unfreeze",
			args: []string{"publish", "unfreeze", "equity"},
			want: domain.MarketEvent{Kind: domain.EventUnfreeze, Name: "equity"},
		},
		{
			name: "Recalculate",
			args: []string{"publish", "recalculate", "equity"},
			want: domain.MarketEvent{Kind: domain.EventRecalculate, Name: "equity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.feed.EXPECT().Publish(gomock.Any(), tt.want).Return(nil).Times(1)
			f.logger.EXPECT().Info(gomock.Any()).Times(1)

			f.cli.SetArgs(tt.args)
			require.NoError(t, f.cli.Execute(context.Background()))
		})
	}
}

func TestPublish_InvalidArgs(t *testing.T) {
	for _, args := range [][]string{
		{"publish", "quote", "spot", "abc"},
		{"publish", "quote", "spot"},
		{"publish", "date", "20/03/2026"},
		{"publish", "link"},
		{"publish", "recalculate"},
	} {
		f := newFixture(t)
		f.cli.SetArgs(args)
		assert.Error(t, f.cli.Execute(context.Background()), "args %v", args)
	}
}
