// Package app implements the application layer for quant.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"
	"slices"

	"go.trai.ch/quant/internal/adapters/console" //nolint:depguard // Report rendering is chosen by the app
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/core/ports"
	"go.trai.ch/quant/internal/engine/valuation"
	"go.trai.ch/quant/internal/market"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Format selects how reports are rendered.
type Format string

const (
	// FormatText renders a colored table.
	FormatText Format = "text"
	// FormatJSON renders one JSON document per report.
	FormatJSON Format = "json"
)

// PriceOptions configures Price and Watch.
type PriceOptions struct {
	// Instruments limits valuation to these names. Empty means every instrument.
	Instruments []string
	Format      Format
	// Reload rebuilds the market from disk whenever the book file changes.
	// Only Watch honors it.
	Reload bool
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	valuer       *valuation.Valuer
	feed         ports.QuoteFeed
	watcher      ports.BookWatcher
	logger       ports.Logger
	out          io.Writer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	valuer *valuation.Valuer,
	feed ports.QuoteFeed,
	watcher ports.BookWatcher,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		valuer:       valuer,
		feed:         feed,
		watcher:      watcher,
		logger:       logger,
	}
}

// WithOutput redirects rendered reports to w. Output to anything but the
// terminal is never colored.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

func (a *App) renderer(format Format) (ports.Renderer, error) {
	switch format {
	case FormatText, "":
		if a.out == nil {
			return console.NewStdout(), nil
		}
		return console.New(a.out, false), nil
	case FormatJSON:
		if a.out == nil {
			return console.NewJSON(os.Stdout), nil
		}
		return console.NewJSON(a.out), nil
	default:
		return nil, zerr.With(zerr.Wrap(ErrUnknownFormat, "cannot render report"), "format", string(format))
	}
}

func (a *App) load(path string) (*domain.Book, error) {
	book, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load configuration"), "path", path)
	}
	return book, nil
}

// Price values the books at paths concurrently and renders one report per
// book in the order given. An empty paths list prices the book in the
// current directory. Instrument failures are rendered and returned as an
// error matching domain.ErrValuationFailed once every book has been priced.
func (a *App) Price(ctx context.Context, paths []string, opts PriceOptions) error {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	renderer, err := a.renderer(opts.Format)
	if err != nil {
		return err
	}

	books := make([]*domain.Book, 0, len(paths))
	for _, path := range paths {
		book, err := a.load(path)
		if err != nil {
			return err
		}
		books = append(books, book)
	}

	reports := make([]*domain.Report, len(books))
	failures := make([]error, len(books))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, book := range books {
		g.Go(func() error {
			m, err := market.New(book)
			if err != nil {
				return zerr.Wrap(err, "failed to build market")
			}
			report, err := a.valuer.Value(gctx, m, opts.Instruments)
			reports[i] = report
			if errors.Is(err, domain.ErrValuationFailed) {
				failures[i] = err
				return nil
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, report := range reports {
		if err := renderer.Render(report); err != nil {
			return err
		}
	}
	return errors.Join(failures...)
}

// Watch prices the book at path, then applies every event received from the
// quote feed and reprices the instruments the event invalidated. With
// opts.Reload set, edits to the book file rebuild the market and reprice
// everything. It returns nil once ctx is cancelled.
func (a *App) Watch(ctx context.Context, path string, opts PriceOptions) error {
	renderer, err := a.renderer(opts.Format)
	if err != nil {
		return err
	}

	book, err := a.load(path)
	if err != nil {
		return err
	}
	m, err := market.New(book)
	if err != nil {
		return zerr.Wrap(err, "failed to build market")
	}

	sub, err := a.feed.Subscribe(ctx)
	if err != nil {
		return zerr.Wrap(err, "failed to subscribe to quote feed")
	}
	defer sub.Close() //nolint:errcheck // Close never fails

	var reloads <-chan string
	if opts.Reload {
		reloads, err = a.watcher.Watch(ctx, path)
		if err != nil {
			return zerr.Wrap(err, "failed to watch book")
		}
	}

	if err := a.reprice(ctx, m, opts.Instruments, renderer); err != nil {
		return ignoreCancel(ctx, err)
	}
	a.logger.Info("watching book " + m.Name())

	events, errs := sub.Events(), sub.Errors()
	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			a.logger.Error(err)
		case <-reloads:
			reloaded, err := a.rebuild(path)
			if err != nil {
				a.logger.Error(err)
				continue
			}
			m = reloaded
			a.logger.Info("reloaded book " + m.Name())
			if err := a.reprice(ctx, m, opts.Instruments, renderer); err != nil {
				return ignoreCancel(ctx, err)
			}
		case ev, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return zerr.With(zerr.Wrap(ErrFeedClosed, "stopped watching"), "book", m.Name())
			}
			if !ev.AppliesTo(m.Name()) {
				continue
			}
			if err := m.Apply(ev); err != nil {
				a.logger.Error(zerr.With(zerr.Wrap(err, "failed to apply market event"), "book", m.Name()))
				continue
			}
			stale := staleOf(m, ev, opts.Instruments)
			if len(stale) == 0 {
				continue
			}
			if err := a.reprice(ctx, m, stale, renderer); err != nil {
				return ignoreCancel(ctx, err)
			}
		}
	}
}

// rebuild loads the book at path into a fresh market.
func (a *App) rebuild(path string) (*market.Market, error) {
	book, err := a.load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to reload book")
	}
	m, err := market.New(book)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to rebuild market"), "path", path)
	}
	return m, nil
}

// reprice values names and renders the report. Instrument failures are
// logged; anything else is returned.
func (a *App) reprice(ctx context.Context, m *market.Market, names []string, renderer ports.Renderer) error {
	report, err := a.valuer.Value(ctx, m, names)
	if report != nil && len(report.Valuations) > 0 {
		if rerr := renderer.Render(report); rerr != nil {
			return rerr
		}
	}
	if errors.Is(err, domain.ErrValuationFailed) {
		a.logger.Error(err)
		return nil
	}
	return err
}

// staleOf returns the instruments to reprice after ev was applied. A
// recalculated instrument is fresh again but its report is still due.
func staleOf(m *market.Market, ev domain.MarketEvent, filter []string) []string {
	stale := m.Stale()
	if ev.Kind == domain.EventRecalculate &&
		slices.Contains(m.Instruments(), ev.Name) &&
		!slices.Contains(stale, ev.Name) {
		stale = append(stale, ev.Name)
		slices.Sort(stale)
	}
	if len(filter) == 0 {
		return stale
	}
	return slices.DeleteFunc(stale, func(name string) bool {
		return !slices.Contains(filter, name)
	})
}

func ignoreCancel(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// Publish broadcasts a market event on the quote feed.
func (a *App) Publish(ctx context.Context, ev domain.MarketEvent) error {
	if err := a.feed.Publish(ctx, ev); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to publish market event"), "kind", string(ev.Kind))
	}
	a.logger.Info("published " + string(ev.Kind) + " event")
	return nil
}
