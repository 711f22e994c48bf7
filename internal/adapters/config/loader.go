// Package config provides the book loader and runtime settings for quant.
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFilename is the book file looked up when Load is given a directory.
	DefaultFilename = "book.yaml"
	// DateLayout is the layout of every date in a book file.
	DateLayout = time.DateOnly
)

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader.
func NewLoader(log ports.Logger) *Loader {
	return &Loader{Logger: log}
}

// ResolvePath returns the book file for path. A directory is resolved to its book.yaml.
func ResolvePath(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, DefaultFilename)
	}
	return path
}

// Load reads the book at path. A directory is resolved to its book.yaml.
func (l *Loader) Load(path string) (*domain.Book, error) {
	book, version, err := Load(ResolvePath(path))
	if err != nil {
		return nil, err
	}
	if version == "" && l.Logger != nil {
		l.Logger.Warn("book " + book.Name + " does not declare a version")
	}
	return book, nil
}

// Load reads a book file from the given path and returns the validated book
// along with the declared file version.
func Load(path string) (*domain.Book, string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, "", zerr.With(zerr.Wrap(err, "failed to read book file"), "path", path)
	}

	var file Bookfile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, "", zerr.With(zerr.Wrap(err, "failed to parse book file"), "path", path)
	}

	book, err := toBook(&file, path)
	if err != nil {
		return nil, "", zerr.With(err, "path", path)
	}
	return book, file.Version, nil
}

func toBook(file *Bookfile, path string) (*domain.Book, error) {
	name := file.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	book := &domain.Book{
		Name:        name,
		Quotes:      make(map[string]float64, len(file.Quotes)),
		Derived:     make(map[string]domain.DerivedSpec, len(file.Derived)),
		Links:       make(map[string]domain.LinkSpec, len(file.Links)),
		Engines:     make(map[string]domain.EngineSpec, len(file.Engines)),
		Instruments: make(map[string]domain.InstrumentSpec, len(file.Instruments)),
	}

	if file.EvaluationDate != "" {
		date, err := parseDate(file.EvaluationDate, "evaluationDate")
		if err != nil {
			return nil, err
		}
		book.EvaluationDate = date
	}

	for name, v := range file.Quotes {
		book.Quotes[name] = v
	}

	for name, dto := range file.Derived {
		factor := 1.0
		if dto.Factor != nil {
			factor = *dto.Factor
		}
		book.Derived[name] = domain.DerivedSpec{
			Op:      dto.Op,
			Sources: dto.Sources,
			Factor:  factor,
			Offset:  dto.Offset,
		}
	}

	for name, dto := range file.Links {
		observe := true
		if dto.Observe != nil {
			observe = *dto.Observe
		}
		book.Links[name] = domain.LinkSpec{Target: dto.Target, Observe: observe}
	}

	for name, dto := range file.Engines {
		book.Engines[name] = domain.EngineSpec(dto)
	}

	for name, dto := range file.Instruments {
		quantity := 1.0
		if dto.Quantity != nil {
			quantity = *dto.Quantity
		}
		spec := domain.InstrumentSpec{Engine: dto.Engine, Quantity: quantity}
		if dto.Maturity != "" {
			maturity, err := parseDate(dto.Maturity, "instruments."+name+".maturity")
			if err != nil {
				return nil, err
			}
			spec.Maturity = maturity
		}
		book.Instruments[name] = spec
	}

	if len(book.Instruments) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrNoInstruments, "invalid book"), "book", book.Name)
	}
	if _, err := book.Graph(); err != nil {
		return nil, zerr.With(err, "book", book.Name)
	}
	return book, nil
}

func parseDate(s, field string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		err = zerr.With(zerr.Wrap(ErrInvalidDate, "invalid date"), "field", field)
		return time.Time{}, zerr.With(err, "value", s)
	}
	return t, nil
}
