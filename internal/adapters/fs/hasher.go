package fs

import (
	"encoding/binary"
	"fmt"
	"maps"
	"math"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/quant/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher fingerprints valuation inputs with XXHash.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint computes a single hash representing an instrument, the date it
// is valued at and the market inputs it reads. Inputs are hashed in key order
// so the result does not depend on map iteration.
func (h *Hasher) Fingerprint(instrument string, date time.Time, inputs map[string]float64) (string, error) {
	if instrument == "" {
		return "", zerr.New("cannot fingerprint an unnamed instrument")
	}

	hasher := xxhash.New()

	_, _ = hasher.WriteString(instrument)
	_, _ = hasher.Write([]byte{0})

	if !date.IsZero() {
		_, _ = hasher.WriteString(date.UTC().Format(time.DateOnly))
	}
	_, _ = hasher.Write([]byte{0})

	if err := h.hashInputs(inputs, hasher); err != nil {
		return "", zerr.With(err, "instrument", instrument)
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashInputs(inputs map[string]float64, hasher *xxhash.Digest) error {
	for _, k := range slices.Sorted(maps.Keys(inputs)) {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		if err := binary.Write(hasher, binary.LittleEndian, math.Float64bits(inputs[k])); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write input to digest"), "input", k)
		}
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
	return nil
}
