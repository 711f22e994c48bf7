package console

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*JSONRenderer)(nil)

// JSONRenderer writes each report as one line of JSON.
type JSONRenderer struct {
	enc *jsoniter.Encoder
}

// NewJSON creates a JSONRenderer writing to w.
func NewJSON(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w)}
}

// Render encodes report.
func (r *JSONRenderer) Render(report *domain.Report) error {
	if err := r.enc.Encode(report); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to encode report"), "book", report.Book)
	}
	return nil
}
