// Package console renders valuation reports to a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"go.trai.ch/quant/internal/core/domain"
	"go.trai.ch/quant/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer prints one line per valuation followed by a status summary.
type Renderer struct {
	w      io.Writer
	header *color.Color
	ok     *color.Color
	muted  *color.Color
	warn   *color.Color
	failed *color.Color
}

// New creates a Renderer writing to w. Colors are only emitted when colored is true.
func New(w io.Writer, colored bool) *Renderer {
	r := &Renderer{
		w:      w,
		header: color.New(color.Bold),
		ok:     color.New(color.FgGreen),
		muted:  color.New(color.FgCyan),
		warn:   color.New(color.FgYellow),
		failed: color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{r.header, r.ok, r.muted, r.warn, r.failed} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// NewStdout creates a Renderer on the process stdout, colored when the
// terminal supports it and NO_COLOR is unset.
func NewStdout() *Renderer {
	return New(os.Stdout, !color.NoColor)
}

// Render writes report to the renderer's writer.
func (r *Renderer) Render(report *domain.Report) error {
	var b strings.Builder

	r.header.Fprintf(&b, "%s", report.Book) //nolint:errcheck // strings.Builder never fails
	if !report.Date.IsZero() {
		fmt.Fprintf(&b, "  %s", report.Date.Format("2006-01-02"))
	}
	if report.RunID != "" {
		fmt.Fprintf(&b, "  run %s", shortID(report.RunID))
	}
	b.WriteByte('\n')

	width := 0
	for _, v := range report.Valuations {
		width = max(width, len(v.Instrument))
	}

	counts := make(map[domain.ValuationStatus]int)
	for _, v := range report.Valuations {
		counts[v.Status]++
		r.line(&b, width, v)
	}

	b.WriteString(summary(counts))
	b.WriteByte('\n')

	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write report"), "book", report.Book)
	}
	return nil
}

func (r *Renderer) line(b *strings.Builder, width int, v domain.Valuation) {
	switch v.Status {
	case domain.StatusFailed:
		r.failed.Fprint(b, "  ✗ ") //nolint:errcheck // strings.Builder never fails
		fmt.Fprintf(b, "%-*s  %s\n", width, v.Instrument, v.Error)
	case domain.StatusExpired:
		r.muted.Fprint(b, "  ○ ") //nolint:errcheck // strings.Builder never fails
		fmt.Fprintf(b, "%-*s  expired\n", width, v.Instrument)
	case domain.StatusUnchanged:
		r.muted.Fprint(b, "  = ") //nolint:errcheck // strings.Builder never fails
		fmt.Fprintf(b, "%-*s  %s\n", width, v.Instrument, amount(v))
	case domain.StatusCompleted:
		r.ok.Fprint(b, "  ✓ ") //nolint:errcheck // strings.Builder never fails
		fmt.Fprintf(b, "%-*s  %s\n", width, v.Instrument, amount(v))
	default:
		r.warn.Fprint(b, "  … ") //nolint:errcheck // strings.Builder never fails
		fmt.Fprintf(b, "%-*s  %s\n", width, v.Instrument, v.Status)
	}
}

func amount(v domain.Valuation) string {
	if v.NPV == nil {
		return "-"
	}
	s := fmt.Sprintf("%14.4f", *v.NPV)
	if v.ErrorEstimate != nil {
		s += fmt.Sprintf(" ± %.4f", *v.ErrorEstimate)
	}
	return s
}

func summary(counts map[domain.ValuationStatus]int) string {
	var parts []string
	for _, s := range []domain.ValuationStatus{
		domain.StatusCompleted,
		domain.StatusUnchanged,
		domain.StatusExpired,
		domain.StatusFailed,
	} {
		if n := counts[s]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, s))
		}
	}
	if len(parts) == 0 {
		return "nothing to value"
	}
	return strings.Join(parts, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
