package domain

import "time"

// Valuation is the recorded outcome of valuing one instrument.
type Valuation struct {
	Instrument    string             `json:"instrument"`
	Status        ValuationStatus    `json:"status"`
	NPV           *float64           `json:"npv,omitempty"`
	ErrorEstimate *float64           `json:"error_estimate,omitempty"`
	Additional    map[string]float64 `json:"additional,omitempty"`
	Inputs        map[string]float64 `json:"inputs,omitempty"`
	Fingerprint   string             `json:"fingerprint,omitempty"`
	RunID         string             `json:"run_id,omitempty"`
	Error         string             `json:"error,omitempty"`
	Timestamp     time.Time          `json:"timestamp,omitzero"`
}

// SameOutcome reports whether v and other carry the same inputs and results.
func (v *Valuation) SameOutcome(other *Valuation) bool {
	if other == nil {
		return false
	}
	return v.Fingerprint == other.Fingerprint &&
		v.Error == other.Error &&
		equalFloat(v.NPV, other.NPV) &&
		equalFloat(v.ErrorEstimate, other.ErrorEstimate)
}

func equalFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Report collects the valuations of one book in one run.
type Report struct {
	Book       string      `json:"book"`
	RunID      string      `json:"run_id"`
	Date       time.Time   `json:"date"`
	Valuations []Valuation `json:"valuations"`
}

// Failed returns the valuations that failed.
func (r *Report) Failed() []Valuation {
	var out []Valuation
	for _, v := range r.Valuations {
		if v.Status == StatusFailed {
			out = append(out, v)
		}
	}
	return out
}
