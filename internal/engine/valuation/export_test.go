package valuation

import "time"

// SetClock replaces the clock used to timestamp valuations.
// This is exported for testing purposes only.
func (v *Valuer) SetClock(now func() time.Time) {
	v.now = now
}
