package domain

import "time"

// EvaluationDate is the observable date at which instruments are valued.
// Instruments whose expiry depends on it register with it.
type EvaluationDate struct {
	Notifier
	date time.Time
}

// NewEvaluationDate returns an evaluation date set to the day containing t.
func NewEvaluationDate(t time.Time) *EvaluationDate {
	return &EvaluationDate{date: truncateDay(t)}
}

// Date returns the current evaluation date.
func (d *EvaluationDate) Date() time.Time {
	return d.date
}

// Set moves the evaluation date, notifying observers if the day changed.
func (d *EvaluationDate) Set(t time.Time) {
	day := truncateDay(t)
	if day.Equal(d.date) {
		return
	}
	d.date = day
	d.Publish()
}

func truncateDay(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}
