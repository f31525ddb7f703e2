// Package datefmt holds the date presentation helpers shared by
// notifications and detail views.
package datefmt

import "time"

const (
	layoutFull = "02 Jan 2006, 15:04"
	layoutDay  = "02 Jan 2006"
)

// Format renders a timestamp as "02 Jan 2006, 15:04"
func Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layoutFull)
}

// FormatDay renders a date as "02 Jan 2006", or "-" when zero
func FormatDay(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(layoutDay)
}

// Age is an age broken into whole years and remaining months
type Age struct {
	Years  int `json:"years"`
	Months int `json:"months"`
}

// CalcAge computes the age at now for a date of birth. A nil date of birth
// yields nil.
func CalcAge(dateOfBirth *time.Time, now time.Time) *Age {
	if dateOfBirth == nil {
		return nil
	}

	years := now.Year() - dateOfBirth.Year()
	months := int(now.Month()) - int(dateOfBirth.Month())

	if months < 0 {
		years--
		months += 12
	}

	return &Age{Years: years, Months: months}
}
