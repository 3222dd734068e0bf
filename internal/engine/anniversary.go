package engine

import "github.com/tartampluch/go-dateandtime/date"

// Anniversary is a lightweight record of one contact's birthday, ready for
// listing. It decouples callers from the vCard parsing logic.
type Anniversary struct {
	// UID is a unique identifier (hash) used for stability in lists.
	UID string

	// Name is the display name (Formatted Name or Structured Name).
	Name string

	// DateOfBirth is the parsed date. Without a known year it sits in
	// config.DefaultLeapYear.
	DateOfBirth date.Date

	// YearKnown indicates if the vCard contained a year or just --MM-DD.
	YearKnown bool

	// NextOccurrence is the birthday on or after today. It is the sort key.
	NextOccurrence date.Date

	// AgeNext is the age reached at NextOccurrence. Zero when the year is unknown.
	AgeNext int64

	// DaysUntil counts the days from today to NextOccurrence; 0 means today.
	DaysUntil int64
}

// newAnniversary computes the next occurrence of birth on or after today.
// A 29 February birthday falls on 28 February in common years.
// Someone not yet born has the birth itself as next occurrence.
func newAnniversary(today, birth date.Date, yearKnown bool) Anniversary {
	years := int64(today.Year()) - int64(birth.Year())
	if yearKnown && years < 0 {
		years = 0
	}
	next := birth.AddYears(years)
	if next.Before(today) {
		years++
		next = birth.AddYears(years)
	}

	a := Anniversary{
		DateOfBirth:    birth,
		YearKnown:      yearKnown,
		NextOccurrence: next,
		DaysUntil:      next.DiffInDays(today),
	}
	if yearKnown {
		a.AgeNext = years
	}
	return a
}
