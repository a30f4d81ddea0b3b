package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// RevenueDatum is the daily aggregate of billable orders.
type RevenueDatum struct {
	Date       string          `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int             `json:"orderCount"`
}

// DateRange is an inclusive range of calendar days in Location.
type DateRange struct {
	Start    time.Time
	End      time.Time
	Location *time.Location
}

// ParseDateRange parses two YYYY-MM-DD dates in loc.
func ParseDateRange(start, end string, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}

	s, err := time.ParseInLocation(DateLayout, start, loc)
	if err != nil {
		return DateRange{}, ValidationError{Field: "start", Message: "start must be a YYYY-MM-DD date"}
	}
	e, err := time.ParseInLocation(DateLayout, end, loc)
	if err != nil {
		return DateRange{}, ValidationError{Field: "end", Message: "end must be a YYYY-MM-DD date"}
	}
	if e.Before(s) {
		return DateRange{}, ValidationError{Field: "end", Message: "end must not be before start"}
	}

	return DateRange{Start: s, End: e, Location: loc}, nil
}

// Contains reports whether t falls on or after the first day's midnight and
// before the midnight that ends the last day.
func (r DateRange) Contains(t time.Time) bool {
	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}

	start := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, loc)
	end := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	return !t.Before(start) && t.Before(end)
}
