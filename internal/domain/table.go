package domain

import "regexp"

var tableNumberRegex = regexp.MustCompile(`^T\d+$`)

// ValidTableNumber reports whether code looks like a table code, e.g. T101.
func ValidTableNumber(code string) bool {
	return tableNumberRegex.MatchString(code)
}
