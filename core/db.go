package core

import "strings"

type DBOrdering struct {
	Field     string
	Ascending bool
}

// ParseOrdering parses "field" (ascending) or "-field" (descending).
// ok is false when the field is not one of `allowed`.
func ParseOrdering(s string, allowed ...string) (ord DBOrdering, ok bool) {
	s = CleanString(s, true /* lower */)
	ord.Ascending = !strings.HasPrefix(s, "-")
	ord.Field = strings.TrimPrefix(s, "-")
	return ord, StringInSlice(ord.Field, allowed)
}

func (ord DBOrdering) String() string {
	direction := "DESC"
	if ord.Ascending {
		direction = "ASC"
	}
	return ord.Field + " " + direction
}
