package inmemdb

import (
	"sort"
	"strings"
	"sync"

	"github.com/trezcool/elevate/core"
	"github.com/trezcool/elevate/core/profile"
	"github.com/trezcool/elevate/core/subject"
)

type (
	DB struct {
		profile *profileTable
		file    *fileTable
	}

	profileTable struct {
		sync.RWMutex
		table map[string]*profile.Profile
	}

	fileTable struct {
		sync.RWMutex
		table map[string]*subject.File
	}
)

func Open() *DB {
	return &DB{
		profile: &profileTable{table: make(map[string]*profile.Profile)},
		file:    &fileTable{table: make(map[string]*subject.File)},
	}
}

// less compares two values of the same field.
type less func(i, j int) (lt, eq bool)

func compareStrings(a, b string) (bool, bool) {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return a < b, a == b
}

// orderBy sorts n elements by `ordering`; fields maps a column name to its comparator.
// Elements are ordered by `fallback` when no ordering applies.
func orderBy(n int, swap func(i, j int), fields map[string]less, fallback string, ordering []core.DBOrdering) {
	if len(ordering) == 0 {
		ordering = []core.DBOrdering{{Field: fallback, Ascending: true}}
	}
	sort.Stable(sorter{n: n, swap: swap, less: func(i, j int) bool {
		for _, ord := range ordering {
			cmp, ok := fields[ord.Field]
			if !ok {
				continue
			}
			lt, eq := cmp(i, j)
			if eq {
				continue
			}
			if ord.Ascending {
				return lt
			}
			return !lt
		}
		return false
	}})
}

type sorter struct {
	n    int
	swap func(i, j int)
	less func(i, j int) bool
}

func (s sorter) Len() int           { return s.n }
func (s sorter) Swap(i, j int)      { s.swap(i, j) }
func (s sorter) Less(i, j int) bool { return s.less(i, j) }
