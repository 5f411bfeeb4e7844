package predicate

import (
	"fmt"
	"strings"
)

// Direction is a sort direction
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order sorts by a single field
type Order struct {
	Field     Field
	Direction Direction
}

// Ordering is a list of sort keys, most significant first
type Ordering []Order

// Less reports whether a sorts before b. Null values sort first ascending.
func (o Ordering) Less(a, b Record) bool {
	for _, key := range o {
		va, okA := a.Value(key.Field)
		vb, okB := b.Value(key.Field)

		var cmp int
		switch {
		case !okA && !okB:
			cmp = 0
		case !okA:
			cmp = -1
		case !okB:
			cmp = 1
		default:
			cmp, _ = compareValues(va, vb)
		}

		if key.Direction == Desc {
			cmp = -cmp
		}
		if cmp != 0 {
			return cmp < 0
		}
	}
	return false
}

func (o Ordering) String() string {
	parts := make([]string, 0, len(o))
	for _, key := range o {
		parts = append(parts, fmt.Sprintf("%s %s", key.Field, key.Direction))
	}
	return strings.Join(parts, ", ")
}
