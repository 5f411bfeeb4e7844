package predicate

import (
	"strings"
	"time"
)

// Record exposes a row to the in-memory evaluator
type Record interface {
	// Value returns the field value; ok is false when the field is null
	Value(field Field) (value any, ok bool)

	// Related returns the records reachable through a to-many relation
	Related(relation Relation) []Record
}

// Evaluate reports whether the record satisfies the predicate. It follows SQL
// semantics for nulls: any comparison against a null field is false.
func Evaluate(p Predicate, r Record) bool {
	switch node := p.(type) {
	case Constant:
		return node.Value
	case Conjunction:
		for _, term := range node.Terms {
			if !Evaluate(term, r) {
				return false
			}
		}
		return true
	case Disjunction:
		for _, term := range node.Terms {
			if Evaluate(term, r) {
				return true
			}
		}
		return false
	case Comparison:
		value, ok := r.Value(node.Field)
		if !ok {
			return false
		}
		cmp, ok := compareValues(value, node.Value)
		if !ok {
			return false
		}
		switch node.Op {
		case OpEq:
			return cmp == 0
		case OpLt:
			return cmp < 0
		case OpLe:
			return cmp <= 0
		case OpGt:
			return cmp > 0
		case OpGe:
			return cmp >= 0
		}
		return false
	case Range:
		value, ok := r.Value(node.Field)
		if !ok {
			return false
		}
		low, okLow := compareValues(value, node.From)
		high, okHigh := compareValues(value, node.To)
		return okLow && okHigh && low >= 0 && high <= 0
	case Substring:
		value, ok := r.Value(node.Field)
		if !ok {
			return false
		}
		text, ok := value.(string)
		if !ok {
			return false
		}
		return strings.Contains(strings.ToLower(text), strings.ToLower(node.Value))
	case Membership:
		value, ok := r.Value(node.Field)
		if !ok {
			return false
		}
		for _, candidate := range node.Values {
			if cmp, ok := compareValues(value, candidate); ok && cmp == 0 {
				return true
			}
		}
		return false
	case Nullity:
		_, ok := r.Value(node.Field)
		if node.Negate {
			return ok
		}
		return !ok
	case Join:
		for _, related := range r.Related(node.Relation) {
			if Evaluate(node.Where, related) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// compareValues orders two values of the same kind. ok is false when the
// kinds differ or are not comparable.
func compareValues(a, b any) (cmp int, ok bool) {
	a, b = normalize(a), normalize(b)

	switch x := a.(type) {
	case int64:
		y, ok := b.(int64)
		if !ok {
			return 0, false
		}
		switch {
		case x < y:
			return -1, true
		case x > y:
			return 1, true
		default:
			return 0, true
		}
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case time.Time:
		y, ok := b.(time.Time)
		if !ok {
			return 0, false
		}
		return x.Compare(y), true
	case bool:
		y, ok := b.(bool)
		if !ok || x != y {
			return 0, false
		}
		return 0, true
	default:
		return 0, false
	}
}
