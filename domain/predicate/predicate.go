// Package predicate holds a small boolean expression language over ledger
// transaction fields. Trees are built with the combinators below and lowered
// by a query executor, either to SQL or to the in-memory Evaluate.
package predicate

import (
	"fmt"
	"strings"
	"time"
)

// Field names a transaction attribute a predicate can constrain
type Field string

const (
	FieldID              Field = "id"
	FieldAmount          Field = "amount"
	FieldDate            Field = "date"
	FieldName            Field = "name"
	FieldDescription     Field = "description"
	FieldAccount         Field = "account"
	FieldCategory        Field = "category"
	FieldCategoryName    Field = "category.name"
	FieldRepeatingOption Field = "repeatingOption"
	FieldTransferAccount Field = "transferAccount"

	// Fields of a joined tag, only valid inside JoinAny(RelationTags, ...)
	FieldTagID   Field = "tag.id"
	FieldTagName Field = "tag.name"
)

// Relation names a to-many association reachable through JoinAny
type Relation string

const RelationTags Relation = "tags"

// Operator is a binary comparison
type Operator string

const (
	OpEq Operator = "="
	OpLt Operator = "<"
	OpLe Operator = "<="
	OpGt Operator = ">"
	OpGe Operator = ">="
)

// Predicate is a node of a boolean expression tree
type Predicate interface {
	fmt.Stringer
	node()
}

// Constant always evaluates to Value
type Constant struct {
	Value bool
}

// Conjunction is true when every term is true
type Conjunction struct {
	Terms []Predicate
}

// Disjunction is true when at least one term is true
type Disjunction struct {
	Terms []Predicate
}

// Comparison compares a field against a value. A null field never matches.
type Comparison struct {
	Field Field
	Op    Operator
	Value any
}

// Range matches a field inside [From, To], both ends inclusive
type Range struct {
	Field Field
	From  any
	To    any
}

// Substring is a case-insensitive "contains" match on a text field
type Substring struct {
	Field Field
	Value string
}

// Membership matches a field equal to one of Values
type Membership struct {
	Field  Field
	Values []any
}

// Nullity matches a field that is null, or not null when Negate is set
type Nullity struct {
	Field  Field
	Negate bool
}

// Join matches when at least one associated record satisfies Where
type Join struct {
	Relation Relation
	Where    Predicate
}

func (Constant) node()    {}
func (Conjunction) node() {}
func (Disjunction) node() {}
func (Comparison) node()  {}
func (Range) node()       {}
func (Substring) node()   {}
func (Membership) node()  {}
func (Nullity) node()     {}
func (Join) node()        {}

// True matches every transaction
func True() Predicate { return Constant{Value: true} }

// False matches nothing
func False() Predicate { return Constant{Value: false} }

// And combines terms with a logical AND. Constant terms are folded away and
// nested conjunctions are flattened; an empty conjunction is True.
func And(terms ...Predicate) Predicate {
	flat := make([]Predicate, 0, len(terms))
	for _, term := range terms {
		switch t := term.(type) {
		case nil:
			continue
		case Constant:
			if !t.Value {
				return False()
			}
		case Conjunction:
			flat = append(flat, t.Terms...)
		default:
			flat = append(flat, t)
		}
	}

	switch len(flat) {
	case 0:
		return True()
	case 1:
		return flat[0]
	default:
		return Conjunction{Terms: flat}
	}
}

// Or combines terms with a logical OR. Constant terms are folded away and
// nested disjunctions are flattened; an empty disjunction is False.
func Or(terms ...Predicate) Predicate {
	flat := make([]Predicate, 0, len(terms))
	for _, term := range terms {
		switch t := term.(type) {
		case nil:
			continue
		case Constant:
			if t.Value {
				return True()
			}
		case Disjunction:
			flat = append(flat, t.Terms...)
		default:
			flat = append(flat, t)
		}
	}

	switch len(flat) {
	case 0:
		return False()
	case 1:
		return flat[0]
	default:
		return Disjunction{Terms: flat}
	}
}

// Eq matches field == value
func Eq(field Field, value any) Predicate {
	return Comparison{Field: field, Op: OpEq, Value: normalize(value)}
}

// Less matches field < value
func Less(field Field, value any) Predicate {
	return Comparison{Field: field, Op: OpLt, Value: normalize(value)}
}

// LessOrEqual matches field <= value
func LessOrEqual(field Field, value any) Predicate {
	return Comparison{Field: field, Op: OpLe, Value: normalize(value)}
}

// Greater matches field > value
func Greater(field Field, value any) Predicate {
	return Comparison{Field: field, Op: OpGt, Value: normalize(value)}
}

// GreaterOrEqual matches field >= value
func GreaterOrEqual(field Field, value any) Predicate {
	return Comparison{Field: field, Op: OpGe, Value: normalize(value)}
}

// Between matches from <= field <= to
func Between(field Field, from, to any) Predicate {
	return Range{Field: field, From: normalize(from), To: normalize(to)}
}

// Contains matches a case-insensitive substring of a text field
func Contains(field Field, value string) Predicate {
	return Substring{Field: field, Value: value}
}

// In matches a field equal to any of the values. No values matches nothing.
func In[T any](field Field, values ...T) Predicate {
	if len(values) == 0 {
		return False()
	}
	normalized := make([]any, 0, len(values))
	for _, v := range values {
		normalized = append(normalized, normalize(v))
	}
	return Membership{Field: field, Values: normalized}
}

// IsNull matches a field without a value
func IsNull(field Field) Predicate {
	return Nullity{Field: field}
}

// NotNull matches a field with a value
func NotNull(field Field) Predicate {
	return Nullity{Field: field, Negate: true}
}

// JoinAny matches when at least one associated record satisfies where
func JoinAny(relation Relation, where Predicate) Predicate {
	if c, ok := where.(Constant); ok && !c.Value {
		return False()
	}
	return Join{Relation: relation, Where: where}
}

// normalize widens integer kinds to int64 and drops the clock part of dates
func normalize(value any) any {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case time.Time:
		return time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
	default:
		return value
	}
}

func (c Constant) String() string {
	if c.Value {
		return "TRUE"
	}
	return "FALSE"
}

func (c Conjunction) String() string { return joinTerms(c.Terms, " AND ") }

func (d Disjunction) String() string { return joinTerms(d.Terms, " OR ") }

func (c Comparison) String() string {
	return fmt.Sprintf("%s %s %s", c.Field, c.Op, formatValue(c.Value))
}

func (r Range) String() string {
	return fmt.Sprintf("%s BETWEEN %s AND %s", r.Field, formatValue(r.From), formatValue(r.To))
}

func (s Substring) String() string {
	return fmt.Sprintf("%s CONTAINS %q", s.Field, s.Value)
}

func (m Membership) String() string {
	values := make([]string, 0, len(m.Values))
	for _, v := range m.Values {
		values = append(values, formatValue(v))
	}
	return fmt.Sprintf("%s IN (%s)", m.Field, strings.Join(values, ", "))
}

func (n Nullity) String() string {
	if n.Negate {
		return fmt.Sprintf("%s IS NOT NULL", n.Field)
	}
	return fmt.Sprintf("%s IS NULL", n.Field)
}

func (j Join) String() string {
	return fmt.Sprintf("ANY %s (%s)", j.Relation, j.Where)
}

func joinTerms(terms []Predicate, sep string) string {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		parts = append(parts, "("+term.String()+")")
	}
	return strings.Join(parts, sep)
}

func formatValue(v any) string {
	switch value := v.(type) {
	case time.Time:
		return value.Format(time.DateOnly)
	case string:
		return fmt.Sprintf("%q", value)
	default:
		return fmt.Sprintf("%v", value)
	}
}
