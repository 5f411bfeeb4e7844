package sqlite

import (
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/dbx"

	"github.com/ZanzyTHEbar/firedragon-ledger/domain/predicate"
)

const dateLayout = "2006-01-02"

var columns = map[predicate.Field]string{
	predicate.FieldID:              "t.id",
	predicate.FieldAmount:          "t.amount",
	predicate.FieldDate:            "t.date",
	predicate.FieldName:            "t.name",
	predicate.FieldDescription:     "t.description",
	predicate.FieldAccount:         "t.account_id",
	predicate.FieldCategory:        "t.category_id",
	predicate.FieldCategoryName:    "c.name",
	predicate.FieldRepeatingOption: "t.repeating_option_id",
	predicate.FieldTransferAccount: "t.transfer_account_id",
	predicate.FieldTagID:           "tg.id",
	predicate.FieldTagName:         "tg.name",
}

// tagSubquery selects the tags of the outer transaction row
const tagSubquery = "SELECT 1 FROM transaction_tags tt INNER JOIN tags tg ON tg.id = tt.tag_id WHERE tt.transaction_id = t.id"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// lowering turns a predicate tree into a dbx expression over the aliases
// t (transactions) and c (categories). Parameter names are unique per tree.
type lowering struct {
	n int
}

// lower converts p. The returned expression can be reused across queries.
func lower(p predicate.Predicate) (dbx.Expression, error) {
	l := &lowering{}
	return l.expression(p)
}

func (l *lowering) param(value any) (string, dbx.Params) {
	name := fmt.Sprintf("w%d", l.n)
	l.n++
	return "{:" + name + "}", dbx.Params{name: value}
}

func (l *lowering) expression(p predicate.Predicate) (dbx.Expression, error) {
	switch node := p.(type) {
	case predicate.Constant:
		if node.Value {
			return dbx.NewExp("1=1"), nil
		}
		return dbx.NewExp("1=0"), nil

	case predicate.Conjunction:
		terms, err := l.expressions(node.Terms)
		if err != nil {
			return nil, err
		}
		return dbx.And(terms...), nil

	case predicate.Disjunction:
		terms, err := l.expressions(node.Terms)
		if err != nil {
			return nil, err
		}
		return dbx.Or(terms...), nil

	case predicate.Comparison:
		col, err := column(node.Field)
		if err != nil {
			return nil, err
		}
		placeholder, params := l.param(sqlValue(node.Value))
		return dbx.NewExp(fmt.Sprintf("%s %s %s", col, node.Op, placeholder), params), nil

	case predicate.Range:
		col, err := column(node.Field)
		if err != nil {
			return nil, err
		}
		from, fromParams := l.param(sqlValue(node.From))
		to, toParams := l.param(sqlValue(node.To))
		for k, v := range toParams {
			fromParams[k] = v
		}
		return dbx.NewExp(fmt.Sprintf("%s BETWEEN %s AND %s", col, from, to), fromParams), nil

	case predicate.Substring:
		col, err := column(node.Field)
		if err != nil {
			return nil, err
		}
		pattern := "%" + likeEscaper.Replace(strings.ToLower(node.Value)) + "%"
		placeholder, params := l.param(pattern)
		return dbx.NewExp(fmt.Sprintf(`LOWER(%s) LIKE %s ESCAPE '\'`, col, placeholder), params), nil

	case predicate.Membership:
		col, err := column(node.Field)
		if err != nil {
			return nil, err
		}
		if len(node.Values) == 0 {
			return dbx.NewExp("1=0"), nil
		}
		placeholders := make([]string, 0, len(node.Values))
		params := dbx.Params{}
		for _, v := range node.Values {
			placeholder, p := l.param(sqlValue(v))
			placeholders = append(placeholders, placeholder)
			for k, pv := range p {
				params[k] = pv
			}
		}
		return dbx.NewExp(fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ", ")), params), nil

	case predicate.Nullity:
		col, err := column(node.Field)
		if err != nil {
			return nil, err
		}
		if node.Negate {
			return dbx.NewExp(col + " IS NOT NULL"), nil
		}
		return dbx.NewExp(col + " IS NULL"), nil

	case predicate.Join:
		if node.Relation != predicate.RelationTags {
			return nil, fmt.Errorf("unsupported relation %q", node.Relation)
		}
		where, err := l.expression(node.Where)
		if err != nil {
			return nil, err
		}
		return dbx.Exists(subquery{sql: tagSubquery, where: where}), nil

	default:
		return nil, fmt.Errorf("unsupported predicate node %T", p)
	}
}

func (l *lowering) expressions(terms []predicate.Predicate) ([]dbx.Expression, error) {
	exps := make([]dbx.Expression, 0, len(terms))
	for _, term := range terms {
		exp, err := l.expression(term)
		if err != nil {
			return nil, err
		}
		exps = append(exps, exp)
	}
	return exps, nil
}

// subquery appends a nested condition to a correlated SELECT
type subquery struct {
	sql   string
	where dbx.Expression
}

// Build implements dbx.Expression
func (s subquery) Build(db *dbx.DB, params dbx.Params) string {
	where := s.where.Build(db, params)
	if where == "" {
		return s.sql
	}
	return s.sql + " AND (" + where + ")"
}

func column(field predicate.Field) (string, error) {
	col, ok := columns[field]
	if !ok {
		return "", fmt.Errorf("unsupported field %q", field)
	}
	return col, nil
}

func sqlValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return t.Format(dateLayout)
	}
	return v
}

// orderBy lowers an ordering to ORDER BY terms
func orderBy(order predicate.Ordering) ([]string, error) {
	terms := make([]string, 0, len(order))
	for _, key := range order {
		col, err := column(key.Field)
		if err != nil {
			return nil, err
		}
		terms = append(terms, fmt.Sprintf("%s %s", col, key.Direction))
	}
	return terms, nil
}
