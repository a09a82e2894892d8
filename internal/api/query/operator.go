// Package query implements the filter grammar and per-request query state
// behind the generated list endpoints. Query-string keys of the form
// `attr.op=value` are parsed into typed filter clauses and translated into
// database predicates; pagination and sorting parameters are validated and
// folded into the same request-scoped object.
package query

// Operator is a filter comparison operator carried by a query-string key.
type Operator string

// Filter operators. The operator is the last dot-segment of a filter key.
const (
	OpEq  Operator = "eq"
	OpNe  Operator = "ne"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	OpIn  Operator = "in"
	OpNin Operator = "nin"
	OpBtw Operator = "btw"
	OpHas Operator = "has"
	OpIs  Operator = "is"
)

// operatorAliases maps long-form tokens to their canonical operators.
var operatorAliases = map[string]Operator{
	"between":  OpBtw,
	"contains": OpHas,
	"matches":  OpIs,
}

// ParseOperator resolves an operator token from a filter key.
func ParseOperator(token string) (Operator, bool) {
	switch op := Operator(token); op {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNin, OpBtw, OpHas, OpIs:
		return op, true
	}
	if op, ok := operatorAliases[token]; ok {
		return op, true
	}
	return "", false
}

// Condition is a single translated SQL predicate.
type Condition struct {
	Expr string
	Args []interface{}
}

// Condition translates the operator applied to a column and coerced value
// into its SQL predicate form. Range values use an inclusive lower bound and
// an exclusive upper bound.
func (o Operator) Condition(column string, value interface{}) (Condition, bool) {
	switch o {
	case OpEq:
		return Condition{Expr: column + " = ?", Args: []interface{}{value}}, true
	case OpNe:
		return Condition{Expr: column + " <> ?", Args: []interface{}{value}}, true
	case OpGt:
		return Condition{Expr: column + " > ?", Args: []interface{}{value}}, true
	case OpGte:
		return Condition{Expr: column + " >= ?", Args: []interface{}{value}}, true
	case OpLt:
		return Condition{Expr: column + " < ?", Args: []interface{}{value}}, true
	case OpLte:
		return Condition{Expr: column + " <= ?", Args: []interface{}{value}}, true
	case OpIn:
		return Condition{Expr: column + " IN ?", Args: []interface{}{value}}, true
	case OpNin:
		return Condition{Expr: column + " NOT IN ?", Args: []interface{}{value}}, true
	case OpBtw:
		r, ok := value.(Range)
		if !ok {
			return Condition{}, false
		}
		return Condition{Expr: column + " >= ? AND " + column + " < ?", Args: []interface{}{r.Min, r.Max}}, true
	case OpHas:
		return Condition{Expr: column + " LIKE ?", Args: []interface{}{"%" + toString(value) + "%"}}, true
	case OpIs:
		return Condition{Expr: column + " ~ ?", Args: []interface{}{toString(value)}}, true
	}
	return Condition{}, false
}

// Range is the value form of a between filter.
type Range struct {
	Min interface{} `json:"min"`
	Max interface{} `json:"max"`
}

// FilterClause is a single parsed filter predicate.
type FilterClause struct {
	Attr  string      `json:"-"`
	Op    Operator    `json:"op"`
	Value interface{} `json:"value"`
}
