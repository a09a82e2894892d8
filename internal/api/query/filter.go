package query

import (
	"net/url"
	"strings"
)

// Standard query parameters. Every other key is treated as a candidate
// filter argument.
const (
	ParamOrderBy = "sort_by.order_by"
	ParamAscDesc = "sort_by.asc_desc"
	ParamPage    = "page_by.page"
	ParamPerPage = "page_by.per_page"
	ParamQuery   = "query"
	ParamView    = "view"
)

var standardParams = map[string]bool{
	ParamOrderBy: true,
	ParamAscDesc: true,
	ParamPage:    true,
	ParamPerPage: true,
	ParamQuery:   true,
	ParamView:    true,
}

// Value delimiters: compound values split on `__`, list elements on `|`.
const (
	compoundDelimiter = "__"
	listDelimiter     = "|"
)

type pair struct {
	key   string
	value string
}

// parseQueryString splits a raw query string into decoded key/value pairs,
// preserving the order they appear in.
func parseQueryString(raw string) []pair {
	var pairs []pair
	for _, chunk := range strings.Split(raw, "&") {
		if chunk == "" {
			continue
		}
		key, value, _ := strings.Cut(chunk, "=")
		k, err := url.QueryUnescape(key)
		if err != nil {
			continue
		}
		v, err := url.QueryUnescape(value)
		if err != nil {
			continue
		}
		pairs = append(pairs, pair{key: k, value: v})
	}
	return pairs
}

// ParseFilters extracts filter clauses from a raw query string against the
// declared field set of a resource. Keys that do not fit the filter grammar,
// reference undeclared attributes or carry unparseable values are collected
// in the residual map instead of failing the request. Clause order is the
// insertion order of the query string.
func ParseFilters(raw string, fields FieldSet) ([]FilterClause, map[string]string) {
	clauses := []FilterClause{}
	others := map[string]string{}

	for _, kv := range parseQueryString(raw) {
		if standardParams[kv.key] {
			continue
		}

		segments := strings.Split(kv.key, ".")
		if len(segments) < 2 {
			others[kv.key] = kv.value
			continue
		}

		path, token := segments[:len(segments)-1], segments[len(segments)-1]
		op, ok := ParseOperator(token)
		if !ok {
			others[kv.key] = kv.value
			continue
		}
		// The identifier field is reserved for path lookups, not filters.
		if path[0] == "id" || path[0] == "_id" {
			others[kv.key] = kv.value
			continue
		}
		if _, ok := fields[path[0]]; !ok {
			others[kv.key] = kv.value
			continue
		}

		attr := strings.Join(path, ".")
		parts := strings.Split(kv.value, compoundDelimiter)

		var value interface{}
		switch op {
		case OpBtw:
			if len(parts) != 2 {
				others[kv.key] = kv.value
				continue
			}
			value = Range{Min: Coerce(parts[0]), Max: Coerce(parts[1])}
		case OpIn, OpNin:
			value = CoerceList(strings.Split(parts[0], listDelimiter))
		default:
			value = Coerce(parts[0])
		}

		clauses = append(clauses, FilterClause{Attr: attr, Op: op, Value: value})
	}

	return clauses, others
}
