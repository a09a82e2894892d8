package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SortDirection is the ordering direction of a list query.
type SortDirection string

// Sort directions
const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Defaults applied when pagination parameters are absent or invalid.
const (
	DefaultPerPage = 20
	DefaultOrderBy = "id"
)

// Params holds the filtering, sorting and pagination state of a single list
// request. A Params value is owned exclusively by its request.
type Params struct {
	OrderBy   string
	Direction SortDirection
	Page      int
	PerPage   int
	Query     string
	View      string

	Filters []FilterClause
	Others  map[string]string

	Skip     int
	Total    int64
	Pages    int
	NextPage *int
	PrevPage *int

	fields FieldSet
}

// NewParams builds request query state from a raw query string and the
// declared field set of the target resource.
func NewParams(rawQuery string, fields FieldSet) *Params {
	p := &Params{
		OrderBy:   DefaultOrderBy,
		Direction: SortDesc,
		Page:      1,
		PerPage:   DefaultPerPage,
		Pages:     1,
		fields:    fields,
	}

	for _, kv := range parseQueryString(rawQuery) {
		switch kv.key {
		case ParamOrderBy:
			if kv.value != "" {
				p.OrderBy = kv.value
			}
		case ParamAscDesc:
			if kv.value == string(SortAsc) {
				p.Direction = SortAsc
			}
		case ParamPage:
			if n, err := strconv.Atoi(kv.value); err == nil && n >= 1 {
				p.Page = n
			}
		case ParamPerPage:
			if n, err := strconv.Atoi(kv.value); err == nil && n >= 1 {
				p.PerPage = n
			}
		case ParamQuery:
			p.Query = kv.value
		case ParamView:
			p.View = kv.value
		}
	}

	p.Filters, p.Others = ParseFilters(rawQuery, fields)
	return p
}

// ParamsFrom builds query state from an incoming request.
func ParamsFrom(c *fiber.Ctx, fields FieldSet) *Params {
	return NewParams(string(c.Request().URI().QueryString()), fields)
}

// BuildQuery translates the parsed filters plus the caller's default filters
// into a scoped database query, counts the matching rows and derives the
// pagination metadata. Default filters are ANDed after the parsed ones, so
// ambient scoping cannot be bypassed by a same-named filter key in the query
// string.
func (p *Params) BuildQuery(tx *gorm.DB, defaults map[string]interface{}) (*gorm.DB, error) {
	q := tx

	for _, clause := range p.Filters {
		// Multi-segment paths stay in the filter_by envelope but never
		// become predicates. Only the resource's own columns filter rows.
		if strings.Contains(clause.Attr, ".") {
			continue
		}
		field, ok := p.fields.Resolve(clause.Attr)
		if !ok {
			continue
		}
		cond, ok := clause.Op.Condition(field.Column, clause.Value)
		if !ok {
			continue
		}
		q = q.Where(cond.Expr, cond.Args...)
	}

	for attr, value := range defaults {
		field, ok := p.fields.Resolve(attr)
		if !ok || value == nil {
			continue
		}
		q = q.Where(field.Column+" = ?", value)
	}

	if err := q.Session(&gorm.Session{}).Count(&p.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}

	p.Skip = (p.Page - 1) * p.PerPage
	p.Pages = int((p.Total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if p.Pages < 1 {
		p.Pages = 1
	}
	p.NextPage = nil
	p.PrevPage = nil
	if int64(p.Skip+p.PerPage) < p.Total {
		next := p.Page + 1
		p.NextPage = &next
	}
	if p.Page > 1 {
		prev := p.Page - 1
		p.PrevPage = &prev
	}

	return q, nil
}

// Order returns the validated SQL ordering clause. Undeclared order-by
// attributes fall back to the identifier column.
func (p *Params) Order() string {
	column := p.fields.Column(p.OrderBy)
	if p.Direction == SortAsc {
		return column + " ASC"
	}
	return column + " DESC"
}

// FilterBy returns the parsed filters keyed by attribute path for the list
// envelope. Repeated filters on the same path keep the last value.
func (p *Params) FilterBy() map[string]FilterClause {
	filterBy := map[string]FilterClause{}
	for _, clause := range p.Filters {
		filterBy[clause.Attr] = clause
	}
	return filterBy
}

// SortBy returns the sorting metadata for the list envelope.
func (p *Params) SortBy() []SortByEntry {
	return []SortByEntry{{OrderBy: p.OrderBy, AscDesc: p.Direction}}
}

// PageBy returns the pagination metadata for the list envelope.
func (p *Params) PageBy() PageByEntry {
	return PageByEntry{
		Page:     p.Page,
		PerPage:  p.PerPage,
		Total:    p.Total,
		Pages:    p.Pages,
		NextPage: p.NextPage,
		PrevPage: p.PrevPage,
	}
}

// SortByEntry is the sorting block of the list envelope.
type SortByEntry struct {
	OrderBy string        `json:"order_by"`
	AscDesc SortDirection `json:"asc_desc"`
}

// PageByEntry is the pagination block of the list envelope.
type PageByEntry struct {
	Page     int   `json:"page"`
	PerPage  int   `json:"per_page"`
	Total    int64 `json:"total"`
	Pages    int   `json:"pages"`
	NextPage *int  `json:"next_page"`
	PrevPage *int  `json:"prev_page"`
}
