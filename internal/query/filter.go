package query

import (
	"strings"
	"time"

	"gorm.io/gorm/clause"
)

// Filter is a structured predicate rendered into a gorm clause expression.
// Column names are always quoted as identifiers and values bound as
// parameters.
type Filter interface {
	Expression() clause.Expression
}

type Equals struct {
	Field string
	Value any
}

func (f Equals) Expression() clause.Expression {
	return clause.Eq{Column: clause.Column{Name: f.Field}, Value: f.Value}
}

// Like is a case-insensitive substring match.
type Like struct {
	Field string
	Term  string
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (f Like) Expression() clause.Expression {
	return clause.Expr{
		SQL:  "? ILIKE ?",
		Vars: []any{clause.Column{Name: f.Field}, "%" + likeEscaper.Replace(f.Term) + "%"},
	}
}

type Or struct {
	Filters []Filter
}

func (f Or) Expression() clause.Expression {
	exprs := make([]clause.Expression, 0, len(f.Filters))
	for _, inner := range f.Filters {
		if inner == nil {
			continue
		}
		exprs = append(exprs, inner.Expression())
	}

	// A one-element OrConditions is joined to its siblings with OR by gorm.
	if len(exprs) == 1 {
		return exprs[0]
	}

	return clause.Or(exprs...)
}

type DateAfter struct {
	Field string
	T     time.Time
}

func (f DateAfter) Expression() clause.Expression {
	return clause.Gt{Column: clause.Column{Name: f.Field}, Value: f.T}
}

type IsNull struct {
	Field string
}

func (f IsNull) Expression() clause.Expression {
	return clause.Eq{Column: clause.Column{Name: f.Field}, Value: nil}
}

// Expressions renders filters in order, skipping empty Or groups.
func Expressions(filters []Filter) []clause.Expression {
	exprs := make([]clause.Expression, 0, len(filters))
	for _, f := range filters {
		if f == nil {
			continue
		}
		if or, ok := f.(Or); ok && len(or.Filters) == 0 {
			continue
		}
		exprs = append(exprs, f.Expression())
	}
	return exprs
}

// ProductFilters maps the product list query onto filters: category,
// free-text search over both names and the description, featured, in_stock.
func ProductFilters(q map[string]any) []Filter {
	var filters []Filter

	if category := stringParam(q, "category"); category != "" {
		filters = append(filters, Equals{Field: "category", Value: category})
	}

	if search := stringParam(q, "search"); search != "" {
		filters = append(filters, Or{Filters: []Filter{
			Like{Field: "name", Term: search},
			Like{Field: "name_en", Term: search},
			Like{Field: "description", Term: search},
		}})
	}

	if featured, ok := boolParam(q, "featured"); ok {
		filters = append(filters, Equals{Field: "featured", Value: featured})
	}

	if inStock, ok := boolParam(q, "in_stock"); ok {
		filters = append(filters, Equals{Field: "in_stock", Value: inStock})
	}

	return filters
}

// OfferFilters adds the visibility rule for everyone but admins: offers with
// a past end date are hidden.
func OfferFilters(q map[string]any, isAdmin bool, now time.Time) []Filter {
	var filters []Filter

	if active, ok := boolParam(q, "active"); ok {
		filters = append(filters, Equals{Field: "active", Value: active})
	}

	if category := stringParam(q, "category"); category != "" {
		filters = append(filters, Equals{Field: "category", Value: category})
	}

	if !isAdmin {
		filters = append(filters, Visible(now))
	}

	return filters
}

// Visible is the single OR expression "end_date IS NULL OR end_date > now".
func Visible(now time.Time) Filter {
	return Or{Filters: []Filter{
		IsNull{Field: "end_date"},
		DateAfter{Field: "end_date", T: now},
	}}
}

func OrderFilters(q map[string]any) []Filter {
	var filters []Filter

	if status := stringParam(q, "status"); status != "" {
		filters = append(filters, Equals{Field: "status", Value: status})
	}

	return filters
}

func stringParam(q map[string]any, key string) string {
	s, _ := q[key].(string)
	return s
}

// boolParam reports presence separately from value; query strings compare
// against the literal "true".
func boolParam(q map[string]any, key string) (bool, bool) {
	raw, ok := q[key]
	if !ok || raw == nil {
		return false, false
	}

	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		return v == "true", true
	default:
		return false, true
	}
}
