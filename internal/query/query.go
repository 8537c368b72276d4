package query

import (
	"context"
	"fmt"
	"strings"

	"kledje/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Sort orders by one column. Unknown columns are passed through and quoted.
type Sort struct {
	Field string
	Desc  bool
}

// ParseSort reads a leading "-" as descending on the remainder.
func ParseSort(s string) Sort {
	if strings.HasPrefix(s, "-") {
		return Sort{Field: strings.TrimPrefix(s, "-"), Desc: true}
	}
	return Sort{Field: s}
}

func (s Sort) OrderBy() clause.OrderByColumn {
	return clause.OrderByColumn{Column: clause.Column{Name: s.Field}, Desc: s.Desc}
}

func (s Sort) String() string {
	if s.Desc {
		return "-" + s.Field
	}
	return s.Field
}

type Params struct {
	Filters []Filter
	Sort    Sort
	Page    int
	Limit   int
}

// FromPagination builds Params from a payload normalized by the pagination
// schema.
func FromPagination(q map[string]any, filters []Filter) Params {
	p := Params{
		Filters: filters,
		Page:    intParam(q, "page", 1),
		Limit:   intParam(q, "limit", 10),
		Sort:    ParseSort("-created_at"),
	}

	if s, ok := q["sort"].(string); ok && s != "" {
		p.Sort = ParseSort(s)
	}

	return p
}

// Window returns the inclusive row range for a page.
func Window(page, limit int) (from, to int) {
	from = (page - 1) * limit
	return from, from + limit - 1
}

// Pages is ceil(total/limit).
func Pages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

type Page struct {
	Total int64 `json:"-"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// Run counts the filtered rows then loads the requested window into dest.
// An empty window is a valid page.
func Run(ctx context.Context, db *gorm.DB, model any, p Params, dest any) (Page, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}

	exprs := Expressions(p.Filters)
	scoped := func() *gorm.DB {
		tx := db.WithContext(ctx).Model(model)
		if len(exprs) > 0 {
			tx = tx.Clauses(clause.Where{Exprs: exprs})
		}
		return tx
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return Page{}, domain.NewUpstreamStoreError(fmt.Errorf("count: %w", err))
	}

	from, _ := Window(p.Page, p.Limit)
	tx := scoped()
	if p.Sort.Field != "" {
		tx = tx.Order(p.Sort.OrderBy())
	}
	if err := tx.Offset(from).Limit(p.Limit).Find(dest).Error; err != nil {
		return Page{}, domain.NewUpstreamStoreError(fmt.Errorf("find: %w", err))
	}

	return Page{
		Total: total,
		Page:  p.Page,
		Limit: p.Limit,
		Pages: Pages(total, p.Limit),
	}, nil
}

func intParam(q map[string]any, key string, def int) int {
	switch v := q[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}
