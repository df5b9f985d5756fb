// Package listing builds the filtered, sorted, paginated SQL shared by the
// product and order listing paths, together with the matching count query.
//
// Sort columns are validated against a caller-supplied allow-list before
// they reach the query text; caller input is never interpolated directly.
package listing

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidQueryParam = errors.New("invalid query parameter")

// MaxLimit caps page size on every listing endpoint.
const MaxLimit = 1000

// Query accumulates predicates and renders a data query and a count query
// that agree on filters. Filters are conjunctive; each placeholder `?` is
// rewritten to the next positional parameter.
type Query struct {
	selectSQL string
	countSQL  string
	tieBreak  string

	where []string
	args  []any

	orderBy string
	desc    bool
	sorted  bool

	limit  int
	offset int
	paged  bool
}

func NewQuery(selectSQL, countSQL, tieBreak string) *Query {
	return &Query{selectSQL: selectSQL, countSQL: countSQL, tieBreak: tieBreak}
}

// Filter appends one conjunctive predicate. expr must contain exactly one
// `?` placeholder for arg.
func (q *Query) Filter(expr string, arg any) *Query {
	q.args = append(q.args, arg)
	q.where = append(q.where, strings.Replace(expr, "?", fmt.Sprintf("$%d", len(q.args)), 1))
	return q
}

// SortBy validates column against allowed and direction against asc/desc.
// The allow-list maps the API-facing name to the real column name.
func (q *Query) SortBy(column, direction string, allowed map[string]string) error {
	col, ok := allowed[column]
	if !ok {
		return fmt.Errorf("%w: unknown sort column %q", ErrInvalidQueryParam, column)
	}
	switch strings.ToLower(direction) {
	case "asc":
		q.desc = false
	case "desc":
		q.desc = true
	default:
		return fmt.Errorf("%w: sort direction must be asc or desc, got %q", ErrInvalidQueryParam, direction)
	}
	q.orderBy = col
	q.sorted = true
	return nil
}

func (q *Query) Paginate(limit, offset int) error {
	if limit < 0 || limit > MaxLimit {
		return fmt.Errorf("%w: limit must be in [0, %d], got %d", ErrInvalidQueryParam, MaxLimit, limit)
	}
	if offset < 0 {
		return fmt.Errorf("%w: offset must be >= 0, got %d", ErrInvalidQueryParam, offset)
	}
	q.limit = limit
	q.offset = offset
	q.paged = true
	return nil
}

func (q *Query) whereClause() string {
	if len(q.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.where, " AND ")
}

// SelectSQL renders the data query: filters, ORDER BY with the primary-key
// tie-break appended for deterministic pagination, then LIMIT/OFFSET.
func (q *Query) SelectSQL() (string, []any) {
	var b strings.Builder
	b.WriteString(q.selectSQL)
	b.WriteString(q.whereClause())

	b.WriteString(" ORDER BY ")
	if q.sorted {
		b.WriteString(q.orderBy)
		if q.desc {
			b.WriteString(" DESC")
		} else {
			b.WriteString(" ASC")
		}
		if q.orderBy != q.tieBreak {
			b.WriteString(", " + q.tieBreak + " ASC")
		}
	} else {
		b.WriteString(q.tieBreak + " ASC")
	}

	args := append([]any(nil), q.args...)
	if q.paged {
		args = append(args, q.limit, q.offset)
		fmt.Fprintf(&b, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return b.String(), args
}

// CountSQL renders the count query over the same predicates, ignoring
// sort and pagination so total reflects the full filtered set.
func (q *Query) CountSQL() (string, []any) {
	return q.countSQL + q.whereClause(), append([]any(nil), q.args...)
}
