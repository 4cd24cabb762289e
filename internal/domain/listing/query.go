package listing

import (
	"sort"
	"strings"

	"gudang/internal/domain/entity"
)

const DefaultLimit = 10

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Query is the explicit, serializable parameter set of one listing request.
// It is the only input the engine sees; the same Query over the same
// records always yields the same page.
type Query struct {
	Page         int
	Limit        int
	Search       string
	CollectionID string
	SortField    string
	SortOrder    string
}

// sortFields whitelists the product fields a listing may be ordered by.
var sortFields = map[string]bool{
	"name":          true,
	"description":   true,
	"price":         true,
	"stockQuantity": true,
	"collectionId":  true,
}

// Normalize clamps page and limit and canonicalizes the sort order so
// that totalPages can never divide by zero.
func (q Query) Normalize() Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.SortOrder != OrderDesc {
		q.SortOrder = OrderAsc
	}
	if !sortFields[q.SortField] {
		q.SortField = ""
	}
	return q
}

func (q Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Matches reports whether a product passes the query filter: a
// case-insensitive substring match of Search against name or description,
// combined with an exact CollectionID match. Empty criteria always pass.
func (q Query) Matches(p *entity.Product) bool {
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if q.CollectionID != "" && p.CollectionID != q.CollectionID {
		return false
	}
	return true
}

// Sort orders items in place by the single whitelisted sort field. An
// absent or unknown field leaves the input order untouched.
func (q Query) Sort(items []*entity.Product) {
	if q.SortField == "" {
		return
	}

	less := func(a, b *entity.Product) bool {
		switch q.SortField {
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "description":
			return strings.ToLower(a.Description) < strings.ToLower(b.Description)
		case "price":
			return a.Price < b.Price
		case "stockQuantity":
			return a.StockQuantity < b.StockQuantity
		case "collectionId":
			return a.CollectionID < b.CollectionID
		}
		return false
	}

	sort.SliceStable(items, func(i, j int) bool {
		if q.SortOrder == OrderDesc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

// TotalPages computes ceil(matching / limit) for a matching count taken
// before pagination.
func (q Query) TotalPages(matching int) int {
	pages := matching / q.Limit
	if matching%q.Limit > 0 {
		pages++
	}
	return pages
}

// Window slices the current page out of the full ordered match set. A
// page past the end yields an empty slice.
func (q Query) Window(items []*entity.Product) []*entity.Product {
	start := q.Offset()
	if start >= len(items) {
		return []*entity.Product{}
	}
	end := start + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Apply runs the full query plan over a record snapshot: filter, sort,
// count, then paginate. Pure function of its inputs.
func (q Query) Apply(items []*entity.Product) ([]*entity.Product, int) {
	q = q.Normalize()

	matched := make([]*entity.Product, 0, len(items))
	for _, p := range items {
		if q.Matches(p) {
			matched = append(matched, p)
		}
	}

	q.Sort(matched)

	return q.Window(matched), q.TotalPages(len(matched))
}
