// Package pagination provides page/limit slicing with totals computed over
// the already-filtered input, so counts always agree with delivered items.
package pagination

const (
	DefaultPage  = 1
	DefaultLimit = 5
)

// Page is one page of results plus its metadata. The field names mirror the
// wire format the API has always used.
type Page[T any] struct {
	Items      []T `json:"docs"`
	TotalCount int `json:"totalDocs"`
	Limit      int `json:"limit"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items for the requested page. Page and limit fall back to
// their defaults when not positive. A page past the end yields an empty
// slice, not an error.
func Paginate[T any](items []T, page, limit int) *Page[T] {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	total := len(items)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	out := make([]T, end-start)
	copy(out, items[start:end])

	return &Page[T]{
		Items:      out,
		TotalCount: total,
		Limit:      limit,
		Page:       page,
		TotalPages: totalPages,
	}
}
