package domain

// PagedResponse is one page of a larger result set.
type PagedResponse[T any] struct {
	Page          int `json:"page"`
	Limit         int `json:"limit"`
	Total         int `json:"total"`
	NumberOfPages int `json:"number_of_pages"`
	Data          []T `json:"data"`
}

// NewPagedResponse slices data into the requested 1-based page.
//
// Page 0 returns no data. A limit above the total is clamped to the total,
// and a page past the end is clamped to the last page.
func NewPagedResponse[T any](page, limit int, data []T) PagedResponse[T] {
	total := len(data)

	if page <= 0 {
		return PagedResponse[T]{
			Page:  page,
			Limit: limit,
			Total: total,
			Data:  []T{},
		}
	}

	if limit >= total {
		limit = total
	}

	if limit <= 0 {
		// Nothing to page: either no data or a zero limit.
		if total == 0 {
			page = 0
		}
		return PagedResponse[T]{
			Page:  page,
			Limit: limit,
			Total: total,
			Data:  []T{},
		}
	}

	numberOfPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit

	if page >= numberOfPages {
		page = numberOfPages
		start = numberOfPages*limit - limit
		end = total
	}

	out := make([]T, end-start)
	copy(out, data[start:end])

	return PagedResponse[T]{
		Page:          page,
		Limit:         limit,
		Total:         total,
		NumberOfPages: numberOfPages,
		Data:          out,
	}
}

// MapPaged converts the page data, keeping the paging metadata.
func MapPaged[T, R any](p PagedResponse[T], f func(T) R) PagedResponse[R] {
	data := make([]R, 0, len(p.Data))
	for _, v := range p.Data {
		data = append(data, f(v))
	}
	return PagedResponse[R]{
		Page:          p.Page,
		Limit:         p.Limit,
		Total:         p.Total,
		NumberOfPages: p.NumberOfPages,
		Data:          data,
	}
}
