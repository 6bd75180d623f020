package database

// Page is one slice of a filtered listing together with the paging envelope
// callers serialize verbatim.
type Page[T any] struct {
	Items       []T   `json:"items"`
	CurrentPage int   `json:"currentPage"`
	LastPage    int   `json:"lastPage"`
	PageSize    int   `json:"pageSize"`
	Total       int64 `json:"total"`
}

// NewPage assembles the envelope. LastPage never drops below 1, even for an
// empty result set.
func NewPage[T any](items []T, page, perPage int, total int64) *Page[T] {
	last := 1
	if perPage > 0 {
		last = int((total + int64(perPage) - 1) / int64(perPage))
		if last < 1 {
			last = 1
		}
	}
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:       items,
		CurrentPage: page,
		LastPage:    last,
		PageSize:    perPage,
		Total:       total,
	}
}
