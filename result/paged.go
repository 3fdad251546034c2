package result

// Paged is one page of a listing. Items may be shorter than Size on the
// last page.
type Paged[T any] struct {
	Items []T   `json:"data"`
	Page  int   `json:"page"`
	Size  int   `json:"size"`
	Total int64 `json:"total"`
}

func NewPaged[T any](items []T, page, size int, total int64) Paged[T] {
	if items == nil {
		items = []T{}
	}
	return Paged[T]{
		Items: items,
		Page:  page,
		Size:  size,
		Total: total,
	}
}
