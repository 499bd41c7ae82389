package listing

type State string

const (
	StateEmpty State = "empty"
	StateReady State = "ready"
)

// Page is what a list view renders. The shell shows its own skeleton while
// the request is in flight, so only the settled states exist here.
type Page[T any] struct {
	Items   []T    `json:"items"`
	Page    int    `json:"page"`
	Size    int    `json:"size"`
	Total   int    `json:"total"`
	HasNext bool   `json:"hasNext"`
	State   State  `json:"state"`
	Filter  Filter `json:"filter"`
}

func NewPage[T any](items []T, c Cursor, total, totalPages int, f Filter) Page[T] {
	if items == nil {
		items = []T{}
	}
	state := StateReady
	if len(items) == 0 {
		state = StateEmpty
	}
	return Page[T]{
		Items:   items,
		Page:    c.Page,
		Size:    c.Size,
		Total:   total,
		HasNext: c.Page+1 < totalPages,
		State:   state,
		Filter:  f,
	}
}

// Keep returns the items for which keep is true, preserving order.
func Keep[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Map converts every item with fn.
func Map[T, U any](items []T, fn func(T) U) []U {
	out := make([]U, 0, len(items))
	for _, it := range items {
		out = append(out, fn(it))
	}
	return out
}

// Result is the paged envelope returned by the backend.
type Result[T any] struct {
	Content       []T `json:"content"`
	Number        int `json:"number"`
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

// ToPage filters the backend content with keep, converts it with fn and
// wraps it for the view.
func ToPage[T, U any](res Result[T], c Cursor, f Filter, keep func(T) bool, fn func(T) U) Page[U] {
	items := res.Content
	if keep != nil {
		items = Keep(items, keep)
	}
	return NewPage(Map(items, fn), c, res.TotalElements, res.TotalPages, f)
}
