package domain

// Page is one page of a keyset-paginated listing. LastID is the sequence id
// of the final row, or nil when the page is empty. Clients pass it back as
// last_id to fetch the next page.
type Page[T any] struct {
	Data     []T    `json:"data"`
	LastID   *int64 `json:"last_id"`
	PageSize int    `json:"page_size"`
}

// NewPage builds a page from rows already in sequence order. seq extracts the
// sequence id of a row.
func NewPage[T any](data []T, pageSize int, seq func(T) int64) Page[T] {
	if data == nil {
		data = []T{}
	}
	p := Page[T]{Data: data, PageSize: pageSize}
	if n := len(data); n > 0 {
		last := seq(data[n-1])
		p.LastID = &last
	}
	return p
}

// DeleteResult is returned by every delete operation.
type DeleteResult struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}
