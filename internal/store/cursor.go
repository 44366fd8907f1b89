package store

const (
	// DefaultPageSize is used when a list call carries no cursor at all.
	DefaultPageSize = 10

	// MaxPageSize caps how many rows a single page may request.
	MaxPageSize = 100
)

// Cursor is a keyset pagination position: up to PageSize rows whose
// sequence id is strictly greater than LastSeenID, ascending.
// A nil LastSeenID starts from the first row.
type Cursor struct {
	LastSeenID *int64
	PageSize   int
}

// DefaultCursor returns the cursor used when a caller passes none.
func DefaultCursor() Cursor {
	return Cursor{PageSize: DefaultPageSize}
}

// NewCursor builds a cursor after the given sequence id. PageSize is
// clamped to MaxPageSize; callers reject non-positive sizes before this point.
func NewCursor(lastSeenID *int64, pageSize int) Cursor {
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Cursor{LastSeenID: lastSeenID, PageSize: pageSize}
}

// Resolve returns the effective cursor for c, substituting the default for nil
// and the default page size for a non-positive one.
func Resolve(c *Cursor) Cursor {
	if c == nil {
		return DefaultCursor()
	}
	resolved := NewCursor(c.LastSeenID, c.PageSize)
	if resolved.PageSize <= 0 {
		resolved.PageSize = DefaultPageSize
	}
	return resolved
}

// Next returns the cursor that continues after a page whose final row had
// sequence id lastID.
func (c Cursor) Next(lastID int64) Cursor {
	return Cursor{LastSeenID: &lastID, PageSize: c.PageSize}
}

// Exhausted reports whether a page of n rows is the last one.
func (c Cursor) Exhausted(n int) bool {
	return n < c.PageSize
}
