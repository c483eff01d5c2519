package repositories

// ===== SHARED PAGINATION =====

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageToOffset clamps page and limit to sane values and returns the
// normalized page, limit and the row offset.
func PageToOffset(page, limit int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit, (page - 1) * limit
}
