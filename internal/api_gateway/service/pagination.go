package service

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// normalizePage clamps paging input: page starts at 1, perPage falls back to
// the default when unset and is capped at maxPerPage. It returns the offset too.
func normalizePage(page, perPage int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage, (page - 1) * perPage
}
