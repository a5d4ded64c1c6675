package types

// MaxPageLimit caps the page size regardless of what the client asks for.
const MaxPageLimit = 10

// QueryOptions is the parsed, immutable view of the list query string
// (pagination, sorting, search filter). The middleware builds it once per
// request and services only read it.
type QueryOptions struct {
	Page   int
	Limit  int
	SortBy string
	Order  string
	Field  string
	Search string
}

// DefaultQueryOptions returns the options used when a route did not parse the
// query string.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Page: 1, Limit: MaxPageLimit, SortBy: "createdAt", Order: "desc"}
}

// Offset computes the row offset for the current page.
func (q QueryOptions) Offset() int {
	return (q.Page - 1) * q.Limit
}
