// README: Photo-search collaborator; resolves a destination query to one image URL.
package photos

import "context"

// Source finds at most one representative image URL for a free-text query.
// An empty string with a nil error means no result, which callers treat as a
// fallback case, not a failure.
type Source interface {
	Search(ctx context.Context, query string) (string, error)
}
