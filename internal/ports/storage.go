package ports

import "context"

// ObjectStore persists uploaded artifacts (resumes, blog images) and
// returns a publicly resolvable URL for the stored object.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}
