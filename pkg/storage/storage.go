package storage

import (
	"context"
	"errors"
)

// Source provides read access to externally stored mail templates. The
// template store consults it before falling back to compiled-in templates.
type Source interface {
	// Get returns the raw template content stored under key.
	Get(ctx context.Context, key string) (string, error)
}

// Sentinel errors for template source operations.
var (
	// ErrKeyNotFound indicates the backing store holds no object under the
	// requested key, as opposed to the store being unreachable.
	ErrKeyNotFound = errors.New("storage: key not found")

	// ErrInvalidConfig indicates the backing store configuration is unusable.
	ErrInvalidConfig = errors.New("storage: invalid configuration")
)
