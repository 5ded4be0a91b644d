package ports

import (
	"context"

	"github.com/aretw0/kwargs/pkg/value"
)

// DictStore persists named dicts so both sides of the boundary can share
// fixtures across processes.
type DictStore interface {
	// Save stores dict under name, replacing any previous dict.
	Save(ctx context.Context, name string, dict value.Value) error

	// Load returns the dict stored under name.
	// Returns value.ErrNotFound if nothing is stored under name.
	Load(ctx context.Context, name string) (value.Value, error)

	// Delete removes the dict stored under name. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names.
	List(ctx context.Context) ([]string, error)
}
