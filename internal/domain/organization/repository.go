package organization

import "context"

type Repository interface {
	// Get returns the singleton, or nil if it has not been seeded.
	Get(ctx context.Context) (*Organization, error)
	Save(ctx context.Context, o *Organization) error
}
