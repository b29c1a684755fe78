package banner

import "context"

type Repository interface {
	Create(ctx context.Context, b *Banner) error
	Update(ctx context.Context, b *Banner) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*Banner, error)
	GetByName(ctx context.Context, name string) (*Banner, error)
	List(ctx context.Context, page, pageSize int) ([]*Banner, int64, error)
	ListActive(ctx context.Context) ([]*Banner, error)
	// ListActiveForUpdate locks every banner row for the surrounding
	// transaction and returns the active ones.
	ListActiveForUpdate(ctx context.Context) ([]*Banner, error)
}
