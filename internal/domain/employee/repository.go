package employee

import "context"

// Repository reads the externally-owned employee directory.
type Repository interface {
	ListActive(ctx context.Context) ([]Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
}
