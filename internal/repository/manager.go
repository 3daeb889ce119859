package repository

import (
	"context"

	"managerapi/internal/model"
)

// ManagerRepository defines data access for managers using SQL queries only.
// Missing rows are reported as sql.ErrNoRows; mapping that to a domain error is the caller's job.
type ManagerRepository interface {
	// Create inserts a new manager. The caller provides the ID.
	Create(ctx context.Context, m *model.Manager) (*model.Manager, error)

	// FindByID returns a manager by its ID.
	FindByID(ctx context.Context, id string) (*model.Manager, error)

	// List returns a page of managers and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Manager], error)

	// All returns every manager ordered by name, then id.
	All(ctx context.Context) ([]model.Manager, error)

	// Update overwrites the non-nil fields of patch and returns the stored row.
	Update(ctx context.Context, id string, patch model.ManagerPatch) (*model.Manager, error)

	// Delete removes a manager by ID.
	Delete(ctx context.Context, id string) error
}
