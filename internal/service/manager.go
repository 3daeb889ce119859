package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"managerapi/internal/model"
	"managerapi/internal/repository"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ManagerListResult is the service-level DTO for paginated managers.
type ManagerListResult struct {
	Items []model.Manager `json:"data"`
	Total int             `json:"total"`
}

// ManagerService defines the use cases for managers.
type ManagerService interface {
	// List returns managers using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*ManagerListResult, error)

	// Get returns a single manager by its ID.
	Get(ctx context.Context, id string) (*model.Manager, error)

	// Create validates the input, assigns a new ID and stores the manager.
	Create(ctx context.Context, in model.ManagerInput) (*model.Manager, error)

	// Update overwrites only the fields present in patch.
	Update(ctx context.Context, id string, patch model.ManagerPatch) (*model.Manager, error)

	// Delete removes a manager by ID.
	Delete(ctx context.Context, id string) error
}

type managerService struct {
	repo  repository.ManagerRepository
	newID func() string
}

// NewManagerService constructs a new ManagerService.
func NewManagerService(repo repository.ManagerRepository) ManagerService {
	return &managerService{repo: repo, newID: uuid.NewString}
}

func (s *managerService) List(ctx context.Context, limit, offset int) (*ManagerListResult, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ManagerListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *managerService) Get(ctx context.Context, id string) (*model.Manager, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return m, nil
}

func (s *managerService) Create(ctx context.Context, in model.ManagerInput) (*model.Manager, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Manager{
		ID:             s.newID(),
		Name:           strings.TrimSpace(in.Name),
		ContractsCount: in.ContractsCount,
	})
}

func (s *managerService) Update(ctx context.Context, id string, patch model.ManagerPatch) (*model.Manager, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if err := validateStruct(patch); err != nil {
		return nil, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	m, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return m, nil
}

func (s *managerService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return mapNotFound(s.repo.Delete(ctx, id))
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
