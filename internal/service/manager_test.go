package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"managerapi/internal/model"
	"managerapi/internal/repository"
	repoMocks "managerapi/internal/repository/mocks"
)

// maxInt4 is the largest value the contracts_count column can hold.
const maxInt4 = 2147483647

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func newTestManagerService(repo *repoMocks.MockManagerRepository) *managerService {
	return &managerService{repo: repo, newID: func() string { return "fixed-id" }}
}

func TestManagerService_List(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		limit      int
		offset     int
		setupMocks func(mRepo *repoMocks.MockManagerRepository)
		wantErr    bool
		checkRes   func(t *testing.T, res *ManagerListResult)
	}{
		{
			name:   "happy path",
			limit:  10,
			offset: 0,
			setupMocks: func(mRepo *repoMocks.MockManagerRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Manager]{
						Items: []model.Manager{{ID: "1"}, {ID: "2"}},
						Total: 2,
					}, nil)
			},
			checkRes: func(t *testing.T, res *ManagerListResult) {
				assert.Len(t, res.Items, 2)
				assert.Equal(t, 2, res.Total)
			},
		},
		{
			name:   "zero limit and negative offset use defaults",
			limit:  0,
			offset: -1,
			setupMocks: func(mRepo *repoMocks.MockManagerRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
					Return(&repository.PageResult[model.Manager]{Items: []model.Manager{}, Total: 0}, nil)
			},
		},
		{
			name:   "limit is capped",
			limit:  5000,
			offset: 20,
			setupMocks: func(mRepo *repoMocks.MockManagerRepository) {
				mRepo.On("List", ctx, repository.PageQuery{Limit: 100, Offset: 20}).
					Return(&repository.PageResult[model.Manager]{Items: []model.Manager{}, Total: 0}, nil)
			},
		},
		{
			name:  "repository error",
			limit: 10,
			setupMocks: func(mRepo *repoMocks.MockManagerRepository) {
				mRepo.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockManagerRepository)
			svc := NewManagerService(mRepo)
			tt.setupMocks(mRepo)

			res, err := svc.List(ctx, tt.limit, tt.offset)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				if tt.checkRes != nil {
					tt.checkRes(t, res)
				}
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestManagerService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockManagerRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockManagerRepository) {
				mRepo.On("FindByID", ctx, "valid-id").Return(&model.Manager{ID: "valid-id"}, nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockManagerRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found - mapping sql.ErrNoRows",
			id:   "missing-id",
			setupMocks: func(mRepo *repoMocks.MockManagerRepository) {
				mRepo.On("FindByID", ctx, "missing-id").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockManagerRepository)
			svc := NewManagerService(mRepo)
			tt.setupMocks(mRepo)

			m, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, m)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, m)
				assert.Equal(t, tt.id, m.ID)
			}
			mRepo.AssertExpectations(t)
		})
	}

	t.Run("generic repository error passes through", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		mRepo.On("FindByID", ctx, "error-id").Return(nil, errors.New("db fail"))

		_, err := NewManagerService(mRepo).Get(ctx, "error-id")

		assert.EqualError(t, err, "db fail")
	})
}

func TestManagerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and trims name", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := newTestManagerService(mRepo)

		want := &model.Manager{ID: "fixed-id", Name: "Alice", ContractsCount: 3}
		mRepo.On("Create", ctx, want).Return(want, nil)

		got, err := svc.Create(ctx, model.ManagerInput{Name: "  Alice ", ContractsCount: 3})

		assert.NoError(t, err)
		assert.Equal(t, want, got)
		mRepo.AssertExpectations(t)
	})

	t.Run("default contracts count is zero", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := newTestManagerService(mRepo)

		mRepo.On("Create", ctx, mock.MatchedBy(func(m *model.Manager) bool {
			return m.ContractsCount == 0 && m.Name == "Bob"
		})).Return(&model.Manager{ID: "fixed-id", Name: "Bob"}, nil)

		_, err := svc.Create(ctx, model.ManagerInput{Name: "Bob"})

		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	validationCases := []struct {
		name  string
		in    model.ManagerInput
		field string
	}{
		{"missing name", model.ManagerInput{}, "name"},
		{"blank name", model.ManagerInput{Name: "   "}, "name"},
		{"negative contracts", model.ManagerInput{Name: "Alice", ContractsCount: -1}, "contracts_count"},
		{"contracts above int4", model.ManagerInput{Name: "Alice", ContractsCount: maxInt4 + 1}, "contracts_count"},
		{"name too long", model.ManagerInput{Name: strings.Repeat("é", 256)}, "name"},
	}
	for _, tc := range validationCases {
		t.Run(tc.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockManagerRepository)
			svc := newTestManagerService(mRepo)

			got, err := svc.Create(ctx, tc.in)

			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrInvalidInput)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
			mRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}

	t.Run("limit messages", func(t *testing.T) {
		svc := newTestManagerService(new(repoMocks.MockManagerRepository))

		_, err := svc.Create(ctx, model.ManagerInput{Name: strings.Repeat("x", 256), ContractsCount: maxInt4 + 1})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must be at most 255 characters", verr.Fields["name"])
		assert.Equal(t, "must be less than or equal to 2147483647", verr.Fields["contracts_count"])
	})

	t.Run("boundary values accepted", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := newTestManagerService(mRepo)
		name := strings.Repeat("é", 255)
		mRepo.On("Create", ctx, mock.Anything).Return(&model.Manager{ID: "fixed-id", Name: name, ContractsCount: maxInt4}, nil)

		_, err := svc.Create(ctx, model.ManagerInput{Name: name, ContractsCount: maxInt4})

		assert.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("repository error", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := newTestManagerService(mRepo)
		mRepo.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		_, err := svc.Create(ctx, model.ManagerInput{Name: "Alice"})

		assert.EqualError(t, err, "db fail")
	})
}

func TestManagerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial patch", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := NewManagerService(mRepo)

		patch := model.ManagerPatch{ContractsCount: intPtr(7)}
		mRepo.On("Update", ctx, "id-1", patch).
			Return(&model.Manager{ID: "id-1", Name: "Alice", ContractsCount: 7}, nil)

		got, err := svc.Update(ctx, "id-1", patch)

		assert.NoError(t, err)
		assert.Equal(t, 7, got.ContractsCount)
		mRepo.AssertExpectations(t)
	})

	t.Run("name is trimmed", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := NewManagerService(mRepo)

		mRepo.On("Update", ctx, "id-1", model.ManagerPatch{Name: strPtr("Carol")}).
			Return(&model.Manager{ID: "id-1", Name: "Carol"}, nil)

		got, err := svc.Update(ctx, "id-1", model.ManagerPatch{Name: strPtr(" Carol ")})

		assert.NoError(t, err)
		assert.Equal(t, "Carol", got.Name)
		mRepo.AssertExpectations(t)
	})

	t.Run("empty patch still returns the record", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := NewManagerService(mRepo)

		mRepo.On("Update", ctx, "id-1", model.ManagerPatch{}).
			Return(&model.Manager{ID: "id-1", Name: "Alice", ContractsCount: 1}, nil)

		got, err := svc.Update(ctx, "id-1", model.ManagerPatch{})

		assert.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
	})

	t.Run("not found", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := NewManagerService(mRepo)
		mRepo.On("Update", ctx, "missing", mock.Anything).Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, "missing", model.ManagerPatch{ContractsCount: intPtr(1)})

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := NewManagerService(mRepo)

		_, err := svc.Update(ctx, "id-1", model.ManagerPatch{Name: strPtr("")})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must not be blank", verr.Fields["name"])
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("negative contracts rejected", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := NewManagerService(mRepo)

		_, err := svc.Update(ctx, "id-1", model.ManagerPatch{ContractsCount: intPtr(-3)})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("contracts above int4 rejected", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := NewManagerService(mRepo)

		_, err := svc.Update(ctx, "id-1", model.ManagerPatch{ContractsCount: intPtr(3000000000)})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must be less than or equal to 2147483647", verr.Fields["contracts_count"])
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("name too long rejected", func(t *testing.T) {
		mRepo := new(repoMocks.MockManagerRepository)
		svc := NewManagerService(mRepo)

		_, err := svc.Update(ctx, "id-1", model.ManagerPatch{Name: strPtr(strings.Repeat("é", 256))})

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must be at most 255 characters", verr.Fields["name"])
		mRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("empty id", func(t *testing.T) {
		_, err := NewManagerService(new(repoMocks.MockManagerRepository)).Update(ctx, "", model.ManagerPatch{})
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestManagerService_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(mRepo *repoMocks.MockManagerRepository)
		wantErr    error
	}{
		{
			name: "happy path",
			id:   "valid-id",
			setupMocks: func(mRepo *repoMocks.MockManagerRepository) {
				mRepo.On("Delete", ctx, "valid-id").Return(nil)
			},
		},
		{
			name:       "validation - empty id",
			id:         "",
			setupMocks: func(mRepo *repoMocks.MockManagerRepository) {},
			wantErr:    ErrIDRequired,
		},
		{
			name: "not found",
			id:   "missing-id",
			setupMocks: func(mRepo *repoMocks.MockManagerRepository) {
				mRepo.On("Delete", ctx, "missing-id").Return(sql.ErrNoRows)
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mRepo := new(repoMocks.MockManagerRepository)
			svc := NewManagerService(mRepo)
			tt.setupMocks(mRepo)

			err := svc.Delete(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mRepo.AssertExpectations(t)
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"name":            "is required",
		"contracts_count": "must be greater than or equal to 0",
	}}
	assert.Equal(t, "validation failed: contracts_count must be greater than or equal to 0; name is required", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
}
