package postgres

import (
	"context"
	"database/sql"

	"managerapi/internal/model"
	"managerapi/internal/repository"
)

// ManagerPostgres is a PostgreSQL implementation of repository.ManagerRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ManagerPostgres struct {
	db *sql.DB
}

// NewManagerPostgres creates a new ManagerPostgres repository.
func NewManagerPostgres(db *sql.DB) *ManagerPostgres {
	return &ManagerPostgres{db: db}
}

var _ repository.ManagerRepository = (*ManagerPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanManager(row rowScanner) (*model.Manager, error) {
	var m model.Manager
	if err := row.Scan(&m.ID, &m.Name, &m.ContractsCount); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a new manager row and returns the stored record.
func (r *ManagerPostgres) Create(ctx context.Context, m *model.Manager) (*model.Manager, error) {
	const q = `
		INSERT INTO managers (id, name, contracts_count)
		VALUES ($1, $2, $3)
		RETURNING id, name, contracts_count
	`
	return scanManager(r.db.QueryRowContext(ctx, q, m.ID, m.Name, m.ContractsCount))
}

// FindByID fetches a single manager by its ID.
func (r *ManagerPostgres) FindByID(ctx context.Context, id string) (*model.Manager, error) {
	const q = `
		SELECT id, name, contracts_count
		FROM managers
		WHERE id = $1
	`
	return scanManager(r.db.QueryRowContext(ctx, q, id))
}

// List returns managers using LIMIT/OFFSET pagination and a total count.
func (r *ManagerPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Manager], error) {
	const qCount = `SELECT COUNT(*) FROM managers`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT id, name, contracts_count
		FROM managers
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`
	items, err := r.query(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Manager]{
		Items: items,
		Total: total,
	}, nil
}

// All returns every manager row.
func (r *ManagerPostgres) All(ctx context.Context) ([]model.Manager, error) {
	const q = `
		SELECT id, name, contracts_count
		FROM managers
		ORDER BY name, id
	`
	return r.query(ctx, q)
}

// Update applies the non-nil patch fields in one statement.
// COALESCE keeps the current column value for fields the patch leaves unset.
func (r *ManagerPostgres) Update(ctx context.Context, id string, patch model.ManagerPatch) (*model.Manager, error) {
	const q = `
		UPDATE managers
		SET name = COALESCE($2, name),
		    contracts_count = COALESCE($3, contracts_count)
		WHERE id = $1
		RETURNING id, name, contracts_count
	`
	return scanManager(r.db.QueryRowContext(ctx, q, id, nullString(patch.Name), nullInt(patch.ContractsCount)))
}

// Delete removes a manager by ID and returns sql.ErrNoRows when nothing was deleted.
func (r *ManagerPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM managers WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ManagerPostgres) query(ctx context.Context, q string, args ...any) ([]model.Manager, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Manager, 0)
	for rows.Next() {
		m, err := scanManager(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}
