package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo ubicaciones sobre SQLite.
type LocationRepo struct {
	q sqlx.ExtContext
}

// NewLocationRepository construye el repositorio.
func NewLocationRepository(q sqlx.ExtContext) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO locations (location_id, name, address, manager, created_at) VALUES (?, ?, ?, ?, ?)`,
		l.ID, l.Name, l.Address, l.Manager, formatTime(l.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	var row locationRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT * FROM locations WHERE location_id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return row.toEntity()
}

func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE locations SET name = ?, address = ?, manager = ? WHERE location_id = ?`,
		l.Name, l.Address, l.Manager, l.ID,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM locations WHERE location_id = ?`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

func (r *LocationRepo) List(ctx context.Context, filter repository.ListFilter) ([]*entity.Location, int, error) {
	filter = filter.Normalize()
	where := ""
	var args []any
	if filter.Query != "" {
		where = ` WHERE location_id LIKE ? ESCAPE '\' OR name LIKE ? ESCAPE '\' OR address LIKE ? ESCAPE '\'`
		p := likePattern(filter.Query)
		args = append(args, p, p, p)
	}
	var total int
	if err := sqlx.GetContext(ctx, r.q, &total, `SELECT COUNT(*) FROM locations`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count locations: %w", err)
	}
	list, err := r.selectAll(ctx, `SELECT * FROM locations`+where+` ORDER BY created_at DESC, location_id LIMIT ? OFFSET ?`,
		append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *LocationRepo) ListAll(ctx context.Context) ([]*entity.Location, error) {
	return r.selectAll(ctx, `SELECT * FROM locations ORDER BY name, location_id`)
}

func (r *LocationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM locations`); err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}

func (r *LocationRepo) selectAll(ctx context.Context, query string, args ...any) ([]*entity.Location, error) {
	var rows []locationRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	out := make([]*entity.Location, 0, len(rows))
	for _, row := range rows {
		l, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}
