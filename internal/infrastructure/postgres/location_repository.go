package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `location_id, name, address, manager, created_at`

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva ubicación.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (location_id, name, address, manager, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, l.ID, l.Name, l.Address, l.Manager, l.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	var l entity.Location
	err := r.q.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE location_id = $1`, id).
		Scan(&l.ID, &l.Name, &l.Address, &l.Manager, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// Update actualiza los datos descriptivos de la ubicación.
func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	query := `UPDATE locations SET name = $2, address = $3, manager = $4 WHERE location_id = $1`
	cmd, err := r.q.Exec(ctx, query, l.ID, l.Name, l.Address, l.Manager)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina la ubicación. La llave foránea de product_movements rechaza el borrado si está en uso.
func (r *LocationRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM locations WHERE location_id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

// List lista ubicaciones con búsqueda por ID, nombre o dirección.
func (r *LocationRepo) List(ctx context.Context, filter repository.ListFilter) ([]*entity.Location, int, error) {
	filter = filter.Normalize()
	where := ""
	args := []any{}
	if filter.Query != "" {
		where = ` WHERE location_id ILIKE $1 OR name ILIKE $1 OR address ILIKE $1`
		args = append(args, likePattern(filter.Query))
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM locations`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count locations: %w", err)
	}
	pos := len(args) + 1
	query := fmt.Sprintf(`SELECT %s FROM locations%s ORDER BY created_at DESC, location_id LIMIT $%d OFFSET $%d`,
		locationColumns, where, pos, pos+1)
	list, err := r.query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll lista todas las ubicaciones.
func (r *LocationRepo) ListAll(ctx context.Context) ([]*entity.Location, error) {
	return r.query(ctx, `SELECT `+locationColumns+` FROM locations ORDER BY name, location_id`)
}

// Count total de ubicaciones.
func (r *LocationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM locations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count locations: %w", err)
	}
	return n, nil
}

func (r *LocationRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Location, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Manager, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
