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

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementSelect = `SELECT m.movement_id, m.timestamp, m.from_location, m.to_location, m.product_id, m.qty, m.notes
	FROM product_movements m`

const newestFirst = ` ORDER BY m.timestamp DESC, m.movement_id`

// MovementRepo libro de movimientos sobre SQLite.
type MovementRepo struct {
	q sqlx.ExtContext
}

// NewMovementRepository construye el repositorio.
func NewMovementRepository(q sqlx.ExtContext) *MovementRepo {
	return &MovementRepo{q: q}
}

func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO product_movements (movement_id, timestamp, from_location, to_location, product_id, qty, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, formatTime(m.Timestamp), nullString(m.FromLocation), nullString(m.ToLocation), m.ProductID, m.Qty, m.Notes,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o ubicación inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	var row movementRow
	err := sqlx.GetContext(ctx, r.q, &row, movementSelect+` WHERE m.movement_id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return row.toEntity()
}

func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE product_movements SET from_location = ?, to_location = ?, product_id = ?, qty = ?, notes = ?
		 WHERE movement_id = ?`,
		nullString(m.FromLocation), nullString(m.ToLocation), m.ProductID, m.Qty, m.Notes, m.ID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o ubicación inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("update movement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM product_movements WHERE movement_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovementRepo) List(ctx context.Context, filter repository.ListFilter) ([]*entity.Movement, int, error) {
	filter = filter.Normalize()
	join := ` LEFT JOIN products p ON p.product_id = m.product_id`
	where := ""
	var args []any
	if filter.Query != "" {
		where = ` WHERE m.movement_id LIKE ? ESCAPE '\' OR m.product_id LIKE ? ESCAPE '\' OR p.name LIKE ? ESCAPE '\'`
		p := likePattern(filter.Query)
		args = append(args, p, p, p)
	}
	var total int
	if err := sqlx.GetContext(ctx, r.q, &total, `SELECT COUNT(*) FROM product_movements m`+join+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}
	list, err := r.selectAll(ctx, movementSelect+join+where+newestFirst+` LIMIT ? OFFSET ?`,
		append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	return r.selectAll(ctx, movementSelect+newestFirst)
}

func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.selectAll(ctx, movementSelect+` WHERE m.product_id = ?`+newestFirst, productID)
}

func (r *MovementRepo) ListFromLocation(ctx context.Context, locationID string) ([]*entity.Movement, error) {
	return r.selectAll(ctx, movementSelect+` WHERE m.from_location = ?`+newestFirst, locationID)
}

func (r *MovementRepo) ListToLocation(ctx context.Context, locationID string) ([]*entity.Movement, error) {
	return r.selectAll(ctx, movementSelect+` WHERE m.to_location = ?`+newestFirst, locationID)
}

func (r *MovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM product_movements WHERE product_id = ?`, productID)
	if err != nil {
		return 0, fmt.Errorf("count movements by product: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) CountByLocation(ctx context.Context, locationID string) (int, error) {
	var n int
	err := sqlx.GetContext(ctx, r.q, &n,
		`SELECT COUNT(*) FROM product_movements WHERE from_location = ? OR to_location = ?`, locationID, locationID)
	if err != nil {
		return 0, fmt.Errorf("count movements by location: %w", err)
	}
	return n, nil
}

func (r *MovementRepo) Recent(ctx context.Context, n int) ([]*entity.Movement, error) {
	return r.selectAll(ctx, movementSelect+newestFirst+` LIMIT ?`, n)
}

func (r *MovementRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM product_movements`); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// Stock entradas menos salidas del producto en la ubicación, excluyendo opcionalmente un movimiento.
func (r *MovementRepo) Stock(ctx context.Context, productID, locationID, excludeMovementID string) (int64, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN to_location = ? THEN qty ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN from_location = ? THEN qty ELSE 0 END), 0)
		FROM product_movements
		WHERE product_id = ?
		  AND (to_location = ? OR from_location = ?)
		  AND (? = '' OR movement_id <> ?)`
	var qty int64
	err := sqlx.GetContext(ctx, r.q, &qty, query,
		locationID, locationID, productID, locationID, locationID, excludeMovementID, excludeMovementID)
	if err != nil {
		return 0, fmt.Errorf("stock query: %w", err)
	}
	return qty, nil
}

func (r *MovementRepo) selectAll(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	var rows []movementRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	out := make([]*entity.Movement, 0, len(rows))
	for _, row := range rows {
		m, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
