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

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `m.movement_id, m.timestamp, m.from_location, m.to_location, m.product_id, m.qty, m.notes`

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create registra un movimiento. Ubicaciones vacías se guardan como NULL.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO product_movements (movement_id, timestamp, from_location, to_location, product_id, qty, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.Timestamp, nullString(m.FromLocation), nullString(m.ToLocation), m.ProductID, m.Qty, m.Notes,
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

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	row := r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM product_movements m WHERE m.movement_id = $1`, id)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// Update reescribe producto, ubicaciones, cantidad y notas. El timestamp no cambia.
func (r *MovementRepo) Update(ctx context.Context, m *entity.Movement) error {
	query := `
		UPDATE product_movements
		SET from_location = $2, to_location = $3, product_id = $4, qty = $5, notes = $6
		WHERE movement_id = $1`
	cmd, err := r.q.Exec(ctx, query,
		m.ID, nullString(m.FromLocation), nullString(m.ToLocation), m.ProductID, m.Qty, m.Notes,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o ubicación inexistente", domain.ErrNotFound)
		}
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un movimiento.
func (r *MovementRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM product_movements WHERE movement_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista movimientos con búsqueda por ID de movimiento, ID de producto o nombre de producto.
func (r *MovementRepo) List(ctx context.Context, filter repository.ListFilter) ([]*entity.Movement, int, error) {
	filter = filter.Normalize()
	from := ` FROM product_movements m LEFT JOIN products p ON p.product_id = m.product_id`
	where := ""
	args := []any{}
	if filter.Query != "" {
		where = ` WHERE m.movement_id ILIKE $1 OR m.product_id ILIKE $1 OR p.name ILIKE $1`
		args = append(args, likePattern(filter.Query))
	}
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*)`+from+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}
	pos := len(args) + 1
	query := fmt.Sprintf(`SELECT %s%s%s ORDER BY m.timestamp DESC, m.movement_id LIMIT $%d OFFSET $%d`,
		movementColumns, from, where, pos, pos+1)
	list, err := r.query(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListAll devuelve el libro completo.
func (r *MovementRepo) ListAll(ctx context.Context) ([]*entity.Movement, error) {
	return r.query(ctx, `SELECT `+movementColumns+` FROM product_movements m ORDER BY m.timestamp DESC, m.movement_id`)
}

// ListByProduct movimientos de un producto.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	return r.query(ctx, `SELECT `+movementColumns+` FROM product_movements m
		WHERE m.product_id = $1 ORDER BY m.timestamp DESC, m.movement_id`, productID)
}

// ListFromLocation movimientos que salen de la ubicación.
func (r *MovementRepo) ListFromLocation(ctx context.Context, locationID string) ([]*entity.Movement, error) {
	return r.query(ctx, `SELECT `+movementColumns+` FROM product_movements m
		WHERE m.from_location = $1 ORDER BY m.timestamp DESC, m.movement_id`, locationID)
}

// ListToLocation movimientos que entran a la ubicación.
func (r *MovementRepo) ListToLocation(ctx context.Context, locationID string) ([]*entity.Movement, error) {
	return r.query(ctx, `SELECT `+movementColumns+` FROM product_movements m
		WHERE m.to_location = $1 ORDER BY m.timestamp DESC, m.movement_id`, locationID)
}

// CountByProduct cuántos movimientos referencian al producto.
func (r *MovementRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product_movements WHERE product_id = $1`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements by product: %w", err)
	}
	return n, nil
}

// CountByLocation cuántos movimientos usan la ubicación como origen o destino.
func (r *MovementRepo) CountByLocation(ctx context.Context, locationID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM product_movements WHERE from_location = $1 OR to_location = $1`, locationID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements by location: %w", err)
	}
	return n, nil
}

// Recent últimos n movimientos.
func (r *MovementRepo) Recent(ctx context.Context, n int) ([]*entity.Movement, error) {
	return r.query(ctx, `SELECT `+movementColumns+` FROM product_movements m
		ORDER BY m.timestamp DESC, m.movement_id LIMIT $1`, n)
}

// Count total de movimientos.
func (r *MovementRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM product_movements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

// Stock suma entradas menos salidas en SQL sin materializar el libro.
func (r *MovementRepo) Stock(ctx context.Context, productID, locationID, excludeMovementID string) (int64, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN to_location = $2 THEN qty ELSE 0 END), 0) -
			COALESCE(SUM(CASE WHEN from_location = $2 THEN qty ELSE 0 END), 0)
		FROM product_movements
		WHERE product_id = $1
		  AND (to_location = $2 OR from_location = $2)
		  AND ($3::text = '' OR movement_id <> $3::text)`
	var qty int64
	if err := r.q.QueryRow(ctx, query, productID, locationID, excludeMovementID).Scan(&qty); err != nil {
		return 0, fmt.Errorf("stock query: %w", err)
	}
	return qty, nil
}

func (r *MovementRepo) query(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var from, to *string
	if err := row.Scan(&m.ID, &m.Timestamp, &from, &to, &m.ProductID, &m.Qty, &m.Notes); err != nil {
		return nil, err
	}
	if from != nil {
		m.FromLocation = *from
	}
	if to != nil {
		m.ToLocation = *to
	}
	return &m, nil
}
