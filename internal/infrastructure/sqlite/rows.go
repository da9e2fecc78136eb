package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
)

type productRow struct {
	ID          string          `db:"product_id"`
	Name        string          `db:"name"`
	Description string          `db:"description"`
	UnitPrice   decimal.Decimal `db:"unit_price"`
	CreatedAt   string          `db:"created_at"`
}

func (r productRow) toEntity() (*entity.Product, error) {
	t, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Product{ID: r.ID, Name: r.Name, Description: r.Description, UnitPrice: r.UnitPrice, CreatedAt: t}, nil
}

type locationRow struct {
	ID        string `db:"location_id"`
	Name      string `db:"name"`
	Address   string `db:"address"`
	Manager   string `db:"manager"`
	CreatedAt string `db:"created_at"`
}

func (r locationRow) toEntity() (*entity.Location, error) {
	t, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Location{ID: r.ID, Name: r.Name, Address: r.Address, Manager: r.Manager, CreatedAt: t}, nil
}

type movementRow struct {
	ID           string         `db:"movement_id"`
	Timestamp    string         `db:"timestamp"`
	FromLocation sql.NullString `db:"from_location"`
	ToLocation   sql.NullString `db:"to_location"`
	ProductID    string         `db:"product_id"`
	Qty          int64          `db:"qty"`
	Notes        string         `db:"notes"`
}

func (r movementRow) toEntity() (*entity.Movement, error) {
	t, err := parseTime(r.Timestamp)
	if err != nil {
		return nil, err
	}
	return &entity.Movement{
		ID:           r.ID,
		ProductID:    r.ProductID,
		FromLocation: r.FromLocation.String,
		ToLocation:   r.ToLocation.String,
		Qty:          r.Qty,
		Notes:        r.Notes,
		Timestamp:    t,
	}, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
