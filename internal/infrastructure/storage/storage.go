// Package storage arma el backend del libro (SQLite o PostgreSQL) según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-ledger/internal/infrastructure/sqlite"
	"github.com/jhoicas/Inventario-ledger/pkg/config"
)

// Store repositorios y runner de transacciones sobre el mismo backend.
type Store struct {
	Driver    string
	Products  repository.ProductRepository
	Locations repository.LocationRepository
	Movements repository.MovementRepository
	Tx        ledger.TxRunner
	close     func() error
}

// Close libera las conexiones.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open conecta al backend configurado y aplica el esquema.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:    config.DriverPostgres,
			Products:  postgres.NewProductRepository(pool),
			Locations: postgres.NewLocationRepository(pool),
			Movements: postgres.NewMovementRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			close:     func() error { pool.Close(); return nil },
		}, nil
	case config.DriverSQLite, "":
		return OpenSQLite(ctx, cfg.Store.SQLitePath)
	default:
		return nil, fmt.Errorf("driver de almacenamiento no soportado: %q", cfg.Store.Driver)
	}
}

// OpenSQLite abre un Store SQLite en path (":memory:" para pruebas).
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	db, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	return &Store{
		Driver:    config.DriverSQLite,
		Products:  sqlite.NewProductRepository(db),
		Locations: sqlite.NewLocationRepository(db),
		Movements: sqlite.NewMovementRepository(db),
		Tx:        sqlite.NewTxRunner(db),
		close:     db.Close,
	}, nil
}
