// Package storage elige el adapter de persistencia según configuración.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	lite "pet-adoption/internal/adapters/storage/sqlite"
	"pet-adoption/internal/domain/pets"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

type Options struct {
	Driver string
	// DSN: URL de conexión en postgres, path del archivo en sqlite. Ignorado en memory.
	DSN string
	// AutoMigrate aplica el schema al abrir.
	AutoMigrate bool
}

// Store agrupa el repo de mascotas y la conexión subyacente (si hay).
type Store struct {
	Pets   pets.Repository
	Driver string

	db      *sql.DB
	migrate func(ctx context.Context, db *sql.DB) error
}

func Open(ctx context.Context, opts Options) (*Store, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	if driver == "" {
		driver = DriverMemory
	}

	s := &Store{Driver: driver}

	switch driver {
	case DriverMemory:
		s.Pets = mem.NewPetRepo()
		return s, nil

	case DriverPostgres:
		if strings.TrimSpace(opts.DSN) == "" {
			return nil, errors.New("storage: postgres requires a dsn")
		}
		db, err := pg.Open(opts.DSN)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.migrate = pg.Migrate
		s.Pets = pg.NewPetsRepo(db)

	case DriverSQLite:
		if strings.TrimSpace(opts.DSN) == "" {
			return nil, errors.New("storage: sqlite requires a file path")
		}
		db, err := lite.Open(opts.DSN)
		if err != nil {
			return nil, err
		}
		s.db = db
		s.migrate = lite.Migrate
		s.Pets = lite.NewPetsRepo(db)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}

	if opts.AutoMigrate {
		if err := s.Migrate(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

// Migrate aplica el schema. En memory no hace nada.
func (s *Store) Migrate(ctx context.Context) error {
	if s.migrate == nil || s.db == nil {
		return nil
	}
	return s.migrate(ctx, s.db)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
