package migration

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	// database drivers for the supported DB_DRIVER values
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"golang.org/x/exp/slog"

	"mailkeeper/internal/app/server/config"
	"mailkeeper/internal/infrastructure/storage/database"
)

//go:embed sql
var migrations embed.FS

// Migrator is the subset of migrate.Migrate used here.
type Migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Close() (error, error)
}

// MigrationEngine builds a Migrator; tests replace it to stay off the filesystem and database.
type MigrationEngine func(src source.Driver, databaseURL string) (Migrator, error)

type Migration struct {
	cfg    config.DB
	engine MigrationEngine
	log    *slog.Logger
}

func NewMigration(cfg config.DB, engine MigrationEngine, log *slog.Logger) *Migration {
	if engine == nil {
		engine = DefaultEngine
	}
	return &Migration{
		cfg:    cfg,
		engine: engine,
		log:    log.With("component", "migration"),
	}
}

func DefaultEngine(src source.Driver, databaseURL string) (Migrator, error) {
	return migrate.NewWithSourceInstance("iofs", src, databaseURL)
}

// Up applies all pending migrations. No pending migrations is not an error.
func (mg *Migration) Up() error {
	return mg.run(func(m Migrator) error {
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up: %w", err)
		}
		mg.log.Info("schema is up to date")
		return nil
	})
}

// Down rolls back the given number of migrations.
func (mg *Migration) Down(steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	return mg.run(func(m Migrator) error {
		if err := m.Steps(-steps); err != nil {
			return fmt.Errorf("migration down: %w", err)
		}
		return nil
	})
}

// Status reports the applied version. A fresh database reports version 0.
func (mg *Migration) Status() (version uint, dirty bool, err error) {
	err = mg.run(func(m Migrator) error {
		var verr error
		version, dirty, verr = m.Version()
		if errors.Is(verr, migrate.ErrNilVersion) {
			return nil
		}
		return verr
	})
	return version, dirty, err
}

func (mg *Migration) run(fn func(Migrator) error) (err error) {
	src, err := iofs.New(migrations, "sql/"+mg.cfg.Driver)
	if err != nil {
		return fmt.Errorf("load migrations for %s: %w", mg.cfg.Driver, err)
	}

	m, err := mg.engine(src, database.MigrationURL(mg.cfg))
	if err != nil {
		_ = src.Close()
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source error: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database error: %w", dberr))
		}
	}()

	return fn(m)
}
