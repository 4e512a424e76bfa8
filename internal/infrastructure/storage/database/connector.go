package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	// database/sql drivers
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"mailkeeper/internal/app/server/config"
	"mailkeeper/internal/domain/credential"
)

const defaultSQLiteFile = "mailkeeper.db"

// OpenFunc matches sql.Open; tests swap it for go-sqlmock.
type OpenFunc func(driverName, dataSourceName string) (*sql.DB, error)

type Option func(*Connector)

func WithOpenFunc(fn OpenFunc) Option {
	return func(c *Connector) {
		c.open = fn
	}
}

// Connector opens a dedicated connection for every logical operation.
// There is no pool shared between requests.
type Connector struct {
	driver  string
	dsn     string
	dialect dialect
	open    OpenFunc
	log     *slog.Logger
}

func NewConnector(cfg config.DB, log *slog.Logger, opts ...Option) (*Connector, error) {
	d, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.URI
	if dsn == "" {
		dsn = DSN(cfg)
	}

	c := &Connector{
		driver:  d.driverName,
		dsn:     dsn,
		dialect: d,
		open:    sql.Open,
		log:     log.With("component", "db_connector", "driver", cfg.Driver),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Open returns a live Session. The caller must Close it.
func (c *Connector) Open(ctx context.Context) (credential.Session, error) {
	db, err := c.open(c.driver, c.dsn)
	if err != nil {
		c.log.Error("failed to open connection", "error", err)
		return nil, fmt.Errorf("%w: %w", credential.ErrConnection, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		c.log.Error("failed to reach database", "error", err)
		return nil, fmt.Errorf("%w: %w", credential.ErrConnection, err)
	}

	return &Session{db: db, dialect: c.dialect, log: c.log}, nil
}

// DSN builds the driver-specific data source name from discrete settings.
func DSN(cfg config.DB) string {
	switch cfg.Driver {
	case config.DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
		mc.DBName = cfg.Name
		mc.ParseTime = true
		return mc.FormatDSN()
	case config.DriverPostgres:
		return postgresURL(cfg).String()
	case config.DriverSQLite:
		if cfg.Name == "" {
			return defaultSQLiteFile
		}
		return cfg.Name
	}
	return ""
}

// MigrationURL returns the database URL in the form golang-migrate expects.
func MigrationURL(cfg config.DB) string {
	dsn := cfg.URI
	if dsn == "" {
		dsn = DSN(cfg)
	}

	switch cfg.Driver {
	case config.DriverMySQL:
		return withScheme("mysql", dsn)
	case config.DriverPostgres:
		return dsn
	case config.DriverSQLite:
		return withScheme("sqlite3", dsn)
	}
	return dsn
}

func postgresURL(cfg config.DB) *url.URL {
	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	return u
}

func withScheme(scheme, dsn string) string {
	if strings.HasPrefix(dsn, scheme+"://") {
		return dsn
	}
	return scheme + "://" + dsn
}
