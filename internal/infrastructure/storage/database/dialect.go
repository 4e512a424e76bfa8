package database

import (
	"fmt"
	"strconv"
	"strings"

	"mailkeeper/internal/app/server/config"
)

type dialect struct {
	name       string
	driverName string
	// postgres wants $1..$n and returns the new id with RETURNING
	numbered bool
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case config.DriverMySQL:
		return dialect{name: driver, driverName: "mysql"}, nil
	case config.DriverPostgres:
		return dialect{name: driver, driverName: "pgx", numbered: true}, nil
	case config.DriverSQLite:
		return dialect{name: driver, driverName: "sqlite3"}, nil
	}
	return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
}

// rebind rewrites ? placeholders for drivers that number them.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (d dialect) insertQuery() string {
	if d.numbered {
		return d.rebind(insertEmail + " RETURNING id")
	}
	return insertEmail
}
