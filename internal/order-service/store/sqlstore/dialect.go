package sqlstore

import (
	"fmt"
	"strconv"
	"strings"

	// Register the database drivers the store can run on.
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect captures the differences between the supported databases.
type Dialect struct {
	// Name is the database/sql driver name.
	Name   string
	schema string
	// numbered placeholders ($1, $2, ...) instead of ?.
	numbered bool
}

var (
	Postgres = Dialect{Name: "postgres", schema: postgresSchema, numbered: true}
	SQLite   = Dialect{Name: "sqlite", schema: sqliteSchema}
)

// DialectFor returns the dialect registered for a driver name.
func DialectFor(driver string) (Dialect, error) {
	switch strings.ToLower(driver) {
	case "postgres", "postgresql":
		return Postgres, nil
	case "sqlite", "sqlite3":
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
}

// rebind rewrites ? placeholders for dialects that use numbered ones.
// Queries in this package never contain a literal '?'.
func (d Dialect) rebind(query string) string {
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

const postgresSchema = `
CREATE TABLE IF NOT EXISTS orders (
    id           UUID          PRIMARY KEY,
    total_amount NUMERIC(14,2) NOT NULL CHECK (total_amount >= 0),
    total_items  INTEGER       NOT NULL CHECK (total_items >= 0),
    status       TEXT          NOT NULL DEFAULT 'PENDING'
                 CHECK (status IN ('PENDING', 'CANCELLED', 'DELIVERED')),
    paid         BOOLEAN       NOT NULL DEFAULT FALSE,
    created_at   TIMESTAMPTZ   NOT NULL,
    updated_at   TIMESTAMPTZ   NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at);

CREATE TABLE IF NOT EXISTS order_items (
    id         UUID          PRIMARY KEY,
    order_id   UUID          NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    position   INTEGER       NOT NULL,
    product_id TEXT          NOT NULL,
    quantity   INTEGER       NOT NULL CHECK (quantity > 0),
    price      NUMERIC(14,2) NOT NULL CHECK (price >= 0)
);

CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`

// SQLite has no native datetime type; TIMESTAMP columns are stored as TEXT
// and parsed back to time.Time by the driver.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS orders (
    id           TEXT      PRIMARY KEY,
    total_amount NUMERIC   NOT NULL CHECK (total_amount >= 0),
    total_items  INTEGER   NOT NULL CHECK (total_items >= 0),
    status       TEXT      NOT NULL DEFAULT 'PENDING'
                 CHECK (status IN ('PENDING', 'CANCELLED', 'DELIVERED')),
    paid         BOOLEAN   NOT NULL DEFAULT 0,
    created_at   TIMESTAMP NOT NULL,
    updated_at   TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status, created_at);

CREATE TABLE IF NOT EXISTS order_items (
    id         TEXT    PRIMARY KEY,
    order_id   TEXT    NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    position   INTEGER NOT NULL,
    product_id TEXT    NOT NULL,
    quantity   INTEGER NOT NULL CHECK (quantity > 0),
    price      NUMERIC NOT NULL CHECK (price >= 0)
);

CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
`
