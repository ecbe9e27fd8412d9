// Package extdb reaches the secondary analytical database (MariaDB) through
// ephemeral connections: one open/ping/query/close cycle per call, never
// pooled and never shared across requests. A failing or slow analytical query
// therefore cannot leak connections into anything long-lived.
package extdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
)

// Config holds connection parameters for one secondary-database call.
type Config struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	Engine   string // "mysql" or "mariadb"; both use the mysql driver
}

// DSN renders the go-sql-driver connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&timeout=5s",
		c.Username, c.Password, c.Host, c.Port, c.Database)
}

// Result is the shaped output of one statement.
type Result struct {
	Columns  []string                 `json:"columns"`
	Rows     []map[string]interface{} `json:"rows"`
	RowCount int                      `json:"rowCount"`
}

// open establishes a single-use connection. MaxIdleConns(0) makes Close tear
// the socket down immediately instead of parking it.
func open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open connection: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return db, nil
}

// Test verifies that the connection parameters reach a live server.
func Test(ctx context.Context, cfg Config) error {
	db, err := open(ctx, cfg)
	if err != nil {
		return err
	}
	return db.Close()
}

// Run executes exactly one statement and closes the connection on every exit
// path.
func Run(ctx context.Context, cfg Config, query string) (*Result, error) {
	db, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return runQuery(ctx, db, query)
}

// ListDatabases returns the database names visible to the connection.
func ListDatabases(ctx context.Context, cfg Config) ([]string, error) {
	res, err := Run(ctx, cfg, "SHOW DATABASES")
	if err != nil {
		return nil, err
	}
	return firstColumnStrings(res), nil
}

// ListTables returns the table names of the configured database.
func ListTables(ctx context.Context, cfg Config) ([]string, error) {
	res, err := Run(ctx, cfg, "SHOW TABLES")
	if err != nil {
		return nil, err
	}
	return firstColumnStrings(res), nil
}

// runQuery executes the statement on an already-open handle and shapes the
// rows generically. Split out so tests can drive it with sqlmock.
func runQuery(ctx context.Context, db *sql.DB, query string) (*Result, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	resultRows := []map[string]interface{}{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range columns {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		rowMap := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			val := values[i]
			if b, ok := val.([]byte); ok {
				rowMap[col] = string(b)
			} else {
				rowMap[col] = val
			}
		}
		resultRows = append(resultRows, rowMap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return &Result{
		Columns:  columns,
		Rows:     resultRows,
		RowCount: len(resultRows),
	}, nil
}

func firstColumnStrings(res *Result) []string {
	if len(res.Columns) == 0 {
		return nil
	}
	col := res.Columns[0]
	names := make([]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		if s, ok := row[col].(string); ok {
			names = append(names, s)
		}
	}
	return names
}
