package core

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLTableReader reads a whole table from MySQL or PostgreSQL, columns in
// the order the driver reports them.
type SQLTableReader struct {
	DB    *sql.DB
	Table string
}

func NewSQLTableReader(db *sql.DB, table string) *SQLTableReader {
	return &SQLTableReader{DB: db, Table: table}
}

func (r *SQLTableReader) Read(ctx context.Context) (*Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s", r.Table)
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var data [][]string
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}

		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = stringify(v)
		}
		data = append(data, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return NewTable(columns, data), nil
}
