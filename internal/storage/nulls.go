package storage

import (
	"database/sql"
	"fmt"
)

type nullInt struct{ sql.NullInt64 }

func (n nullInt) Int() int { return int(n.Int64) }

// closeRows closes rows and reports any iteration error.
func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("failed to read rows: %w", err)
	}
	return rows.Close()
}
