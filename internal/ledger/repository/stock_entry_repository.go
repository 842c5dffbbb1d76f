package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hornada/internal/domain"
	"hornada/internal/infrastructure/mysql"
)

type MySQLEntryRepository struct {
	db *sql.DB
}

func NewMySQLEntryRepository(db *sql.DB) *MySQLEntryRepository {
	return &MySQLEntryRepository{db: db}
}

// Insert appends an entry inside the caller's transaction. Entries are
// never updated or deleted afterwards.
func (r *MySQLEntryRepository) Insert(ctx context.Context, tx mysql.Tx, entry domain.StockEntry) error {
	query := `
		INSERT INTO stock_entries (id, productId, delta, reason, referenceId, createdAt)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := tx.ExecContext(ctx, query,
		entry.ID, entry.ProductID, entry.Delta, entry.Reason, entry.ReferenceID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting stock entry: %w", err)
	}
	return nil
}

func (r *MySQLEntryRepository) ListByProduct(ctx context.Context, productID string, limit int) ([]domain.StockEntry, error) {
	query := `
		SELECT id, productId, delta, reason, referenceId, createdAt
		FROM stock_entries
		WHERE productId = ?
		ORDER BY createdAt DESC, id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying stock entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.StockEntry
	for rows.Next() {
		var e domain.StockEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.Delta, &e.Reason, &e.ReferenceID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning stock entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stock entries: %w", err)
	}
	return entries, nil
}
