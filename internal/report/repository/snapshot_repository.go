package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hornada/internal/costing"
	"hornada/internal/domain"
	"hornada/internal/units"
)

type MySQLSnapshotRepository struct {
	db *sql.DB
}

func NewMySQLSnapshotRepository(db *sql.DB) *MySQLSnapshotRepository {
	return &MySQLSnapshotRepository{db: db}
}

// LoadSnapshot reads the whole catalog and recipe graph inside one
// REPEATABLE READ transaction, so a report never mixes state from
// before and after a concurrent ledger commit.
func (r *MySQLSnapshotRepository) LoadSnapshot(ctx context.Context) (costing.Snapshot, error) {
	snap := costing.Snapshot{
		Products: make(map[string]domain.Product),
		Recipes:  make(map[string]domain.Recipe),
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return snap, fmt.Errorf("beginning snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT id, sku, name, description, type, measureUnit,
		       salePrice, costPrice, currentStock, minStock, isActive, createdAt, updatedAt
		FROM products`)
	if err != nil {
		return snap, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p domain.Product
		var unit string
		if err := rows.Scan(
			&p.ID, &p.SKU, &p.Name, &p.Description, &p.Type, &unit,
			&p.SalePrice, &p.CostPrice, &p.CurrentStock, &p.MinStock,
			&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return snap, fmt.Errorf("scanning product row: %w", err)
		}
		p.MeasureUnit = units.Unit(unit)
		snap.Products[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return snap, fmt.Errorf("iterating product rows: %w", err)
	}

	recipeRows, err := tx.QueryContext(ctx, `SELECT productId, yield FROM recipes`)
	if err != nil {
		return snap, fmt.Errorf("querying recipes: %w", err)
	}
	defer recipeRows.Close()
	for recipeRows.Next() {
		var rec domain.Recipe
		if err := recipeRows.Scan(&rec.ProductID, &rec.Yield); err != nil {
			return snap, fmt.Errorf("scanning recipe row: %w", err)
		}
		snap.Recipes[rec.ProductID] = rec
	}
	if err := recipeRows.Err(); err != nil {
		return snap, fmt.Errorf("iterating recipe rows: %w", err)
	}

	lineRows, err := tx.QueryContext(ctx, `
		SELECT productId, componentId, quantity, unit
		FROM recipe_lines
		ORDER BY productId, position`)
	if err != nil {
		return snap, fmt.Errorf("querying recipe lines: %w", err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var owner, unit string
		var line domain.RecipeLine
		if err := lineRows.Scan(&owner, &line.ComponentID, &line.Quantity, &unit); err != nil {
			return snap, fmt.Errorf("scanning recipe line: %w", err)
		}
		line.Unit = units.Unit(unit)
		rec := snap.Recipes[owner]
		rec.ProductID = owner
		rec.Lines = append(rec.Lines, line)
		snap.Recipes[owner] = rec
	}
	if err := lineRows.Err(); err != nil {
		return snap, fmt.Errorf("iterating recipe lines: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return snap, fmt.Errorf("committing snapshot transaction: %w", err)
	}
	return snap, nil
}
