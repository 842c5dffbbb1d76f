package repository

import (
	"context"
	"database/sql"
	"fmt"

	"hornada/internal/domain"
	"hornada/internal/errors"
	"hornada/internal/infrastructure/mysql"
	"hornada/internal/units"
)

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type MySQLRecipeRepository struct {
	db *sql.DB
}

func NewMySQLRecipeRepository(db *sql.DB) *MySQLRecipeRepository {
	return &MySQLRecipeRepository{db: db}
}

func (r *MySQLRecipeRepository) FindByProduct(ctx context.Context, productID string) (*domain.Recipe, error) {
	return findByProduct(ctx, r.db, productID)
}

// FindByProductTx reads the recipe through the caller's transaction, so
// the result reflects the rows the transaction's locks protect.
func (r *MySQLRecipeRepository) FindByProductTx(ctx context.Context, tx mysql.Tx, productID string) (*domain.Recipe, error) {
	return findByProduct(ctx, tx, productID)
}

func findByProduct(ctx context.Context, q queryer, productID string) (*domain.Recipe, error) {
	var rec domain.Recipe
	err := q.QueryRowContext(ctx,
		`SELECT productId, yield FROM recipes WHERE productId = ?`, productID,
	).Scan(&rec.ProductID, &rec.Yield)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %s has no recipe", productID))
	}
	if err != nil {
		return nil, fmt.Errorf("querying recipe: %w", err)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT componentId, quantity, unit
		FROM recipe_lines
		WHERE productId = ?
		ORDER BY position`, productID)
	if err != nil {
		return nil, fmt.Errorf("querying recipe lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.RecipeLine
		var unit string
		if err := rows.Scan(&line.ComponentID, &line.Quantity, &unit); err != nil {
			return nil, fmt.Errorf("scanning recipe line: %w", err)
		}
		line.Unit = units.Unit(unit)
		rec.Lines = append(rec.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipe lines: %w", err)
	}

	return &rec, nil
}

// Replace swaps the stored recipe for rec inside the caller's
// transaction. The old lines survive a rollback; a half-written recipe
// is never visible.
func (r *MySQLRecipeRepository) Replace(ctx context.Context, tx mysql.Tx, rec domain.Recipe) error {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipe_lines WHERE productId = ?`, rec.ProductID); err != nil {
		return fmt.Errorf("deleting old recipe lines: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recipes WHERE productId = ?`, rec.ProductID); err != nil {
		return fmt.Errorf("deleting old recipe: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO recipes (productId, yield) VALUES (?, ?)`,
		rec.ProductID, rec.Yield); err != nil {
		return fmt.Errorf("inserting recipe: %w", err)
	}

	for position, line := range rec.Lines {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO recipe_lines (productId, position, componentId, quantity, unit)
			VALUES (?, ?, ?, ?, ?)`,
			rec.ProductID, position, line.ComponentID, line.Quantity, string(line.Unit),
		); err != nil {
			return fmt.Errorf("inserting recipe line %d: %w", position, err)
		}
	}

	return nil
}

func (r *MySQLRecipeRepository) LoadEdges(ctx context.Context, tx mysql.Tx) (map[string][]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT productId, componentId FROM recipe_lines ORDER BY productId, position`)
	if err != nil {
		return nil, fmt.Errorf("querying recipe edges: %w", err)
	}
	defer rows.Close()

	edges := make(map[string][]string)
	for rows.Next() {
		var owner, component string
		if err := rows.Scan(&owner, &component); err != nil {
			return nil, fmt.Errorf("scanning recipe edge: %w", err)
		}
		edges[owner] = append(edges[owner], component)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recipe edges: %w", err)
	}
	return edges, nil
}
