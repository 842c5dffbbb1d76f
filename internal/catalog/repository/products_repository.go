package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"hornada/internal/domain"
	"hornada/internal/errors"
	"hornada/internal/infrastructure/mysql"
	"hornada/internal/units"
)

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

const productColumns = `id, sku, name, description, type, measureUnit,
	salePrice, costPrice, currentStock, minStock, isActive, createdAt, updatedAt`

func scanProduct(row interface{ Scan(...interface{}) error }) (*domain.Product, error) {
	var p domain.Product
	var unit string
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Type, &unit,
		&p.SalePrice, &p.CostPrice, &p.CurrentStock, &p.MinStock,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.MeasureUnit = units.Unit(unit)
	return &p, nil
}

func (r *MySQLRepository) Insert(ctx context.Context, p domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.Type, string(p.MeasureUnit),
		p.SalePrice, p.CostPrice, p.CurrentStock, p.MinStock,
		p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func (r *MySQLRepository) Update(ctx context.Context, p domain.Product) error {
	query := `
		UPDATE products
		SET name = ?, description = ?, measureUnit = ?, salePrice = ?,
		    costPrice = ?, minStock = ?, isActive = ?, updatedAt = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.Description, string(p.MeasureUnit), p.SalePrice,
		p.CostPrice, p.MinStock, p.IsActive, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product %s not found", p.ID))
	}
	return nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ?`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}
	return p, nil
}

func (r *MySQLRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = ?`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, sku))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with sku %s not found", sku))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by sku: %w", err)
	}
	return p, nil
}

func (r *MySQLRepository) List(ctx context.Context, typeFilter string, onlyActive bool) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1 = 1`
	args := []interface{}{}

	if typeFilter != "" {
		query += ` AND type = ?`
		args = append(args, typeFilter)
	}
	if onlyActive {
		query += ` AND isActive = 1`
	}
	query += ` ORDER BY sku`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}
	return products, nil
}

// FindByIDForUpdate locks the product row for the duration of tx.
// Used by the ledger transaction to serialize stock changes.
func (r *MySQLRepository) FindByIDForUpdate(ctx context.Context, tx mysql.Tx, id string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = ? FOR UPDATE`

	p, err := scanProduct(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product for update: %w", err)
	}
	return p, nil
}

// UpdateStock writes the cached running balance inside the ledger
// transaction that appended the corresponding entry.
func (r *MySQLRepository) UpdateStock(ctx context.Context, tx mysql.Tx, id string, stock decimal.Decimal) error {
	query := `UPDATE products SET currentStock = ?, updatedAt = NOW() WHERE id = ?`

	result, err := tx.ExecContext(ctx, query, stock, id)
	if err != nil {
		return fmt.Errorf("updating product stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}
	return nil
}

// UpdateCostPrice persists a re-derived composite cost cache value.
func (r *MySQLRepository) UpdateCostPrice(ctx context.Context, id string, cost decimal.Decimal) error {
	query := `UPDATE products SET costPrice = ?, updatedAt = NOW() WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, cost, id)
	if err != nil {
		return fmt.Errorf("updating product cost price: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("product %s not found", id))
	}
	return nil
}
