package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the local test database. Integration tests expect
// a MySQL instance at localhost:3306 with a 'hornada_test' schema and
// skip themselves when it is not there.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/hornada_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"stock_entries", "recipe_lines", "recipes", "products"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

func SetupTestTables(t *testing.T, db *sql.DB) {
	createProducts := `
	CREATE TABLE IF NOT EXISTS products (
		id CHAR(36) NOT NULL PRIMARY KEY,
		sku VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		type VARCHAR(32) NOT NULL,
		measureUnit VARCHAR(8) NOT NULL,
		salePrice DECIMAL(12,2) NOT NULL DEFAULT 0,
		costPrice DECIMAL(14,4) NOT NULL DEFAULT 0,
		currentStock DECIMAL(14,4) NOT NULL DEFAULT 0,
		minStock DECIMAL(14,4) NOT NULL DEFAULT 0,
		isActive TINYINT(1) NOT NULL DEFAULT 1,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_type (type),
		INDEX idx_active (isActive)
	)`

	createRecipes := `
	CREATE TABLE IF NOT EXISTS recipes (
		productId CHAR(36) NOT NULL PRIMARY KEY,
		yield DECIMAL(14,4) NOT NULL DEFAULT 1,
		FOREIGN KEY (productId) REFERENCES products(id)
	)`

	createRecipeLines := `
	CREATE TABLE IF NOT EXISTS recipe_lines (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		productId CHAR(36) NOT NULL,
		position INT NOT NULL,
		componentId CHAR(36) NOT NULL,
		quantity DECIMAL(14,4) NOT NULL,
		unit VARCHAR(8) NOT NULL,
		FOREIGN KEY (productId) REFERENCES recipes(productId) ON DELETE CASCADE,
		INDEX idx_component (componentId)
	)`

	createStockEntries := `
	CREATE TABLE IF NOT EXISTS stock_entries (
		id CHAR(36) NOT NULL PRIMARY KEY,
		productId CHAR(36) NOT NULL,
		delta DECIMAL(14,4) NOT NULL,
		reason VARCHAR(32) NOT NULL,
		referenceId VARCHAR(64),
		createdAt DATETIME(6) NOT NULL,
		FOREIGN KEY (productId) REFERENCES products(id),
		INDEX idx_product_created (productId, createdAt)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"products", createProducts},
		{"recipes", createRecipes},
		{"recipe_lines", createRecipeLines},
		{"stock_entries", createStockEntries},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
