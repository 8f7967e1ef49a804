package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Tests are skipped when
// no MySQL instance named 'eggsreserve_test' is reachable on localhost:3306.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/eggsreserve_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every table and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"order_details", "orders", "harvests", "coops", "products", "expenses", "email_settings", "stock"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema used by the repository integration tests.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createStockTable := `
	CREATE TABLE IF NOT EXISTS stock (
		id INT NOT NULL PRIMARY KEY,
		current_quantity INT NOT NULL DEFAULT 0,
		max_quantity INT NOT NULL DEFAULT 100,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_number VARCHAR(20) NOT NULL UNIQUE,
		customer_name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		phone VARCHAR(50),
		quantity INT NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		is_flagged TINYINT(1) NOT NULL DEFAULT 0,
		total DECIMAL(10,2) NOT NULL DEFAULT 0.00,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_order_number (order_number)
	)`

	createOrderDetailsTable := `
	CREATE TABLE IF NOT EXISTS order_details (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id BIGINT NOT NULL,
		product VARCHAR(255) NOT NULL,
		sku VARCHAR(100),
		upc VARCHAR(100),
		qty INT NOT NULL,
		sale DECIMAL(10,2) NOT NULL,
		cost DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		INDEX idx_order (order_id)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		sale_price DECIMAL(10,2) NOT NULL,
		cost_price DECIMAL(10,2) NOT NULL,
		sku VARCHAR(100),
		upc VARCHAR(100),
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createCoopsTable := `
	CREATE TABLE IF NOT EXISTS coops (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		num_birds INT NOT NULL DEFAULT 0,
		has_rooster TINYINT(1) NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createHarvestsTable := `
	CREATE TABLE IF NOT EXISTS harvests (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		coop_id BIGINT NOT NULL,
		eggs_collected INT NOT NULL,
		collection_date DATE NOT NULL,
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (coop_id) REFERENCES coops(id) ON DELETE CASCADE,
		INDEX idx_coop (coop_id),
		INDEX idx_date (collection_date)
	)`

	createExpensesTable := `
	CREATE TABLE IF NOT EXISTS expenses (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		quantity DECIMAL(10,2) NOT NULL DEFAULT 1,
		cost DECIMAL(10,2) NOT NULL,
		date DATE NOT NULL,
		total_cost DECIMAL(10,2) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

	createEmailSettingsTable := `
	CREATE TABLE IF NOT EXISTS email_settings (
		id INT NOT NULL PRIMARY KEY,
		smtp_host VARCHAR(255) NOT NULL DEFAULT '',
		smtp_port INT NOT NULL DEFAULT 587,
		smtp_user VARCHAR(255) NOT NULL DEFAULT '',
		smtp_password VARCHAR(255) NOT NULL DEFAULT '',
		notification_email VARCHAR(255) NOT NULL DEFAULT '',
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"stock", createStockTable},
		{"orders", createOrdersTable},
		{"order_details", createOrderDetailsTable},
		{"products", createProductsTable},
		{"coops", createCoopsTable},
		{"harvests", createHarvestsTable},
		{"expenses", createExpensesTable},
		{"email_settings", createEmailSettingsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Fatalf("failed to create table %s: %v", tbl.name, err)
		}
	}
}

// SeedStock inserts (or resets) the single stock row used by stock tests.
func SeedStock(t *testing.T, db *sql.DB, current, max int) {
	_, err := db.Exec(`
		INSERT INTO stock (id, current_quantity, max_quantity) VALUES (1, ?, ?)
		ON DUPLICATE KEY UPDATE current_quantity = VALUES(current_quantity), max_quantity = VALUES(max_quantity)`,
		current, max)
	if err != nil {
		t.Fatalf("failed to seed stock: %v", err)
	}
}
