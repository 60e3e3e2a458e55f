package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"mini-inventory/internal/database"
	"mini-inventory/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container with the snapshot schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	logger := zerolog.Nop()
	pool, err := database.Connect(ctx, connStr, database.DefaultPoolOptions(), logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := repository.NewInventoryRepository(pool, logger).EnsureSchema(ctx); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// SeedSnapshot inserts a stored snapshot of two products and three
// transactions, one of which refers to a product that is no longer stored.
func SeedSnapshot(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id       int
		name     string
		quantity int
		price    float64
		category string
	}{
		{3, "Laptop", 8, 350.0, "Electronics"},
		{7, "Iphone", 2, 800.0, "Electronics"},
	}
	for _, p := range products {
		_, err := pool.Exec(ctx,
			"INSERT INTO products (id, name, quantity, price, category) VALUES ($1, $2, $3, $4, $5)",
			p.id, p.name, p.quantity, p.price, p.category,
		)
		if err != nil {
			t.Fatalf("failed to seed product %d: %v", p.id, err)
		}
	}

	day := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	transactions := []struct {
		id        int
		productID int
		quantity  int
		typ       string
	}{
		{1, 3, 2, "SALE"},
		{2, 7, 8, "SALE"},
		{3, 9, 9, "SALE"},
	}
	for _, tx := range transactions {
		_, err := pool.Exec(ctx,
			"INSERT INTO transactions (id, product_id, quantity, date, type) VALUES ($1, $2, $3, $4, $5)",
			tx.id, tx.productID, tx.quantity, day, tx.typ,
		)
		if err != nil {
			t.Fatalf("failed to seed transaction %d: %v", tx.id, err)
		}
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"transactions", "products"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
