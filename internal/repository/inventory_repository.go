package repository

import (
	"context"
	"fmt"

	"mini-inventory/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// Schema is the DDL for the snapshot tables. Transactions keep the product id
// without a foreign key so entries for removed products survive a snapshot.
const Schema = `
	CREATE TABLE IF NOT EXISTS products (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		quantity INTEGER NOT NULL,
		price DOUBLE PRECISION NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY,
		product_id INTEGER NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity > 0),
		date DATE NOT NULL,
		type VARCHAR(16) NOT NULL CHECK (type IN ('SALE', 'PURCHASE'))
	);

	CREATE INDEX IF NOT EXISTS idx_transactions_product_id ON transactions(product_id);
`

// inventoryRepository implements the InventoryRepository interface using PostgreSQL.
type inventoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInventoryRepository creates a new PostgreSQL-backed snapshot repository.
func NewInventoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) InventoryRepository {
	return &inventoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "inventory").Logger(),
	}
}

// EnsureSchema creates the snapshot tables if they do not exist.
func (r *inventoryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		r.logger.Error().Err(err).Msg("failed to create schema")
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveSnapshot replaces the stored snapshot in one database transaction.
func (r *inventoryRepository) SaveSnapshot(ctx context.Context, products []model.Product, transactions []model.Transaction) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		// No-op once committed.
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM transactions`); err != nil {
		r.logger.Error().Err(err).Msg("failed to clear transactions")
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM products`); err != nil {
		r.logger.Error().Err(err).Msg("failed to clear products")
		return fmt.Errorf("failed to clear products: %w", err)
	}

	if err := r.insertProducts(ctx, tx, products); err != nil {
		return err
	}
	if err := r.insertTransactions(ctx, tx, transactions); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Msg("failed to commit snapshot")
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	r.logger.Info().
		Int("products", len(products)).
		Int("transactions", len(transactions)).
		Msg("snapshot saved")

	return nil
}

func (r *inventoryRepository) insertProducts(ctx context.Context, tx pgx.Tx, products []model.Product) error {
	if len(products) == 0 {
		return nil
	}

	query := `
		INSERT INTO products (id, name, quantity, price, category)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, p := range products {
		batch.Queue(query, p.ID, p.Name, p.Quantity, p.Price, p.Category)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(products); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int("product_id", products[i].ID).
				Msg("failed to insert product")
			return fmt.Errorf("failed to insert product %d: %w", products[i].ID, err)
		}
	}

	return nil
}

func (r *inventoryRepository) insertTransactions(ctx context.Context, tx pgx.Tx, transactions []model.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	query := `
		INSERT INTO transactions (id, product_id, quantity, date, type)
		VALUES ($1, $2, $3, $4, $5)
	`

	batch := &pgx.Batch{}
	for _, t := range transactions {
		batch.Queue(query, t.ID, t.ProductID, t.Quantity, t.Date, string(t.Type))
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(transactions); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Int("transaction_id", transactions[i].ID).
				Msg("failed to insert transaction")
			return fmt.Errorf("failed to insert transaction %d: %w", transactions[i].ID, err)
		}
	}

	return nil
}

// LoadProducts returns the stored products ordered by id.
func (r *inventoryRepository) LoadProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, quantity, price, category
		FROM products
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.Price, &p.Category); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// LoadTransactions returns the stored transactions ordered by id.
func (r *inventoryRepository) LoadTransactions(ctx context.Context) ([]model.Transaction, error) {
	query := `
		SELECT id, product_id, quantity, date, type
		FROM transactions
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query transactions")
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var (
			t   model.Transaction
			typ string
		)
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Quantity, &t.Date, &typ); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan transaction row")
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		t.Type = model.TransactionType(typ)
		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating transaction rows")
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}
