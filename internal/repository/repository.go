package repository

import (
	"context"

	"mini-inventory/internal/model"
)

// InventoryRepository stores whole-inventory snapshots in PostgreSQL.
type InventoryRepository interface {
	// EnsureSchema creates the snapshot tables if they do not exist.
	EnsureSchema(ctx context.Context) error

	// SaveSnapshot replaces the stored snapshot with the given products and
	// transactions in a single database transaction.
	SaveSnapshot(ctx context.Context, products []model.Product, transactions []model.Transaction) error

	// LoadProducts returns the stored products ordered by id.
	LoadProducts(ctx context.Context) ([]model.Product, error)

	// LoadTransactions returns the stored transactions ordered by id.
	LoadTransactions(ctx context.Context) ([]model.Transaction, error)
}
