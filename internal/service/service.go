package service

import (
	"context"

	"mini-inventory/internal/model"
)

// LoadResult reports what a database load added.
type LoadResult struct {
	Products     int `json:"products"`
	Transactions int `json:"transactions"`
	// Skipped counts stored transactions whose product was not in the snapshot.
	Skipped int `json:"skipped"`
}

// InventoryService is the single entry point the HTTP API and the console
// driver use. Every method is safe for concurrent use. Authorisation is the
// caller's job.
type InventoryService interface {
	// AddProduct stores a new product under the next id.
	AddProduct(ctx context.Context, in model.ProductInput) model.Product

	// UpdateProduct overwrites the product with p.ID. It reports whether the product exists.
	UpdateProduct(ctx context.Context, p model.Product) bool

	// RemoveProduct deletes a product. It reports whether one was removed.
	RemoveProduct(ctx context.Context, id int) bool

	// GetProductByID looks up a product by id.
	GetProductByID(ctx context.Context, id int) (model.Product, bool)

	// GetProductByName looks up the first product with exactly this name.
	GetProductByName(ctx context.Context, name string) (model.Product, bool)

	// ListProducts returns all products in insertion order.
	ListProducts(ctx context.Context) []model.Product

	// RecordTransaction resolves the product by name and records the transaction.
	RecordTransaction(ctx context.Context, req model.TransactionRequest) (model.Transaction, error)

	// Transactions returns the ledger in insertion order.
	Transactions(ctx context.Context) []model.Transaction

	// SalesReport renders the ledger.
	SalesReport(ctx context.Context) string

	// InventoryReport renders the catalog listing.
	InventoryReport(ctx context.Context) string

	// ExportSalesReport writes the sales report to dest.
	ExportSalesReport(ctx context.Context, dest string) error

	// Save writes the catalog to dest in the flat-file format.
	Save(ctx context.Context, dest string) error

	// Load adds every product in src to the catalog and returns how many were added.
	Load(ctx context.Context, src string) (int, error)

	// SaveToDatabase replaces the database snapshot with the current catalog and ledger.
	SaveToDatabase(ctx context.Context) error

	// LoadFromDatabase adds the database snapshot to the catalog and ledger.
	LoadFromDatabase(ctx context.Context) (LoadResult, error)
}
