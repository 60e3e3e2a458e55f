package service

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"mini-inventory/internal/catalog"
	"mini-inventory/internal/codec"
	"mini-inventory/internal/ledger"
	"mini-inventory/internal/model"
	"mini-inventory/internal/report"
	"mini-inventory/internal/repository"
	"mini-inventory/internal/storage"

	"github.com/rs/zerolog"
)

// Option configures an inventory service.
type Option func(*inventoryService)

// WithClock sets the time source used to date transactions submitted without a date.
func WithClock(now func() time.Time) Option {
	return func(s *inventoryService) {
		s.now = now
	}
}

// inventoryService implements InventoryService. mu guards catalog and ledger together.
type inventoryService struct {
	mu      sync.Mutex
	catalog *catalog.Catalog
	ledger  *ledger.Ledger
	store   storage.Store
	repo    repository.InventoryRepository
	now     func() time.Time
	logger  zerolog.Logger
}

// NewInventoryService creates a new inventory service. repo may be nil when
// database persistence is not configured.
func NewInventoryService(
	cat *catalog.Catalog,
	led *ledger.Ledger,
	store storage.Store,
	repo repository.InventoryRepository,
	logger zerolog.Logger,
	opts ...Option,
) InventoryService {
	s := &inventoryService{
		catalog: cat,
		ledger:  led,
		store:   store,
		repo:    repo,
		now:     time.Now,
		logger:  logger.With().Str("service", "inventory").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddProduct stores a new product under the next id.
func (s *inventoryService) AddProduct(ctx context.Context, in model.ProductInput) model.Product {
	s.mu.Lock()
	p := s.catalog.Add(in)
	s.mu.Unlock()

	s.logger.Info().
		Int("product_id", p.ID).
		Str("name", p.Name).
		Msg("product added")

	return p
}

// UpdateProduct overwrites the product with p.ID.
func (s *inventoryService) UpdateProduct(ctx context.Context, p model.Product) bool {
	s.mu.Lock()
	found := s.catalog.Update(p)
	s.mu.Unlock()

	if !found {
		s.logger.Debug().Int("product_id", p.ID).Msg("update ignored, product not found")
		return false
	}

	s.logger.Info().Int("product_id", p.ID).Msg("product updated")
	return true
}

// RemoveProduct deletes a product.
func (s *inventoryService) RemoveProduct(ctx context.Context, id int) bool {
	s.mu.Lock()
	removed := s.catalog.Remove(id)
	s.mu.Unlock()

	if !removed {
		s.logger.Debug().Int("product_id", id).Msg("remove ignored, product not found")
		return false
	}

	s.logger.Info().Int("product_id", id).Msg("product removed")
	return true
}

// GetProductByID looks up a product by id.
func (s *inventoryService) GetProductByID(ctx context.Context, id int) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.GetByID(id)
}

// GetProductByName looks up the first product with exactly this name.
func (s *inventoryService) GetProductByName(ctx context.Context, name string) (model.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.GetByName(name)
}

// ListProducts returns all products in insertion order.
func (s *inventoryService) ListProducts(ctx context.Context) []model.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.All()
}

// RecordTransaction resolves the product by name and records the transaction.
// A zero date is replaced by today's date.
func (s *inventoryService) RecordTransaction(ctx context.Context, req model.TransactionRequest) (model.Transaction, error) {
	date := req.Date
	if date.IsZero() {
		now := s.now()
		date = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	product, found := s.catalog.GetByName(req.ProductName)
	if !found {
		s.logger.Debug().Str("product_name", req.ProductName).Msg("product not found")
		return model.Transaction{}, &model.DomainError{
			Code:    model.ErrCodeProductNotFound,
			Message: fmt.Sprintf("Product %q not found", req.ProductName),
		}
	}

	tx, err := s.ledger.Record(s.catalog, product.ID, req.Quantity, date, req.Type)
	if err != nil {
		s.logger.Warn().Err(err).
			Int("product_id", product.ID).
			Int("quantity", req.Quantity).
			Str("type", string(req.Type)).
			Msg("transaction rejected")
		return model.Transaction{}, fmt.Errorf("failed to record transaction: %w", err)
	}

	s.logger.Info().
		Int("transaction_id", tx.ID).
		Int("product_id", tx.ProductID).
		Int("quantity", tx.Quantity).
		Str("type", string(tx.Type)).
		Msg("transaction recorded")

	return tx, nil
}

// Transactions returns the ledger in insertion order.
func (s *inventoryService) Transactions(ctx context.Context) []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Entries()
}

// SalesReport renders the ledger.
func (s *inventoryService) SalesReport(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return report.Sales(s.ledger.Entries(), s.catalog)
}

// InventoryReport renders the catalog listing.
func (s *inventoryService) InventoryReport(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return report.Inventory(s.catalog.All())
}

// ExportSalesReport writes the sales report to dest.
func (s *inventoryService) ExportSalesReport(ctx context.Context, dest string) error {
	text := s.SalesReport(ctx)

	wc, err := s.store.Create(ctx, dest)
	if err != nil {
		s.logger.Error().Err(err).Str("dest", dest).Msg("failed to create report destination")
		return model.NewIOFailure(fmt.Sprintf("failed to open %s for writing", dest), err)
	}
	if _, err := io.WriteString(wc, text); err != nil {
		wc.Close()
		s.logger.Error().Err(err).Str("dest", dest).Msg("failed to write sales report")
		return model.NewIOFailure(fmt.Sprintf("failed to write %s", dest), err)
	}
	if err := wc.Close(); err != nil {
		s.logger.Error().Err(err).Str("dest", dest).Msg("failed to finish sales report")
		return model.NewIOFailure(fmt.Sprintf("failed to finish writing %s", dest), err)
	}

	s.logger.Info().Str("dest", dest).Msg("sales report exported")
	return nil
}

// Save writes the catalog to dest.
func (s *inventoryService) Save(ctx context.Context, dest string) error {
	products := s.ListProducts(ctx)

	if err := codec.Save(ctx, s.store, dest, products); err != nil {
		s.logger.Error().Err(err).Str("dest", dest).Msg("failed to save inventory")
		return err
	}

	s.logger.Info().
		Str("dest", dest).
		Int("products", len(products)).
		Msg("inventory saved")

	return nil
}

// Load adds every product in src to the catalog. Nothing is added if any line
// is malformed. The source is read before the catalog is locked.
func (s *inventoryService) Load(ctx context.Context, src string) (int, error) {
	records, err := codec.Read(ctx, s.store, src)
	if err != nil {
		s.logger.Error().Err(err).Str("src", src).Msg("failed to load inventory")
		return 0, err
	}

	s.mu.Lock()
	added := codec.Apply(records, s.catalog)
	s.mu.Unlock()

	s.logger.Info().
		Str("src", src).
		Int("products", len(added)).
		Msg("inventory loaded")

	return len(added), nil
}

// SaveToDatabase replaces the database snapshot with the current catalog and ledger.
func (s *inventoryService) SaveToDatabase(ctx context.Context) error {
	if s.repo == nil {
		return model.ErrDatabaseDisabled
	}

	s.mu.Lock()
	products := s.catalog.All()
	transactions := s.ledger.Entries()
	s.mu.Unlock()

	if err := s.repo.SaveSnapshot(ctx, products, transactions); err != nil {
		s.logger.Error().Err(err).Msg("failed to save snapshot to database")
		return model.NewIOFailure("failed to save snapshot to database", err)
	}

	s.logger.Info().
		Int("products", len(products)).
		Int("transactions", len(transactions)).
		Msg("snapshot saved to database")

	return nil
}

// LoadFromDatabase adds the stored products with fresh ids, then restores the
// stored transactions against them. Transactions whose product is not in the
// snapshot are skipped.
func (s *inventoryService) LoadFromDatabase(ctx context.Context) (LoadResult, error) {
	if s.repo == nil {
		return LoadResult{}, model.ErrDatabaseDisabled
	}

	products, err := s.repo.LoadProducts(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load products from database")
		return LoadResult{}, model.NewIOFailure("failed to load products from database", err)
	}
	transactions, err := s.repo.LoadTransactions(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load transactions from database")
		return LoadResult{}, model.NewIOFailure("failed to load transactions from database", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result LoadResult
	ids := make(map[int]int, len(products))
	for _, p := range products {
		ids[p.ID] = s.catalog.Add(p.Input()).ID
		result.Products++
	}

	for _, t := range transactions {
		newID, ok := ids[t.ProductID]
		if !ok {
			result.Skipped++
			continue
		}
		if _, err := s.ledger.Restore(newID, t.Quantity, t.Date, t.Type); err != nil {
			s.logger.Warn().Err(err).Int("transaction_id", t.ID).Msg("skipping invalid stored transaction")
			result.Skipped++
			continue
		}
		result.Transactions++
	}

	s.logger.Info().
		Int("products", result.Products).
		Int("transactions", result.Transactions).
		Int("skipped", result.Skipped).
		Msg("snapshot loaded from database")

	return result, nil
}
