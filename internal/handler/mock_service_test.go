package handler

import (
	"context"

	"mini-inventory/internal/model"
	"mini-inventory/internal/service"

	"github.com/stretchr/testify/mock"
)

// MockInventoryService is a mock implementation of service.InventoryService.
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) AddProduct(ctx context.Context, in model.ProductInput) model.Product {
	args := m.Called(ctx, in)
	return args.Get(0).(model.Product)
}

func (m *MockInventoryService) UpdateProduct(ctx context.Context, p model.Product) bool {
	args := m.Called(ctx, p)
	return args.Bool(0)
}

func (m *MockInventoryService) RemoveProduct(ctx context.Context, id int) bool {
	args := m.Called(ctx, id)
	return args.Bool(0)
}

func (m *MockInventoryService) GetProductByID(ctx context.Context, id int) (model.Product, bool) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Bool(1)
}

func (m *MockInventoryService) GetProductByName(ctx context.Context, name string) (model.Product, bool) {
	args := m.Called(ctx, name)
	return args.Get(0).(model.Product), args.Bool(1)
}

func (m *MockInventoryService) ListProducts(ctx context.Context) []model.Product {
	args := m.Called(ctx)
	return args.Get(0).([]model.Product)
}

func (m *MockInventoryService) RecordTransaction(ctx context.Context, req model.TransactionRequest) (model.Transaction, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(model.Transaction), args.Error(1)
}

func (m *MockInventoryService) Transactions(ctx context.Context) []model.Transaction {
	args := m.Called(ctx)
	return args.Get(0).([]model.Transaction)
}

func (m *MockInventoryService) SalesReport(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockInventoryService) InventoryReport(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

func (m *MockInventoryService) ExportSalesReport(ctx context.Context, dest string) error {
	args := m.Called(ctx, dest)
	return args.Error(0)
}

func (m *MockInventoryService) Save(ctx context.Context, dest string) error {
	args := m.Called(ctx, dest)
	return args.Error(0)
}

func (m *MockInventoryService) Load(ctx context.Context, src string) (int, error) {
	args := m.Called(ctx, src)
	return args.Int(0), args.Error(1)
}

func (m *MockInventoryService) SaveToDatabase(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockInventoryService) LoadFromDatabase(ctx context.Context) (service.LoadResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.LoadResult), args.Error(1)
}
