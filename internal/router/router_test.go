package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mini-inventory/internal/auth"
	"mini-inventory/internal/catalog"
	"mini-inventory/internal/handler"
	"mini-inventory/internal/ledger"
	"mini-inventory/internal/middleware"
	"mini-inventory/internal/model"
	"mini-inventory/internal/service"
	"mini-inventory/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	handler http.Handler
	tokens  *auth.TokenIssuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zerolog.Nop()

	users, err := auth.NewDirectory([]auth.Credential{
		{Username: "admin", Password: "admin123", Role: model.RoleAdmin},
		{Username: "clerk", Password: "clerk", Role: model.RoleRegular},
	}, bcrypt.MinCost)
	require.NoError(t, err)

	tokens, err := auth.NewTokenIssuer("router-test-secret", "mini-inventory", time.Hour)
	require.NoError(t, err)

	cat := catalog.New()
	cat.Add(model.ProductInput{Name: "Laptop", Quantity: 10, Price: 350.0, Category: "Electronics"})

	svc := service.NewInventoryService(cat, ledger.New(ledger.DefaultPolicy()), storage.NewFileStore(t.TempDir(), logger), nil, logger)

	h := Handlers{
		Auth:         handler.NewAuthHandler(users, tokens, logger),
		Products:     handler.NewProductHandler(svc, logger),
		Transactions: handler.NewTransactionHandler(svc, logger),
		Reports:      handler.NewReportHandler(svc, logger),
		Inventory:    handler.NewInventoryHandler(svc, logger),
	}

	return &testServer{handler: New(h, tokens, logger), tokens: tokens}
}

func (s *testServer) token(t *testing.T, user model.User) string {
	t.Helper()
	token, err := s.tokens.Issue(user)
	require.NoError(t, err)
	return token
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "healthy"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_Gates(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, model.User{ID: 1, Username: "admin", Role: model.RoleAdmin})
	clerk := s.token(t, model.User{ID: 2, Username: "clerk", Role: model.RoleRegular})

	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		token          string
		expectedStatus int
	}{
		{name: "Public product list", method: http.MethodGet, path: "/api/products", expectedStatus: http.StatusOK},
		{name: "Public product lookup", method: http.MethodGet, path: "/api/products/1", expectedStatus: http.StatusOK},
		{name: "Public inventory report", method: http.MethodGet, path: "/api/reports/inventory", expectedStatus: http.StatusOK},
		{name: "Create without token", method: http.MethodPost, path: "/api/products", body: `{"name":"Mouse","quantity":1,"price":5,"category":"Electronics"}`, expectedStatus: http.StatusUnauthorized},
		{name: "Create as regular user", method: http.MethodPost, path: "/api/products", body: `{"name":"Mouse","quantity":1,"price":5,"category":"Electronics"}`, token: clerk, expectedStatus: http.StatusForbidden},
		{name: "Create as admin", method: http.MethodPost, path: "/api/products", body: `{"name":"Mouse","quantity":1,"price":5,"category":"Electronics"}`, token: admin, expectedStatus: http.StatusCreated},
		{name: "Record without token", method: http.MethodPost, path: "/api/transactions", body: `{"productName":"Laptop","quantity":1,"type":"SALE"}`, expectedStatus: http.StatusUnauthorized},
		{name: "Record as regular user", method: http.MethodPost, path: "/api/transactions", body: `{"productName":"Laptop","quantity":1,"type":"SALE"}`, token: clerk, expectedStatus: http.StatusCreated},
		{name: "Save as regular user", method: http.MethodPost, path: "/api/inventory/save", body: `{"path":"inventory.txt"}`, token: clerk, expectedStatus: http.StatusForbidden},
		{name: "Save as admin", method: http.MethodPost, path: "/api/inventory/save", body: `{"path":"inventory.txt"}`, token: admin, expectedStatus: http.StatusOK},
		{name: "Database disabled", method: http.MethodPost, path: "/api/inventory/db/save", token: admin, expectedStatus: http.StatusServiceUnavailable},
		{name: "Wrong method", method: http.MethodPatch, path: "/api/products/1", expectedStatus: http.StatusMethodNotAllowed},
		{name: "Unknown route", method: http.MethodGet, path: "/api/orders", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()

			s.handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_LoginThenRecord(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"clerk","password":"clerk"}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var login handler.LoginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&login))
	assert.Equal(t, model.RoleRegular, login.User.Role)

	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(`{"productName":"Laptop","quantity":3,"type":"sale"}`))
	req.Header.Set("Authorization", "Bearer "+login.Token)
	req.Header.Set(middleware.RequestIDHeader, "trace-1")
	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "trace-1", w.Header().Get(middleware.RequestIDHeader))

	w = httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/products/1", nil))
	var laptop model.Product
	require.NoError(t, json.NewDecoder(w.Body).Decode(&laptop))
	assert.Equal(t, 7, laptop.Quantity)
}

func TestRouter_ErrorCarriesCorrelationID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/99", nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-404")
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp model.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, model.ErrCodeProductNotFound, resp.Error)
	assert.Equal(t, "trace-404", resp.CorrelationID)
}

func TestRouter_PreflightBypassesAuth(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/products", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
