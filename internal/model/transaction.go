package model

import (
	"fmt"
	"strings"
	"time"
)

// TransactionType is the kind of stock movement a transaction records.
type TransactionType string

const (
	TransactionSale     TransactionType = "SALE"
	TransactionPurchase TransactionType = "PURCHASE"
)

// ParseTransactionType parses a transaction type case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToUpper(strings.TrimSpace(s))) {
	case TransactionSale:
		return TransactionSale, nil
	case TransactionPurchase:
		return TransactionPurchase, nil
	default:
		return "", NewInvalidInput(fmt.Sprintf("unknown transaction type %q (must be SALE or PURCHASE)", s), nil)
	}
}

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionSale || t == TransactionPurchase
}

// StockEffect returns the quantity delta a transaction of this type applies
// to its product: negative for a sale, positive for a purchase.
func (t TransactionType) StockEffect(quantity int) int {
	if t == TransactionSale {
		return -quantity
	}
	return quantity
}

// Transaction is an immutable ledger entry. It refers to its product by ID;
// the product may since have been removed from the catalogue.
type Transaction struct {
	ID        int             `json:"id"`
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	Date      time.Time       `json:"date"`
	Type      TransactionType `json:"type"`
}

// TransactionRequest is a transaction as submitted by a caller, with the
// product identified by name. A zero Date means "today".
type TransactionRequest struct {
	ProductName string
	Quantity    int
	Date        time.Time
	Type        TransactionType
}
