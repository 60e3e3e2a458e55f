// Package ledger records stock-affecting transactions against a catalogue.
package ledger

import (
	"fmt"
	"time"

	"mini-inventory/internal/model"
)

// StockAdjuster is the part of the catalogue a ledger mutates.
type StockAdjuster interface {
	GetByID(id int) (model.Product, bool)
	AdjustQuantity(id, delta int) (model.Product, bool)
}

// Policy controls how the ledger treats stock levels.
type Policy struct {
	// AllowNegativeStock permits a sale larger than the current stock,
	// driving the quantity negative. When false such a sale fails with
	// model.ErrInsufficientStock.
	AllowNegativeStock bool
}

// DefaultPolicy returns the permissive policy.
func DefaultPolicy() Policy {
	return Policy{AllowNegativeStock: true}
}

// Ledger is an append-only, insertion-ordered list of transactions.
// It is not safe for concurrent use.
type Ledger struct {
	policy  Policy
	nextID  int
	entries []model.Transaction
}

// New creates an empty ledger whose first transaction gets ID 1.
func New(policy Policy) *Ledger {
	return &Ledger{policy: policy, nextID: 1}
}

// Record appends a transaction for productID and applies its stock effect
// through stock. Nothing is appended or mutated when an error is returned.
func (l *Ledger) Record(stock StockAdjuster, productID, quantity int, date time.Time, typ model.TransactionType) (model.Transaction, error) {
	if quantity <= 0 {
		return model.Transaction{}, model.NewInvalidQuantity(quantity)
	}
	if !typ.Valid() {
		return model.Transaction{}, model.NewInvalidInput(fmt.Sprintf("unknown transaction type %q", typ), nil)
	}

	product, found := stock.GetByID(productID)
	if !found {
		return model.Transaction{}, model.ErrProductNotFound
	}

	delta := typ.StockEffect(quantity)
	if !l.policy.AllowNegativeStock && product.Quantity+delta < 0 {
		return model.Transaction{}, model.ErrInsufficientStock
	}

	tx := model.Transaction{
		ID:        l.nextID,
		ProductID: productID,
		Quantity:  quantity,
		Date:      date,
		Type:      typ,
	}
	l.nextID++
	l.entries = append(l.entries, tx)

	stock.AdjustQuantity(productID, delta)

	return tx, nil
}

// Restore appends a transaction read back from a snapshot. It assigns a new
// id but leaves stock untouched, since snapshot quantities already include
// the transaction's effect.
func (l *Ledger) Restore(productID, quantity int, date time.Time, typ model.TransactionType) (model.Transaction, error) {
	if quantity <= 0 {
		return model.Transaction{}, model.NewInvalidQuantity(quantity)
	}
	if !typ.Valid() {
		return model.Transaction{}, model.NewInvalidInput(fmt.Sprintf("unknown transaction type %q", typ), nil)
	}

	tx := model.Transaction{
		ID:        l.nextID,
		ProductID: productID,
		Quantity:  quantity,
		Date:      date,
		Type:      typ,
	}
	l.nextID++
	l.entries = append(l.entries, tx)

	return tx, nil
}

// Entries returns a copy of the recorded transactions in insertion order.
func (l *Ledger) Entries() []model.Transaction {
	out := make([]model.Transaction, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded transactions.
func (l *Ledger) Len() int {
	return len(l.entries)
}
