// Package report renders the ledger and the catalog as plain text.
package report

import (
	"fmt"
	"strings"

	"mini-inventory/internal/model"
)

// Delimiter separates report blocks.
const Delimiter = "------------------------------"

// DateLayout is the calendar-date format used for transaction dates.
const DateLayout = "2006-01-02"

// ProductLookup resolves product ids at render time. *catalog.Catalog satisfies it.
type ProductLookup interface {
	GetByID(id int) (model.Product, bool)
}

// Sales renders one block per transaction in ledger order. Product names are
// read from the catalog when rendering; products removed since the sale show
// as "<removed product #N>".
func Sales(entries []model.Transaction, products ProductLookup) string {
	var b strings.Builder
	b.WriteString("Sales Report:\n")

	for _, tx := range entries {
		fmt.Fprintf(&b, "Transaction ID: %d\n", tx.ID)
		fmt.Fprintf(&b, "Product: %s\n", productName(products, tx.ProductID))
		fmt.Fprintf(&b, "Quantity: %d\n", tx.Quantity)
		fmt.Fprintf(&b, "Date: %s\n", tx.Date.Format(DateLayout))
		fmt.Fprintf(&b, "Transaction Type: %s\n", tx.Type)
		b.WriteString(Delimiter + "\n")
	}

	return b.String()
}

// Inventory renders the catalog listing.
func Inventory(products []model.Product) string {
	var b strings.Builder
	b.WriteString("Inventory:\n")

	for _, p := range products {
		fmt.Fprintf(&b, "Product ID: %d\n", p.ID)
		fmt.Fprintf(&b, "Product Name: %s\n", p.Name)
		fmt.Fprintf(&b, "Quantity in Stock: %d\n", p.Quantity)
		fmt.Fprintf(&b, "Price: %s\n", model.FormatPrice(p.Price))
		fmt.Fprintf(&b, "Category: %s\n", p.Category)
		b.WriteString(Delimiter + "\n")
	}

	return b.String()
}

func productName(products ProductLookup, id int) string {
	if products != nil {
		if p, ok := products.GetByID(id); ok {
			return p.Name
		}
	}
	return fmt.Sprintf("<removed product #%d>", id)
}
