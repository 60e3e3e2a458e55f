// Package catalog holds the in-memory product catalogue.
//
// A Catalog is not safe for concurrent use; callers that share one across
// goroutines guard it together with its ledger (see service.InventoryService).
package catalog

import "mini-inventory/internal/model"

// Catalog stores products in insertion order and assigns their IDs.
type Catalog struct {
	nextID   int
	products []model.Product
}

// New creates an empty catalog whose first product gets ID 1.
func New() *Catalog {
	return &Catalog{nextID: 1}
}

// Add allocates the next ID and stores a new product. Inputs are not validated.
// IDs are never reused, even after the product is removed.
func (c *Catalog) Add(in model.ProductInput) model.Product {
	p := model.Product{
		ID:       c.nextID,
		Name:     in.Name,
		Quantity: in.Quantity,
		Price:    in.Price,
		Category: in.Category,
	}
	c.nextID++
	c.products = append(c.products, p)
	return p
}

// Update overwrites the mutable fields of the product with p.ID.
// It reports whether the product was found; a missing product is a no-op.
func (c *Catalog) Update(p model.Product) bool {
	i := c.indexOf(p.ID)
	if i < 0 {
		return false
	}
	stored := &c.products[i]
	stored.Name = p.Name
	stored.Quantity = p.Quantity
	stored.Price = p.Price
	stored.Category = p.Category
	return true
}

// Remove deletes the first product with the given ID and reports whether one was removed.
func (c *Catalog) Remove(id int) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.products = append(c.products[:i], c.products[i+1:]...)
	return true
}

// GetByID returns the first product with the given ID.
func (c *Catalog) GetByID(id int) (model.Product, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return model.Product{}, false
	}
	return c.products[i], true
}

// GetByName returns the first product whose name equals name exactly.
func (c *Catalog) GetByName(name string) (model.Product, bool) {
	for _, p := range c.products {
		if p.Name == name {
			return p, true
		}
	}
	return model.Product{}, false
}

// AdjustQuantity adds delta to the stock of the product with the given ID
// and returns the updated product. The result may be negative.
func (c *Catalog) AdjustQuantity(id, delta int) (model.Product, bool) {
	i := c.indexOf(id)
	if i < 0 {
		return model.Product{}, false
	}
	c.products[i].Quantity += delta
	return c.products[i], true
}

// All returns a snapshot of the catalog in insertion order.
func (c *Catalog) All() []model.Product {
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

func (c *Catalog) indexOf(id int) int {
	for i := range c.products {
		if c.products[i].ID == id {
			return i
		}
	}
	return -1
}
