package model

import (
	"math"
	"strconv"
	"strings"
)

// Product represents a stocked item in the catalogue.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// ProductInput carries the mutable fields of a product.
// It is used when adding products and when restoring them from a snapshot.
type ProductInput struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// Input returns the mutable fields of the product.
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:     p.Name,
		Quantity: p.Quantity,
		Price:    p.Price,
		Category: p.Category,
	}
}

// FormatPrice renders a price with at least one fractional digit (350 -> "350.0").
// Both the flat-file format and the text reports use it.
func FormatPrice(price float64) string {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return strconv.FormatFloat(price, 'g', -1, 64)
	}
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
