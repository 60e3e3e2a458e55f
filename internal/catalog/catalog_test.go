package catalog

import (
	"testing"

	"mini-inventory/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laptop() model.ProductInput {
	return model.ProductInput{Name: "Laptop", Quantity: 10, Price: 350.0, Category: "Electronics"}
}

func TestCatalog_AddAssignsIncreasingIDs(t *testing.T) {
	c := New()

	inputs := []model.ProductInput{
		{Name: "Laptop", Quantity: 10, Price: 350, Category: "Electronics"},
		{Name: "Iphone", Quantity: 10, Price: 800, Category: "Electronics"},
		{Name: "Airpods", Quantity: -3, Price: -1, Category: ""},
	}

	for i, in := range inputs {
		p := c.Add(in)
		assert.Equal(t, i+1, p.ID)
		assert.Equal(t, in, p.Input())
	}

	assert.Equal(t, 3, c.Len())
}

func TestCatalog_IDsAreNotReusedAfterRemove(t *testing.T) {
	c := New()
	first := c.Add(laptop())
	require.True(t, c.Remove(first.ID))

	second := c.Add(laptop())
	assert.Equal(t, 2, second.ID)
}

func TestCatalog_IndependentCounters(t *testing.T) {
	a := New()
	b := New()

	a.Add(laptop())
	a.Add(laptop())

	assert.Equal(t, 1, b.Add(laptop()).ID)
}

func TestCatalog_Update(t *testing.T) {
	tests := []struct {
		name        string
		update      model.Product
		expectFound bool
		expected    model.Product
	}{
		{
			name:        "Existing product replaces mutable fields",
			update:      model.Product{ID: 1, Name: "Gaming Laptop", Quantity: 4, Price: 999.5, Category: "Computers"},
			expectFound: true,
			expected:    model.Product{ID: 1, Name: "Gaming Laptop", Quantity: 4, Price: 999.5, Category: "Computers"},
		},
		{
			name:        "Missing product leaves catalog unchanged",
			update:      model.Product{ID: 42, Name: "Ghost", Quantity: 1, Price: 1, Category: "None"},
			expectFound: false,
			expected:    model.Product{ID: 1, Name: "Laptop", Quantity: 10, Price: 350.0, Category: "Electronics"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			c.Add(laptop())

			found := c.Update(tt.update)

			assert.Equal(t, tt.expectFound, found)
			assert.Equal(t, []model.Product{tt.expected}, c.All())
		})
	}
}

func TestCatalog_Remove(t *testing.T) {
	c := New()
	c.Add(laptop())
	second := c.Add(model.ProductInput{Name: "Iphone", Quantity: 10, Price: 800, Category: "Electronics"})

	assert.False(t, c.Remove(99))
	assert.Equal(t, 2, c.Len())

	assert.True(t, c.Remove(second.ID))
	_, found := c.GetByID(second.ID)
	assert.False(t, found)
	assert.Equal(t, 1, c.Len())
}

func TestCatalog_Lookups(t *testing.T) {
	c := New()
	first := c.Add(laptop())
	c.Add(model.ProductInput{Name: "Laptop", Quantity: 1, Price: 1, Category: "Duplicate"})

	byID, found := c.GetByID(first.ID)
	require.True(t, found)
	assert.Equal(t, first, byID)

	byName, found := c.GetByName("Laptop")
	require.True(t, found)
	assert.Equal(t, first.ID, byName.ID, "first match wins")

	_, found = c.GetByName("laptop")
	assert.False(t, found, "name lookup is case-sensitive")

	_, found = c.GetByID(0)
	assert.False(t, found)
}

func TestCatalog_AllReturnsSnapshot(t *testing.T) {
	c := New()
	c.Add(laptop())

	snapshot := c.All()
	snapshot[0].Quantity = 0

	assert.Equal(t, 1, c.Len())
	p, _ := c.GetByID(1)
	assert.Equal(t, 10, p.Quantity)
}

func TestCatalog_AdjustQuantity(t *testing.T) {
	c := New()
	p := c.Add(laptop())

	updated, found := c.AdjustQuantity(p.ID, -12)
	require.True(t, found)
	assert.Equal(t, -2, updated.Quantity)

	_, found = c.AdjustQuantity(99, 1)
	assert.False(t, found)
}
