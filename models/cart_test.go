package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCartSubtotal(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{Product: Product{Name: "Product A", Price: decimal.RequireFromString("10.00")}, Quantity: 2},
			{Product: Product{Name: "Product B", Price: decimal.RequireFromString("5.50")}, Quantity: 1},
		},
	}

	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("25.50")))
}

func TestCartSubtotalEmpty(t *testing.T) {
	assert.True(t, Cart{}.Subtotal().Equal(decimal.Zero))
}

func TestCartSubtotalReflectsPriceChange(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{Product: Product{Price: decimal.RequireFromString("10.00")}, Quantity: 3},
		},
	}
	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("30.00")))

	// Subtotal is recomputed from the live product price, never cached.
	cart.Items[0].Product.Price = decimal.RequireFromString("12.00")
	assert.True(t, cart.Subtotal().Equal(decimal.RequireFromString("36.00")))
}

func TestOrderItemsTotal(t *testing.T) {
	order := Order{
		TotalAmount: decimal.RequireFromString("25.50"),
		Items: []OrderItem{
			{ProductName: "Product A", ProductPrice: decimal.RequireFromString("10.00"), Quantity: 2},
			{ProductName: "Product B", ProductPrice: decimal.RequireFromString("5.50"), Quantity: 1},
		},
	}

	assert.True(t, order.ItemsTotal().Equal(order.TotalAmount))
}

func TestOrderSnapshotInsulatedFromCatalog(t *testing.T) {
	product := Product{Name: "Rose Bouquet", Price: decimal.RequireFromString("19.99")}
	item := OrderItem{
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Quantity:     2,
	}

	// A later catalog edit must not change the order line.
	product.Price = decimal.RequireFromString("29.99")
	product.Name = "Premium Rose Bouquet"

	assert.Equal(t, "Rose Bouquet", item.ProductName)
	assert.True(t, item.LineTotal().Equal(decimal.RequireFromString("39.98")))
}
