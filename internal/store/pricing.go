package store

import (
	"github.com/hygieia-health/hygieia-cli/internal/common"
	"github.com/hygieia-health/hygieia-cli/internal/models"
)

// Monetary totals are pure functions of the item slice. They are recomputed
// on every read and never cached, so they cannot drift from the items.

// TotalItems is the sum of all quantities.
func TotalItems(items []models.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// Subtotal sums effective price x quantity, where the effective price is
// the discount price when one is set.
func Subtotal(items []models.CartItem) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.Product.EffectivePrice() * float64(item.Quantity)
	}
	return sum
}

// Discount sums the savings over items that carry a discount price.
func Discount(items []models.CartItem) float64 {
	sum := 0.0
	for _, item := range items {
		if item.Product.DiscountPrice > 0 {
			sum += (item.Product.Price - item.Product.DiscountPrice) * float64(item.Quantity)
		}
	}
	return sum
}

// DeliveryFee is zero at or above the free-delivery threshold, else flat.
func DeliveryFee(items []models.CartItem) float64 {
	if Subtotal(items) >= common.FreeDeliveryThreshold {
		return 0
	}
	return common.DeliveryFee
}

// Total is subtotal plus delivery fee.
func Total(items []models.CartItem) float64 {
	return Subtotal(items) + DeliveryFee(items)
}
