package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/hygieia-health/hygieia-cli/internal/models"
	"github.com/hygieia-health/hygieia-cli/internal/store"
)

// ShowCart opens the cart view: every line item plus the price breakdown.
func (a *App) ShowCart(ctx context.Context) error {
	a.cart.OpenCart()
	defer a.cart.CloseCart()

	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}

	for _, item := range items {
		fmt.Printf("%s  %-30s %3d x %8.2f = %8.2f\n",
			item.Product.ID, item.Product.Name, item.Quantity,
			item.Product.EffectivePrice(), item.Product.EffectivePrice()*float64(item.Quantity))
	}
	printCartTotals(items)
	return nil
}

func printCartTotals(items []models.CartItem) {
	fmt.Printf("Subtotal:     %8.2f\n", store.Subtotal(items))
	if d := store.Discount(items); d > 0 {
		fmt.Printf("You save:     %8.2f\n", d)
	}
	fee := store.DeliveryFee(items)
	if fee == 0 {
		fmt.Println("Delivery:         free")
	} else {
		fmt.Printf("Delivery:     %8.2f\n", fee)
	}
	fmt.Printf("Total:        %8.2f\n", store.Total(items))
}

// AddToCart looks a product up by ID and adds it to the cart.
func (a *App) AddToCart(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter product id", os.Stdout)
	if err != nil {
		return err
	}
	qty, err := getNumber(a.reader, "Quantity (empty for 1)", 1, os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}

	product, err := a.products.Product(ctx, id)
	if err != nil {
		fmt.Printf("error: %s\n", err.Error())
		return err
	}
	if !product.InStock {
		fmt.Printf("%s is out of stock.\n", product.Name)
		return nil
	}

	a.cart.AddItem(ctx, *product, qty)
	return nil
}

// RemoveFromCart drops a line item by product ID.
func (a *App) RemoveFromCart(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter product id", os.Stdout)
	if err != nil {
		return err
	}
	a.cart.RemoveItem(ctx, id)
	return nil
}

// SetQuantity replaces a line item's quantity. Zero or less removes it.
func (a *App) SetQuantity(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter product id", os.Stdout)
	if err != nil {
		return err
	}
	qty, err := getNumber(a.reader, "New quantity", 0, os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return err
	}
	a.cart.UpdateQuantity(ctx, id, qty)
	return nil
}

// EmptyCart removes every line item.
func (a *App) EmptyCart(ctx context.Context) error {
	a.cart.ClearCart(ctx)
	return nil
}

// Checkout collects a shipping address and places the order from the
// current cart. The cart is cleared only after the backend confirms.
func (a *App) Checkout(ctx context.Context) error {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return nil
	}

	printCartTotals(items)

	street, err := getSimpleText(a.reader, "Street", os.Stdout)
	if err != nil {
		return err
	}
	city, err := getSimpleText(a.reader, "City", os.Stdout)
	if err != nil {
		return err
	}
	state, err := getSimpleText(a.reader, "State", os.Stdout)
	if err != nil {
		return err
	}
	zip, err := getSimpleText(a.reader, "Zip code", os.Stdout)
	if err != nil {
		return err
	}
	payment, err := getSimpleText(a.reader, "Payment method (cod/card)", os.Stdout)
	if err != nil {
		return err
	}

	order, err := a.appointments.PlaceOrder(ctx, models.PlaceOrderRequest{
		Items:           items,
		ShippingAddress: models.Address{Street: street, City: city, State: state, ZipCode: zip},
		PaymentMethod:   payment,
	})
	if err != nil {
		fmt.Printf("Checkout unsuccessful: %s\n", err.Error())
		return err
	}

	a.cart.ClearCart(ctx)
	fmt.Printf("Order %s placed, total %.2f.\n", order.OrderNumber, order.TotalAmount)
	return nil
}
