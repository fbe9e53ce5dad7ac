// Package store contains the two process-wide state containers behind the
// UI: the session store and the cart store. Both are explicitly constructed
// and dependency-injected; neither is a package-level global.
package store

import (
	"context"
	"sync"

	"github.com/hygieia-health/hygieia-cli/internal/common"
	"github.com/hygieia-health/hygieia-cli/internal/logging"
	"github.com/hygieia-health/hygieia-cli/internal/models"
)

// Notifier surfaces fire-and-forget user-visible notices (the toasts of the
// web client). Not part of any programmatic contract.
type Notifier interface {
	Notify(format string, args ...any)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(format string, args ...any)

func (f NotifierFunc) Notify(format string, args ...any) { f(format, args...) }

// SnapshotStore is the durable-storage surface the cart needs.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, key string, v any) error
	LoadSnapshot(ctx context.Context, key string, v any) (bool, error)
}

// cartSnapshot is the persisted subset of cart state. The open flag is
// deliberately not part of it.
type cartSnapshot struct {
	Items []models.CartItem `json:"items"`
}

// Cart owns the line-item collection and the open/closed UI flag.
// Invariants: at most one line item per product id, and every retained
// item has quantity >= 1.
type Cart struct {
	mu     sync.Mutex
	items  []models.CartItem
	isOpen bool

	snapshots SnapshotStore
	notifier  Notifier
	log       logging.Logger
}

// NewCart constructs an empty cart. Call Load to restore the persisted
// items.
func NewCart(snapshots SnapshotStore, notifier Notifier, log logging.Logger) *Cart {
	return &Cart{snapshots: snapshots, notifier: notifier, log: log}
}

// Load restores the item collection from durable storage. Run once at
// application start.
func (c *Cart) Load(ctx context.Context) error {
	var snap cartSnapshot
	found, err := c.snapshots.LoadSnapshot(ctx, common.KeyCart, &snap)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	c.mu.Lock()
	c.items = snap.Items
	c.mu.Unlock()
	c.log.Debug(ctx, "cart restored", "items", len(snap.Items))
	return nil
}

// persistLocked mirrors the item collection to durable storage. Callers
// hold c.mu.
func (c *Cart) persistLocked(ctx context.Context) {
	if err := c.snapshots.SaveSnapshot(ctx, common.KeyCart, cartSnapshot{Items: c.items}); err != nil {
		c.log.Error(ctx, "failed to persist cart", "error", err.Error())
	}
}

// AddItem appends a new line item, or increments the quantity when the
// product is already in the cart. quantity must be >= 1.
func (c *Cart) AddItem(ctx context.Context, product models.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.Product.ID == product.ID {
			c.items[i].Quantity += quantity
			c.persistLocked(ctx)
			c.notifier.Notify("Updated %s quantity", product.Name)
			return
		}
	}

	c.items = append(c.items, models.CartItem{Product: product, Quantity: quantity})
	c.persistLocked(ctx)
	c.notifier.Notify("Added %s to cart", product.Name)
}

// RemoveItem drops the matching line item. Removing an absent product is a
// no-op, not an error.
func (c *Cart) RemoveItem(ctx context.Context, productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.Product.ID == productID {
			name := item.Product.Name
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.persistLocked(ctx)
			c.notifier.Notify("Removed %s from cart", name)
			return
		}
	}
}

// UpdateQuantity replaces the item's quantity. A non-positive quantity
// removes the item instead of storing an invalid value.
func (c *Cart) UpdateQuantity(ctx context.Context, productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(ctx, productID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.Product.ID == productID {
			c.items[i].Quantity = quantity
			c.persistLocked(ctx)
			return
		}
	}
}

// ClearCart empties the collection.
func (c *Cart) ClearCart(ctx context.Context) {
	c.mu.Lock()
	c.items = nil
	c.persistLocked(ctx)
	c.mu.Unlock()

	c.notifier.Notify("Cart cleared")
}

// Items returns a copy of the line items.
func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) ToggleCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = !c.isOpen
}

func (c *Cart) OpenCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = true
}

func (c *Cart) CloseCart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.isOpen = false
}

func (c *Cart) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isOpen
}
