package services

import (
	"sync"

	"github.com/officeeats/cafeteria-app/models"
)

// CartManager holds one cart per authenticated user. Carts are session
// state: in memory only, created on first touch, gone on restart. Each cart
// keeps its entries in insertion order with at most one entry per menu item.
type CartManager struct {
	mu    sync.RWMutex
	carts map[uint]*cart
}

type cart struct {
	mu    sync.Mutex
	items []models.CartItem
}

func NewCartManager() *CartManager {
	return &CartManager{carts: make(map[uint]*cart)}
}

func (cm *CartManager) cartFor(userID uint) *cart {
	cm.mu.RLock()
	c, ok := cm.carts[userID]
	cm.mu.RUnlock()
	if ok {
		return c
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	if c, ok = cm.carts[userID]; !ok {
		c = &cart{}
		cm.carts[userID] = c
	}
	return c
}

// Add puts a menu item snapshot into the cart. Adding an item that is
// already present merges: quantity increments and the instructions are
// overwritten with the supplied value (last write wins).
func (cm *CartManager) Add(userID uint, item models.Menu, quantity int, instructions string) ([]models.CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}

	c := cm.cartFor(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].MenuID == item.ID {
			c.items[i].Quantity += quantity
			c.items[i].SpecialInstructions = instructions
			return snapshotLocked(c), nil
		}
	}

	c.items = append(c.items, models.CartItem{
		MenuID:              item.ID,
		Menu:                item,
		Quantity:            quantity,
		SpecialInstructions: instructions,
	})
	return snapshotLocked(c), nil
}

// SetQuantity replaces an entry's quantity, keeping its instructions.
// Quantity 0 removes the entry (and is a no-op when it is already gone).
func (cm *CartManager) SetQuantity(userID, menuID uint, quantity int) ([]models.CartItem, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	c := cm.cartFor(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity == 0 {
		removeLocked(c, menuID)
		return snapshotLocked(c), nil
	}

	for i := range c.items {
		if c.items[i].MenuID == menuID {
			c.items[i].Quantity = quantity
			return snapshotLocked(c), nil
		}
	}
	return nil, ErrItemNotInCart
}

// Remove takes an entry out of the cart; removing an absent item is fine.
func (cm *CartManager) Remove(userID, menuID uint) []models.CartItem {
	c := cm.cartFor(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	removeLocked(c, menuID)
	return snapshotLocked(c)
}

func (cm *CartManager) Clear(userID uint) {
	c := cm.cartFor(userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

// Snapshot returns a copy of the cart in insertion order.
func (cm *CartManager) Snapshot(userID uint) []models.CartItem {
	c := cm.cartFor(userID)
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshotLocked(c)
}

func (cm *CartManager) Total(userID uint) float64 {
	c := cm.cartFor(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	var total float64
	for _, it := range c.items {
		total += it.Subtotal()
	}
	return total
}

// Consume runs fn over the cart's entries while holding the cart lock and
// clears the cart only when fn succeeds. This is the hand-off used by order
// placement: the cart can never retain entries for an order that was
// committed, and a failed placement leaves the cart untouched.
func (cm *CartManager) Consume(userID uint, fn func(items []models.CartItem) error) error {
	c := cm.cartFor(userID)
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := fn(snapshotLocked(c)); err != nil {
		return err
	}
	c.items = nil
	return nil
}

func removeLocked(c *cart, menuID uint) {
	for i := range c.items {
		if c.items[i].MenuID == menuID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func snapshotLocked(c *cart) []models.CartItem {
	out := make([]models.CartItem, len(c.items))
	copy(out, c.items)
	return out
}
