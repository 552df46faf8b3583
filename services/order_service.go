package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/officeeats/cafeteria-app/events"
	"github.com/officeeats/cafeteria-app/models"
)

// PreparingWindow is the fallback fulfillment estimate applied when an
// order enters "preparing" without an item-derived estimate.
const PreparingWindow = 30 * time.Minute

// forwardStep is the single-step transition table used by Advance.
// Completed and cancelled have no entry: they are terminal.
var forwardStep = map[string]string{
	models.StatusPending:   models.StatusConfirmed,
	models.StatusConfirmed: models.StatusPreparing,
	models.StatusPreparing: models.StatusReady,
	models.StatusReady:     models.StatusCompleted,
}

// Identity is the authenticated caller as the order core sees it.
type Identity struct {
	UserID uint
	Name   string
	Email  string
	Role   string
}

// OrderService owns the order ledger: orders are only ever created through
// Place and only ever mutated through Advance/SetStatus. Writes go through
// gorm transactions on the in-memory database, so readers never observe a
// half-inserted order and concurrent status updates cannot lose writes.
type OrderService struct {
	DB       *gorm.DB
	Carts    *CartManager
	Notifier *Notifier
}

func NewOrderService(db *gorm.DB, carts *CartManager, notifier *Notifier) *OrderService {
	return &OrderService{DB: db, Carts: carts, Notifier: notifier}
}

// Place converts the user's cart into a pending order. The cart is consumed
// atomically: it is cleared exactly when the order commits. Total and the
// estimated-ready time (now + the longest preparation time in the cart) are
// computed here, once, from the snapshotted prices, and never recomputed
// from the catalog.
func (s *OrderService) Place(ident Identity, notes string) (*models.Order, error) {
	if ident.UserID == 0 || ident.Name == "" || ident.Email == "" {
		return nil, ErrMissingIdentity
	}

	var placed models.Order
	err := s.Carts.Consume(ident.UserID, func(items []models.CartItem) error {
		if len(items) == 0 {
			return ErrEmptyCart
		}

		now := time.Now()
		var total float64
		maxPrep := 0
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			total += it.Subtotal()
			if it.Menu.PreparationTime > maxPrep {
				maxPrep = it.Menu.PreparationTime
			}
			orderItems = append(orderItems, models.OrderItem{
				MenuID:              it.MenuID,
				MenuName:            it.Menu.Name,
				Price:               it.Menu.Price,
				Quantity:            it.Quantity,
				PreparationTime:     it.Menu.PreparationTime,
				SpecialInstructions: it.SpecialInstructions,
			})
		}

		ready := now.Add(time.Duration(maxPrep) * time.Minute)
		placed = models.Order{
			UserID:         ident.UserID,
			UserName:       ident.Name,
			UserEmail:      ident.Email,
			Status:         models.StatusPending,
			Total:          total,
			Notes:          notes,
			OrderTime:      now,
			EstimatedReady: &ready,
			OrderItems:     orderItems,
		}
		// Create inserts the order and its items in one transaction.
		return s.DB.Create(&placed).Error
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.Dispatch(placed.UserEmail, "Order Confirmation",
		fmt.Sprintf("Your order #%d has been placed successfully. Estimated ready time: %s",
			placed.ID, placed.EstimatedReady.Format(time.Kitchen)))
	events.BroadcastOrderUpdate(placed)

	return &placed, nil
}

// Advance moves an order one step along the forward chain. Calling it on a
// completed or cancelled order is a no-op that returns the order unchanged.
// Entering "preparing" sets the estimated-ready time to now + the fixed
// window, but only when placement did not already set one.
func (s *OrderService) Advance(orderID uint) (*models.Order, error) {
	var order models.Order
	var notifyReady bool

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("OrderItems").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		next, ok := forwardStep[order.Status]
		if !ok {
			return nil
		}

		updates := map[string]interface{}{"status": next}
		if next == models.StatusPreparing && order.EstimatedReady == nil {
			ready := time.Now().Add(PreparingWindow)
			order.EstimatedReady = &ready
			updates["estimated_ready"] = ready
		}
		order.Status = next
		notifyReady = next == models.StatusReady

		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	if notifyReady {
		s.notifyReady(&order)
	}
	events.BroadcastOrderUpdate(order)

	return &order, nil
}

// SetStatus is the admin override: it may jump to any valid status,
// including cancelling out of the forward chain. An explicit estimatedReady
// always wins; entering "preparing" without one applies the fixed window,
// replacing whatever placement computed. Every call that lands on "ready"
// re-sends the pickup notification, deliberately without dedupe.
func (s *OrderService) SetStatus(orderID uint, status string, estimatedReady *time.Time) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("OrderItems").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		ready := order.EstimatedReady
		if estimatedReady != nil {
			ready = estimatedReady
		} else if status == models.StatusPreparing {
			t := time.Now().Add(PreparingWindow)
			ready = &t
		}

		order.Status = status
		order.EstimatedReady = ready

		// Status and estimated-ready land together or not at all.
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"status":          status,
			"estimated_ready": ready,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	if order.Status == models.StatusReady {
		s.notifyReady(&order)
	}
	events.BroadcastOrderUpdate(order)

	return &order, nil
}

func (s *OrderService) notifyReady(order *models.Order) {
	s.Notifier.Dispatch(order.UserEmail, "Order Ready for Pickup",
		fmt.Sprintf("Your order #%d is ready for pickup at the cafeteria!", order.ID))
}

func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListAll returns the full ledger, most recent first. Ids are monotonic, so
// sorting by id keeps recency and tie-breaking consistent.
func (s *OrderService) ListAll() ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.Preload("OrderItems").Order("id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ListForUser returns one user's orders in ledger order.
func (s *OrderService) ListForUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := s.DB.Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("id desc").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
