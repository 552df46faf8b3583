package models

import "time"

// Order statuses. Advance walks the forward chain one step at a time;
// cancelled is reachable from any non-terminal status via the admin override.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Statuses lists every order status in workflow order.
var Statuses = []string{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusReady,
	StatusCompleted,
	StatusCancelled,
}

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// TerminalStatus reports whether no further transition is allowed.
func TerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusCancelled
}

// Order is created from a cart at placement time. Items, total and order
// time never change afterwards; only status and estimated-ready do. User
// fields are snapshots so the order stays readable even if the user record
// changes later.
type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	UserName       string      `gorm:"type:varchar(255);not null" json:"user_name"`
	UserEmail      string      `gorm:"type:varchar(255);not null" json:"user_email"`
	Status         string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Total          float64     `gorm:"type:decimal(10,2);not null" json:"total"`
	Notes          string      `gorm:"type:text" json:"notes"`
	OrderTime      time.Time   `gorm:"not null" json:"order_time"`
	EstimatedReady *time.Time  `json:"estimated_ready,omitempty"`
	OrderItems     []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}
