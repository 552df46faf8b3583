package models

import "time"

// Notification is a record of a dispatched message. Delivery itself is a
// log line; the row exists so admins can review what went out.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Recipient string    `gorm:"type:varchar(255);not null" json:"recipient"`
	Subject   string    `gorm:"type:varchar(255);not null" json:"subject"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}
