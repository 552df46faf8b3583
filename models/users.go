package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Email      string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password   string    `gorm:"type:varchar(255);not null" json:"-"`
	Role       string    `gorm:"type:varchar(20);not null" json:"role"`
	EmployeeID string    `gorm:"type:varchar(50)" json:"employee_id,omitempty"`
	Department string    `gorm:"type:varchar(100)" json:"department,omitempty"`
	Verified   bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
