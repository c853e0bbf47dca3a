package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an account holder. Email is unique at the store level. Salary and
// Department are nullable; deleting a user cascades to its orders.
type User struct {
	ID         int64               `gorm:"primaryKey" json:"id"`
	FirstName  string              `gorm:"size:100;not null" json:"first_name"`
	LastName   string              `gorm:"size:100;not null" json:"last_name"`
	Email      string              `gorm:"size:255;not null;uniqueIndex" json:"email"`
	CreatedAt  time.Time           `json:"created_at"`
	IsActive   bool                `gorm:"not null" json:"is_active"`
	Salary     decimal.NullDecimal `gorm:"type:numeric(18,2)" json:"salary"`
	Department *string             `gorm:"size:100" json:"department"`

	Orders []Order `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"orders,omitempty"`
}

// Order belongs to exactly one user. Orders are immutable once placed; there
// is no update or delete surface for them.
type Order struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	UserID      int64           `gorm:"not null;index" json:"user_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	OrderDate   time.Time       `gorm:"not null" json:"order_date"`
	Status      string          `gorm:"size:50;not null" json:"status"`
	Description *string         `json:"description,omitempty"`
}

// OrderStatusCompleted is the status value that counts toward department revenue.
const OrderStatusCompleted = "Completed"
