package database

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"userreports/internal/model"
)

// Seed inserts a small demo dataset. It is a no-op when the users table
// already holds data.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	users := []model.User{
		{FirstName: "John", LastName: "Doe", Email: "john.doe@example.com", CreatedAt: now, IsActive: true, Salary: salary("75000"), Department: ptr("Engineering")},
		{FirstName: "Jane", LastName: "Smith", Email: "jane.smith@example.com", CreatedAt: now, IsActive: true, Salary: salary("85000"), Department: ptr("Engineering")},
		{FirstName: "Bob", LastName: "Johnson", Email: "bob.johnson@example.com", CreatedAt: now, IsActive: true, Salary: salary("65000"), Department: ptr("Sales")},
		{FirstName: "Alice", LastName: "Williams", Email: "alice.williams@example.com", CreatedAt: now, IsActive: false, Salary: salary("70000"), Department: ptr("Marketing")},
	}
	if err := db.Create(&users).Error; err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	orders := []model.Order{
		{UserID: users[0].ID, Amount: decimal.RequireFromString("150.50"), OrderDate: now.AddDate(0, 0, -10), Status: model.OrderStatusCompleted, Description: ptr("Office supplies")},
		{UserID: users[0].ID, Amount: decimal.RequireFromString("75.25"), OrderDate: now.AddDate(0, 0, -5), Status: model.OrderStatusCompleted, Description: ptr("Software license")},
		{UserID: users[1].ID, Amount: decimal.RequireFromString("200.00"), OrderDate: now.AddDate(0, 0, -3), Status: "Pending", Description: ptr("Equipment")},
		{UserID: users[2].ID, Amount: decimal.RequireFromString("50.00"), OrderDate: now.AddDate(0, 0, -1), Status: model.OrderStatusCompleted, Description: ptr("Books")},
	}
	if err := db.Create(&orders).Error; err != nil {
		return fmt.Errorf("failed to seed orders: %w", err)
	}

	log.Printf("Seeded %d users and %d orders", len(users), len(orders))
	return nil
}

func ptr(s string) *string { return &s }

func salary(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}
