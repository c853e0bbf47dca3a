package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserReport is the per-user order aggregate. It is computed on demand and
// never persisted. LastOrderDate falls back to the account creation date when
// the user has no orders.
type UserReport struct {
	UserID        int64           `json:"user_id"`
	FullName      string          `json:"full_name"`
	Email         string          `json:"email"`
	OrderCount    int64           `json:"order_count"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LastOrderDate time.Time       `json:"last_order_date"`
}

// DepartmentSummary aggregates active users per department. TotalRevenue sums
// completed orders of every user in the department, active or not.
type DepartmentSummary struct {
	Department    string          `json:"department"`
	UserCount     int64           `json:"user_count"`
	AverageSalary decimal.Decimal `json:"average_salary"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// BulkUpdateResult reports the outcome of a mass status change.
type BulkUpdateResult struct {
	Message      string `json:"message"`
	AffectedRows int64  `json:"affected_rows"`
}
