package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userreports/internal/model"
)

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		"expected %s, got %s", expected, actual)
}

func TestReportRepository_UserReport_NoOrders(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	created := time.Now().UTC().Add(-30 * 24 * time.Hour)
	u := mustCreateUser(t, db, model.User{
		FirstName: "John", LastName: "Doe", Email: "john@example.com",
		IsActive: true, CreatedAt: created,
	})

	report, err := repo.UserReport(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, u.ID, report.UserID)
	assert.Equal(t, "John Doe", report.FullName)
	assert.Equal(t, int64(0), report.OrderCount)
	assertDecimal(t, "0", report.TotalSpent)
	assert.WithinDuration(t, created, report.LastOrderDate, time.Second,
		"last order date falls back to the creation date")
}

func TestReportRepository_UserReport_WithOrders(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	u := mustCreateUser(t, db, model.User{
		FirstName: "John", LastName: "Doe", Email: "john@example.com", IsActive: true,
	})
	older := time.Now().UTC().Add(-10 * 24 * time.Hour)
	newer := time.Now().UTC().Add(-5 * 24 * time.Hour)
	mustCreateOrder(t, db, u.ID, "150.50", older, model.OrderStatusCompleted)
	mustCreateOrder(t, db, u.ID, "75.25", newer, "Pending")

	report, err := repo.UserReport(context.Background(), u.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), report.OrderCount)
	assertDecimal(t, "225.75", report.TotalSpent)
	assert.WithinDuration(t, newer, report.LastOrderDate, time.Second)
}

func TestReportRepository_UserReport_InactiveUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	u := mustCreateUser(t, db, model.User{
		FirstName: "Alice", LastName: "Williams", Email: "alice@example.com", IsActive: false,
	})
	mustCreateOrder(t, db, u.ID, "50.00", time.Now().UTC(), model.OrderStatusCompleted)

	_, err := repo.UserReport(context.Background(), u.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportRepository_UserReport_MissingUser(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	_, err := repo.UserReport(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReportRepository_TopCustomers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	now := time.Now().UTC()

	big := mustCreateUser(t, db, model.User{FirstName: "Jane", LastName: "Smith", Email: "jane@example.com", IsActive: true})
	small := mustCreateUser(t, db, model.User{FirstName: "Bob", LastName: "Johnson", Email: "bob@example.com", IsActive: true})
	// Active but no orders: excluded.
	mustCreateUser(t, db, model.User{FirstName: "John", LastName: "Doe", Email: "john@example.com", IsActive: true})
	// Inactive with orders: excluded.
	inactive := mustCreateUser(t, db, model.User{FirstName: "Alice", LastName: "Williams", Email: "alice@example.com", IsActive: false})

	mustCreateOrder(t, db, big.ID, "200.00", now, model.OrderStatusCompleted)
	mustCreateOrder(t, db, big.ID, "100.00", now, "Pending")
	mustCreateOrder(t, db, small.ID, "50.00", now, model.OrderStatusCompleted)
	mustCreateOrder(t, db, inactive.ID, "999.99", now, model.OrderStatusCompleted)

	customers, err := repo.TopCustomers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, customers, 2)

	assert.Equal(t, big.ID, customers[0].UserID)
	assertDecimal(t, "300.00", customers[0].TotalSpent)
	assert.Equal(t, int64(2), customers[0].OrderCount)
	assert.Equal(t, small.ID, customers[1].UserID)
	assertDecimal(t, "50.00", customers[1].TotalSpent)
}

func TestReportRepository_TopCustomers_TieBreakAndLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	now := time.Now().UTC()

	var ids []int64
	for i := 0; i < 3; i++ {
		u := mustCreateUser(t, db, model.User{
			FirstName: "User", LastName: fmt.Sprintf("N%d", i),
			Email: fmt.Sprintf("user%d@example.com", i), IsActive: true,
		})
		mustCreateOrder(t, db, u.ID, "100.00", now, model.OrderStatusCompleted)
		ids = append(ids, u.ID)
	}

	customers, err := repo.TopCustomers(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, customers, 3)

	// Equal totals break ties by ascending user id.
	assert.Equal(t, ids[0], customers[0].UserID)
	assert.Equal(t, ids[1], customers[1].UserID)
	assert.Equal(t, ids[2], customers[2].UserID)

	truncated, err := repo.TopCustomers(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, truncated, 2)
}

func TestReportRepository_TopCustomers_NonPositiveLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	u := mustCreateUser(t, db, model.User{FirstName: "John", LastName: "Doe", Email: "john@example.com", IsActive: true})
	mustCreateOrder(t, db, u.ID, "10.00", time.Now().UTC(), model.OrderStatusCompleted)

	for _, limit := range []int{0, -1} {
		customers, err := repo.TopCustomers(context.Background(), limit)
		require.NoError(t, err)
		assert.Empty(t, customers)
	}
}

func TestReportRepository_DepartmentSummary(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	now := time.Now().UTC()

	withSalary := mustCreateUser(t, db, model.User{
		FirstName: "John", LastName: "Doe", Email: "john@example.com",
		IsActive: true, Salary: salary("100000"), Department: ptr("Engineering"),
	})
	// Missing salary counts as zero in the average.
	mustCreateUser(t, db, model.User{
		FirstName: "Jane", LastName: "Smith", Email: "jane@example.com",
		IsActive: true, Department: ptr("Engineering"),
	})
	// Inactive: not counted, but their completed orders still count as revenue.
	inactive := mustCreateUser(t, db, model.User{
		FirstName: "Alice", LastName: "Williams", Email: "alice@example.com",
		IsActive: false, Salary: salary("70000"), Department: ptr("Engineering"),
	})
	// NULL department groups under the Unknown label.
	mustCreateUser(t, db, model.User{
		FirstName: "Bob", LastName: "Johnson", Email: "bob@example.com",
		IsActive: true, Salary: salary("65000"),
	})

	mustCreateOrder(t, db, withSalary.ID, "150.50", now, model.OrderStatusCompleted)
	mustCreateOrder(t, db, withSalary.ID, "75.25", now, "Pending")
	mustCreateOrder(t, db, inactive.ID, "40.00", now, model.OrderStatusCompleted)

	summaries, err := repo.DepartmentSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byDept := map[string]model.DepartmentSummary{}
	for _, s := range summaries {
		byDept[s.Department] = s
	}

	eng, ok := byDept["Engineering"]
	require.True(t, ok)
	assert.Equal(t, int64(2), eng.UserCount, "inactive users are not counted")
	assertDecimal(t, "50000", eng.AverageSalary)
	// 150.50 + 40.00; the pending order is excluded.
	assertDecimal(t, "190.50", eng.TotalRevenue)

	unknown, ok := byDept["Unknown"]
	require.True(t, ok)
	assert.Equal(t, int64(1), unknown.UserCount)
	assertDecimal(t, "65000", unknown.AverageSalary)
	assertDecimal(t, "0", unknown.TotalRevenue)
}

func TestReportRepository_BulkUpdateDepartmentStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)
	ctx := context.Background()

	mustCreateUser(t, db, model.User{FirstName: "John", LastName: "Doe", Email: "john@example.com", IsActive: true, Department: ptr("Engineering")})
	mustCreateUser(t, db, model.User{FirstName: "Jane", LastName: "Smith", Email: "jane@example.com", IsActive: true, Department: ptr("Engineering")})
	mustCreateUser(t, db, model.User{FirstName: "Bob", LastName: "Johnson", Email: "bob@example.com", IsActive: true, Department: ptr("Sales")})

	result, err := repo.BulkUpdateDepartmentStatus(ctx, "Engineering", false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.AffectedRows)
	assert.Contains(t, result.Message, "2")
	assert.Contains(t, result.Message, "Engineering")

	var stillActive int64
	require.NoError(t, db.Model(&model.User{}).
		Where("department = ? AND is_active", "Engineering").
		Count(&stillActive).Error)
	assert.Zero(t, stillActive)

	// Match is by department only, so a repeat reports the same count.
	repeat, err := repo.BulkUpdateDepartmentStatus(ctx, "Engineering", false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), repeat.AffectedRows)

	// Sales was untouched.
	var salesActive int64
	require.NoError(t, db.Model(&model.User{}).
		Where("department = ? AND is_active", "Sales").
		Count(&salesActive).Error)
	assert.Equal(t, int64(1), salesActive)
}

func TestReportRepository_BulkUpdateDepartmentStatus_NoMatches(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReportRepository(db)

	result, err := repo.BulkUpdateDepartmentStatus(context.Background(), "Legal", true)
	require.NoError(t, err)
	assert.Zero(t, result.AffectedRows)
}
