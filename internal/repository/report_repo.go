package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"userreports/internal/model"
)

// ReportRepository runs the reporting operations. The per-user and
// top-customer reports and the bulk status update are server-side functions
// installed by the migration; the department summary is issued as a single
// aggregate query. Either way the contract is the same: no state is kept
// between calls and store failures propagate unchanged.
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// UserReport returns the order aggregate for one active user. Users with no
// orders are included, with zero count, zero total and the account creation
// date as the last order date. Inactive or missing users yield ErrNotFound.
func (r *ReportRepository) UserReport(ctx context.Context, userID int64) (*model.UserReport, error) {
	var reports []model.UserReport
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM get_user_report(?)", userID).
		Scan(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to run user report: %w", err)
	}
	if len(reports) == 0 {
		return nil, ErrNotFound
	}
	return &reports[0], nil
}

// TopCustomers returns up to limit active users ordered by total spent
// descending, user id ascending on ties. Users with no orders are excluded.
// A non-positive limit yields an empty list.
func (r *ReportRepository) TopCustomers(ctx context.Context, limit int) ([]model.UserReport, error) {
	if limit <= 0 {
		return []model.UserReport{}, nil
	}

	reports := []model.UserReport{}
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM get_top_customers(?)", limit).
		Scan(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to run top customers report: %w", err)
	}
	return reports, nil
}

// DepartmentSummary aggregates active users per department. A NULL department
// is reported under the "Unknown" label. Average salary treats missing
// salaries as zero. Revenue deliberately ignores the user-active flag: it sums
// completed orders of every user in the department.
func (r *ReportRepository) DepartmentSummary(ctx context.Context) ([]model.DepartmentSummary, error) {
	summaries := []model.DepartmentSummary{}
	err := r.db.WithContext(ctx).
		Raw(`SELECT
			COALESCE(u.department, 'Unknown') AS department,
			COUNT(*) AS user_count,
			COALESCE(AVG(COALESCE(u.salary, 0)), 0) AS average_salary,
			COALESCE((
				SELECT SUM(o.amount)
				FROM orders o
				JOIN users m ON m.id = o.user_id
				WHERE m.department IS NOT DISTINCT FROM u.department
				  AND o.status = ?
			), 0) AS total_revenue
		FROM users u
		WHERE u.is_active
		GROUP BY u.department
		ORDER BY department`, model.OrderStatusCompleted).
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to run department summary: %w", err)
	}
	return summaries, nil
}

// BulkUpdateDepartmentStatus sets the active flag for every user whose
// department exactly equals department, in one transaction. Matching is by
// department alone, so repeating the call reports the same affected count.
// Zero matches is a success with an affected count of zero.
func (r *ReportRepository) BulkUpdateDepartmentStatus(ctx context.Context, department string, isActive bool) (*model.BulkUpdateResult, error) {
	var result model.BulkUpdateResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Raw("SELECT * FROM bulk_update_user_status(?, ?)", department, isActive).
			Scan(&result).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run bulk status update: %w", err)
	}
	return &result, nil
}
