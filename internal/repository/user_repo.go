package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"userreports/internal/model"
)

// pgUniqueViolation is the SQLSTATE raised by Postgres for unique-constraint
// violations.
const pgUniqueViolation = "23505"

// UserRepository handles user persistence. Every call runs on its own
// connection from the pool; there is no cross-request state.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// ListActive returns all active users, ordered by id. Orders are not loaded.
func (r *UserRepository) ListActive(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetByID returns one user with its orders, or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Orders").
		First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Orders == nil {
		user.Orders = []model.Order{}
	}
	return &user, nil
}

// Create persists a new user. The creation timestamp is assigned here; any
// value supplied by the caller is overwritten.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	user.ID = 0
	user.Orders = nil
	user.CreatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", classify(err))
	}
	return nil
}

// Update overwrites the mutable fields of the user matching id. The id,
// creation timestamp and orders are never altered. Returns ErrNotFound when
// no row matches.
func (r *UserRepository) Update(ctx context.Context, id int64, user *model.User) (*model.User, error) {
	var existing model.User
	err := r.db.WithContext(ctx).First(&existing, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user for update: %w", err)
	}

	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Email = user.Email
	existing.IsActive = user.IsActive
	existing.Salary = user.Salary
	existing.Department = user.Department

	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", classify(err))
	}
	return &existing, nil
}

// Delete removes the user matching id. Owned orders are removed by the
// ON DELETE CASCADE foreign key. Returns false when no row matched.
func (r *UserRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// classify maps driver-level constraint violations onto repository sentinels.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicateEmail
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}
