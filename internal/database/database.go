// Package database opens the Postgres connection and installs the schema,
// including the report functions invoked by the repositories.
package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"userreports/internal/model"
)

// Open connects to Postgres through the pgx-backed driver and verifies the
// connection with a ping.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection pool: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// Migrate creates the tables and the report functions. Safe to run on every
// startup; functions are created with CREATE OR REPLACE.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Order{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	for _, stmt := range reportFunctions {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create report function: %w", err)
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// reportFunctions are the server-side routines backing the report endpoints.
// Column references are qualified throughout so the output parameter names
// cannot shadow them inside PL/pgSQL.
var reportFunctions = []string{
	`CREATE OR REPLACE FUNCTION get_user_report(user_id_param BIGINT)
	RETURNS TABLE(
		user_id BIGINT,
		full_name TEXT,
		email TEXT,
		order_count BIGINT,
		total_spent NUMERIC,
		last_order_date TIMESTAMPTZ
	) AS $$
	BEGIN
		RETURN QUERY
		SELECT
			u.id,
			(u.first_name || ' ' || u.last_name)::TEXT,
			u.email::TEXT,
			COUNT(o.id),
			COALESCE(SUM(o.amount), 0),
			COALESCE(MAX(o.order_date), u.created_at)
		FROM users u
		LEFT JOIN orders o ON o.user_id = u.id
		WHERE u.id = user_id_param AND u.is_active
		GROUP BY u.id, u.first_name, u.last_name, u.email, u.created_at;
	END;
	$$ LANGUAGE plpgsql STABLE`,

	`CREATE OR REPLACE FUNCTION get_top_customers(customer_limit INTEGER)
	RETURNS TABLE(
		user_id BIGINT,
		full_name TEXT,
		email TEXT,
		order_count BIGINT,
		total_spent NUMERIC,
		last_order_date TIMESTAMPTZ
	) AS $$
	BEGIN
		RETURN QUERY
		SELECT
			u.id,
			(u.first_name || ' ' || u.last_name)::TEXT,
			u.email::TEXT,
			COUNT(o.id),
			COALESCE(SUM(o.amount), 0),
			MAX(o.order_date)
		FROM users u
		LEFT JOIN orders o ON o.user_id = u.id
		WHERE u.is_active
		GROUP BY u.id, u.first_name, u.last_name, u.email
		HAVING COUNT(o.id) > 0
		ORDER BY COALESCE(SUM(o.amount), 0) DESC, u.id ASC
		LIMIT customer_limit;
	END;
	$$ LANGUAGE plpgsql STABLE`,

	`CREATE OR REPLACE FUNCTION bulk_update_user_status(department_param VARCHAR, new_status BOOLEAN)
	RETURNS TABLE(
		message TEXT,
		affected_rows BIGINT
	) AS $$
	DECLARE
		rows_affected BIGINT;
	BEGIN
		UPDATE users
		SET is_active = new_status
		WHERE users.department = department_param;

		GET DIAGNOSTICS rows_affected = ROW_COUNT;

		RETURN QUERY
		SELECT
			('Updated ' || rows_affected || ' users in department: ' || department_param)::TEXT,
			rows_affected;
	END;
	$$ LANGUAGE plpgsql`,
}
