package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"hr-administration-api/internal/config"
)

// InitDB initializes the database connection with proper configuration
func InitDB(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.GetDatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the tables the service expects when they are missing.
// Columns mirror the wire contract's snake_case field names.
func EnsureSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS assets (
			id SERIAL PRIMARY KEY,
			asset_id TEXT NOT NULL UNIQUE,
			serial_number TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			brand TEXT NOT NULL,
			model TEXT NOT NULL,
			status TEXT NOT NULL,
			allocation_kind TEXT,
			allocated_to TEXT,
			allocated_to_office TEXT,
			location TEXT,
			vendor TEXT NOT NULL,
			vendor_email TEXT,
			vendor_contact TEXT,
			warranty_expiry TEXT,
			reason TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS vendors (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			contact_person TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			address TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS departments (
			grp_id SERIAL PRIMARY KEY,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS employees (
			employee_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			grp_id INTEGER NOT NULL REFERENCES departments (grp_id)
		)`,
		`CREATE TABLE IF NOT EXISTS tickets (
			ticket_id TEXT PRIMARY KEY,
			asset_id TEXT NOT NULL,
			reported_by TEXT NOT NULL,
			issue_description TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'Open',
			priority TEXT NOT NULL DEFAULT 'Medium',
			assigned_to TEXT,
			resolution_notes TEXT,
			employee_id TEXT,
			employee_name TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS ticket_evidence (
			id SERIAL PRIMARY KEY,
			ticket_id TEXT NOT NULL REFERENCES tickets (ticket_id) ON DELETE CASCADE,
			file_path TEXT NOT NULL,
			file_type TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS activity_logs (
			id UUID PRIMARY KEY,
			employee_id TEXT,
			employee_email TEXT,
			employee_name TEXT,
			action_type TEXT NOT NULL,
			action_description TEXT,
			asset_id TEXT,
			ticket_id TEXT,
			performed_by TEXT NOT NULL,
			performed_by_name TEXT,
			additional_data JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_logs_created_at ON activity_logs (created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_logs_employee ON activity_logs (employee_id)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			employee_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			contact_no TEXT,
			email TEXT NOT NULL UNIQUE,
			alternate_contact TEXT,
			emergency_contact TEXT,
			blood_group TEXT,
			permanent_address TEXT,
			current_address TEXT,
			aadhar_number TEXT,
			pan_number TEXT,
			department TEXT,
			job_role TEXT,
			dob TIMESTAMPTZ,
			doj TIMESTAMPTZ,
			profile_image_path TEXT,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS profile_documents (
			id SERIAL PRIMARY KEY,
			employee_email TEXT NOT NULL,
			kind TEXT NOT NULL,
			file_name TEXT NOT NULL,
			file_path TEXT NOT NULL,
			uploaded_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}
