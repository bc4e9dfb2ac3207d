package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"hr-administration-api/internal/model"
)

// ProfileRepository is an interface for interacting with employee profiles
// and their supporting documents.
type ProfileRepository interface {
	GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error)
	UpsertProfile(ctx context.Context, profile model.Profile) error
	AddDocument(ctx context.Context, email string, doc model.ProfileDocument) error
}

type profileRepository struct {
	DB *sql.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{DB: db}
}

func (r *profileRepository) GetProfileByEmail(ctx context.Context, email string) (*model.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		SELECT employee_id, name, COALESCE(contact_no, ''), email,
			COALESCE(alternate_contact, ''), COALESCE(emergency_contact, ''),
			COALESCE(blood_group, ''), COALESCE(permanent_address, ''), COALESCE(current_address, ''),
			COALESCE(aadhar_number, ''), COALESCE(pan_number, ''),
			COALESCE(department, ''), COALESCE(job_role, ''),
			dob, doj, COALESCE(profile_image_path, ''), updated_at
		FROM profiles
		WHERE email = $1`

	var p model.Profile
	var dob, doj sql.NullTime
	err := r.DB.QueryRowContext(ctx, query, email).Scan(
		&p.EmployeeID, &p.Name, &p.ContactNo, &p.Email,
		&p.AlternateContact, &p.EmergencyContact,
		&p.BloodGroup, &p.PermanentAddress, &p.CurrentAddress,
		&p.AadharNumber, &p.PanNumber, &p.Department, &p.JobRole,
		&dob, &doj, &p.ProfileImagePath, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if dob.Valid {
		p.DOB = &dob.Time
	}
	if doj.Valid {
		p.DOJ = &doj.Time
	}

	docs, err := r.getDocuments(ctx, email)
	if err != nil {
		return nil, err
	}
	p.Documents = docs

	return &p, nil
}

// UpsertProfile inserts the profile or replaces it if the employee already
// saved one. The email is the conflict key; the profile image path is only
// overwritten when a new one was uploaded.
func (r *profileRepository) UpsertProfile(ctx context.Context, profile model.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO profiles (employee_id, name, contact_no, email,
			alternate_contact, emergency_contact, blood_group,
			permanent_address, current_address, aadhar_number, pan_number,
			department, job_role, dob, doj, profile_image_path)
		VALUES ($1, $2, NULLIF($3, ''), $4,
			NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''),
			NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''), NULLIF($11, ''),
			NULLIF($12, ''), NULLIF($13, ''), $14, $15, NULLIF($16, ''))
		ON CONFLICT (email) DO UPDATE SET
			employee_id = EXCLUDED.employee_id,
			name = EXCLUDED.name,
			contact_no = EXCLUDED.contact_no,
			alternate_contact = EXCLUDED.alternate_contact,
			emergency_contact = EXCLUDED.emergency_contact,
			blood_group = EXCLUDED.blood_group,
			permanent_address = EXCLUDED.permanent_address,
			current_address = EXCLUDED.current_address,
			aadhar_number = EXCLUDED.aadhar_number,
			pan_number = EXCLUDED.pan_number,
			department = EXCLUDED.department,
			job_role = EXCLUDED.job_role,
			dob = EXCLUDED.dob,
			doj = EXCLUDED.doj,
			profile_image_path = COALESCE(EXCLUDED.profile_image_path, profiles.profile_image_path),
			updated_at = CURRENT_TIMESTAMP`

	_, err := r.DB.ExecContext(ctx, query,
		profile.EmployeeID, profile.Name, profile.ContactNo, profile.Email,
		profile.AlternateContact, profile.EmergencyContact, profile.BloodGroup,
		profile.PermanentAddress, profile.CurrentAddress, profile.AadharNumber,
		profile.PanNumber, profile.Department, profile.JobRole,
		profile.DOB, profile.DOJ, profile.ProfileImagePath,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	return nil
}

func (r *profileRepository) AddDocument(ctx context.Context, email string, doc model.ProfileDocument) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	query := `
		INSERT INTO profile_documents (employee_email, kind, file_name, file_path)
		VALUES ($1, $2, $3, $4)`

	if _, err := r.DB.ExecContext(ctx, query, email, doc.Kind, doc.FileName, doc.FilePath); err != nil {
		return fmt.Errorf("failed to add profile document: %w", err)
	}

	return nil
}

func (r *profileRepository) getDocuments(ctx context.Context, email string) ([]model.ProfileDocument, error) {
	query := `
		SELECT kind, file_name, file_path
		FROM profile_documents
		WHERE employee_email = $1
		ORDER BY uploaded_at`

	rows, err := r.DB.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile documents: %w", err)
	}
	defer rows.Close()

	var docs []model.ProfileDocument
	for rows.Next() {
		var d model.ProfileDocument
		if err := rows.Scan(&d.Kind, &d.FileName, &d.FilePath); err != nil {
			return nil, fmt.Errorf("failed to scan profile document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}
