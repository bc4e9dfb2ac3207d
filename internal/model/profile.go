package model

import "time"

// Document kinds accepted by the profile upload form.
const (
	DocumentAadhar     = "aadhar"
	DocumentPAN        = "pan"
	DocumentSalarySlip = "salary_slip"
	DocumentEducation  = "education"
	DocumentExperience = "experience"
)

// ProfileDocument is a supporting document stored for an employee profile.
type ProfileDocument struct {
	Kind     string `json:"kind"`
	FileName string `json:"file_name"`
	FilePath string `json:"file_path"`
	URL      string `json:"url,omitempty"`
}

// Profile is an employee's self-service profile.
type Profile struct {
	EmployeeID       string            `json:"employeeId"`
	Name             string            `json:"name"`
	ContactNo        string            `json:"contactNo"`
	Email            string            `json:"email"`
	AlternateContact string            `json:"alternateContact,omitempty"`
	EmergencyContact string            `json:"emergencyContact,omitempty"`
	BloodGroup       string            `json:"bloodGroup,omitempty"`
	PermanentAddress string            `json:"permanentAddress,omitempty"`
	CurrentAddress   string            `json:"currentAddress,omitempty"`
	AadharNumber     string            `json:"aadharNumber,omitempty"`
	PanNumber        string            `json:"panNumber,omitempty"`
	Department       string            `json:"department,omitempty"`
	JobRole          string            `json:"jobRole,omitempty"`
	DOB              *time.Time        `json:"dob,omitempty"`
	DOJ              *time.Time        `json:"doj,omitempty"`
	ProfileImagePath string            `json:"profile_image_path,omitempty"`
	Documents        []ProfileDocument `json:"documents,omitempty"`
	UpdatedAt        time.Time         `json:"updated_at"`
}
