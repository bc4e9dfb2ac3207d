package handler

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"hr-administration-api/internal/config"
	"hr-administration-api/internal/model"
)

// ProfileServiceAPI is the slice of the profile service the handler depends on.
type ProfileServiceAPI interface {
	GetProfile(ctx context.Context, email string) (*model.Profile, error)
	SaveProfile(ctx context.Context, profile model.Profile, docs []model.ProfileDocument) (*model.Profile, error)
}

// Multipart file field names accepted by the profile form, and the document
// kind each one maps to.
var documentFields = map[string]string{
	"aadharPdf":      model.DocumentAadhar,
	"panPdf":         model.DocumentPAN,
	"salarySlips":    model.DocumentSalarySlip,
	"educationDocs":  model.DocumentEducation,
	"experienceDocs": model.DocumentExperience,
}

// ProfileHandler handles the HTTP requests for the employee profile form.
type ProfileHandler struct {
	Service ProfileServiceAPI
	Uploads config.UploadConfig
	Logger  *log.Logger

	ErrorHandler   *ErrorHandler
	ResponseHelper *ResponseHelper
}

// NewProfileHandler creates a new ProfileHandler with dependencies and helpers.
func NewProfileHandler(service ProfileServiceAPI, uploads config.UploadConfig, logger *log.Logger) *ProfileHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &ProfileHandler{
		Service:        service,
		Uploads:        uploads,
		Logger:         logger,
		ErrorHandler:   NewErrorHandler(logger),
		ResponseHelper: NewResponseHelper(logger),
	}
}

// GetProfileHandler handles GET /api/user/profile?email=...
func (h *ProfileHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, DefaultTimeout)
	defer cancel()

	profile, err := h.Service.GetProfile(ctx, r.URL.Query().Get("email"))
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "retrieve profile")
		return
	}

	h.decorateDocuments(r, profile)
	h.ResponseHelper.SendData(w, http.StatusOK, profile)
}

// SaveProfileHandler handles POST /api/profile as a multipart form: scalar
// profile fields plus an optional profile image and supporting documents.
func (h *ProfileHandler) SaveProfileHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.ResponseHelper.CreateRequestContext(r, UploadTimeout)
	defer cancel()

	if err := r.ParseMultipartForm(h.Uploads.MaxMultipartSize); err != nil {
		h.ErrorHandler.HandleBadRequest(w, "Request must be a multipart form")
		return
	}

	profile := profileFromForm(r)

	if file, header, err := r.FormFile("profileImage"); err == nil {
		defer file.Close()
		if header.Size > h.Uploads.MaxImageSize {
			h.ErrorHandler.HandleBadRequest(w,
				fmt.Sprintf("Profile image exceeds the %d byte limit", h.Uploads.MaxImageSize))
			return
		}
		path, err := h.storeFile(file, header)
		if err != nil {
			h.ErrorHandler.HandleError(w, err, "store profile image")
			return
		}
		profile.ProfileImagePath = path
	}

	var docs []model.ProfileDocument
	if r.MultipartForm != nil {
		for field, kind := range documentFields {
			for _, header := range r.MultipartForm.File[field] {
				if header.Size > h.Uploads.MaxDocumentSize {
					h.ErrorHandler.HandleBadRequest(w,
						fmt.Sprintf("Document %s exceeds the %d byte limit", header.Filename, h.Uploads.MaxDocumentSize))
					return
				}
				file, err := header.Open()
				if err != nil {
					h.ErrorHandler.HandleError(w, err, "read uploaded document")
					return
				}
				path, err := h.storeFile(file, header)
				file.Close()
				if err != nil {
					h.ErrorHandler.HandleError(w, err, "store uploaded document")
					return
				}
				docs = append(docs, model.ProfileDocument{
					Kind:     kind,
					FileName: header.Filename,
					FilePath: path,
				})
			}
		}
	}

	saved, err := h.Service.SaveProfile(ctx, profile, docs)
	if err != nil {
		h.ErrorHandler.HandleError(w, err, "save profile")
		return
	}

	h.decorateDocuments(r, saved)
	h.ResponseHelper.SendMessage(w, http.StatusOK, "Profile saved successfully", saved)
}

func profileFromForm(r *http.Request) model.Profile {
	get := func(name string) string {
		return strings.TrimSpace(r.FormValue(name))
	}

	profile := model.Profile{
		EmployeeID:       get("employeeId"),
		Name:             get("name"),
		ContactNo:        get("contactNo"),
		Email:            get("email"),
		AlternateContact: get("alternateContact"),
		EmergencyContact: get("emergencyContact"),
		BloodGroup:       get("bloodGroup"),
		PermanentAddress: get("permanentAddress"),
		CurrentAddress:   get("currentAddress"),
		AadharNumber:     get("aadharNumber"),
		PanNumber:        get("panNumber"),
		Department:       get("department"),
		JobRole:          get("jobRole"),
	}
	if t, err := time.Parse("2006-01-02", get("dob")); err == nil {
		profile.DOB = &t
	}
	if t, err := time.Parse("2006-01-02", get("doj")); err == nil {
		profile.DOJ = &t
	}
	return profile
}

// storeFile writes an upload into the uploads directory under a fresh name.
// The original file name only survives in the document metadata.
func (h *ProfileHandler) storeFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	path := filepath.Join(h.Uploads.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write upload file: %w", err)
	}

	return name, nil
}

func (h *ProfileHandler) decorateDocuments(r *http.Request, profile *model.Profile) {
	base := h.Uploads.PublicBaseURL
	if base == "" {
		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	base = strings.TrimSuffix(base, "/")

	for i := range profile.Documents {
		profile.Documents[i].URL = fmt.Sprintf("%s/uploads/%s", base, profile.Documents[i].FilePath)
	}
}
