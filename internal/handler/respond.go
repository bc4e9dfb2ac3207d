package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"
)

// Request timeouts per handler class.
const (
	DefaultTimeout     = 10 * time.Second
	LongRunningTimeout = 15 * time.Second
	UploadTimeout      = 30 * time.Second
)

// Default pagination constants
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
	Errors     []string        `json:"errors,omitempty"`
}

// PaginationMeta describes one page of a list response.
type PaginationMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// PaginationParams holds the parsed page/limit query parameters.
type PaginationParams struct {
	Page   int
	Limit  int
	Offset int
}

// ResponseHelper provides envelope and context utilities shared by handlers.
type ResponseHelper struct {
	Logger *log.Logger
}

// NewResponseHelper creates a new ResponseHelper instance.
func NewResponseHelper(logger *log.Logger) *ResponseHelper {
	if logger == nil {
		logger = log.Default()
	}
	return &ResponseHelper{Logger: logger}
}

// ParsePaginationParams reads page and limit from the query string, falling
// back to page 1 and the default page size on anything unparseable.
func (rh *ResponseHelper) ParsePaginationParams(r *http.Request) PaginationParams {
	query := r.URL.Query()

	page := 1
	if pageStr := query.Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	limit := DefaultPageSize
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= MaxPageSize {
			limit = l
		}
	}

	return PaginationParams{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// PaginationMeta derives page metadata from the parsed params and a total.
func (rh *ResponseHelper) PaginationMeta(params PaginationParams, total int) *PaginationMeta {
	totalPages := (total + params.Limit - 1) / params.Limit
	if totalPages == 0 {
		totalPages = 1
	}
	return &PaginationMeta{
		Page:       params.Page,
		Limit:      params.Limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// CreateRequestContext derives a bounded context from the request.
func (rh *ResponseHelper) CreateRequestContext(r *http.Request, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), timeout)
}

// SendData writes a success envelope carrying data.
func (rh *ResponseHelper) SendData(w http.ResponseWriter, statusCode int, data interface{}) {
	rh.write(w, statusCode, Response{Success: true, Data: data})
}

// SendPaginatedData writes a success envelope carrying data plus pagination.
func (rh *ResponseHelper) SendPaginatedData(w http.ResponseWriter, data interface{}, meta *PaginationMeta) {
	rh.write(w, http.StatusOK, Response{Success: true, Data: data, Pagination: meta})
}

// SendMessage writes a success envelope carrying a message and optional data.
func (rh *ResponseHelper) SendMessage(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	rh.write(w, statusCode, Response{Success: true, Data: data, Message: message})
}

func (rh *ResponseHelper) write(w http.ResponseWriter, statusCode int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		rh.Logger.Printf("Failed to encode response: %v", err)
	}
}

// Actor identifies who performed a mutating request, for the activity trail.
// There is no authentication layer; the caller self-identifies via header.
func Actor(r *http.Request) string {
	if actor := r.Header.Get("X-User-Email"); actor != "" {
		return actor
	}
	return "hr@system"
}
