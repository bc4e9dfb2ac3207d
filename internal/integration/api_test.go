package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"hr-administration-api/internal/config"
	"hr-administration-api/internal/database"
	"hr-administration-api/internal/handler"
	"hr-administration-api/internal/model"
	"hr-administration-api/internal/repository"
	"hr-administration-api/internal/router"
	"hr-administration-api/internal/service"
)

// IntegrationTestSuite holds the test dependencies
type IntegrationTestSuite struct {
	DB     *sql.DB
	Router http.Handler
	Config *config.Config
}

// setupIntegrationTest initializes the test environment
func setupIntegrationTest(t *testing.T) *IntegrationTestSuite {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := loadTestConfig(t)
	db := initTestDatabase(t, cfg)

	if err := database.EnsureSchema(db); err != nil {
		t.Fatalf("Failed to ensure schema: %v", err)
	}
	cleanDatabase(t, db)

	assetRepo := repository.NewAssetRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	ticketRepo := repository.NewTicketRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	lookupRepo := repository.NewLookupRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	handlers := router.Handlers{
		Assets:   handler.NewAssetHandler(service.NewAssetService(assetRepo, activityRepo, nil), nil),
		Vendors:  handler.NewVendorHandler(service.NewVendorService(vendorRepo, nil), nil),
		Tickets:  handler.NewTicketHandler(service.NewTicketService(ticketRepo, activityRepo, nil), cfg.Uploads.PublicBaseURL, nil),
		Activity: handler.NewActivityHandler(service.NewActivityService(activityRepo, nil), nil),
		Lookup:   handler.NewLookupHandler(service.NewLookupService(lookupRepo, nil), nil),
		Profile:  handler.NewProfileHandler(service.NewProfileService(profileRepo, nil), cfg.Uploads, nil),
		Health:   handler.NewHealthHandler(db, nil),
	}

	return &IntegrationTestSuite{
		DB:     db,
		Router: router.NewRouter(handlers, cfg, nil),
		Config: cfg,
	}
}

// teardownIntegrationTest cleans up test resources
func teardownIntegrationTest(t *testing.T, suite *IntegrationTestSuite) {
	t.Helper()
	if suite.DB != nil {
		cleanDatabase(t, suite.DB)
		suite.DB.Close()
	}
}

// loadTestConfig loads configuration for testing
func loadTestConfig(t *testing.T) *config.Config {
	t.Helper()

	return &config.Config{
		Port:     8080,
		LogLevel: "info",
		Database: config.DatabaseConfig{
			Host:     getEnv("TEST_DB_HOST", "127.0.0.1"),
			Port:     getEnvAsInt("TEST_DB_PORT", 5432),
			User:     getEnv("TEST_DB_USER", "postgres"),
			Password: getEnv("TEST_DB_PASSWORD", "postgres"),
			Name:     getEnv("TEST_DB_NAME", "postgres"),
			SSLMode:  "disable",
		},
		Uploads: config.UploadConfig{
			Dir:              t.TempDir(),
			PublicBaseURL:    "http://files.test",
			MaxImageSize:     2 << 20,
			MaxDocumentSize:  10 << 20,
			MaxMultipartSize: 32 << 20,
		},
		Security: config.SecurityConfig{
			RateLimitRPS:    100,
			RateLimitBurst:  200,
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			EnableCORS:      true,
			AllowedOrigins:  []string{"*"},
		},
	}
}

// initTestDatabase initializes the test database connection
func initTestDatabase(t *testing.T, cfg *config.Config) *sql.DB {
	t.Helper()

	db, err := database.InitDB(cfg)
	if err != nil {
		t.Skipf("Failed to connect to test database: %v. Ensure test database is running.", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Skipf("Failed to ping test database: %v", err)
	}

	return db
}

// cleanDatabase removes all test data
func cleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	tables := []string{
		"activity_logs", "ticket_evidence", "tickets", "profile_documents",
		"profiles", "employees", "departments", "vendors", "assets",
	}
	for _, table := range tables {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Logf("Warning: Failed to clean table %s: %v", table, err)
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// Test helper to create HTTP request with JSON body and operator identity
func createJSONRequest(method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Email", "hr@example.com")
	return req
}

// Test helper to parse the response envelope
func parseEnvelope(t *testing.T, resp *httptest.ResponseRecorder) handler.Response {
	t.Helper()
	var envelope handler.Response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("Failed to decode JSON response: %v. Body: %s", err, resp.Body.String())
	}
	return envelope
}

// decodeData re-marshals the envelope's data field into a typed value
func decodeData(t *testing.T, envelope handler.Response, target interface{}) {
	t.Helper()
	raw, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("Failed to re-marshal data: %v", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
}

func str(s string) *string { return &s }

// Integration Tests

func TestIntegration_AssetLifecycle(t *testing.T) {
	suite := setupIntegrationTest(t)
	defer teardownIntegrationTest(t, suite)

	var assetID string

	t.Run("Next ID Starts At One", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/assets/next-id", nil)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}
		var data map[string]string
		decodeData(t, parseEnvelope(t, resp), &data)
		if data["nextId"] != "AID0001" {
			t.Errorf("Expected next id AID0001, got %q", data["nextId"])
		}
	})

	t.Run("Create Available Asset", func(t *testing.T) {
		payload := model.AssetPayload{
			SerialNumber:  "SN-IT-9001",
			Name:          "ThinkPad T14",
			Type:          "Laptop",
			Brand:         "Lenovo",
			Model:         "T14 Gen 4",
			Status:        model.StatusAvailable,
			Vendor:        "Techtronics",
			VendorEmail:   "sales@techtronics.example",
			VendorContact: "555-0100",
		}

		req := createJSONRequest("POST", "/api/assets", payload)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusCreated {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusCreated, resp.Code, resp.Body.String())
		}
		envelope := parseEnvelope(t, resp)
		if !envelope.Success {
			t.Fatalf("Expected success envelope, got: %+v", envelope)
		}

		var asset model.Asset
		decodeData(t, envelope, &asset)
		if asset.AssetID == "" {
			t.Fatal("Expected a generated asset id")
		}
		assetID = asset.AssetID
		if asset.Status != model.StatusAvailable {
			t.Errorf("Expected status Available, got %q", asset.Status)
		}
	})

	t.Run("Duplicate Serial Rejected", func(t *testing.T) {
		payload := model.AssetPayload{
			SerialNumber:  "SN-IT-9001",
			Name:          "ThinkPad T14",
			Type:          "Laptop",
			Brand:         "Lenovo",
			Model:         "T14 Gen 4",
			Status:        model.StatusAvailable,
			Vendor:        "Techtronics",
			VendorEmail:   "sales@techtronics.example",
			VendorContact: "555-0100",
		}

		req := createJSONRequest("POST", "/api/assets", payload)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusConflict {
			t.Errorf("Expected status %d, got %d. Body: %s", http.StatusConflict, resp.Code, resp.Body.String())
		}
	})

	t.Run("List Assets", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/assets?page=1&limit=10", nil)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}
		envelope := parseEnvelope(t, resp)
		if envelope.Pagination == nil || envelope.Pagination.Total != 1 {
			t.Errorf("Expected pagination total 1, got %+v", envelope.Pagination)
		}
		var assets []model.Asset
		decodeData(t, envelope, &assets)
		if len(assets) != 1 {
			t.Errorf("Expected 1 asset, got %d", len(assets))
		}
	})

	t.Run("Allocate To Employee", func(t *testing.T) {
		payload := model.AssetPayload{
			SerialNumber:  "SN-IT-9001",
			Name:          "ThinkPad T14",
			Type:          "Laptop",
			Brand:         "Lenovo",
			Model:         "T14 Gen 4",
			Status:        model.StatusAllocated,
			AllocatedTo:   str("K0021"),
			Vendor:        "Techtronics",
			VendorEmail:   "sales@techtronics.example",
			VendorContact: "555-0100",
		}

		req := createJSONRequest("PUT", fmt.Sprintf("/api/assets/%s", assetID), payload)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}
		var asset model.Asset
		decodeData(t, parseEnvelope(t, resp), &asset)
		if asset.AllocatedTo != "K0021" {
			t.Errorf("Expected allocation to K0021, got %q", asset.AllocatedTo)
		}
		if asset.AllocationKind != "employee" {
			t.Errorf("Expected allocation kind employee, got %q", asset.AllocationKind)
		}
	})

	t.Run("Allocation Recorded In Activity Log", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/hr/activity-logs?activity_type=asset&employee_id=K0021", nil)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}
		var groups []model.GroupedActivityLog
		decodeData(t, parseEnvelope(t, resp), &groups)
		if len(groups) != 1 {
			t.Fatalf("Expected 1 activity group, got %d", len(groups))
		}
		found := false
		for _, activity := range groups[0].Activities {
			if activity.ActionType == model.ActionAssetAllocated && activity.AssetID == assetID {
				found = true
				if activity.PerformedBy != "hr@example.com" {
					t.Errorf("Expected performer hr@example.com, got %q", activity.PerformedBy)
				}
			}
		}
		if !found {
			t.Errorf("Expected an %s entry for %s in %+v", model.ActionAssetAllocated, assetID, groups[0].Activities)
		}
	})

	t.Run("Return To Pool Records Previous Holder", func(t *testing.T) {
		payload := model.AssetPayload{
			SerialNumber:  "SN-IT-9001",
			Name:          "ThinkPad T14",
			Type:          "Laptop",
			Brand:         "Lenovo",
			Model:         "T14 Gen 4",
			Status:        model.StatusAvailable,
			Vendor:        "Techtronics",
			VendorEmail:   "sales@techtronics.example",
			VendorContact: "555-0100",
		}

		req := createJSONRequest("PUT", fmt.Sprintf("/api/assets/%s", assetID), payload)
		resp := httptest.NewRecorder()
		suite.Router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}

		logReq := httptest.NewRequest("GET", "/api/hr/activity-logs?employee_id=K0021", nil)
		logResp := httptest.NewRecorder()
		suite.Router.ServeHTTP(logResp, logReq)

		var groups []model.GroupedActivityLog
		decodeData(t, parseEnvelope(t, logResp), &groups)
		found := false
		for _, group := range groups {
			for _, activity := range group.Activities {
				if activity.ActionType == model.ActionAssetReturned && activity.AssetID == assetID {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("Expected an %s entry attributed to the previous holder", model.ActionAssetReturned)
		}
	})

	t.Run("Delete Asset", func(t *testing.T) {
		req := createJSONRequest("DELETE", fmt.Sprintf("/api/assets/%s", assetID), nil)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}

		getReq := httptest.NewRequest("GET", fmt.Sprintf("/api/assets/%s", assetID), nil)
		getResp := httptest.NewRecorder()
		suite.Router.ServeHTTP(getResp, getReq)
		if getResp.Code != http.StatusNotFound {
			t.Errorf("Expected status %d after delete, got %d", http.StatusNotFound, getResp.Code)
		}
	})
}

func TestIntegration_VendorCRUD(t *testing.T) {
	suite := setupIntegrationTest(t)
	defer teardownIntegrationTest(t, suite)

	var vendorID int64

	t.Run("Create Vendor", func(t *testing.T) {
		payload := model.VendorPayload{
			Name:          "Techtronics",
			ContactPerson: "Dana Reyes",
			Email:         "sales@techtronics.example",
			Phone:         str("555-0100"),
		}

		req := createJSONRequest("POST", "/api/vendors", payload)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusCreated {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusCreated, resp.Code, resp.Body.String())
		}
		var vendor model.Vendor
		decodeData(t, parseEnvelope(t, resp), &vendor)
		if vendor.ID == 0 {
			t.Fatal("Expected a generated vendor id")
		}
		vendorID = vendor.ID
	})

	t.Run("Update Vendor", func(t *testing.T) {
		payload := model.VendorPayload{
			Name:          "Techtronics Ltd",
			ContactPerson: "Dana Reyes",
			Email:         "accounts@techtronics.example",
		}

		req := createJSONRequest("PUT", fmt.Sprintf("/api/vendors/%d", vendorID), payload)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}
		var vendor model.Vendor
		decodeData(t, parseEnvelope(t, resp), &vendor)
		if vendor.Name != "Techtronics Ltd" {
			t.Errorf("Expected updated name, got %q", vendor.Name)
		}
	})

	t.Run("Delete Vendor", func(t *testing.T) {
		req := createJSONRequest("DELETE", fmt.Sprintf("/api/vendors/%d", vendorID), nil)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}

		getReq := httptest.NewRequest("GET", fmt.Sprintf("/api/vendors/%d", vendorID), nil)
		getResp := httptest.NewRecorder()
		suite.Router.ServeHTTP(getResp, getReq)
		if getResp.Code != http.StatusNotFound {
			t.Errorf("Expected status %d after delete, got %d", http.StatusNotFound, getResp.Code)
		}
	})
}

func TestIntegration_TicketWorkflow(t *testing.T) {
	suite := setupIntegrationTest(t)
	defer teardownIntegrationTest(t, suite)

	seedTicket(t, suite.DB, "TKT-1001", "AID0001", model.TicketOpen)

	t.Run("List Filters By Status", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/hr/tickets?status=Open", nil)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}
		var tickets []model.Ticket
		decodeData(t, parseEnvelope(t, resp), &tickets)
		if len(tickets) != 1 {
			t.Fatalf("Expected 1 open ticket, got %d", len(tickets))
		}
		if len(tickets[0].Evidence) != 1 {
			t.Errorf("Expected 1 evidence item, got %d", len(tickets[0].Evidence))
		}
		if url := tickets[0].Evidence[0].URL; url != "http://files.test/uploads/evidence/tkt-1001.png" {
			t.Errorf("Unexpected evidence url %q", url)
		}
	})

	t.Run("Close With Response", func(t *testing.T) {
		update := model.TicketUpdate{Status: model.TicketClosed, HRResponse: "Replaced the charger"}

		req := createJSONRequest("PUT", "/api/hr/tickets/TKT-1001", update)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}
		var ticket model.Ticket
		decodeData(t, parseEnvelope(t, resp), &ticket)
		if ticket.Status != model.TicketClosed {
			t.Errorf("Expected status Closed, got %q", ticket.Status)
		}
		if ticket.ResolutionNotes != "Replaced the charger" {
			t.Errorf("Expected resolution notes to be stored, got %q", ticket.ResolutionNotes)
		}
	})

	t.Run("Close Recorded In Activity Log", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/hr/activity-logs?activity_type=ticket", nil)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		var groups []model.GroupedActivityLog
		decodeData(t, parseEnvelope(t, resp), &groups)
		found := false
		for _, group := range groups {
			for _, activity := range group.Activities {
				if activity.ActionType == model.ActionTicketClosed && activity.TicketID == "TKT-1001" {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("Expected a %s entry for TKT-1001", model.ActionTicketClosed)
		}
	})

	t.Run("Empty Update Rejected", func(t *testing.T) {
		req := createJSONRequest("PUT", "/api/hr/tickets/TKT-1001", model.TicketUpdate{})
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusBadRequest {
			t.Errorf("Expected status %d, got %d. Body: %s", http.StatusBadRequest, resp.Code, resp.Body.String())
		}
	})

	t.Run("Stats Count By Status", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/hr/ticket-stats", nil)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}
		var stats model.TicketStats
		decodeData(t, parseEnvelope(t, resp), &stats)
		if stats.Closed != 1 || stats.Total != 1 {
			t.Errorf("Expected 1 closed of 1 total, got %+v", stats)
		}
	})
}

func TestIntegration_LookupEndpoints(t *testing.T) {
	suite := setupIntegrationTest(t)
	defer teardownIntegrationTest(t, suite)

	if _, err := suite.DB.Exec(`INSERT INTO departments (grp_id, name) VALUES (1, 'Engineering'), (2, 'Finance')`); err != nil {
		t.Fatalf("Failed to seed departments: %v", err)
	}
	if _, err := suite.DB.Exec(`INSERT INTO employees (employee_id, name, grp_id) VALUES ('K0021', 'Priya Nair', 1), ('K0022', 'Ravi Kumar', 2)`); err != nil {
		t.Fatalf("Failed to seed employees: %v", err)
	}

	t.Run("Departments", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/departments", nil)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}
		var departments []model.Department
		decodeData(t, parseEnvelope(t, resp), &departments)
		if len(departments) != 2 {
			t.Errorf("Expected 2 departments, got %d", len(departments))
		}
	})

	t.Run("Employees Scoped To Group", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/employees/by-group?grp_id=1", nil)
		resp := httptest.NewRecorder()

		suite.Router.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
		}
		var employees []model.Employee
		decodeData(t, parseEnvelope(t, resp), &employees)
		if len(employees) != 1 || employees[0].EmployeeID != "K0021" {
			t.Errorf("Expected only K0021, got %+v", employees)
		}
	})
}

func TestIntegration_HealthCheck(t *testing.T) {
	suite := setupIntegrationTest(t)
	defer teardownIntegrationTest(t, suite)

	req := httptest.NewRequest("GET", "/api/health", nil)
	resp := httptest.NewRecorder()

	suite.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("Expected status %d, got %d. Body: %s", http.StatusOK, resp.Code, resp.Body.String())
	}
	envelope := parseEnvelope(t, resp)
	if !envelope.Success {
		t.Errorf("Expected success envelope, got: %+v", envelope)
	}
}

// seedTicket inserts a ticket with one evidence file directly, standing in for
// the employee-side intake that is out of scope here.
func seedTicket(t *testing.T, db *sql.DB, ticketID, assetID, status string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO tickets (ticket_id, asset_id, reported_by, issue_description, status, priority, employee_id, employee_name)
		VALUES ($1, $2, 'priya@example.com', 'Charger not working', $3, 'Medium', 'K0021', 'Priya Nair')`,
		ticketID, assetID, status)
	if err != nil {
		t.Fatalf("Failed to seed ticket: %v", err)
	}
	_, err = db.Exec(`
		INSERT INTO ticket_evidence (ticket_id, file_path, file_type)
		VALUES ($1, 'uploads/evidence/tkt-1001.png', 'image/png')`, ticketID)
	if err != nil {
		t.Fatalf("Failed to seed evidence: %v", err)
	}
}
