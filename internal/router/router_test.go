package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/repositories"
	"care_scheduler_backend/internal/repositories/memory"
	"care_scheduler_backend/internal/services"
	"care_scheduler_backend/pkg/cache"
	"care_scheduler_backend/pkg/utils"
)

type testServer struct {
	engine *gin.Engine
	store  *repositories.Store
	admin  string // access token
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	engine, err := NewEngine(Dependencies{
		Store:              store,
		Cache:              cache.NewMemory(),
		CacheTTL:           time.Minute,
		Tokens:             utils.NewTokenManager("router-test-secret", time.Minute, time.Hour),
		CORSAllowedOrigins: []string{"http://localhost:3000"},
	})
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	if _, err := services.NewAdminService(store.Users).BootstrapAdmin(context.Background(), "admin@example.com", "admin-password", "Admin"); err != nil {
		t.Fatalf("BootstrapAdmin() error = %v", err)
	}
	s := &testServer{engine: engine, store: store}
	s.admin = s.login(t, "admin@example.com", "admin-password")
	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": email, "password": password})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, w, &resp)
	return resp.Access
}

// employee provisions an employee and returns its id and access token.
func (s *testServer) employee(t *testing.T, email string, regionID string) (string, string) {
	t.Helper()
	body := map[string]interface{}{"email": email, "full_name": email, "role": "employee"}
	if regionID != "" {
		body["region_id"] = regionID
	}
	w := s.do(t, http.MethodPost, "/api/v1/admin/create-user", s.admin, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create-user status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		TempPassword string `json:"temp_password"`
	}
	decode(t, w, &resp)
	return resp.User.ID, s.login(t, email, resp.TempPassword)
}

func (s *testServer) create(t *testing.T, path, token string, body interface{}) map[string]interface{} {
	t.Helper()
	w := s.do(t, http.MethodPost, path, token, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST %s status = %d, body %s", path, w.Code, w.Body.String())
	}
	var out map[string]interface{}
	decode(t, w, &out)
	return out
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

type errorBody struct {
	Error utils.APIError `json:"error"`
}

func TestPingAndMetricsArePublic(t *testing.T) {
	s := newTestServer(t)
	if w := s.do(t, http.MethodGet, "/ping", "", nil); w.Code != http.StatusOK {
		t.Fatalf("/ping status = %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/metrics", "", nil); w.Code != http.StatusOK {
		t.Fatalf("/metrics status = %d", w.Code)
	}
}

func TestUnauthenticatedRequests(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name  string
		token string
	}{
		{"no token", ""},
		{"garbage token", "garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/v1/shifts", tt.token, nil)
			if w.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", w.Code)
			}
			var body errorBody
			decode(t, w, &body)
			if body.Error.Code != utils.ErrCodeUnauthorized {
				t.Fatalf("code = %q", body.Error.Code)
			}
		})
	}

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "admin@example.com", "password": "nope-nope"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", w.Code)
	}
}

func TestRefreshTokenCannotAuthenticate(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"email": "admin@example.com", "password": "admin-password"})
	var tokens struct {
		Refresh string `json:"refresh"`
	}
	decode(t, w, &tokens)

	if w := s.do(t, http.MethodGet, "/api/v1/auth/me", tokens.Refresh, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("refresh token as bearer status = %d, want 401", w.Code)
	}

	w = s.do(t, http.MethodPost, "/api/v1/auth/refresh", "", map[string]string{"refresh": tokens.Refresh})
	if w.Code != http.StatusOK {
		t.Fatalf("refresh status = %d, body %s", w.Code, w.Body.String())
	}
	var refreshed struct {
		Access string `json:"access"`
	}
	decode(t, w, &refreshed)

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", refreshed.Access, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d", w.Code)
	}
	var me map[string]interface{}
	decode(t, w, &me)
	if me["email"] != "admin@example.com" || me["is_admin"] != true {
		t.Fatalf("me = %v", me)
	}
	if _, leaked := me["password_hash"]; leaked {
		t.Fatal("password hash serialized")
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	s := newTestServer(t)
	employeeID, token := s.employee(t, "x@example.com", "")

	w := s.do(t, http.MethodPost, "/api/v1/admin/create-user", token, map[string]string{"email": "new@example.com"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("create-user by employee status = %d, want 403", w.Code)
	}
	if _, err := s.store.Users.GetUserByEmail("new@example.com"); err == nil {
		t.Fatal("user created despite denial")
	}

	w = s.do(t, http.MethodPost, "/api/v1/admin/update-password", s.admin, map[string]string{"user_id": employeeID})
	if w.Code != http.StatusOK {
		t.Fatalf("update-password status = %d, body %s", w.Code, w.Body.String())
	}
	var reset struct {
		UserID       string `json:"user_id"`
		TempPassword string `json:"temp_password"`
	}
	decode(t, w, &reset)
	if reset.UserID != employeeID || len(reset.TempPassword) != utils.TempPasswordLength {
		t.Fatalf("reset = %+v", reset)
	}

	w = s.do(t, http.MethodPost, "/api/v1/admin/create-user", s.admin, map[string]string{"email": "x@example.com"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email status = %d, want 400", w.Code)
	}
	var body errorBody
	decode(t, w, &body)
	if body.Error.Code != utils.ErrCodeValidationFailed || body.Error.Fields["email"] == "" {
		t.Fatalf("error = %+v", body.Error)
	}
}

func TestRegionScopedShiftAccess(t *testing.T) {
	s := newTestServer(t)
	state := s.create(t, "/api/v1/federal-states", s.admin, map[string]interface{}{"name": "Vienna", "sort_order": 0})
	north := s.create(t, "/api/v1/regions", s.admin, map[string]interface{}{"name": "North", "federal_state": state["id"]})
	northID := north["id"].(string)

	xID, xToken := s.employee(t, "x@example.com", northID)
	_, yToken := s.employee(t, "y@example.com", "")

	var regions []map[string]interface{}
	decode(t, s.do(t, http.MethodGet, "/api/v1/regions", yToken, nil), &regions)
	if len(regions) != 0 {
		t.Fatalf("unassigned employee sees %d regions", len(regions))
	}
	decode(t, s.do(t, http.MethodGet, "/api/v1/regions", xToken, nil), &regions)
	if len(regions) != 1 {
		t.Fatalf("assigned employee sees %d regions, want 1", len(regions))
	}

	if w := s.do(t, http.MethodPost, "/api/v1/regions", xToken, map[string]interface{}{"name": "South", "federal_state": state["id"]}); w.Code != http.StatusForbidden {
		t.Fatalf("employee region create status = %d, want 403", w.Code)
	}

	shift := s.create(t, "/api/v1/shifts", s.admin, map[string]interface{}{
		"shift_date": "2024-03-01", "time_from": "08:00", "time_to": "12:00",
		"region": northID, "employee": xID,
	})
	shiftPath := "/api/v1/shifts/" + shift["id"].(string)

	if w := s.do(t, http.MethodGet, shiftPath, yToken, nil); w.Code != http.StatusNotFound {
		t.Fatalf("invisible shift status = %d, want 404", w.Code)
	}
	if w := s.do(t, http.MethodPatch, shiftPath, xToken, map[string]interface{}{"notes": "bring keys"}); w.Code != http.StatusOK {
		t.Fatalf("owner patch status = %d, body %s", w.Code, w.Body.String())
	}
	if w := s.do(t, http.MethodPut, shiftPath, s.admin, map[string]interface{}{"open_shift": true}); w.Code != http.StatusOK {
		t.Fatalf("admin put status = %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, shiftPath, yToken, nil); w.Code != http.StatusOK {
		t.Fatalf("open shift status = %d, want 200", w.Code)
	}
	if w := s.do(t, http.MethodDelete, shiftPath, yToken, nil); w.Code != http.StatusForbidden {
		t.Fatalf("non-owner delete status = %d, want 403", w.Code)
	}
	if w := s.do(t, http.MethodDelete, shiftPath, xToken, nil); w.Code != http.StatusNoContent {
		t.Fatalf("owner delete status = %d, want 204", w.Code)
	}
}

func TestShiftValidationAndFilters(t *testing.T) {
	s := newTestServer(t)
	xID, xToken := s.employee(t, "x@example.com", "")

	w := s.do(t, http.MethodPost, "/api/v1/shifts", xToken, map[string]interface{}{
		"shift_date": "01.03.2024", "time_from": "08:00", "time_to": "12:00",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date status = %d, want 400", w.Code)
	}
	var body errorBody
	decode(t, w, &body)
	if body.Error.Fields["shift_date"] == "" {
		t.Fatalf("fields = %v, want shift_date", body.Error.Fields)
	}

	w = s.do(t, http.MethodPost, "/api/v1/shifts/bulk_create", xToken, map[string]interface{}{
		"shifts": []map[string]interface{}{
			{"employee": xID, "shift_date": "2024-03-01", "time_from": "08:00", "time_to": "12:00"},
			{"employee": xID, "shift_date": "2024-03-05", "time_from": "08:00", "time_to": "12:00"},
			{"employee": xID, "shift_date": "2024-03-09", "time_from": "08:00", "time_to": "12:00"},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("bulk status = %d, body %s", w.Code, w.Body.String())
	}

	var shifts []map[string]interface{}
	decode(t, s.do(t, http.MethodGet, "/api/v1/shifts?start_date=2024-03-02&end_date=2024-03-09", xToken, nil), &shifts)
	if len(shifts) != 2 || shifts[0]["shift_date"] != "2024-03-05" {
		t.Fatalf("filtered shifts = %v", shifts)
	}

	if w := s.do(t, http.MethodGet, "/api/v1/shifts?employee_id=42", xToken, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad employee_id status = %d, want 400", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/v1/shifts/not-a-uuid", xToken, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d, want 400", w.Code)
	}
}

func TestAbsenceOverlapOverHTTP(t *testing.T) {
	s := newTestServer(t)
	_, xToken := s.employee(t, "x@example.com", "")
	_, yToken := s.employee(t, "y@example.com", "")

	s.create(t, "/api/v1/absences", xToken, map[string]interface{}{"start_date": "2024-01-10", "end_date": "2024-01-15", "reason": "vacation"})

	var absences []map[string]interface{}
	decode(t, s.do(t, http.MethodGet, "/api/v1/absences?start_date=2024-01-14&end_date=2024-01-20", yToken, nil), &absences)
	if len(absences) != 1 {
		t.Fatalf("overlapping query returned %d absences, want 1", len(absences))
	}
	decode(t, s.do(t, http.MethodGet, "/api/v1/absences?start_date=2024-01-20", yToken, nil), &absences)
	if len(absences) != 0 {
		t.Fatalf("later query returned %d absences, want 0", len(absences))
	}
}

func TestTemplateWorkflow(t *testing.T) {
	s := newTestServer(t)
	_, xToken := s.employee(t, "x@example.com", "")
	_, yToken := s.employee(t, "y@example.com", "")

	tpl := s.create(t, "/api/v1/weekly-templates", xToken, map[string]interface{}{"name": "Week A"})
	s.create(t, "/api/v1/template-shifts", xToken, map[string]interface{}{
		"template": tpl["id"], "day_of_week": 0, "time_from": "08:00", "time_to": "12:00",
	})

	w := s.do(t, http.MethodPost, "/api/v1/template-shifts", xToken, map[string]interface{}{
		"template": tpl["id"], "day_of_week": 7, "time_from": "08:00", "time_to": "12:00",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("day_of_week 7 status = %d, want 400", w.Code)
	}

	var templates []map[string]interface{}
	decode(t, s.do(t, http.MethodGet, "/api/v1/weekly-templates", xToken, nil), &templates)
	if len(templates) != 1 || len(templates[0]["template_shifts"].([]interface{})) != 1 {
		t.Fatalf("templates = %v", templates)
	}

	if w := s.do(t, http.MethodDelete, "/api/v1/weekly-templates/"+tpl["id"].(string), yToken, nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign template delete status = %d, want 404", w.Code)
	}
	if w := s.do(t, http.MethodDelete, "/api/v1/weekly-templates/"+tpl["id"].(string), xToken, nil); w.Code != http.StatusNoContent {
		t.Fatalf("own template delete status = %d, want 204", w.Code)
	}
	var slots []map[string]interface{}
	decode(t, s.do(t, http.MethodGet, "/api/v1/template-shifts", s.admin, nil), &slots)
	if len(slots) != 0 {
		t.Fatalf("slots survived template delete: %d", len(slots))
	}
}

func TestDeactivatedUserIsRejected(t *testing.T) {
	s := newTestServer(t)
	xID, xToken := s.employee(t, "x@example.com", "")

	if w := s.do(t, http.MethodPatch, "/api/v1/profiles/"+xID, xToken, map[string]interface{}{"is_active": false}); w.Code != http.StatusForbidden {
		t.Fatalf("self deactivate status = %d, want 403", w.Code)
	}
	if w := s.do(t, http.MethodPatch, "/api/v1/profiles/"+xID, s.admin, map[string]interface{}{"is_active": false}); w.Code != http.StatusOK {
		t.Fatalf("admin deactivate status = %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/v1/auth/me", xToken, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("deactivated user status = %d, want 401", w.Code)
	}
}
