package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sapliy/contractplus/internal/auth"
	"github.com/sapliy/contractplus/internal/contract"
	"github.com/sapliy/contractplus/internal/notification"
)

type mockContractStore struct {
	*contract.MockStatsStore
	ListByUserFunc  func(ctx context.Context, userID int64) ([]*contract.Contract, error)
	FindForUserFunc func(ctx context.Context, id, userID int64) (*contract.Contract, error)
	CreateFunc      func(ctx context.Context, userID int64, req contract.CreateRequest) (*contract.Contract, error)
	UpdateFunc      func(ctx context.Context, id, userID int64, req contract.UpdateRequest) (*contract.Contract, error)
	DeleteFunc      func(ctx context.Context, id, userID int64) error
}

func (m *mockContractStore) ListByUser(ctx context.Context, userID int64) ([]*contract.Contract, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *mockContractStore) FindForUser(ctx context.Context, id, userID int64) (*contract.Contract, error) {
	return m.FindForUserFunc(ctx, id, userID)
}

func (m *mockContractStore) Create(ctx context.Context, userID int64, req contract.CreateRequest) (*contract.Contract, error) {
	return m.CreateFunc(ctx, userID, req)
}

func (m *mockContractStore) Update(ctx context.Context, id, userID int64, req contract.UpdateRequest) (*contract.Contract, error) {
	return m.UpdateFunc(ctx, id, userID, req)
}

func (m *mockContractStore) Delete(ctx context.Context, id, userID int64) error {
	return m.DeleteFunc(ctx, id, userID)
}

type mockNotifier struct {
	DispatchFunc    func(ctx context.Context, userID, contractID int64, req notification.DispatchRequest) (int, error)
	ListForUserFunc func(ctx context.Context, userID int64) ([]*notification.Notification, error)
}

func (m *mockNotifier) Dispatch(ctx context.Context, userID, contractID int64, req notification.DispatchRequest) (int, error) {
	return m.DispatchFunc(ctx, userID, contractID, req)
}

func (m *mockNotifier) ListForUser(ctx context.Context, userID int64) ([]*notification.Notification, error) {
	return m.ListForUserFunc(ctx, userID)
}

type mockAuth struct {
	LoginFunc    func(ctx context.Context, email, password string) (*auth.User, string, error)
	UserByIDFunc func(ctx context.Context, id int64) (*auth.User, error)
}

func (m *mockAuth) Login(ctx context.Context, email, password string) (*auth.User, string, error) {
	return m.LoginFunc(ctx, email, password)
}

func (m *mockAuth) UserByID(ctx context.Context, id int64) (*auth.User, error) {
	return m.UserByIDFunc(ctx, id)
}

var testTokens = auth.NewTokenManager("handler-test-secret", time.Hour)

func serveAs(t *testing.T, h *APIHandler, userID int64, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	router := setupRoutes(h, testTokens)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID != 0 {
		token, err := testTokens.Issue(userID)
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	h := &APIHandler{contracts: &mockContractStore{
		ListByUserFunc: func(ctx context.Context, userID int64) ([]*contract.Contract, error) {
			return nil, nil
		},
	}}

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"malformed token", "Bearer garbage", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupRoutes(h, testTokens)
			req := httptest.NewRequest("GET", "/api/contracts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}

	w := serveAs(t, h, 1, "GET", "/api/contracts", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 with a valid token, got %d", w.Code)
	}
}

func TestGetContractOwnershipIsolation(t *testing.T) {
	h := &APIHandler{contracts: &mockContractStore{
		FindForUserFunc: func(ctx context.Context, id, userID int64) (*contract.Contract, error) {
			// Contract 5 belongs to user 2; everyone else sees not-found.
			if id == 5 && userID == 2 {
				return &contract.Contract{ID: 5, Name: "Lease", EndDate: "2026-12-01 00:00:00", UserID: 2}, nil
			}
			return nil, contract.ErrNotFound
		},
	}}

	w := serveAs(t, h, 1, "GET", "/api/contracts/5", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for foreign contract, got %d", w.Code)
	}

	w = serveAs(t, h, 2, "GET", "/api/contracts/5", "")
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200 for owner, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"days_remaining"`) {
		t.Errorf("Expected days_remaining in body, got %s", w.Body.String())
	}
}

func TestCreateContractValidation(t *testing.T) {
	created := false
	h := &APIHandler{contracts: &mockContractStore{
		CreateFunc: func(ctx context.Context, userID int64, req contract.CreateRequest) (*contract.Contract, error) {
			created = true
			return &contract.Contract{ID: 1, Name: req.Name, StartDate: req.StartDate, EndDate: req.EndDate}, nil
		},
	}}

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{"missing name", `{"start_date":"2026-01-01 00:00:00","end_date":"2026-12-31 00:00:00"}`, http.StatusBadRequest},
		{"missing end date", `{"name":"Lease","start_date":"2026-01-01 00:00:00"}`, http.StatusBadRequest},
		{"invalid json", `{`, http.StatusBadRequest},
		{"valid", `{"name":"Lease","start_date":"2026-01-01 00:00:00","end_date":"2026-12-31 00:00:00"}`, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created = false
			w := serveAs(t, h, 1, "POST", "/api/contracts", tt.body)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedStatus != http.StatusCreated && created {
				t.Error("Store must not be touched on validation failure")
			}
		})
	}
}

func TestUpdateContractPartialPatch(t *testing.T) {
	var got contract.UpdateRequest
	h := &APIHandler{contracts: &mockContractStore{
		UpdateFunc: func(ctx context.Context, id, userID int64, req contract.UpdateRequest) (*contract.Contract, error) {
			got = req
			return &contract.Contract{ID: id, Name: "Lease", Status: *req.Status, EndDate: "2026-12-31 00:00:00"}, nil
		},
	}}

	w := serveAs(t, h, 1, "PUT", "/api/contracts/3", `{"status":"closed"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if got.Status == nil || *got.Status != "closed" {
		t.Error("Expected status patch to reach the store")
	}
	if got.Name != nil || got.Description != nil || got.StartDate != nil || got.EndDate != nil {
		t.Error("Fields absent from the patch must stay nil")
	}
}

func TestDispatchNotificationStatusMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"not found", contract.ErrNotFound, http.StatusNotFound},
		{"validation", &notification.ValidationError{Reason: "invalid email: x"}, http.StatusBadRequest},
		{"delivery failed", notification.ErrDeliveryFailed, http.StatusInternalServerError},
		{"success", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &APIHandler{notifier: &mockNotifier{
				DispatchFunc: func(ctx context.Context, userID, contractID int64, req notification.DispatchRequest) (int, error) {
					if tt.err != nil {
						return 0, tt.err
					}
					return 2, nil
				},
			}}
			body := `{"kind":"weekly-reminder","recipients":"a@b.com,c@d.com"}`
			w := serveAs(t, h, 1, "POST", "/api/contracts/7/notifications", body)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.err == nil && !strings.Contains(w.Body.String(), `"sent":2`) {
				t.Errorf("Expected sent count in body, got %s", w.Body.String())
			}
		})
	}
}

func TestDashboardStats(t *testing.T) {
	h := &APIHandler{contracts: &mockContractStore{
		MockStatsStore: &contract.MockStatsStore{
			CountByUserFunc: func(ctx context.Context, userID int64) (int, error) { return 4, nil },
			CountActiveByUserFunc: func(ctx context.Context, userID int64) (int, error) {
				return 3, nil
			},
			CountExpiringBetweenFunc: func(ctx context.Context, userID int64, from, to time.Time) (int, error) {
				return 1, nil
			},
			CountOverdueFunc: func(ctx context.Context, userID int64, now time.Time) (int, error) {
				return 1, nil
			},
			RecentByUserFunc: func(ctx context.Context, userID int64, limit int) ([]*contract.Contract, error) {
				return []*contract.Contract{{ID: 9, Name: "Lease", EndDate: "2026-12-31 00:00:00"}}, nil
			},
		},
	}}

	w := serveAs(t, h, 1, "GET", "/api/dashboard/stats", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, want := range []string{`"total_contracts":4`, `"active_contracts":3`, `"expiring_7_days":1`, `"overdue_contracts":1`, `"Lease"`} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("Expected body to contain %s, got %s", want, w.Body.String())
		}
	}
}

func TestSystemReset(t *testing.T) {
	resetCalled := false
	h := &APIHandler{
		resetCode: "19192425",
		reset: func(ctx context.Context) error {
			resetCalled = true
			return nil
		},
	}

	w := serveAs(t, h, 1, "POST", "/api/system/reset", `{"code":"wrong"}`)
	if w.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for wrong code, got %d", w.Code)
	}
	if resetCalled {
		t.Fatal("Reset must not run with a wrong code")
	}

	w = serveAs(t, h, 1, "POST", "/api/system/reset", `{"code":"19192425"}`)
	if w.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !resetCalled {
		t.Error("Expected reset to run")
	}
}

func TestLogin(t *testing.T) {
	h := &APIHandler{auth: &mockAuth{
		LoginFunc: func(ctx context.Context, email, password string) (*auth.User, string, error) {
			if email == "admin@contractplus.io" && password == "admin123" {
				return &auth.User{ID: 1, Email: email}, "signed-token", nil
			}
			return nil, "", auth.ErrInvalidCredentials
		},
	}}

	w := serveAs(t, h, 0, "POST", "/api/auth/login", `{"email":"admin@contractplus.io","password":"admin123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "signed-token") {
		t.Errorf("Expected token in body, got %s", w.Body.String())
	}

	w = serveAs(t, h, 0, "POST", "/api/auth/login", `{"email":"admin@contractplus.io","password":"nope"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", w.Code)
	}

	w = serveAs(t, h, 0, "POST", "/api/auth/login", `{"email":""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", w.Code)
	}
}
