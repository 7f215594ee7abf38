package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/sapliy/contractplus/internal/auth"
	"github.com/sapliy/contractplus/internal/contract"
	"github.com/sapliy/contractplus/internal/notification"
	"github.com/sapliy/contractplus/pkg/jsonutil"
)

// ContractStore is the contract repository surface the handlers consume.
type ContractStore interface {
	contract.StatsStore
	ListByUser(ctx context.Context, userID int64) ([]*contract.Contract, error)
	FindForUser(ctx context.Context, id, userID int64) (*contract.Contract, error)
	Create(ctx context.Context, userID int64, req contract.CreateRequest) (*contract.Contract, error)
	Update(ctx context.Context, id, userID int64, req contract.UpdateRequest) (*contract.Contract, error)
	Delete(ctx context.Context, id, userID int64) error
}

// Notifier is the notification service surface the handlers consume.
type Notifier interface {
	Dispatch(ctx context.Context, userID, contractID int64, req notification.DispatchRequest) (int, error)
	ListForUser(ctx context.Context, userID int64) ([]*notification.Notification, error)
}

// Authenticator is the auth service surface the handlers consume.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*auth.User, string, error)
	UserByID(ctx context.Context, id int64) (*auth.User, error)
}

// APIHandler wires HTTP requests to the core services.
type APIHandler struct {
	auth      Authenticator
	contracts ContractStore
	notifier  Notifier
	resetCode string
	reset     func(ctx context.Context) error
}

func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonutil.WriteErrorJSON(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Login failed")
		return
	}

	jsonutil.WriteJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  user,
	})
}

func (h *APIHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	user, err := h.auth.UserByID(r.Context(), userID)
	if errors.Is(err, auth.ErrUserNotFound) {
		jsonutil.WriteErrorJSON(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to load user")
		return
	}
	jsonutil.WriteJSON(w, http.StatusOK, user)
}

func (h *APIHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	contracts, err := h.contracts.ListByUser(r.Context(), userID)
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to list contracts")
		return
	}
	now := time.Now().UTC()
	for _, c := range contracts {
		c.Annotate(now)
	}
	if contracts == nil {
		contracts = []*contract.Contract{}
	}
	jsonutil.WriteJSON(w, http.StatusOK, map[string]any{"contracts": contracts})
}

func (h *APIHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := contractID(r)
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusBadRequest, "Invalid contract id")
		return
	}

	c, err := h.contracts.FindForUser(r.Context(), id, userID)
	if errors.Is(err, contract.ErrNotFound) {
		jsonutil.WriteErrorJSON(w, http.StatusNotFound, "Contract not found")
		return
	}
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to load contract")
		return
	}
	c.Annotate(time.Now().UTC())
	jsonutil.WriteJSON(w, http.StatusOK, c)
}

func (h *APIHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req contract.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.StartDate == "" || req.EndDate == "" {
		jsonutil.WriteErrorJSON(w, http.StatusBadRequest, "name, start_date and end_date are required")
		return
	}

	c, err := h.contracts.Create(r.Context(), userID, req)
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to create contract")
		return
	}
	c.Annotate(time.Now().UTC())
	jsonutil.WriteJSON(w, http.StatusCreated, c)
}

func (h *APIHandler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := contractID(r)
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusBadRequest, "Invalid contract id")
		return
	}

	var req contract.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	c, err := h.contracts.Update(r.Context(), id, userID, req)
	if errors.Is(err, contract.ErrNotFound) {
		jsonutil.WriteErrorJSON(w, http.StatusNotFound, "Contract not found")
		return
	}
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to update contract")
		return
	}
	c.Annotate(time.Now().UTC())
	jsonutil.WriteJSON(w, http.StatusOK, c)
}

func (h *APIHandler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := contractID(r)
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusBadRequest, "Invalid contract id")
		return
	}

	err = h.contracts.Delete(r.Context(), id, userID)
	if errors.Is(err, contract.ErrNotFound) {
		jsonutil.WriteErrorJSON(w, http.StatusNotFound, "Contract not found")
		return
	}
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to delete contract")
		return
	}
	jsonutil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Contract deleted"})
}

func (h *APIHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	notifications, err := h.notifier.ListForUser(r.Context(), userID)
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to list notifications")
		return
	}
	if notifications == nil {
		notifications = []*notification.Notification{}
	}
	jsonutil.WriteJSON(w, http.StatusOK, map[string]any{"notifications": notifications})
}

func (h *APIHandler) DispatchNotification(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, err := contractID(r)
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusBadRequest, "Invalid contract id")
		return
	}

	var req notification.DispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	sent, err := h.notifier.Dispatch(r.Context(), userID, id, req)
	if err != nil {
		var verr *notification.ValidationError
		switch {
		case errors.Is(err, contract.ErrNotFound):
			jsonutil.WriteErrorJSON(w, http.StatusNotFound, "Contract not found")
		case errors.As(err, &verr):
			jsonutil.WriteErrorJSON(w, http.StatusBadRequest, verr.Reason)
		case errors.Is(err, notification.ErrDeliveryFailed):
			jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to send notification")
		default:
			jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to dispatch notification")
		}
		return
	}

	jsonutil.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Notification sent to " + strconv.Itoa(sent) + " recipient(s)",
		"sent":    sent,
	})
}

func (h *APIHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDFrom(r)
	if !ok {
		jsonutil.WriteErrorJSON(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := contract.BuildStats(r.Context(), h.contracts, userID, time.Now().UTC())
	if err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to compute stats")
		return
	}
	if stats.Recent == nil {
		stats.Recent = []*contract.Contract{}
	}
	jsonutil.WriteJSON(w, http.StatusOK, stats)
}

// SystemReset wipes the entire database and reseeds the default admin. Gated
// by a static shared-secret code; there is no undo.
func (h *APIHandler) SystemReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Code != h.resetCode {
		jsonutil.WriteErrorJSON(w, http.StatusForbidden, "Invalid reset code")
		return
	}

	if err := h.reset(r.Context()); err != nil {
		jsonutil.WriteErrorJSON(w, http.StatusInternalServerError, "Failed to reset system")
		return
	}
	jsonutil.WriteJSON(w, http.StatusOK, map[string]string{"message": "System reset complete"})
}

func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	jsonutil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "active",
		"service": "contractplus",
		"date":    time.Now().Format(time.DateTime),
	})
}

func contractID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

func setupRoutes(h *APIHandler, tokens *auth.TokenManager) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/api/auth/login", h.Login).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()
	api.Use(requireAuth(tokens))
	api.HandleFunc("/auth/me", h.Me).Methods("GET")
	api.HandleFunc("/contracts", h.ListContracts).Methods("GET")
	api.HandleFunc("/contracts", h.CreateContract).Methods("POST")
	api.HandleFunc("/contracts/{id:[0-9]+}", h.GetContract).Methods("GET")
	api.HandleFunc("/contracts/{id:[0-9]+}", h.UpdateContract).Methods("PUT")
	api.HandleFunc("/contracts/{id:[0-9]+}", h.DeleteContract).Methods("DELETE")
	api.HandleFunc("/contracts/{id:[0-9]+}/notifications", h.DispatchNotification).Methods("POST")
	api.HandleFunc("/notifications", h.ListNotifications).Methods("GET")
	api.HandleFunc("/dashboard/stats", h.DashboardStats).Methods("GET")
	api.HandleFunc("/system/reset", h.SystemReset).Methods("POST")

	return r
}
