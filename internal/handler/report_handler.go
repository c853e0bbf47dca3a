package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"userreports/internal/model"
	"userreports/internal/repository"
)

// defaultTopCustomersLimit applies when the limit query parameter is absent.
const defaultTopCustomersLimit = 10

// ReportStore is the reporting surface the report handlers need.
type ReportStore interface {
	UserReport(ctx context.Context, userID int64) (*model.UserReport, error)
	TopCustomers(ctx context.Context, limit int) ([]model.UserReport, error)
	DepartmentSummary(ctx context.Context) ([]model.DepartmentSummary, error)
	BulkUpdateDepartmentStatus(ctx context.Context, department string, isActive bool) (*model.BulkUpdateResult, error)
}

// ReportHandler serves the /reports endpoints.
type ReportHandler struct {
	store ReportStore
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(store ReportStore) *ReportHandler {
	return &ReportHandler{store: store}
}

// Register mounts the report routes on mux.
func (h *ReportHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /reports/user/{userId}", h.UserReport)
	mux.HandleFunc("GET /reports/top-customers", h.TopCustomers)
	mux.HandleFunc("GET /reports/department-summary", h.DepartmentSummary)
	mux.HandleFunc("POST /reports/bulk-update-status", h.BulkUpdateStatus)
}

// UserReport returns the order aggregate for one active user, 404 otherwise.
func (h *ReportHandler) UserReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	report, err := h.store.UserReport(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(w, http.StatusNotFound, "no report for user")
			return
		}
		h.storeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// TopCustomers returns the highest-spending active users. limit defaults to
// 10; a non-positive limit yields an empty list.
func (h *ReportHandler) TopCustomers(w http.ResponseWriter, r *http.Request) {
	limit := defaultTopCustomersLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	customers, err := h.store.TopCustomers(r.Context(), limit)
	if err != nil {
		h.storeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, customers)
}

// DepartmentSummary returns one row per department among active users.
func (h *ReportHandler) DepartmentSummary(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.store.DepartmentSummary(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summaries)
}

// BulkUpdateStatus sets the active flag for every user in a department.
// Matching zero rows is still a 200 with an affected count of zero.
func (h *ReportHandler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	department := r.URL.Query().Get("department")
	if department == "" {
		respondError(w, http.StatusBadRequest, "department is required")
		return
	}

	isActive, err := strconv.ParseBool(r.URL.Query().Get("isActive"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "isActive must be a boolean")
		return
	}

	result, err := h.store.BulkUpdateDepartmentStatus(r.Context(), department, isActive)
	if err != nil {
		h.storeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *ReportHandler) storeError(w http.ResponseWriter, err error) {
	log.Printf("report store error: %v", err)
	respondError(w, http.StatusInternalServerError, "internal server error")
}
