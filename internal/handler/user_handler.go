package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"userreports/internal/model"
	"userreports/internal/repository"
)

// UserStore is the persistence surface the user handlers need.
type UserStore interface {
	ListActive(ctx context.Context) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id int64, user *model.User) (*model.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// UserHandler serves the /users endpoints.
type UserHandler struct {
	store UserStore
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(store UserStore) *UserHandler {
	return &UserHandler{store: store}
}

// Register mounts the user routes on mux.
func (h *UserHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /users", h.List)
	mux.HandleFunc("GET /users/{id}", h.Get)
	mux.HandleFunc("POST /users", h.Create)
	mux.HandleFunc("PUT /users/{id}", h.Update)
	mux.HandleFunc("DELETE /users/{id}", h.Delete)
}

// List returns all active users, without their orders.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListActive(r.Context())
	if err != nil {
		h.storeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// Get returns one user with its orders.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	user, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.storeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Create stores a new user. The id and creation timestamp are assigned
// server-side; anything the caller sends for them is ignored.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateUser(&user); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if err := h.store.Create(r.Context(), &user); err != nil {
		h.storeError(w, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/users/%d", user.ID))
	respondJSON(w, http.StatusCreated, user)
}

// Update replaces the mutable fields of an existing user.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var user model.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := validateUser(&user); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.store.Update(r.Context(), id, &user)
	if err != nil {
		h.storeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete removes a user. Owned orders are removed with it.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	deleted, err := h.store.Delete(r.Context(), id)
	if err != nil {
		h.storeError(w, err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, repository.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, "email already in use")
	default:
		log.Printf("user store error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func validateUser(u *model.User) string {
	switch {
	case u.FirstName == "":
		return "first_name is required"
	case u.LastName == "":
		return "last_name is required"
	case u.Email == "":
		return "email is required"
	}
	return ""
}

// pathID parses an integer path segment, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
