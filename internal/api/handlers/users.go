package handlers

import (
	"net/http"

	"github.com/hugh/agencyhub/internal/crm"
)

type UserHandler struct {
	repo crm.UserRepository
}

func NewUserHandler(repo crm.UserRepository) *UserHandler {
	return &UserHandler{repo: repo}
}

// Create handles POST /rpc/createUser
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in crm.CreateUserInput
	if !decodeJSON(w, r, &in) {
		return
	}

	user, err := h.repo.CreateUser(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// ListByAgency handles GET /rpc/getUsersByAgency?agency_id=
func (h *UserHandler) ListByAgency(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := uintParam(w, r, "agency_id")
	if !ok {
		return
	}

	users, err := h.repo.GetUsersByAgency(r.Context(), agencyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}
