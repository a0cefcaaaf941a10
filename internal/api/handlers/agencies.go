package handlers

import (
	"net/http"

	"github.com/hugh/agencyhub/internal/crm"
)

type AgencyHandler struct {
	repo crm.AgencyRepository
}

func NewAgencyHandler(repo crm.AgencyRepository) *AgencyHandler {
	return &AgencyHandler{repo: repo}
}

// Create handles POST /rpc/createAgency
func (h *AgencyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in crm.CreateAgencyInput
	if !decodeJSON(w, r, &in) {
		return
	}

	agency, err := h.repo.CreateAgency(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agency)
}

// List handles GET /rpc/getAgencies
func (h *AgencyHandler) List(w http.ResponseWriter, r *http.Request) {
	agencies, err := h.repo.GetAgencies(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agencies)
}

// GetBySubdomain handles GET /rpc/getAgencyBySubdomain?subdomain=
// An unknown subdomain yields 200 with a null body.
func (h *AgencyHandler) GetBySubdomain(w http.ResponseWriter, r *http.Request) {
	subdomain := r.URL.Query().Get("subdomain")
	if subdomain == "" {
		badRequest(w, "Invalid subdomain", map[string]string{"subdomain": "Subdomain is required"})
		return
	}

	agency, err := h.repo.GetAgencyBySubdomain(r.Context(), subdomain)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agency)
}

// Update handles POST /rpc/updateAgency
func (h *AgencyHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in crm.UpdateAgencyInput
	if !decodeJSON(w, r, &in) {
		return
	}

	agency, err := h.repo.UpdateAgency(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agency)
}
