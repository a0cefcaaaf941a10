package handlers

import (
	"net/http"

	"github.com/hugh/agencyhub/internal/api/dto"
	"github.com/hugh/agencyhub/internal/crm"
)

type LandingPageHandler struct {
	repo crm.LandingPageRepository
}

func NewLandingPageHandler(repo crm.LandingPageRepository) *LandingPageHandler {
	return &LandingPageHandler{repo: repo}
}

// Create handles POST /rpc/createLandingPage
func (h *LandingPageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in crm.CreateLandingPageInput
	if !decodeJSON(w, r, &in) {
		return
	}

	page, err := h.repo.CreateLandingPage(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ListByAgency handles GET /rpc/getLandingPagesByAgency?agency_id=
func (h *LandingPageHandler) ListByAgency(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := uintParam(w, r, "agency_id")
	if !ok {
		return
	}

	pages, err := h.repo.GetLandingPagesByAgency(r.Context(), agencyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

// Publish handles POST /rpc/publishLandingPage
func (h *LandingPageHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req dto.IDRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	page, err := h.repo.PublishLandingPage(r.Context(), req.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
