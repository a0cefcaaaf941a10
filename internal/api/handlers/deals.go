package handlers

import (
	"net/http"

	"github.com/hugh/agencyhub/internal/crm"
)

type DealHandler struct {
	repo crm.DealRepository
}

func NewDealHandler(repo crm.DealRepository) *DealHandler {
	return &DealHandler{repo: repo}
}

// Create handles POST /rpc/createDeal
func (h *DealHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in crm.CreateDealInput
	if !decodeJSON(w, r, &in) {
		return
	}

	deal, err := h.repo.CreateDeal(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

// ListByAgency handles GET /rpc/getDealsByAgency?agency_id=
func (h *DealHandler) ListByAgency(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := uintParam(w, r, "agency_id")
	if !ok {
		return
	}

	deals, err := h.repo.GetDealsByAgency(r.Context(), agencyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deals)
}

// Update handles POST /rpc/updateDeal
func (h *DealHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in crm.UpdateDealInput
	if !decodeJSON(w, r, &in) {
		return
	}

	deal, err := h.repo.UpdateDeal(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deal)
}

// Search handles GET /rpc/searchDeals?agency_id=&query=
func (h *DealHandler) Search(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := uintParam(w, r, "agency_id")
	if !ok {
		return
	}

	deals, err := h.repo.SearchDeals(r.Context(), agencyID, r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, deals)
}
