package handlers

import (
	"net/http"

	"github.com/hugh/agencyhub/internal/crm"
)

type ContactHandler struct {
	repo crm.ContactRepository
}

func NewContactHandler(repo crm.ContactRepository) *ContactHandler {
	return &ContactHandler{repo: repo}
}

// Create handles POST /rpc/createContact
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in crm.CreateContactInput
	if !decodeJSON(w, r, &in) {
		return
	}

	contact, err := h.repo.CreateContact(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

// ListByAgency handles GET /rpc/getContactsByAgency?agency_id=
func (h *ContactHandler) ListByAgency(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := uintParam(w, r, "agency_id")
	if !ok {
		return
	}

	contacts, err := h.repo.GetContactsByAgency(r.Context(), agencyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

// Update handles POST /rpc/updateContact
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var in crm.UpdateContactInput
	if !decodeJSON(w, r, &in) {
		return
	}

	contact, err := h.repo.UpdateContact(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

// Search handles GET /rpc/searchContacts?agency_id=&query=
func (h *ContactHandler) Search(w http.ResponseWriter, r *http.Request) {
	agencyID, ok := uintParam(w, r, "agency_id")
	if !ok {
		return
	}

	contacts, err := h.repo.SearchContacts(r.Context(), agencyID, r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}
