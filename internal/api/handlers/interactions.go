package handlers

import (
	"net/http"

	"github.com/hugh/agencyhub/internal/crm"
)

type InteractionHandler struct {
	repo crm.InteractionRepository
}

func NewInteractionHandler(repo crm.InteractionRepository) *InteractionHandler {
	return &InteractionHandler{repo: repo}
}

// Create handles POST /rpc/createContactInteraction
func (h *InteractionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in crm.CreateContactInteractionInput
	if !decodeJSON(w, r, &in) {
		return
	}

	interaction, err := h.repo.CreateContactInteraction(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interaction)
}

// ListByContact handles GET /rpc/getContactInteractions?contact_id=
func (h *InteractionHandler) ListByContact(w http.ResponseWriter, r *http.Request) {
	contactID, ok := uintParam(w, r, "contact_id")
	if !ok {
		return
	}

	interactions, err := h.repo.GetContactInteractions(r.Context(), contactID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}
