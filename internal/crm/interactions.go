package crm

import (
	"context"
	"fmt"

	"github.com/hugh/agencyhub/internal/database/models"
)

type CreateContactInteractionInput struct {
	ContactID   uint                   `json:"contact_id"`
	AgencyID    uint                   `json:"agency_id"`
	Type        models.InteractionType `json:"type"`
	Title       string                 `json:"title"`
	Description *string                `json:"description"`
	Metadata    map[string]any         `json:"metadata"`
	CreatedBy   uint                   `json:"created_by"`
}

func (in CreateContactInteractionInput) Validate() map[string]string {
	errs := make(map[string]string)
	checkID(errs, "contact_id", in.ContactID)
	checkID(errs, "agency_id", in.AgencyID)
	if !in.Type.Valid() {
		errs["type"] = "Type must be one of email, call, meeting, note, task"
	}
	checkRequired(errs, "title", "Title", in.Title)
	checkID(errs, "created_by", in.CreatedBy)
	return errs
}

// CreateContactInteraction appends a timeline entry. The contact and the
// creator must both belong to the given agency. Metadata stays NULL unless
// the caller supplied an object.
func (s *Service) CreateContactInteraction(ctx context.Context, in CreateContactInteractionInput) (*models.ContactInteraction, error) {
	const op = "create contact interaction"
	if errs := in.Validate(); len(errs) > 0 {
		return nil, s.invalid(ctx, op, errs, "contact_id", in.ContactID)
	}

	err := s.verifyReferences(ctx, in.AgencyID,
		agencyRef(in.AgencyID),
		contactRef(in.ContactID),
		userRef("user", in.CreatedBy),
	)
	if err != nil {
		return nil, s.fail(ctx, op, err, "agency_id", in.AgencyID, "contact_id", in.ContactID)
	}

	interaction := models.ContactInteraction{
		ContactID:   in.ContactID,
		AgencyID:    in.AgencyID,
		Type:        in.Type,
		Title:       in.Title,
		Description: nilIfEmpty(in.Description),
		Metadata:    models.Document(in.Metadata),
		CreatedBy:   in.CreatedBy,
		CreatedAt:   s.now(),
	}
	if err := s.db.WithContext(ctx).Create(&interaction).Error; err != nil {
		return nil, s.fail(ctx, op, storeErr(op, err), "contact_id", in.ContactID)
	}

	s.logger.DebugContext(ctx, "interaction recorded",
		"interaction_id", interaction.ID,
		"contact_id", interaction.ContactID,
		"type", interaction.Type,
	)
	return &interaction, nil
}

// GetContactInteractions returns the contact's timeline, newest first.
func (s *Service) GetContactInteractions(ctx context.Context, contactID uint) ([]models.ContactInteraction, error) {
	const op = "get contact interactions"
	var interactions []models.ContactInteraction
	err := s.db.WithContext(ctx).
		Where("contact_id = ?", contactID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&interactions).Error
	if err != nil {
		return nil, s.fail(ctx, op, fmt.Errorf("%s: %w", op, err), "contact_id", contactID)
	}
	return orEmpty(interactions), nil
}
