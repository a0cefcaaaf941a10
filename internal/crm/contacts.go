package crm

import (
	"context"
	"fmt"

	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/pkg/optional"
	"gorm.io/datatypes"
)

type CreateContactInput struct {
	AgencyID     uint           `json:"agency_id"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        *string        `json:"email"`
	Phone        *string        `json:"phone"`
	Company      *string        `json:"company"`
	Position     *string        `json:"position"`
	Tags         []string       `json:"tags"`
	CustomFields map[string]any `json:"custom_fields"`
	CreatedBy    uint           `json:"created_by"`
}

func (in CreateContactInput) Validate() map[string]string {
	errs := make(map[string]string)
	checkID(errs, "agency_id", in.AgencyID)
	checkRequired(errs, "first_name", "First name", in.FirstName)
	checkRequired(errs, "last_name", "Last name", in.LastName)
	checkEmail(errs, "email", in.Email)
	checkID(errs, "created_by", in.CreatedBy)
	return errs
}

type UpdateContactInput struct {
	ID           uint                           `json:"id"`
	FirstName    optional.Field[string]         `json:"first_name"`
	LastName     optional.Field[string]         `json:"last_name"`
	Email        optional.Field[*string]        `json:"email"`
	Phone        optional.Field[*string]        `json:"phone"`
	Company      optional.Field[*string]        `json:"company"`
	Position     optional.Field[*string]        `json:"position"`
	Tags         optional.Field[[]string]       `json:"tags"`
	CustomFields optional.Field[map[string]any] `json:"custom_fields"`
}

func (in UpdateContactInput) Validate() map[string]string {
	errs := make(map[string]string)
	checkID(errs, "id", in.ID)
	if v, ok := in.FirstName.Get(); ok && notNull(errs, "first_name", "First name", in.FirstName.IsNull()) {
		checkRequired(errs, "first_name", "First name", v)
	}
	if v, ok := in.LastName.Get(); ok && notNull(errs, "last_name", "Last name", in.LastName.IsNull()) {
		checkRequired(errs, "last_name", "Last name", v)
	}
	checkEmail(errs, "email", in.Email.Value())
	if v, ok := in.Tags.Get(); ok && v == nil {
		errs["tags"] = "Tags must be a list"
	}
	if v, ok := in.CustomFields.Get(); ok && v == nil {
		errs["custom_fields"] = "Custom fields must be an object"
	}
	return errs
}

func (in UpdateContactInput) changes() map[string]any {
	updates := make(map[string]any)
	if v, ok := in.FirstName.Get(); ok {
		updates["first_name"] = v
	}
	if v, ok := in.LastName.Get(); ok {
		updates["last_name"] = v
	}
	if v, ok := in.Email.Get(); ok {
		updates["email"] = v
	}
	if v, ok := in.Phone.Get(); ok {
		updates["phone"] = v
	}
	if v, ok := in.Company.Get(); ok {
		updates["company"] = v
	}
	if v, ok := in.Position.Get(); ok {
		updates["position"] = v
	}
	if v, ok := in.Tags.Get(); ok {
		updates["tags"] = datatypes.JSONSlice[string](v)
	}
	if v, ok := in.CustomFields.Get(); ok {
		updates["custom_fields"] = datatypes.JSONMap(v)
	}
	return updates
}

// CreateContact checks that the agency exists and that the creator is one of
// its users before inserting.
func (s *Service) CreateContact(ctx context.Context, in CreateContactInput) (*models.Contact, error) {
	const op = "create contact"
	if errs := in.Validate(); len(errs) > 0 {
		return nil, s.invalid(ctx, op, errs, "agency_id", in.AgencyID)
	}
	err := s.verifyReferences(ctx, in.AgencyID,
		agencyRef(in.AgencyID),
		userRef("user", in.CreatedBy),
	)
	if err != nil {
		return nil, s.fail(ctx, op, err, "agency_id", in.AgencyID)
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	fields := in.CustomFields
	if fields == nil {
		fields = map[string]any{}
	}

	now := s.now()
	contact := models.Contact{
		Base:         models.Base{CreatedAt: now, UpdatedAt: now},
		AgencyID:     in.AgencyID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        nilIfEmpty(in.Email),
		Phone:        nilIfEmpty(in.Phone),
		Company:      nilIfEmpty(in.Company),
		Position:     nilIfEmpty(in.Position),
		Tags:         datatypes.JSONSlice[string](tags),
		CustomFields: datatypes.JSONMap(fields),
		CreatedBy:    in.CreatedBy,
	}
	if err := s.db.WithContext(ctx).Create(&contact).Error; err != nil {
		return nil, s.fail(ctx, op, storeErr(op, err), "agency_id", in.AgencyID)
	}
	return &contact, nil
}

func (s *Service) GetContactsByAgency(ctx context.Context, agencyID uint) ([]models.Contact, error) {
	const op = "get contacts by agency"
	var contacts []models.Contact
	err := s.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("id").
		Find(&contacts).Error
	if err != nil {
		return nil, s.fail(ctx, op, fmt.Errorf("%s: %w", op, err), "agency_id", agencyID)
	}
	return orEmpty(contacts), nil
}

func (s *Service) UpdateContact(ctx context.Context, in UpdateContactInput) (*models.Contact, error) {
	const op = "update contact"
	if errs := in.Validate(); len(errs) > 0 {
		return nil, s.invalid(ctx, op, errs, "contact_id", in.ID)
	}

	updates := in.changes()
	updates["updated_at"] = s.now()
	if err := s.updateByID(ctx, &models.Contact{}, "contact", in.ID, updates); err != nil {
		return nil, s.fail(ctx, op, err, "contact_id", in.ID)
	}

	var contact models.Contact
	if err := s.reload(ctx, &contact, "contact", in.ID); err != nil {
		return nil, s.fail(ctx, op, err, "contact_id", in.ID)
	}
	return &contact, nil
}
