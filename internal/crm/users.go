package crm

import (
	"context"
	"fmt"

	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/internal/validation"
)

type CreateUserInput struct {
	ClerkID   string          `json:"clerk_id"`
	AgencyID  uint            `json:"agency_id"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role"`
	AvatarURL *string         `json:"avatar_url"`
}

func (in CreateUserInput) Validate() map[string]string {
	errs := make(map[string]string)
	checkRequired(errs, "clerk_id", "Identity reference", in.ClerkID)
	checkID(errs, "agency_id", in.AgencyID)
	if !validation.IsValidEmail(in.Email) {
		errs["email"] = "Invalid email format"
	}
	checkRequired(errs, "first_name", "First name", in.FirstName)
	checkRequired(errs, "last_name", "Last name", in.LastName)
	if !in.Role.Valid() {
		errs["role"] = "Role must be one of super-admin, agency-owner, staff, client"
	}
	checkURL(errs, "avatar_url", in.AvatarURL)
	return errs
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	const op = "create user"
	if errs := in.Validate(); len(errs) > 0 {
		return nil, s.invalid(ctx, op, errs, "agency_id", in.AgencyID)
	}
	if err := s.verifyReferences(ctx, in.AgencyID, agencyRef(in.AgencyID)); err != nil {
		return nil, s.fail(ctx, op, err, "agency_id", in.AgencyID)
	}

	now := s.now()
	user := models.User{
		Base:      models.Base{CreatedAt: now, UpdatedAt: now},
		ClerkID:   in.ClerkID,
		AgencyID:  in.AgencyID,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      in.Role,
		AvatarURL: nilIfEmpty(in.AvatarURL),
		IsActive:  true,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, s.fail(ctx, op, storeErr(op, err), "agency_id", in.AgencyID)
	}
	return &user, nil
}

func (s *Service) GetUsersByAgency(ctx context.Context, agencyID uint) ([]models.User, error) {
	const op = "get users by agency"
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, s.fail(ctx, op, fmt.Errorf("%s: %w", op, err), "agency_id", agencyID)
	}
	return orEmpty(users), nil
}
