package crm

import (
	"context"
	"fmt"

	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/internal/validation"
	"gorm.io/datatypes"
)

type CreateLandingPageInput struct {
	AgencyID        uint           `json:"agency_id"`
	Title           string         `json:"title"`
	Slug            string         `json:"slug"`
	TemplateID      string         `json:"template_id"`
	Content         map[string]any `json:"content"`
	CustomDomain    *string        `json:"custom_domain"`
	MetaTitle       *string        `json:"meta_title"`
	MetaDescription *string        `json:"meta_description"`
	CreatedBy       uint           `json:"created_by"`
}

func (in CreateLandingPageInput) Validate() map[string]string {
	errs := make(map[string]string)
	checkID(errs, "agency_id", in.AgencyID)
	checkRequired(errs, "title", "Title", in.Title)
	if !validation.IsValidSlug(in.Slug) {
		errs["slug"] = "Slug may only contain lowercase letters, digits and hyphens"
	}
	checkRequired(errs, "template_id", "Template", in.TemplateID)
	checkID(errs, "created_by", in.CreatedBy)
	return errs
}

// CreateLandingPage stores a draft page. Agency and creator are enforced by
// foreign keys only, and a taken slug is reported as ErrConstraintViolation.
func (s *Service) CreateLandingPage(ctx context.Context, in CreateLandingPageInput) (*models.LandingPage, error) {
	const op = "create landing page"
	if errs := in.Validate(); len(errs) > 0 {
		return nil, s.invalid(ctx, op, errs, "agency_id", in.AgencyID, "slug", in.Slug)
	}

	content := datatypes.JSONMap(in.Content)
	if content == nil {
		content = datatypes.JSONMap{}
	}

	now := s.now()
	page := models.LandingPage{
		Base:            models.Base{CreatedAt: now, UpdatedAt: now},
		AgencyID:        in.AgencyID,
		Title:           in.Title,
		Slug:            in.Slug,
		TemplateID:      in.TemplateID,
		Content:         content,
		Status:          models.LandingPageDraft,
		CustomDomain:    nilIfEmpty(in.CustomDomain),
		MetaTitle:       nilIfEmpty(in.MetaTitle),
		MetaDescription: nilIfEmpty(in.MetaDescription),
		CreatedBy:       in.CreatedBy,
	}
	if err := s.db.WithContext(ctx).Create(&page).Error; err != nil {
		return nil, s.fail(ctx, op, storeErr(op, err), "agency_id", in.AgencyID, "slug", in.Slug)
	}

	s.logger.DebugContext(ctx, "landing page created", "landing_page_id", page.ID, "slug", page.Slug)
	return &page, nil
}

func (s *Service) GetLandingPagesByAgency(ctx context.Context, agencyID uint) ([]models.LandingPage, error) {
	const op = "get landing pages by agency"
	var pages []models.LandingPage
	err := s.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("id").
		Find(&pages).Error
	if err != nil {
		return nil, s.fail(ctx, op, fmt.Errorf("%s: %w", op, err), "agency_id", agencyID)
	}
	return orEmpty(pages), nil
}

// PublishLandingPage marks the page published. Publishing again moves
// published_at forward; every other column is left alone.
func (s *Service) PublishLandingPage(ctx context.Context, id uint) (*models.LandingPage, error) {
	const op = "publish landing page"
	if id == 0 {
		return nil, s.invalid(ctx, op, map[string]string{"id": "Must be a positive integer"})
	}

	now := s.now()
	updates := map[string]any{
		"status":       models.LandingPagePublished,
		"published_at": now,
		"updated_at":   now,
	}
	if err := s.updateByID(ctx, &models.LandingPage{}, "landing page", id, updates); err != nil {
		return nil, s.fail(ctx, op, err, "landing_page_id", id)
	}

	var page models.LandingPage
	if err := s.reload(ctx, &page, "landing page", id); err != nil {
		return nil, s.fail(ctx, op, err, "landing_page_id", id)
	}

	s.logger.InfoContext(ctx, "landing page published", "landing_page_id", id, "slug", page.Slug)
	return &page, nil
}
