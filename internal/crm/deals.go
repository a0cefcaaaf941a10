package crm

import (
	"context"
	"fmt"

	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/pkg/optional"
)

type CreateDealInput struct {
	AgencyID          uint             `json:"agency_id"`
	ContactID         uint             `json:"contact_id"`
	Title             string           `json:"title"`
	Description       *string          `json:"description"`
	Value             *float64         `json:"value"`
	Stage             models.DealStage `json:"stage"`
	Probability       int              `json:"probability"`
	ExpectedCloseDate models.Date      `json:"expected_close_date"`
	AssignedTo        *uint            `json:"assigned_to"`
	CreatedBy         uint             `json:"created_by"`
}

func (in CreateDealInput) Validate() map[string]string {
	errs := make(map[string]string)
	checkID(errs, "agency_id", in.AgencyID)
	checkID(errs, "contact_id", in.ContactID)
	checkRequired(errs, "title", "Title", in.Title)
	checkValue(errs, in.Value)
	if in.Stage != "" && !in.Stage.Valid() {
		errs["stage"] = "Stage must be one of lead, qualified, proposal, won, lost"
	}
	checkProbability(errs, in.Probability)
	checkOptionalID(errs, "assigned_to", in.AssignedTo)
	checkID(errs, "created_by", in.CreatedBy)
	return errs
}

// UpdateDealInput changes only the fields that are set. References are not
// re-verified on update; foreign keys still reject rows that do not exist.
type UpdateDealInput struct {
	ID                uint                             `json:"id"`
	Title             optional.Field[string]           `json:"title"`
	Description       optional.Field[*string]          `json:"description"`
	Value             optional.Field[*float64]         `json:"value"`
	Stage             optional.Field[models.DealStage] `json:"stage"`
	Probability       optional.Field[int]              `json:"probability"`
	ExpectedCloseDate optional.Field[models.Date]      `json:"expected_close_date"`
	AssignedTo        optional.Field[*uint]            `json:"assigned_to"`
}

func (in UpdateDealInput) Validate() map[string]string {
	errs := make(map[string]string)
	checkID(errs, "id", in.ID)
	if v, ok := in.Title.Get(); ok && notNull(errs, "title", "Title", in.Title.IsNull()) {
		checkRequired(errs, "title", "Title", v)
	}
	checkValue(errs, in.Value.Value())
	if v, ok := in.Stage.Get(); ok && notNull(errs, "stage", "Stage", in.Stage.IsNull()) && !v.Valid() {
		errs["stage"] = "Stage must be one of lead, qualified, proposal, won, lost"
	}
	if v, ok := in.Probability.Get(); ok && notNull(errs, "probability", "Probability", in.Probability.IsNull()) {
		checkProbability(errs, v)
	}
	checkOptionalID(errs, "assigned_to", in.AssignedTo.Value())
	return errs
}

func (in UpdateDealInput) changes() map[string]any {
	updates := make(map[string]any)
	if v, ok := in.Title.Get(); ok {
		updates["title"] = v
	}
	if v, ok := in.Description.Get(); ok {
		updates["description"] = v
	}
	if v, ok := in.Value.Get(); ok {
		updates["value"] = models.MoneyFromPtr(v)
	}
	if v, ok := in.Stage.Get(); ok {
		updates["stage"] = v
	}
	if v, ok := in.Probability.Get(); ok {
		updates["probability"] = v
	}
	if v, ok := in.ExpectedCloseDate.Get(); ok {
		updates["expected_close_date"] = v
	}
	if v, ok := in.AssignedTo.Get(); ok {
		updates["assigned_to"] = v
	}
	return updates
}

// CreateDeal verifies the agency, contact, creator and optional assignee
// before writing. Each failed check names the offending entity and id, and
// nothing is inserted.
func (s *Service) CreateDeal(ctx context.Context, in CreateDealInput) (*models.Deal, error) {
	const op = "create deal"
	if errs := in.Validate(); len(errs) > 0 {
		return nil, s.invalid(ctx, op, errs, "agency_id", in.AgencyID)
	}

	checks := []*refCheck{
		agencyRef(in.AgencyID),
		contactRef(in.ContactID),
		userRef("user", in.CreatedBy),
	}
	if in.AssignedTo != nil {
		checks = append(checks, userRef("assigned user", *in.AssignedTo))
	}
	if err := s.verifyReferences(ctx, in.AgencyID, checks...); err != nil {
		return nil, s.fail(ctx, op, err, "agency_id", in.AgencyID, "contact_id", in.ContactID)
	}

	stage := in.Stage
	if stage == "" {
		stage = models.StageLead
	}

	now := s.now()
	deal := models.Deal{
		Base:              models.Base{CreatedAt: now, UpdatedAt: now},
		AgencyID:          in.AgencyID,
		ContactID:         in.ContactID,
		Title:             in.Title,
		Description:       nilIfEmpty(in.Description),
		Value:             models.MoneyFromPtr(in.Value),
		Stage:             stage,
		Probability:       in.Probability,
		ExpectedCloseDate: in.ExpectedCloseDate,
		AssignedTo:        in.AssignedTo,
		CreatedBy:         in.CreatedBy,
	}
	if err := s.db.WithContext(ctx).Create(&deal).Error; err != nil {
		return nil, s.fail(ctx, op, storeErr(op, err), "agency_id", in.AgencyID)
	}

	s.logger.DebugContext(ctx, "deal created", "deal_id", deal.ID, "agency_id", deal.AgencyID, "stage", deal.Stage)
	return &deal, nil
}

func (s *Service) GetDealsByAgency(ctx context.Context, agencyID uint) ([]models.Deal, error) {
	const op = "get deals by agency"
	var deals []models.Deal
	err := s.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Order("id").
		Find(&deals).Error
	if err != nil {
		return nil, s.fail(ctx, op, fmt.Errorf("%s: %w", op, err), "agency_id", agencyID)
	}
	return orEmpty(deals), nil
}

func (s *Service) UpdateDeal(ctx context.Context, in UpdateDealInput) (*models.Deal, error) {
	const op = "update deal"
	if errs := in.Validate(); len(errs) > 0 {
		return nil, s.invalid(ctx, op, errs, "deal_id", in.ID)
	}

	updates := in.changes()
	updates["updated_at"] = s.now()
	if err := s.updateByID(ctx, &models.Deal{}, "deal", in.ID, updates); err != nil {
		return nil, s.fail(ctx, op, err, "deal_id", in.ID)
	}

	var deal models.Deal
	if err := s.reload(ctx, &deal, "deal", in.ID); err != nil {
		return nil, s.fail(ctx, op, err, "deal_id", in.ID)
	}
	return &deal, nil
}
