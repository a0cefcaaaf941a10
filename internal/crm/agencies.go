package crm

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/internal/validation"
	"github.com/hugh/agencyhub/pkg/optional"
	"gorm.io/gorm"
)

type CreateAgencyInput struct {
	Name           string  `json:"name"`
	Subdomain      string  `json:"subdomain"`
	LogoURL        *string `json:"logo_url"`
	FaviconURL     *string `json:"favicon_url"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`
	SMTPHost       *string `json:"smtp_host"`
	SMTPPort       *int    `json:"smtp_port"`
	SMTPUsername   *string `json:"smtp_username"`
	SMTPPassword   *string `json:"smtp_password"`
	CustomDomain   *string `json:"custom_domain"`
}

func (in CreateAgencyInput) Validate() map[string]string {
	errs := make(map[string]string)
	checkRequired(errs, "name", "Name", in.Name)
	if !validation.IsValidSlug(in.Subdomain) {
		errs["subdomain"] = "Subdomain may only contain lowercase letters, digits and hyphens"
	}
	checkURL(errs, "logo_url", in.LogoURL)
	checkURL(errs, "favicon_url", in.FaviconURL)
	checkColor(errs, "primary_color", in.PrimaryColor)
	checkColor(errs, "secondary_color", in.SecondaryColor)
	checkPort(errs, "smtp_port", in.SMTPPort)
	return errs
}

// UpdateAgencyInput changes only the fields that are set. The subdomain is
// fixed at creation and cannot be changed here.
type UpdateAgencyInput struct {
	ID             uint                    `json:"id"`
	Name           optional.Field[string]  `json:"name"`
	LogoURL        optional.Field[*string] `json:"logo_url"`
	FaviconURL     optional.Field[*string] `json:"favicon_url"`
	PrimaryColor   optional.Field[*string] `json:"primary_color"`
	SecondaryColor optional.Field[*string] `json:"secondary_color"`
	SMTPHost       optional.Field[*string] `json:"smtp_host"`
	SMTPPort       optional.Field[*int]    `json:"smtp_port"`
	SMTPUsername   optional.Field[*string] `json:"smtp_username"`
	SMTPPassword   optional.Field[*string] `json:"smtp_password"`
	CustomDomain   optional.Field[*string] `json:"custom_domain"`
}

func (in UpdateAgencyInput) Validate() map[string]string {
	errs := make(map[string]string)
	checkID(errs, "id", in.ID)
	if name, ok := in.Name.Get(); ok && notNull(errs, "name", "Name", in.Name.IsNull()) {
		checkRequired(errs, "name", "Name", name)
	}
	checkURL(errs, "logo_url", in.LogoURL.Value())
	checkURL(errs, "favicon_url", in.FaviconURL.Value())
	checkColor(errs, "primary_color", in.PrimaryColor.Value())
	checkColor(errs, "secondary_color", in.SecondaryColor.Value())
	checkPort(errs, "smtp_port", in.SMTPPort.Value())
	return errs
}

func (s *Service) CreateAgency(ctx context.Context, in CreateAgencyInput) (*models.Agency, error) {
	const op = "create agency"
	if errs := in.Validate(); len(errs) > 0 {
		return nil, s.invalid(ctx, op, errs, "subdomain", in.Subdomain)
	}

	password := nilIfEmpty(in.SMTPPassword)
	sealed, err := s.seal(password)
	if err != nil {
		return nil, s.fail(ctx, op, err, "subdomain", in.Subdomain)
	}

	now := s.now()
	agency := models.Agency{
		Base:           models.Base{CreatedAt: now, UpdatedAt: now},
		Name:           in.Name,
		Subdomain:      in.Subdomain,
		LogoURL:        nilIfEmpty(in.LogoURL),
		FaviconURL:     nilIfEmpty(in.FaviconURL),
		PrimaryColor:   nilIfEmpty(in.PrimaryColor),
		SecondaryColor: nilIfEmpty(in.SecondaryColor),
		SMTPHost:       nilIfEmpty(in.SMTPHost),
		SMTPPort:       in.SMTPPort,
		SMTPUsername:   nilIfEmpty(in.SMTPUsername),
		SMTPPassword:   sealed,
		CustomDomain:   nilIfEmpty(in.CustomDomain),
	}
	if err := s.db.WithContext(ctx).Create(&agency).Error; err != nil {
		return nil, s.fail(ctx, op, storeErr(op, err), "subdomain", in.Subdomain)
	}

	agency.SMTPPassword = password
	s.logger.InfoContext(ctx, "agency created", "agency_id", agency.ID, "subdomain", agency.Subdomain)
	return &agency, nil
}

func (s *Service) GetAgencies(ctx context.Context) ([]models.Agency, error) {
	const op = "get agencies"
	var agencies []models.Agency
	if err := s.db.WithContext(ctx).Order("id").Find(&agencies).Error; err != nil {
		return nil, s.fail(ctx, op, fmt.Errorf("%s: %w", op, err))
	}
	for i := range agencies {
		if err := s.open(&agencies[i]); err != nil {
			return nil, s.fail(ctx, op, err, "agency_id", agencies[i].ID)
		}
	}
	return orEmpty(agencies), nil
}

// GetAgencyBySubdomain returns nil without an error when no agency uses the
// subdomain.
func (s *Service) GetAgencyBySubdomain(ctx context.Context, subdomain string) (*models.Agency, error) {
	const op = "get agency by subdomain"
	var agency models.Agency
	err := s.db.WithContext(ctx).Where("subdomain = ?", subdomain).First(&agency).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, s.fail(ctx, op, fmt.Errorf("%s: %w", op, err), "subdomain", subdomain)
	}
	if err := s.open(&agency); err != nil {
		return nil, s.fail(ctx, op, err, "agency_id", agency.ID)
	}
	return &agency, nil
}

func (s *Service) UpdateAgency(ctx context.Context, in UpdateAgencyInput) (*models.Agency, error) {
	const op = "update agency"
	if errs := in.Validate(); len(errs) > 0 {
		return nil, s.invalid(ctx, op, errs, "agency_id", in.ID)
	}

	updates, err := s.agencyChanges(in)
	if err != nil {
		return nil, s.fail(ctx, op, err, "agency_id", in.ID)
	}
	updates["updated_at"] = s.now()

	if err := s.updateByID(ctx, &models.Agency{}, "agency", in.ID, updates); err != nil {
		return nil, s.fail(ctx, op, err, "agency_id", in.ID)
	}

	var agency models.Agency
	if err := s.reload(ctx, &agency, "agency", in.ID); err != nil {
		return nil, s.fail(ctx, op, err, "agency_id", in.ID)
	}
	if err := s.open(&agency); err != nil {
		return nil, s.fail(ctx, op, err, "agency_id", in.ID)
	}
	return &agency, nil
}

func (s *Service) agencyChanges(in UpdateAgencyInput) (map[string]any, error) {
	updates := make(map[string]any)
	if v, ok := in.Name.Get(); ok {
		updates["name"] = v
	}
	if v, ok := in.LogoURL.Get(); ok {
		updates["logo_url"] = v
	}
	if v, ok := in.FaviconURL.Get(); ok {
		updates["favicon_url"] = v
	}
	if v, ok := in.PrimaryColor.Get(); ok {
		updates["primary_color"] = v
	}
	if v, ok := in.SecondaryColor.Get(); ok {
		updates["secondary_color"] = v
	}
	if v, ok := in.SMTPHost.Get(); ok {
		updates["smtp_host"] = v
	}
	if v, ok := in.SMTPPort.Get(); ok {
		updates["smtp_port"] = v
	}
	if v, ok := in.SMTPUsername.Get(); ok {
		updates["smtp_username"] = v
	}
	if v, ok := in.SMTPPassword.Get(); ok {
		sealed, err := s.seal(v)
		if err != nil {
			return nil, err
		}
		updates["smtp_password"] = sealed
	}
	if v, ok := in.CustomDomain.Get(); ok {
		updates["custom_domain"] = v
	}
	return updates, nil
}

// seal encrypts an SMTP password for storage when an encryptor is configured.
func (s *Service) seal(password *string) (*string, error) {
	if password == nil || s.encryptor == nil {
		return password, nil
	}
	ciphertext, err := s.encryptor.EncryptString(*password)
	if err != nil {
		return nil, fmt.Errorf("encrypting smtp password: %w", err)
	}
	return &ciphertext, nil
}

// open reverses seal in place.
func (s *Service) open(agency *models.Agency) error {
	if agency.SMTPPassword == nil || s.encryptor == nil {
		return nil
	}
	plaintext, err := s.encryptor.DecryptString(*agency.SMTPPassword)
	if err != nil {
		return fmt.Errorf("decrypting smtp password for agency %d: %w", agency.ID, err)
	}
	agency.SMTPPassword = &plaintext
	return nil
}
