package crm

import (
	"context"

	"github.com/hugh/agencyhub/internal/database/models"
)

// AgencyRepository manages tenants.
type AgencyRepository interface {
	CreateAgency(ctx context.Context, in CreateAgencyInput) (*models.Agency, error)
	GetAgencies(ctx context.Context) ([]models.Agency, error)
	// GetAgencyBySubdomain returns nil, nil when no agency uses the subdomain.
	GetAgencyBySubdomain(ctx context.Context, subdomain string) (*models.Agency, error)
	UpdateAgency(ctx context.Context, in UpdateAgencyInput) (*models.Agency, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error)
	GetUsersByAgency(ctx context.Context, agencyID uint) ([]models.User, error)
}

type ContactRepository interface {
	CreateContact(ctx context.Context, in CreateContactInput) (*models.Contact, error)
	GetContactsByAgency(ctx context.Context, agencyID uint) ([]models.Contact, error)
	UpdateContact(ctx context.Context, in UpdateContactInput) (*models.Contact, error)
	SearchContacts(ctx context.Context, agencyID uint, query string) ([]models.Contact, error)
}

type DealRepository interface {
	CreateDeal(ctx context.Context, in CreateDealInput) (*models.Deal, error)
	GetDealsByAgency(ctx context.Context, agencyID uint) ([]models.Deal, error)
	UpdateDeal(ctx context.Context, in UpdateDealInput) (*models.Deal, error)
	SearchDeals(ctx context.Context, agencyID uint, query string) ([]models.Deal, error)
}

type LandingPageRepository interface {
	CreateLandingPage(ctx context.Context, in CreateLandingPageInput) (*models.LandingPage, error)
	GetLandingPagesByAgency(ctx context.Context, agencyID uint) ([]models.LandingPage, error)
	PublishLandingPage(ctx context.Context, id uint) (*models.LandingPage, error)
}

type InteractionRepository interface {
	CreateContactInteraction(ctx context.Context, in CreateContactInteractionInput) (*models.ContactInteraction, error)
	GetContactInteractions(ctx context.Context, contactID uint) ([]models.ContactInteraction, error)
}

var (
	_ AgencyRepository      = (*Service)(nil)
	_ UserRepository        = (*Service)(nil)
	_ ContactRepository     = (*Service)(nil)
	_ DealRepository        = (*Service)(nil)
	_ LandingPageRepository = (*Service)(nil)
	_ InteractionRepository = (*Service)(nil)
)
