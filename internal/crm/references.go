package crm

import (
	"context"
	"fmt"

	"github.com/hugh/agencyhub/internal/database/models"
	"golang.org/x/sync/errgroup"
)

// refCheck is one row a write depends on. The owner is the agency the row
// belongs to; for an agency it is the agency itself.
type refCheck struct {
	entity string
	id     uint
	model  any

	found bool
	owner uint
}

func agencyRef(id uint) *refCheck {
	return &refCheck{entity: "agency", id: id, model: &models.Agency{}}
}

func contactRef(id uint) *refCheck {
	return &refCheck{entity: "contact", id: id, model: &models.Contact{}}
}

func userRef(entity string, id uint) *refCheck {
	return &refCheck{entity: entity, id: id, model: &models.User{}}
}

// verifyReferences reads every referenced row concurrently, then judges them
// in the order given so the first failing reference is the one reported.
func (s *Service) verifyReferences(ctx context.Context, agencyID uint, checks ...*refCheck) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, c := range checks {
		c := c
		g.Go(func() error {
			return s.lookupOwner(gctx, c)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("verifying references: %w", err)
	}

	for _, c := range checks {
		if !c.found {
			return &ReferenceError{Entity: c.entity, ID: c.id}
		}
		if c.owner != agencyID {
			return &ReferenceError{Entity: c.entity, ID: c.id, AgencyID: agencyID, Mismatch: true}
		}
	}
	return nil
}

func (s *Service) lookupOwner(ctx context.Context, c *refCheck) error {
	column := "agency_id"
	if _, ok := c.model.(*models.Agency); ok {
		column = "id"
	}

	var owners []uint
	err := s.db.WithContext(ctx).
		Model(c.model).
		Where("id = ?", c.id).
		Limit(1).
		Pluck(column, &owners).Error
	if err != nil {
		return fmt.Errorf("looking up %s %d: %w", c.entity, c.id, err)
	}
	if len(owners) > 0 {
		c.found = true
		c.owner = owners[0]
	}
	return nil
}
