package crm

import (
	"context"
	"fmt"
	"strings"

	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/internal/validation"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns free text into a LIKE pattern that matches it as a
// literal substring. Control characters are dropped first; Postgres rejects
// NUL in text parameters.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(validation.SanitizeString(query)) + "%"
}

// anyColumnContains builds "(LOWER(a) LIKE LOWER(?) ESCAPE '\' OR ...)" with
// one bound argument per column.
func anyColumnContains(columns []string, pattern string) (string, []any) {
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, col := range columns {
		clauses[i] = "LOWER(" + col + `) LIKE LOWER(?) ESCAPE '\'`
		args[i] = pattern
	}
	return "(" + strings.Join(clauses, " OR ") + ")", args
}

var contactSearchColumns = []string{
	"first_name", "last_name", "email", "phone", "company", "position",
}

var dealSearchColumns = []string{
	"deals.title", "deals.description",
	"contacts.first_name", "contacts.last_name", "contacts.company",
}

// SearchContacts matches the query as a case-insensitive substring of any
// contact text column. An empty query matches every contact in the agency.
func (s *Service) SearchContacts(ctx context.Context, agencyID uint, query string) ([]models.Contact, error) {
	const op = "search contacts"
	clause, args := anyColumnContains(contactSearchColumns, containsPattern(query))

	var contacts []models.Contact
	err := s.db.WithContext(ctx).
		Where("agency_id = ?", agencyID).
		Where(clause, args...).
		Order("id").
		Find(&contacts).Error
	if err != nil {
		return nil, s.fail(ctx, op, fmt.Errorf("%s: %w", op, err), "agency_id", agencyID)
	}
	return orEmpty(contacts), nil
}

// SearchDeals matches the query against the deal's own text and its
// contact's name and company. A blank query returns no deals.
func (s *Service) SearchDeals(ctx context.Context, agencyID uint, query string) ([]models.Deal, error) {
	const op = "search deals"
	if validation.IsBlank(query) {
		return []models.Deal{}, nil
	}
	clause, args := anyColumnContains(dealSearchColumns, containsPattern(strings.TrimSpace(query)))

	var deals []models.Deal
	err := s.db.WithContext(ctx).
		Select("deals.*").
		Joins("JOIN contacts ON contacts.id = deals.contact_id").
		Where("deals.agency_id = ?", agencyID).
		Where(clause, args...).
		Order("deals.id").
		Find(&deals).Error
	if err != nil {
		return nil, s.fail(ctx, op, fmt.Errorf("%s: %w", op, err), "agency_id", agencyID)
	}
	return orEmpty(deals), nil
}
