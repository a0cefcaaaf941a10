package crm

import (
	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/internal/validation"
)

func checkRequired(errs map[string]string, field, label, value string) {
	if value == "" {
		errs[field] = label + " is required"
	}
}

// notNull records an error when a column that cannot be cleared was sent
// as null, and reports whether the value is usable.
func notNull(errs map[string]string, field, label string, null bool) bool {
	if null {
		errs[field] = label + " cannot be null"
		return false
	}
	return true
}

func checkID(errs map[string]string, field string, id uint) {
	if id == 0 {
		errs[field] = "Must be a positive integer"
	}
}

func checkOptionalID(errs map[string]string, field string, id *uint) {
	if id != nil && *id == 0 {
		errs[field] = "Must be a positive integer"
	}
}

func checkURL(errs map[string]string, field string, v *string) {
	if v != nil && !validation.IsValidURL(*v) {
		errs[field] = "Must be a valid URL"
	}
}

func checkEmail(errs map[string]string, field string, v *string) {
	if v != nil && !validation.IsValidEmail(*v) {
		errs[field] = "Invalid email format"
	}
}

func checkColor(errs map[string]string, field string, v *string) {
	if v != nil && !validation.IsValidHexColor(*v) {
		errs[field] = "Must be a hex color like #1A2B3C"
	}
}

func checkPort(errs map[string]string, field string, v *int) {
	if v != nil && !validation.IsValidPort(*v) {
		errs[field] = "Port must be between 1 and 65535"
	}
}

func checkProbability(errs map[string]string, p int) {
	if p < 0 || p > 100 {
		errs["probability"] = "Probability must be between 0 and 100"
	}
}

func checkValue(errs map[string]string, v *float64) {
	if v == nil {
		return
	}
	switch {
	case *v <= 0:
		errs["value"] = "Value must be positive"
	case !models.NewMoney(*v).Fits():
		errs["value"] = "Value must be less than " + models.MaxMoney.String()
	}
}

// nilIfEmpty stores optional text that arrived as "" as NULL.
func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
