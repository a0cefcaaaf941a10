package database_test

import (
	"testing"

	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoMigrate_CreatesSchema(t *testing.T) {
	db := testutil.SetupTestDB(t)

	for _, model := range []any{
		&models.Agency{},
		&models.User{},
		&models.Contact{},
		&models.Deal{},
		&models.LandingPage{},
		&models.ContactInteraction{},
	} {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestAutoMigrate_EnforcesUniqueSubdomain(t *testing.T) {
	db := testutil.SetupTestDB(t)

	first := models.Agency{Name: "Acme", Subdomain: "acme"}
	require.NoError(t, db.Create(&first).Error)

	second := models.Agency{Name: "Other", Subdomain: "acme"}
	err := db.Create(&second).Error
	require.Error(t, err)
}
