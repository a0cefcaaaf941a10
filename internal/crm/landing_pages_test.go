package crm_test

import (
	"testing"

	"github.com/hugh/agencyhub/internal/crm"
	"github.com/hugh/agencyhub/internal/database"
	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLandingPage(t *testing.T) {
	ts := testutil.NewTestSetup(t)
	ctx := testutil.TestContext(t)
	agency := testutil.CreateTestAgency(t, ts.Service, "Acme")
	user := testutil.CreateTestUser(t, ts.Service, agency)

	page, err := ts.Service.CreateLandingPage(ctx, crm.CreateLandingPageInput{
		AgencyID:   agency.ID,
		Title:      "Spring Sale",
		Slug:       "spring-sale",
		TemplateID: "hero-basic",
		MetaTitle:  strPtr("Spring Sale | Acme"),
		CreatedBy:  user.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, models.LandingPageDraft, page.Status)
	assert.Nil(t, page.PublishedAt)
	assert.NotNil(t, page.Content)

	pages, err := ts.Service.GetLandingPagesByAgency(ctx, agency.ID)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Len(t, pages[0].Content, 0)
	assert.Equal(t, "Spring Sale | Acme", *pages[0].MetaTitle)
}

func TestCreateLandingPage_StoreConstraints(t *testing.T) {
	ts := testutil.NewTestSetup(t)
	ctx := testutil.TestContext(t)
	acme := testutil.CreateTestAgency(t, ts.Service, "Acme")
	other := testutil.CreateTestAgency(t, ts.Service, "Other")
	user := testutil.CreateTestUser(t, ts.Service, acme)
	otherUser := testutil.CreateTestUser(t, ts.Service, other)

	_, err := ts.Service.CreateLandingPage(ctx, crm.CreateLandingPageInput{
		AgencyID: acme.ID, Title: "A", Slug: "promo", TemplateID: "t1", CreatedBy: user.ID,
	})
	require.NoError(t, err)

	// Slugs are unique across every agency.
	_, err = ts.Service.CreateLandingPage(ctx, crm.CreateLandingPageInput{
		AgencyID: other.ID, Title: "B", Slug: "promo", TemplateID: "t1", CreatedBy: otherUser.ID,
	})
	assert.ErrorIs(t, err, crm.ErrConstraintViolation)
	assert.True(t, database.IsUniqueViolation(err))
	assert.Contains(t, err.Error(), "duplicate value")

	_, err = ts.Service.CreateLandingPage(ctx, crm.CreateLandingPageInput{
		AgencyID: 9999, Title: "C", Slug: "orphan", TemplateID: "t1", CreatedBy: user.ID,
	})
	assert.ErrorIs(t, err, crm.ErrConstraintViolation)
	assert.True(t, database.IsForeignKeyViolation(err))
	assert.Contains(t, err.Error(), "referenced record does not exist")

	_, err = ts.Service.CreateLandingPage(ctx, crm.CreateLandingPageInput{
		AgencyID: acme.ID, Title: "D", Slug: "Bad Slug", TemplateID: "t1", CreatedBy: user.ID,
	})
	var verr *crm.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slug")
}

func TestPublishLandingPage(t *testing.T) {
	ts := testutil.NewTestSetup(t)
	ctx := testutil.TestContext(t)
	agency := testutil.CreateTestAgency(t, ts.Service, "Acme")
	user := testutil.CreateTestUser(t, ts.Service, agency)

	page, err := ts.Service.CreateLandingPage(ctx, crm.CreateLandingPageInput{
		AgencyID:   agency.ID,
		Title:      "Launch",
		Slug:       "launch",
		TemplateID: "t1",
		Content:    map[string]any{"headline": "Hello"},
		CreatedBy:  user.ID,
	})
	require.NoError(t, err)

	first, err := ts.Service.PublishLandingPage(ctx, page.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LandingPagePublished, first.Status)
	require.NotNil(t, first.PublishedAt)
	assert.True(t, first.PublishedAt.Equal(first.UpdatedAt))
	assert.Equal(t, "Hello", first.Content["headline"])
	assert.Equal(t, "launch", first.Slug)

	second, err := ts.Service.PublishLandingPage(ctx, page.ID)
	require.NoError(t, err)
	require.NotNil(t, second.PublishedAt)
	assert.True(t, second.PublishedAt.After(*first.PublishedAt), "publishing again advances published_at")
	assert.Equal(t, models.LandingPagePublished, second.Status)
}

func TestPublishLandingPage_NotFound(t *testing.T) {
	ts := testutil.NewTestSetup(t)

	_, err := ts.Service.PublishLandingPage(testutil.TestContext(t), 31337)
	assert.ErrorIs(t, err, crm.ErrNotFound)
}
