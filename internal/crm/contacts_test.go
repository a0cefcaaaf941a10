package crm_test

import (
	"encoding/json"
	"testing"

	"github.com/hugh/agencyhub/internal/crm"
	"github.com/hugh/agencyhub/internal/testutil"
	"github.com/hugh/agencyhub/pkg/optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateContact_Defaults(t *testing.T) {
	ts := testutil.NewTestSetup(t)
	ctx := testutil.TestContext(t)
	agency := testutil.CreateTestAgency(t, ts.Service, "Acme")
	user := testutil.CreateTestUser(t, ts.Service, agency)

	contact, err := ts.Service.CreateContact(ctx, crm.CreateContactInput{
		AgencyID:  agency.ID,
		FirstName: "Jane",
		LastName:  "Doe",
		CreatedBy: user.ID,
	})
	require.NoError(t, err)

	contacts, err := ts.Service.GetContactsByAgency(ctx, agency.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)

	stored := contacts[0]
	assert.Equal(t, contact.ID, stored.ID)
	assert.NotNil(t, stored.Tags)
	assert.Len(t, stored.Tags, 0)
	assert.NotNil(t, stored.CustomFields)
	assert.Len(t, stored.CustomFields, 0)
	assert.Nil(t, stored.Email)
}

func TestCreateContact_KeepsTagOrderAndFields(t *testing.T) {
	ts := testutil.NewTestSetup(t)
	ctx := testutil.TestContext(t)
	agency := testutil.CreateTestAgency(t, ts.Service, "Acme")
	user := testutil.CreateTestUser(t, ts.Service, agency)

	_, err := ts.Service.CreateContact(ctx, crm.CreateContactInput{
		AgencyID:     agency.ID,
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        strPtr("jane@example.com"),
		Tags:         []string{"vip", "lead", "east"},
		CustomFields: map[string]any{"source": "webinar", "score": float64(7)},
		CreatedBy:    user.ID,
	})
	require.NoError(t, err)

	contacts, err := ts.Service.GetContactsByAgency(ctx, agency.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, []string{"vip", "lead", "east"}, []string(contacts[0].Tags))
	assert.Equal(t, "webinar", contacts[0].CustomFields["source"])
	assert.Equal(t, float64(7), contacts[0].CustomFields["score"])
}

func TestCreateContact_References(t *testing.T) {
	ts := testutil.NewTestSetup(t)
	ctx := testutil.TestContext(t)
	acme := testutil.CreateTestAgency(t, ts.Service, "Acme")
	other := testutil.CreateTestAgency(t, ts.Service, "Other")
	outsider := testutil.CreateTestUser(t, ts.Service, other)
	user := testutil.CreateTestUser(t, ts.Service, acme)

	tests := []struct {
		name      string
		agencyID  uint
		createdBy uint
		wantErr   error
		wantMsg   string
	}{
		{"missing agency", 9999, user.ID, crm.ErrReferenceInvalid, "agency with id 9999 not found"},
		{"missing creator", acme.ID, 8888, crm.ErrReferenceInvalid, "user with id 8888 not found"},
		{"creator in another agency", acme.ID, outsider.ID, crm.ErrReferenceMismatch, "does not belong to agency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.Service.CreateContact(ctx, crm.CreateContactInput{
				AgencyID:  tt.agencyID,
				FirstName: "Jane",
				LastName:  "Doe",
				CreatedBy: tt.createdBy,
			})
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	contacts, err := ts.Service.GetContactsByAgency(ctx, acme.ID)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}

func TestUpdateContact_PartialFields(t *testing.T) {
	ts := testutil.NewTestSetup(t)
	ctx := testutil.TestContext(t)
	agency := testutil.CreateTestAgency(t, ts.Service, "Acme")
	user := testutil.CreateTestUser(t, ts.Service, agency)

	contact, err := ts.Service.CreateContact(ctx, crm.CreateContactInput{
		AgencyID:  agency.ID,
		FirstName: "Jane",
		LastName:  "Doe",
		Company:   strPtr("Initech"),
		Phone:     strPtr("555-0100"),
		CreatedBy: user.ID,
	})
	require.NoError(t, err)

	updated, err := ts.Service.UpdateContact(ctx, crm.UpdateContactInput{
		ID:       contact.ID,
		LastName: optional.Of("Smith"),
		Phone:    optional.Of[*string](nil),
		Tags:     optional.Of([]string{"renewal"}),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jane", updated.FirstName)
	assert.Equal(t, "Smith", updated.LastName)
	assert.Equal(t, "Initech", *updated.Company)
	assert.Nil(t, updated.Phone)
	assert.Equal(t, []string{"renewal"}, []string(updated.Tags))
	assert.True(t, updated.UpdatedAt.After(contact.UpdatedAt))
}

func TestUpdateContact_Errors(t *testing.T) {
	ts := testutil.NewTestSetup(t)
	ctx := testutil.TestContext(t)

	_, err := ts.Service.UpdateContact(ctx, crm.UpdateContactInput{
		ID:        777,
		FirstName: optional.Of("Ghost"),
	})
	assert.ErrorIs(t, err, crm.ErrNotFound)

	_, err = ts.Service.UpdateContact(ctx, crm.UpdateContactInput{
		ID:    1,
		Email: optional.Of(strPtr("not-an-email")),
		Tags:  optional.Of[[]string](nil),
	})
	var verr *crm.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "tags")
}

func TestUpdateContact_NullNames(t *testing.T) {
	ts := testutil.NewTestSetup(t)
	ctx := testutil.TestContext(t)
	agency := testutil.CreateTestAgency(t, ts.Service, "Acme")
	user := testutil.CreateTestUser(t, ts.Service, agency)
	contact := testutil.CreateTestContact(t, ts.Service, agency, user, "Jane", "Doe")

	var in crm.UpdateContactInput
	require.NoError(t, json.Unmarshal([]byte(`{"first_name":null,"last_name":null}`), &in))
	in.ID = contact.ID

	_, err := ts.Service.UpdateContact(ctx, in)
	var verr *crm.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "First name cannot be null", verr.Fields["first_name"])
	assert.Equal(t, "Last name cannot be null", verr.Fields["last_name"])

	contacts, err := ts.Service.GetContactsByAgency(ctx, agency.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, "Jane", contacts[0].FirstName)
	assert.Equal(t, "Doe", contacts[0].LastName)
}
