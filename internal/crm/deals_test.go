package crm_test

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/hugh/agencyhub/internal/crm"
	"github.com/hugh/agencyhub/internal/database/models"
	"github.com/hugh/agencyhub/internal/testutil"
	"github.com/hugh/agencyhub/pkg/optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dealFixture struct {
	ts       *testutil.TestSetup
	acme     *models.Agency
	other    *models.Agency
	user     *models.User
	outsider *models.User
	contact  *models.Contact
	foreign  *models.Contact
}

func newDealFixture(t *testing.T) *dealFixture {
	t.Helper()
	ts := testutil.NewTestSetup(t)
	f := &dealFixture{ts: ts}
	f.acme = testutil.CreateTestAgency(t, ts.Service, "Acme")
	f.other = testutil.CreateTestAgency(t, ts.Service, "Other")
	f.user = testutil.CreateTestUser(t, ts.Service, f.acme)
	f.outsider = testutil.CreateTestUser(t, ts.Service, f.other)
	f.contact = testutil.CreateTestContact(t, ts.Service, f.acme, f.user, "Jane", "Doe")
	f.foreign = testutil.CreateTestContact(t, ts.Service, f.other, f.outsider, "Max", "Mustermann")
	return f
}

func (f *dealFixture) input() crm.CreateDealInput {
	return crm.CreateDealInput{
		AgencyID:  f.acme.ID,
		ContactID: f.contact.ID,
		Title:     "Website redesign",
		CreatedBy: f.user.ID,
	}
}

func uintPtr(v uint) *uint { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestCreateDeal_Defaults(t *testing.T) {
	f := newDealFixture(t)
	ctx := testutil.TestContext(t)

	deal, err := f.ts.Service.CreateDeal(ctx, f.input())
	require.NoError(t, err)

	assert.Equal(t, models.StageLead, deal.Stage)
	assert.Equal(t, 0, deal.Probability)
	assert.Nil(t, deal.Value.Float64())
	assert.False(t, deal.ExpectedCloseDate.Valid)
	assert.Nil(t, deal.AssignedTo)
}

func TestCreateDeal_ValueAndCloseDate(t *testing.T) {
	f := newDealFixture(t)
	ctx := testutil.TestContext(t)

	closeDate, err := models.ParseDate("2024-06-30T23:30:00-02:00")
	require.NoError(t, err)

	in := f.input()
	in.Value = floatPtr(1500.505)
	in.Stage = models.StageProposal
	in.Probability = 60
	in.ExpectedCloseDate = closeDate
	in.AssignedTo = uintPtr(f.user.ID)

	_, err = f.ts.Service.CreateDeal(ctx, in)
	require.NoError(t, err)

	deals, err := f.ts.Service.GetDealsByAgency(ctx, f.acme.ID)
	require.NoError(t, err)
	require.Len(t, deals, 1)

	stored := deals[0]
	require.NotNil(t, stored.Value.Float64())
	assert.InDelta(t, 1500.51, *stored.Value.Float64(), 0.0001)
	assert.Equal(t, "2024-07-01", stored.ExpectedCloseDate.String(), "date keeps the UTC calendar day only")
	assert.Equal(t, models.StageProposal, stored.Stage)
	assert.Equal(t, 60, stored.Probability)
	require.NotNil(t, stored.AssignedTo)
	assert.Equal(t, f.user.ID, *stored.AssignedTo)
}

func TestCreateDeal_ReferenceChecks(t *testing.T) {
	f := newDealFixture(t)
	ctx := testutil.TestContext(t)

	tests := []struct {
		name    string
		mutate  func(in *crm.CreateDealInput)
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing agency",
			mutate:  func(in *crm.CreateDealInput) { in.AgencyID = 9999 },
			wantErr: crm.ErrReferenceInvalid,
			wantMsg: "agency with id 9999 not found",
		},
		{
			name:    "missing contact",
			mutate:  func(in *crm.CreateDealInput) { in.ContactID = 9999 },
			wantErr: crm.ErrReferenceInvalid,
			wantMsg: "contact with id 9999 not found",
		},
		{
			name:    "contact from another agency",
			mutate:  func(in *crm.CreateDealInput) { in.ContactID = f.foreign.ID },
			wantErr: crm.ErrReferenceMismatch,
			wantMsg: "does not belong to agency",
		},
		{
			name:    "missing creator",
			mutate:  func(in *crm.CreateDealInput) { in.CreatedBy = 9999 },
			wantErr: crm.ErrReferenceInvalid,
			wantMsg: "user with id 9999 not found",
		},
		{
			name:    "creator from another agency",
			mutate:  func(in *crm.CreateDealInput) { in.CreatedBy = f.outsider.ID },
			wantErr: crm.ErrReferenceMismatch,
			wantMsg: "does not belong to agency",
		},
		{
			name:    "missing assignee",
			mutate:  func(in *crm.CreateDealInput) { in.AssignedTo = uintPtr(9999) },
			wantErr: crm.ErrReferenceInvalid,
			wantMsg: "assigned user with id 9999 not found",
		},
		{
			name:    "assignee from another agency",
			mutate:  func(in *crm.CreateDealInput) { in.AssignedTo = uintPtr(f.outsider.ID) },
			wantErr: crm.ErrReferenceMismatch,
			wantMsg: "assigned user",
		},
		{
			name: "contact is checked before creator",
			mutate: func(in *crm.CreateDealInput) {
				in.ContactID = 9999
				in.CreatedBy = 8888
			},
			wantErr: crm.ErrReferenceInvalid,
			wantMsg: "contact with id 9999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input()
			tt.mutate(&in)

			_, err := f.ts.Service.CreateDeal(ctx, in)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.wantMsg)

			var refErr *crm.ReferenceError
			assert.ErrorAs(t, err, &refErr)
		})
	}

	deals, err := f.ts.Service.GetDealsByAgency(ctx, f.acme.ID)
	require.NoError(t, err)
	assert.Empty(t, deals, "failed checks must not write")
}

func TestCreateDeal_Validation(t *testing.T) {
	f := newDealFixture(t)
	ctx := testutil.TestContext(t)

	tests := []struct {
		name   string
		mutate func(in *crm.CreateDealInput)
		field  string
	}{
		{"probability above range", func(in *crm.CreateDealInput) { in.Probability = 101 }, "probability"},
		{"probability below range", func(in *crm.CreateDealInput) { in.Probability = -1 }, "probability"},
		{"unknown stage", func(in *crm.CreateDealInput) { in.Stage = "closed" }, "stage"},
		{"zero value", func(in *crm.CreateDealInput) { in.Value = floatPtr(0) }, "value"},
		{"negative value", func(in *crm.CreateDealInput) { in.Value = floatPtr(-0.5) }, "value"},
		{"value overflows", func(in *crm.CreateDealInput) { in.Value = floatPtr(1e10) }, "value"},
		{"missing title", func(in *crm.CreateDealInput) { in.Title = "" }, "title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := f.input()
			tt.mutate(&in)

			_, err := f.ts.Service.CreateDeal(ctx, in)
			var verr *crm.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestUpdateDeal(t *testing.T) {
	f := newDealFixture(t)
	ctx := testutil.TestContext(t)

	in := f.input()
	in.Description = strPtr("Full rebuild")
	in.Value = floatPtr(9000)
	deal, err := f.ts.Service.CreateDeal(ctx, in)
	require.NoError(t, err)

	won, err := f.ts.Service.UpdateDeal(ctx, crm.UpdateDealInput{
		ID:          deal.ID,
		Stage:       optional.Of(models.StageWon),
		Probability: optional.Of(100),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StageWon, won.Stage)
	assert.Equal(t, 100, won.Probability)
	assert.Equal(t, "Website redesign", won.Title)
	assert.Equal(t, "Full rebuild", *won.Description)
	assert.InDelta(t, 9000, *won.Value.Float64(), 0.001)
	assert.True(t, won.UpdatedAt.After(deal.UpdatedAt))

	// Stages may move backwards.
	back, err := f.ts.Service.UpdateDeal(ctx, crm.UpdateDealInput{
		ID:                deal.ID,
		Stage:             optional.Of(models.StageLead),
		Value:             optional.Of[*float64](nil),
		ExpectedCloseDate: optional.Of(models.NewDate(time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC))),
	})
	require.NoError(t, err)
	assert.Equal(t, models.StageLead, back.Stage)
	assert.Equal(t, 100, back.Probability)
	assert.Nil(t, back.Value.Float64())
	assert.Equal(t, "2025-02-01", back.ExpectedCloseDate.String())
	assert.True(t, back.UpdatedAt.After(won.UpdatedAt))
}

func TestUpdateDeal_Errors(t *testing.T) {
	f := newDealFixture(t)
	ctx := testutil.TestContext(t)

	_, err := f.ts.Service.UpdateDeal(ctx, crm.UpdateDealInput{ID: 4242, Title: optional.Of("x")})
	assert.ErrorIs(t, err, crm.ErrNotFound)

	_, err = f.ts.Service.UpdateDeal(ctx, crm.UpdateDealInput{ID: 1, Probability: optional.Of(150)})
	assert.ErrorIs(t, err, crm.ErrConstraintViolation)
}

func TestCreateDeal_SubCentValue(t *testing.T) {
	f := newDealFixture(t)
	ctx := testutil.TestContext(t)

	in := f.input()
	in.Value = floatPtr(0.004)
	deal, err := f.ts.Service.CreateDeal(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, deal.Value.Float64())
	assert.Equal(t, "0.00", deal.Value.Decimal.StringFixed(2))
}

func TestUpdateDeal_NullOnRequiredColumns(t *testing.T) {
	f := newDealFixture(t)
	ctx := testutil.TestContext(t)

	in := f.input()
	in.Stage = models.StageProposal
	in.Probability = 40
	deal, err := f.ts.Service.CreateDeal(ctx, in)
	require.NoError(t, err)

	for _, field := range []string{"probability", "title", "stage"} {
		t.Run(field, func(t *testing.T) {
			var upd crm.UpdateDealInput
			body := fmt.Sprintf(`{"id":%d,%q:null}`, deal.ID, field)
			require.NoError(t, json.Unmarshal([]byte(body), &upd))

			_, err := f.ts.Service.UpdateDeal(ctx, upd)
			var verr *crm.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields[field], "cannot be null")

			deals, err := f.ts.Service.GetDealsByAgency(ctx, f.acme.ID)
			require.NoError(t, err)
			require.Len(t, deals, 1)
			assert.Equal(t, 40, deals[0].Probability)
			assert.Equal(t, "Website redesign", deals[0].Title)
			assert.Equal(t, models.StageProposal, deals[0].Stage)
			assert.True(t, deals[0].UpdatedAt.Equal(deal.UpdatedAt))
		})
	}
}
