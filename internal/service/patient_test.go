package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/healthnest-server/internal/identifier"
	"github.com/dtroode/healthnest-server/internal/model"
)

func TestPatient_CreateAndList(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	u1, u2 := newUserID(), newUserID()

	first := e.patient(t, u1)
	second := e.patient(t, u1)
	e.patient(t, u2)

	assert.Equal(t, u1, first.OwnerUserID)

	list, err := e.patients.List(ctx, u1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestPatient_GetUpdateDeleteAreOwnerOnly(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner, stranger := newUserID(), newUserID()
	p := e.patient(t, owner)

	_, err := e.patients.Get(ctx, stranger, p.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)

	_, err = e.patients.Update(ctx, stranger, p.ID, model.PatientUpdate{FirstName: ptr("Mallory")})
	assert.ErrorIs(t, err, model.ErrForbidden)

	err = e.patients.Delete(ctx, stranger, p.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)

	got, err := e.patients.Get(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.FirstName)

	updated, err := e.patients.Update(ctx, owner, p.ID, model.PatientUpdate{BloodGroup: ptr("O+")})
	require.NoError(t, err)
	assert.Equal(t, "O+", updated.BloodGroup)
	assert.Equal(t, "Asha", updated.FirstName)
	assert.Equal(t, owner, updated.OwnerUserID)

	require.NoError(t, e.patients.Delete(ctx, owner, p.ID))

	_, err = e.patients.Get(ctx, owner, p.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	err = e.patients.Delete(ctx, owner, identifier.New())
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestPatient_Search(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner, stranger := newUserID(), newUserID()

	withMRN, err := e.patients.Create(ctx, owner, model.PatientCreate{
		FirstName: "Asha",
		HospitalIdentifiers: []model.HospitalIdentifier{
			{SystemName: "AIIMS", IdentifierType: "MRN", Value: "123"},
			{SystemName: "Apollo", IdentifierType: "UHID", Value: "9"},
		},
		MobileNumbers: []model.MobileNumber{{CountryCode: "+91", Number: "9876543210"}},
	})
	require.NoError(t, err)

	_, err = e.patients.Create(ctx, owner, model.PatientCreate{
		FirstName: "Ravi",
		HospitalIdentifiers: []model.HospitalIdentifier{
			{SystemName: "AIIMS", IdentifierType: "UHID", Value: "123"},
		},
	})
	require.NoError(t, err)

	_, err = e.patients.Create(ctx, stranger, model.PatientCreate{
		FirstName:     "Other",
		MobileNumbers: []model.MobileNumber{{CountryCode: "+91", Number: "9876543210"}},
	})
	require.NoError(t, err)

	found, err := e.patients.Search(ctx, owner, model.PatientSearch{
		HospitalSystem:  "AIIMS",
		IdentifierType:  "MRN",
		IdentifierValue: "123",
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, withMRN.ID, found[0].ID)

	found, err = e.patients.Search(ctx, owner, model.PatientSearch{MobileNumber: "9876543210"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, withMRN.ID, found[0].ID)

	found, err = e.patients.Search(ctx, owner, model.PatientSearch{MobileNumber: "000"})
	require.NoError(t, err)
	assert.Empty(t, found)
}
