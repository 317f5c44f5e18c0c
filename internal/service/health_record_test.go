package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/healthnest-server/internal/identifier"
	"github.com/dtroode/healthnest-server/internal/model"
)

func TestHealthRecord_TrendScenario(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	u1, u2 := newUserID(), newUserID()
	p := e.patient(t, u1)

	r1, err := e.records.Create(ctx, u1, model.HealthRecordCreate{
		PatientID:  p.ID,
		RecordType: model.RecordTypeVitalSigns,
		Data:       map[string]any{"weight": 70},
		Source:     "City Clinic",
	})
	require.NoError(t, err)

	_, err = e.records.Create(ctx, u1, model.HealthRecordCreate{
		PatientID:  p.ID,
		RecordType: model.RecordTypeLabTest,
		Data:       map[string]any{"glucose": 95},
		Source:     "City Lab",
	})
	require.NoError(t, err)

	series, err := e.records.Trends(ctx, u1, p.ID, "weight")
	require.NoError(t, err)
	assert.Equal(t, p.ID, series.PatientID)
	assert.Equal(t, "weight", series.Metric)
	require.Len(t, series.Trends, 1)
	assert.Equal(t, 70.0, series.Trends[0].Value)
	assert.Equal(t, r1.ID, series.Trends[0].RecordID)
	assert.Equal(t, "City Clinic", series.Trends[0].Source)
	assert.True(t, r1.CreatedAt.Equal(series.Trends[0].Date))

	series, err = e.records.Trends(ctx, u2, p.ID, "weight")
	assert.ErrorIs(t, err, model.ErrForbidden)
	assert.Empty(t, series.Trends)
	assert.Empty(t, series.PatientID)
}

func TestHealthRecord_CreateUnderForeignOrMissingPatient(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner, stranger := newUserID(), newUserID()
	p := e.patient(t, owner)

	in := model.HealthRecordCreate{PatientID: p.ID, RecordType: model.RecordTypeLabTest, Source: "lab"}

	_, err := e.records.Create(ctx, stranger, in)
	assert.ErrorIs(t, err, model.ErrForbidden)

	in.PatientID = identifier.New()
	_, err = e.records.Create(ctx, owner, in)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.EqualError(t, err, "patient not found")

	in.PatientID = "nope"
	_, err = e.records.Create(ctx, owner, in)
	assert.ErrorIs(t, err, model.ErrInvalidIdentifier)

	all, err := e.stores.HealthRecords.Find(ctx, nil, model.Sort{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHealthRecord_ListFiltersAndOrders(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := newUserID()
	p := e.patient(t, owner)
	other := e.patient(t, owner)

	create := func(patientID string, rt model.RecordType) model.HealthRecord {
		r, err := e.records.Create(ctx, owner, model.HealthRecordCreate{PatientID: patientID, RecordType: rt, Source: "lab"})
		require.NoError(t, err)
		return r
	}
	lab1 := create(p.ID, model.RecordTypeLabTest)
	vitals := create(p.ID, model.RecordTypeVitalSigns)
	lab2 := create(p.ID, model.RecordTypeLabTest)
	create(other.ID, model.RecordTypeLabTest)

	all, err := e.records.List(ctx, owner, p.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	ids := []string{all[0].ID, all[1].ID, all[2].ID}
	assert.ElementsMatch(t, []string{lab1.ID, vitals.ID, lab2.ID}, ids)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].CreatedAt.After(all[i-1].CreatedAt))
	}

	labs, err := e.records.List(ctx, owner, p.ID, model.RecordTypeLabTest)
	require.NoError(t, err)
	assert.Len(t, labs, 2)
}

func TestHealthRecord_OrphanAfterPatientDelete(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := newUserID()
	p := e.patient(t, owner)

	r, err := e.records.Create(ctx, owner, model.HealthRecordCreate{PatientID: p.ID, RecordType: model.RecordTypeLabTest, Source: "lab"})
	require.NoError(t, err)

	require.NoError(t, e.patients.Delete(ctx, owner, p.ID))

	_, err = e.records.List(ctx, owner, p.ID, "")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = e.records.Get(ctx, owner, r.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)

	orphan, err := e.stores.HealthRecords.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, orphan.PatientID)
}

func TestHealthRecord_UpdateAndDelete(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner, stranger := newUserID(), newUserID()
	p := e.patient(t, owner)

	r, err := e.records.Create(ctx, owner, model.HealthRecordCreate{
		PatientID:  p.ID,
		RecordType: model.RecordTypeLabTest,
		Data:       map[string]any{"hba1c": "6.1"},
		Source:     "lab",
	})
	require.NoError(t, err)

	_, err = e.records.Update(ctx, stranger, r.ID, model.HealthRecordUpdate{Source: ptr("forged")})
	assert.ErrorIs(t, err, model.ErrForbidden)

	updated, err := e.records.Update(ctx, owner, r.ID, model.HealthRecordUpdate{Tags: ptr([]string{"lab_report"})})
	require.NoError(t, err)
	assert.Equal(t, []string{"lab_report"}, updated.Tags)
	assert.Equal(t, "lab", updated.Source)
	assert.Equal(t, p.ID, updated.PatientID)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	assert.ErrorIs(t, e.records.Delete(ctx, stranger, r.ID), model.ErrForbidden)
	require.NoError(t, e.records.Delete(ctx, owner, r.ID))
	assert.ErrorIs(t, e.records.Delete(ctx, owner, r.ID), model.ErrNotFound)
}
