package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dtroode/healthnest-server/internal/identifier"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/ownership"
	"github.com/dtroode/healthnest-server/internal/repository/memory"
	"github.com/dtroode/healthnest-server/internal/store"
	"github.com/dtroode/healthnest-server/internal/testutil"
)

type env struct {
	stores      *store.Stores
	patients    *Patient
	records     *HealthRecord
	medications *Medication
	doses       *MedicationDose
	reminders   *MedicationReminder
}

// clock advances one second per reading so creation order is observable.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Second)
	return c.t
}

func newEnv() *env {
	c := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	stores := store.Memory(memory.NewDatabase(), store.WithClock(c.now))
	log := testutil.MakeNoopLogger()
	resolver := ownership.NewResolver(log)
	chains := ownership.NewChains(
		stores.Patients,
		stores.HealthRecords,
		stores.Medications,
		stores.MedicationDoses,
		stores.MedicationReminders,
	)

	return &env{
		stores:      stores,
		patients:    NewPatient(stores.Patients, resolver, chains, log),
		records:     NewHealthRecord(stores.HealthRecords, resolver, chains, log),
		medications: NewMedication(stores.Medications, resolver, chains, log),
		doses:       NewMedicationDose(stores.MedicationDoses, resolver, chains, log),
		reminders:   NewMedicationReminder(stores.MedicationReminders, resolver, chains, log),
	}
}

func (e *env) patient(t *testing.T, userID string) model.Patient {
	t.Helper()
	p, err := e.patients.Create(context.Background(), userID, model.PatientCreate{FirstName: "Asha", Gender: "female"})
	require.NoError(t, err)
	return p
}

func (e *env) medication(t *testing.T, userID, patientID string) model.Medication {
	t.Helper()
	m, err := e.medications.Create(context.Background(), userID, model.MedicationCreate{
		PatientID: patientID,
		Name:      "Metformin",
		IsActive:  true,
	})
	require.NoError(t, err)
	return m
}

func newUserID() string {
	return identifier.New()
}

func ptr[V any](v V) *V {
	return &v
}
