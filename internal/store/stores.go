package store

import (
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/repository/memory"
	"github.com/dtroode/healthnest-server/internal/repository/mongodb"
	"github.com/dtroode/healthnest-server/internal/repository/postgres"
)

type (
	UserStore               = Entity[model.User, *model.User]
	PatientStore            = Entity[model.Patient, *model.Patient]
	HealthRecordStore       = Entity[model.HealthRecord, *model.HealthRecord]
	MedicationStore         = Entity[model.Medication, *model.Medication]
	MedicationDoseStore     = Entity[model.MedicationDose, *model.MedicationDose]
	MedicationReminderStore = Entity[model.MedicationReminder, *model.MedicationReminder]
)

// Stores holds one repository per collection, all sharing one backend handle.
type Stores struct {
	Users               *UserStore
	Patients            *PatientStore
	HealthRecords       *HealthRecordStore
	Medications         *MedicationStore
	MedicationDoses     *MedicationDoseStore
	MedicationReminders *MedicationReminderStore
}

func build(
	users model.Collection[model.User],
	patients model.Collection[model.Patient],
	records model.Collection[model.HealthRecord],
	medications model.Collection[model.Medication],
	doses model.Collection[model.MedicationDose],
	reminders model.Collection[model.MedicationReminder],
	opts []Option,
) *Stores {
	with := func(extra ...Option) []Option {
		return append(append([]Option{}, opts...), extra...)
	}

	return &Stores{
		Users:               New[model.User](users, with()...),
		Patients:            New[model.Patient](patients, with(Protect(model.FieldOwnerUserID))...),
		HealthRecords:       New[model.HealthRecord](records, with(Protect(model.FieldPatientID))...),
		Medications:         New[model.Medication](medications, with(Protect(model.FieldPatientID))...),
		MedicationDoses:     New[model.MedicationDose](doses, with(Protect(model.FieldMedicationID))...),
		MedicationReminders: New[model.MedicationReminder](reminders, with(Protect(model.FieldMedicationID))...),
	}
}

// Mongo builds the stores over a MongoDB database.
func Mongo(conn *mongodb.Connection, opts ...Option) *Stores {
	return build(
		mongodb.NewCollection[model.User](conn, model.CollectionUsers),
		mongodb.NewCollection[model.Patient](conn, model.CollectionPatients),
		mongodb.NewCollection[model.HealthRecord](conn, model.CollectionHealthRecords),
		mongodb.NewCollection[model.Medication](conn, model.CollectionMedications),
		mongodb.NewCollection[model.MedicationDose](conn, model.CollectionMedicationDoses),
		mongodb.NewCollection[model.MedicationReminder](conn, model.CollectionMedicationReminders),
		opts,
	)
}

// Postgres builds the stores over the JSONB tables.
func Postgres(conn *postgres.Connection, opts ...Option) *Stores {
	return build(
		postgres.NewCollection[model.User](conn, model.CollectionUsers),
		postgres.NewCollection[model.Patient](conn, model.CollectionPatients),
		postgres.NewCollection[model.HealthRecord](conn, model.CollectionHealthRecords),
		postgres.NewCollection[model.Medication](conn, model.CollectionMedications),
		postgres.NewCollection[model.MedicationDose](conn, model.CollectionMedicationDoses),
		postgres.NewCollection[model.MedicationReminder](conn, model.CollectionMedicationReminders),
		opts,
	)
}

// Memory builds the stores over an in-process database.
func Memory(db *memory.Database, opts ...Option) *Stores {
	return build(
		memory.NewCollection[model.User](db, model.CollectionUsers),
		memory.NewCollection[model.Patient](db, model.CollectionPatients),
		memory.NewCollection[model.HealthRecord](db, model.CollectionHealthRecords),
		memory.NewCollection[model.Medication](db, model.CollectionMedications),
		memory.NewCollection[model.MedicationDose](db, model.CollectionMedicationDoses),
		memory.NewCollection[model.MedicationReminder](db, model.CollectionMedicationReminders),
		opts,
	)
}
