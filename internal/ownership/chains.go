package ownership

import (
	"github.com/dtroode/healthnest-server/internal/model"
)

// Chains holds the ownership chain of every child entity.
type Chains struct {
	Patient            Chain
	HealthRecord       Chain
	Medication         Chain
	MedicationDose     Chain
	MedicationReminder Chain
}

// NewChains wires the chains over the given sources.
func NewChains(patients, records, medications, doses, reminders Source) Chains {
	patient := Link{Entity: model.EntityPatient, ForeignKey: model.FieldOwnerUserID, Source: patients}
	medication := Link{Entity: model.EntityMedication, ForeignKey: model.FieldPatientID, Source: medications}

	return Chains{
		Patient: Chain{patient},
		HealthRecord: Chain{
			{Entity: model.EntityHealthRecord, ForeignKey: model.FieldPatientID, Source: records},
			patient,
		},
		Medication: Chain{medication, patient},
		MedicationDose: Chain{
			{Entity: model.EntityMedicationDose, ForeignKey: model.FieldMedicationID, Source: doses},
			medication,
			patient,
		},
		MedicationReminder: Chain{
			{Entity: model.EntityMedicationReminder, ForeignKey: model.FieldMedicationID, Source: reminders},
			medication,
			patient,
		},
	}
}
