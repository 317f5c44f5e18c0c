package service

import (
	"context"
	"fmt"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/ownership"
)

// Medication manages medications under patients the requester owns.
type Medication struct {
	owned[model.Medication, *model.Medication]
	medications model.EntityStore[model.Medication]
	resolver    *ownership.Resolver
	patients    ownership.Chain
	logger      *logger.Logger
}

// NewMedication creates the medication service.
func NewMedication(
	medications model.EntityStore[model.Medication],
	resolver *ownership.Resolver,
	chains ownership.Chains,
	logger *logger.Logger,
) *Medication {
	return &Medication{
		owned: owned[model.Medication, *model.Medication]{
			store:    medications,
			resolver: resolver,
			chain:    chains.Medication,
			entity:   model.EntityMedication,
		},
		medications: medications,
		resolver:    resolver,
		patients:    chains.Patient,
		logger:      logger,
	}
}

// List returns a patient's medications by start date, latest first. A non-nil
// isActive keeps only medications with that flag.
func (s *Medication) List(ctx context.Context, userID, patientID string, isActive *bool) ([]model.Medication, error) {
	_, err := parent[model.Patient](ctx, s.resolver, s.patients, model.EntityPatient, patientID, userID)
	if err != nil {
		return nil, err
	}

	filter := model.Filter{model.Eq(model.FieldPatientID, patientID)}
	if isActive != nil {
		filter = append(filter, model.Eq(model.FieldIsActive, *isActive))
	}

	medications, err := s.medications.Find(ctx, filter, model.Desc(model.FieldStartDate))
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return medications, nil
}

func (s *Medication) Create(ctx context.Context, userID string, in model.MedicationCreate) (model.Medication, error) {
	_, err := parent[model.Patient](ctx, s.resolver, s.patients, model.EntityPatient, in.PatientID, userID)
	if err != nil {
		return model.Medication{}, err
	}

	medication, err := s.medications.Insert(ctx, in.Medication())
	if err != nil {
		s.logger.Error("Medication service: failed to create medication",
			"patient_id", in.PatientID,
			"error", err.Error())
		return model.Medication{}, fmt.Errorf("failed to create medication: %w", err)
	}

	s.logger.Info("Medication service: medication created",
		"patient_id", in.PatientID,
		"medication_id", medication.ID)

	return medication, nil
}

func (s *Medication) Get(ctx context.Context, userID, id string) (model.Medication, error) {
	return s.get(ctx, userID, id)
}

func (s *Medication) Update(ctx context.Context, userID, id string, up model.MedicationUpdate) (model.Medication, error) {
	return s.update(ctx, userID, id, up.Fields())
}

func (s *Medication) Delete(ctx context.Context, userID, id string) error {
	return s.delete(ctx, userID, id)
}
