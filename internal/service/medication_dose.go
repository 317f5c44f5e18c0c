package service

import (
	"context"
	"fmt"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/ownership"
)

// MedicationDose manages the doses of owned medications.
type MedicationDose struct {
	owned[model.MedicationDose, *model.MedicationDose]
	doses       model.EntityStore[model.MedicationDose]
	resolver    *ownership.Resolver
	medications ownership.Chain
	logger      *logger.Logger
}

// NewMedicationDose creates the dose service.
func NewMedicationDose(
	doses model.EntityStore[model.MedicationDose],
	resolver *ownership.Resolver,
	chains ownership.Chains,
	logger *logger.Logger,
) *MedicationDose {
	return &MedicationDose{
		owned: owned[model.MedicationDose, *model.MedicationDose]{
			store:    doses,
			resolver: resolver,
			chain:    chains.MedicationDose,
			entity:   model.EntityMedicationDose,
		},
		doses:       doses,
		resolver:    resolver,
		medications: chains.Medication,
		logger:      logger,
	}
}

// List returns the doses of a medication in schedule order.
func (s *MedicationDose) List(ctx context.Context, userID, medicationID string) ([]model.MedicationDose, error) {
	_, err := ownership.ResolveAs[model.Medication](ctx, s.resolver, s.medications, medicationID, userID)
	if err != nil {
		return nil, err
	}

	doses, err := s.doses.Find(ctx,
		model.Filter{model.Eq(model.FieldMedicationID, medicationID)},
		model.Asc(model.FieldScheduledTime),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list medication doses: %w", err)
	}
	return doses, nil
}

func (s *MedicationDose) Create(ctx context.Context, userID, medicationID string, in model.MedicationDoseCreate) (model.MedicationDose, error) {
	_, err := ownership.ResolveAs[model.Medication](ctx, s.resolver, s.medications, medicationID, userID)
	if err != nil {
		return model.MedicationDose{}, err
	}

	dose, err := s.doses.Insert(ctx, in.MedicationDose(medicationID))
	if err != nil {
		return model.MedicationDose{}, fmt.Errorf("failed to create medication dose: %w", err)
	}

	s.logger.Info("MedicationDose service: dose created",
		"medication_id", medicationID,
		"dose_id", dose.ID)

	return dose, nil
}

func (s *MedicationDose) Get(ctx context.Context, userID, id string) (model.MedicationDose, error) {
	return s.get(ctx, userID, id)
}

func (s *MedicationDose) Update(ctx context.Context, userID, id string, up model.MedicationDoseUpdate) (model.MedicationDose, error) {
	return s.update(ctx, userID, id, up.Fields())
}

func (s *MedicationDose) Delete(ctx context.Context, userID, id string) error {
	return s.delete(ctx, userID, id)
}
