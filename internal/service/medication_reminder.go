package service

import (
	"context"
	"fmt"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/ownership"
)

// MedicationReminder manages the reminders of owned medications.
type MedicationReminder struct {
	owned[model.MedicationReminder, *model.MedicationReminder]
	reminders       model.EntityStore[model.MedicationReminder]
	resolver    *ownership.Resolver
	medications ownership.Chain
	logger      *logger.Logger
}

// NewMedicationReminder creates the reminder service.
func NewMedicationReminder(
	reminders model.EntityStore[model.MedicationReminder],
	resolver *ownership.Resolver,
	chains ownership.Chains,
	logger *logger.Logger,
) *MedicationReminder {
	return &MedicationReminder{
		owned: owned[model.MedicationReminder, *model.MedicationReminder]{
			store:    reminders,
			resolver: resolver,
			chain:    chains.MedicationReminder,
			entity:   model.EntityMedicationReminder,
		},
		reminders:       reminders,
		resolver:    resolver,
		medications: chains.Medication,
		logger:      logger,
	}
}

// List returns the reminders of a medication in schedule order.
func (s *MedicationReminder) List(ctx context.Context, userID, medicationID string) ([]model.MedicationReminder, error) {
	_, err := ownership.ResolveAs[model.Medication](ctx, s.resolver, s.medications, medicationID, userID)
	if err != nil {
		return nil, err
	}

	reminders, err := s.reminders.Find(ctx,
		model.Filter{model.Eq(model.FieldMedicationID, medicationID)},
		model.Asc(model.FieldScheduledTime),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list medication reminders: %w", err)
	}
	return reminders, nil
}

func (s *MedicationReminder) Create(ctx context.Context, userID, medicationID string, in model.MedicationReminderCreate) (model.MedicationReminder, error) {
	_, err := ownership.ResolveAs[model.Medication](ctx, s.resolver, s.medications, medicationID, userID)
	if err != nil {
		return model.MedicationReminder{}, err
	}

	reminder, err := s.reminders.Insert(ctx, in.MedicationReminder(medicationID))
	if err != nil {
		return model.MedicationReminder{}, fmt.Errorf("failed to create medication reminder: %w", err)
	}

	s.logger.Info("MedicationReminder service: reminder created",
		"medication_id", medicationID,
		"reminder_id", reminder.ID)

	return reminder, nil
}

func (s *MedicationReminder) Get(ctx context.Context, userID, id string) (model.MedicationReminder, error) {
	return s.get(ctx, userID, id)
}

func (s *MedicationReminder) Update(ctx context.Context, userID, id string, up model.MedicationReminderUpdate) (model.MedicationReminder, error) {
	return s.update(ctx, userID, id, up.Fields())
}

func (s *MedicationReminder) Delete(ctx context.Context, userID, id string) error {
	return s.delete(ctx, userID, id)
}
