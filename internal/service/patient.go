package service

import (
	"context"
	"fmt"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/ownership"
)

// Patient manages the patients owned by the requesting user.
type Patient struct {
	owned[model.Patient, *model.Patient]
	patients model.EntityStore[model.Patient]
	logger   *logger.Logger
}

// NewPatient creates the patient service.
func NewPatient(
	patients model.EntityStore[model.Patient],
	resolver *ownership.Resolver,
	chains ownership.Chains,
	logger *logger.Logger,
) *Patient {
	return &Patient{
		owned: owned[model.Patient, *model.Patient]{
			store:    patients,
			resolver: resolver,
			chain:    chains.Patient,
			entity:   model.EntityPatient,
		},
		patients: patients,
		logger:   logger,
	}
}

// List returns the user's patients, newest first.
func (s *Patient) List(ctx context.Context, userID string) ([]model.Patient, error) {
	patients, err := s.patients.Find(ctx,
		model.Filter{model.Eq(model.FieldOwnerUserID, userID)},
		model.Desc(model.FieldCreatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (s *Patient) Create(ctx context.Context, userID string, in model.PatientCreate) (model.Patient, error) {
	patient, err := s.patients.Insert(ctx, in.Patient(userID))
	if err != nil {
		s.logger.Error("Patient service: failed to create patient",
			"user_id", userID,
			"error", err.Error())
		return model.Patient{}, fmt.Errorf("failed to create patient: %w", err)
	}

	s.logger.Info("Patient service: patient created",
		"user_id", userID,
		"patient_id", patient.ID)

	return patient, nil
}

func (s *Patient) Get(ctx context.Context, userID, id string) (model.Patient, error) {
	return s.get(ctx, userID, id)
}

func (s *Patient) Update(ctx context.Context, userID, id string, up model.PatientUpdate) (model.Patient, error) {
	return s.update(ctx, userID, id, up.Fields())
}

// Delete removes the patient only. Its records and medications stay in place.
func (s *Patient) Delete(ctx context.Context, userID, id string) error {
	if err := s.delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.Info("Patient service: patient deleted",
		"user_id", userID,
		"patient_id", id)

	return nil
}

// Search matches the user's patients by a full hospital identifier or by mobile number.
func (s *Patient) Search(ctx context.Context, userID string, q model.PatientSearch) ([]model.Patient, error) {
	filter := model.Filter{model.Eq(model.FieldOwnerUserID, userID)}
	if q.ByHospitalIdentifier() {
		filter = append(filter, model.ElemMatch(model.FieldHospitalIdentifiers, map[string]any{
			"systemName":     q.HospitalSystem,
			"identifierType": q.IdentifierType,
			"value":          q.IdentifierValue,
		}))
	} else {
		filter = append(filter, model.ElemMatch(model.FieldMobileNumbers, map[string]any{
			"number": q.MobileNumber,
		}))
	}

	patients, err := s.patients.Find(ctx, filter, model.Desc(model.FieldCreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}
