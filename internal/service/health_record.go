package service

import (
	"context"
	"fmt"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/ownership"
	"github.com/dtroode/healthnest-server/internal/trend"
)

// HealthRecord manages health records under patients the requester owns.
type HealthRecord struct {
	owned[model.HealthRecord, *model.HealthRecord]
	records  model.EntityStore[model.HealthRecord]
	resolver *ownership.Resolver
	patients ownership.Chain
	logger   *logger.Logger
}

// NewHealthRecord creates the health record service.
func NewHealthRecord(
	records model.EntityStore[model.HealthRecord],
	resolver *ownership.Resolver,
	chains ownership.Chains,
	logger *logger.Logger,
) *HealthRecord {
	return &HealthRecord{
		owned: owned[model.HealthRecord, *model.HealthRecord]{
			store:    records,
			resolver: resolver,
			chain:    chains.HealthRecord,
			entity:   model.EntityHealthRecord,
		},
		records:  records,
		resolver: resolver,
		patients: chains.Patient,
		logger:   logger,
	}
}

// List returns a patient's records, newest first, optionally of one record type.
func (s *HealthRecord) List(ctx context.Context, userID, patientID string, recordType model.RecordType) ([]model.HealthRecord, error) {
	if _, err := s.patient(ctx, userID, patientID); err != nil {
		return nil, err
	}

	filter := model.Filter{model.Eq(model.FieldPatientID, patientID)}
	if recordType != "" {
		filter = append(filter, model.Eq(model.FieldRecordType, recordType))
	}

	records, err := s.records.Find(ctx, filter, model.Desc(model.FieldCreatedAt))
	if err != nil {
		return nil, fmt.Errorf("failed to list health records: %w", err)
	}
	return records, nil
}

func (s *HealthRecord) Create(ctx context.Context, userID string, in model.HealthRecordCreate) (model.HealthRecord, error) {
	if _, err := s.patient(ctx, userID, in.PatientID); err != nil {
		return model.HealthRecord{}, err
	}

	record, err := s.records.Insert(ctx, in.HealthRecord())
	if err != nil {
		s.logger.Error("HealthRecord service: failed to create record",
			"patient_id", in.PatientID,
			"error", err.Error())
		return model.HealthRecord{}, fmt.Errorf("failed to create health record: %w", err)
	}

	s.logger.Info("HealthRecord service: record created",
		"patient_id", in.PatientID,
		"record_id", record.ID,
		"record_type", record.RecordType)

	return record, nil
}

func (s *HealthRecord) Get(ctx context.Context, userID, id string) (model.HealthRecord, error) {
	return s.get(ctx, userID, id)
}

func (s *HealthRecord) Update(ctx context.Context, userID, id string, up model.HealthRecordUpdate) (model.HealthRecord, error) {
	return s.update(ctx, userID, id, up.Fields())
}

func (s *HealthRecord) Delete(ctx context.Context, userID, id string) error {
	return s.delete(ctx, userID, id)
}

// Trends extracts the metric series from every record of the patient, oldest first.
func (s *HealthRecord) Trends(ctx context.Context, userID, patientID, metric string) (model.TrendSeries, error) {
	if _, err := s.patient(ctx, userID, patientID); err != nil {
		return model.TrendSeries{}, err
	}

	records, err := s.records.Find(ctx,
		model.Filter{model.Eq(model.FieldPatientID, patientID)},
		model.Asc(model.FieldCreatedAt),
	)
	if err != nil {
		return model.TrendSeries{}, fmt.Errorf("failed to list health records: %w", err)
	}

	points := trend.Extract(records, metric)
	s.logger.Debug("HealthRecord service: trend extracted",
		"patient_id", patientID,
		"metric", metric,
		"records", len(records),
		"points", len(points))

	return model.TrendSeries{PatientID: patientID, Metric: metric, Trends: points}, nil
}

func (s *HealthRecord) patient(ctx context.Context, userID, patientID string) (model.Patient, error) {
	return parent[model.Patient](ctx, s.resolver, s.patients, model.EntityPatient, patientID, userID)
}
