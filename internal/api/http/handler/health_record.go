package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/validation"
)

// HealthRecordService is the health record use cases the handler needs.
type HealthRecordService interface {
	List(ctx context.Context, userID, patientID string, recordType model.RecordType) ([]model.HealthRecord, error)
	Create(ctx context.Context, userID string, in model.HealthRecordCreate) (model.HealthRecord, error)
	Get(ctx context.Context, userID, id string) (model.HealthRecord, error)
	Update(ctx context.Context, userID, id string, up model.HealthRecordUpdate) (model.HealthRecord, error)
	Delete(ctx context.Context, userID, id string) error
	Trends(ctx context.Context, userID, patientID, metric string) (model.TrendSeries, error)
}

// HealthRecord serves /health-records.
type HealthRecord struct {
	records        HealthRecordService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewHealthRecord(records HealthRecordService, contextManager model.ContextManager, logger *logger.Logger) *HealthRecord {
	return &HealthRecord{records: records, contextManager: contextManager, logger: logger}
}

func (h *HealthRecord) List(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	patientID, err := queryID(c, "patientId", model.EntityPatient)
	if err != nil {
		return err
	}

	recordType := model.RecordType(c.QueryParam("recordType"))
	if recordType != "" && !recordType.Valid() {
		names := make([]string, len(model.RecordTypes))
		for i, t := range model.RecordTypes {
			names[i] = string(t)
		}
		return model.NewValidationError("recordType", "recordType must be one of: %s", strings.Join(names, ", "))
	}

	records, err := h.records.List(c.Request().Context(), userID, patientID, recordType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}

func (h *HealthRecord) Create(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	in, err := validation.ParseHealthRecordCreate(raw)
	if err != nil {
		return err
	}

	record, err := h.records.Create(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, record)
}

func (h *HealthRecord) Trends(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	patientID, err := queryID(c, "patientId", model.EntityPatient)
	if err != nil {
		return err
	}
	metric := c.QueryParam("metric")
	if metric == "" {
		return model.NewValidationError("metric", "metric is required")
	}

	series, err := h.records.Trends(c.Request().Context(), userID, patientID, metric)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, series)
}

func (h *HealthRecord) Get(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityHealthRecord)
	if err != nil {
		return err
	}

	record, err := h.records.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

func (h *HealthRecord) Update(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	up, err := validation.ParseHealthRecordUpdate(raw)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityHealthRecord)
	if err != nil {
		return err
	}

	record, err := h.records.Update(c.Request().Context(), userID, id, up)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

func (h *HealthRecord) Delete(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityHealthRecord)
	if err != nil {
		return err
	}

	if err := h.records.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return deleted(c, model.EntityHealthRecord)
}
