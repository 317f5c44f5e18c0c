package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/validation"
)

// MedicationService is the medication use cases the handler needs.
type MedicationService interface {
	List(ctx context.Context, userID, patientID string, isActive *bool) ([]model.Medication, error)
	Create(ctx context.Context, userID string, in model.MedicationCreate) (model.Medication, error)
	Get(ctx context.Context, userID, id string) (model.Medication, error)
	Update(ctx context.Context, userID, id string, up model.MedicationUpdate) (model.Medication, error)
	Delete(ctx context.Context, userID, id string) error
}

// Medication serves /medications.
type Medication struct {
	medications    MedicationService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewMedication(medications MedicationService, contextManager model.ContextManager, logger *logger.Logger) *Medication {
	return &Medication{medications: medications, contextManager: contextManager, logger: logger}
}

func (h *Medication) List(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	patientID, err := queryID(c, "patientId", model.EntityPatient)
	if err != nil {
		return err
	}

	var isActive *bool
	if v := c.QueryParam("isActive"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return model.NewValidationError("isActive", "isActive must be a boolean")
		}
		isActive = &b
	}

	medications, err := h.medications.List(c.Request().Context(), userID, patientID, isActive)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, medications)
}

func (h *Medication) Create(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	in, err := validation.ParseMedicationCreate(raw)
	if err != nil {
		return err
	}

	medication, err := h.medications.Create(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, medication)
}

func (h *Medication) Get(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityMedication)
	if err != nil {
		return err
	}

	medication, err := h.medications.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, medication)
}

func (h *Medication) Update(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	up, err := validation.ParseMedicationUpdate(raw)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityMedication)
	if err != nil {
		return err
	}

	medication, err := h.medications.Update(c.Request().Context(), userID, id, up)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, medication)
}

func (h *Medication) Delete(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityMedication)
	if err != nil {
		return err
	}

	if err := h.medications.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return deleted(c, model.EntityMedication)
}
