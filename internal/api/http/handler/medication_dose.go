package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/validation"
)

// MedicationDoseService is the dose use cases the handler needs.
type MedicationDoseService interface {
	List(ctx context.Context, userID, medicationID string) ([]model.MedicationDose, error)
	Create(ctx context.Context, userID, medicationID string, in model.MedicationDoseCreate) (model.MedicationDose, error)
	Get(ctx context.Context, userID, id string) (model.MedicationDose, error)
	Update(ctx context.Context, userID, id string, up model.MedicationDoseUpdate) (model.MedicationDose, error)
	Delete(ctx context.Context, userID, id string) error
}

// MedicationDose serves doses both under their medication and by their own id.
type MedicationDose struct {
	doses          MedicationDoseService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewMedicationDose(doses MedicationDoseService, contextManager model.ContextManager, logger *logger.Logger) *MedicationDose {
	return &MedicationDose{doses: doses, contextManager: contextManager, logger: logger}
}

// List answers GET /medications/:id/doses.
func (h *MedicationDose) List(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	medicationID, err := pathID(c, model.EntityMedication)
	if err != nil {
		return err
	}

	doses, err := h.doses.List(c.Request().Context(), userID, medicationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doses)
}

// Create answers POST /medications/:id/doses.
func (h *MedicationDose) Create(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	in, err := validation.ParseMedicationDoseCreate(raw)
	if err != nil {
		return err
	}
	medicationID, err := pathID(c, model.EntityMedication)
	if err != nil {
		return err
	}

	dose, err := h.doses.Create(c.Request().Context(), userID, medicationID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dose)
}

func (h *MedicationDose) Get(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityMedicationDose)
	if err != nil {
		return err
	}

	dose, err := h.doses.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dose)
}

func (h *MedicationDose) Update(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	up, err := validation.ParseMedicationDoseUpdate(raw)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityMedicationDose)
	if err != nil {
		return err
	}

	dose, err := h.doses.Update(c.Request().Context(), userID, id, up)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dose)
}

func (h *MedicationDose) Delete(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityMedicationDose)
	if err != nil {
		return err
	}

	if err := h.doses.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return deleted(c, model.EntityMedicationDose)
}
