package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/validation"
)

// MedicationReminderService is the reminder use cases the handler needs.
type MedicationReminderService interface {
	List(ctx context.Context, userID, medicationID string) ([]model.MedicationReminder, error)
	Create(ctx context.Context, userID, medicationID string, in model.MedicationReminderCreate) (model.MedicationReminder, error)
	Get(ctx context.Context, userID, id string) (model.MedicationReminder, error)
	Update(ctx context.Context, userID, id string, up model.MedicationReminderUpdate) (model.MedicationReminder, error)
	Delete(ctx context.Context, userID, id string) error
}

// MedicationReminder serves reminders both under their medication and by their own id.
type MedicationReminder struct {
	reminders      MedicationReminderService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewMedicationReminder(reminders MedicationReminderService, contextManager model.ContextManager, logger *logger.Logger) *MedicationReminder {
	return &MedicationReminder{reminders: reminders, contextManager: contextManager, logger: logger}
}

// List answers GET /medications/:id/reminders.
func (h *MedicationReminder) List(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	medicationID, err := pathID(c, model.EntityMedication)
	if err != nil {
		return err
	}

	reminders, err := h.reminders.List(c.Request().Context(), userID, medicationID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reminders)
}

// Create answers POST /medications/:id/reminders.
func (h *MedicationReminder) Create(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	in, err := validation.ParseMedicationReminderCreate(raw)
	if err != nil {
		return err
	}
	medicationID, err := pathID(c, model.EntityMedication)
	if err != nil {
		return err
	}

	reminder, err := h.reminders.Create(c.Request().Context(), userID, medicationID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reminder)
}

func (h *MedicationReminder) Get(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityMedicationReminder)
	if err != nil {
		return err
	}

	reminder, err := h.reminders.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reminder)
}

func (h *MedicationReminder) Update(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	up, err := validation.ParseMedicationReminderUpdate(raw)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityMedicationReminder)
	if err != nil {
		return err
	}

	reminder, err := h.reminders.Update(c.Request().Context(), userID, id, up)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reminder)
}

func (h *MedicationReminder) Delete(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityMedicationReminder)
	if err != nil {
		return err
	}

	if err := h.reminders.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return deleted(c, model.EntityMedicationReminder)
}
