package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/validation"
)

// PatientService is the patient use cases the handler needs.
type PatientService interface {
	List(ctx context.Context, userID string) ([]model.Patient, error)
	Create(ctx context.Context, userID string, in model.PatientCreate) (model.Patient, error)
	Get(ctx context.Context, userID, id string) (model.Patient, error)
	Update(ctx context.Context, userID, id string, up model.PatientUpdate) (model.Patient, error)
	Delete(ctx context.Context, userID, id string) error
	Search(ctx context.Context, userID string, q model.PatientSearch) ([]model.Patient, error)
}

// Patient serves /patients.
type Patient struct {
	patients       PatientService
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewPatient(patients PatientService, contextManager model.ContextManager, logger *logger.Logger) *Patient {
	return &Patient{patients: patients, contextManager: contextManager, logger: logger}
}

func (h *Patient) List(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}

	patients, err := h.patients.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Patient) Create(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	in, err := validation.ParsePatientCreate(raw)
	if err != nil {
		return err
	}

	patient, err := h.patients.Create(c.Request().Context(), userID, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, patient)
}

// Search reads its criteria from the query string.
func (h *Patient) Search(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}

	raw := map[string]any{}
	for _, key := range []string{"hospitalSystem", "identifierType", "identifierValue", "mobileNumber"} {
		if v := c.QueryParam(key); v != "" {
			raw[key] = v
		}
	}
	q, err := validation.ParsePatientSearch(raw)
	if err != nil {
		return err
	}

	patients, err := h.patients.Search(c.Request().Context(), userID, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patients)
}

func (h *Patient) Get(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityPatient)
	if err != nil {
		return err
	}

	patient, err := h.patients.Get(c.Request().Context(), userID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

func (h *Patient) Update(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	raw, err := readBody(c)
	if err != nil {
		return err
	}
	up, err := validation.ParsePatientUpdate(raw)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityPatient)
	if err != nil {
		return err
	}

	patient, err := h.patients.Update(c.Request().Context(), userID, id, up)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

func (h *Patient) Delete(c echo.Context) error {
	userID, err := currentUser(c, h.contextManager)
	if err != nil {
		return err
	}
	id, err := pathID(c, model.EntityPatient)
	if err != nil {
		return err
	}

	if err := h.patients.Delete(c.Request().Context(), userID, id); err != nil {
		return err
	}
	return deleted(c, model.EntityPatient)
}
