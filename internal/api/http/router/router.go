package router

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/dtroode/healthnest-server/internal/api/http/handler"
	"github.com/dtroode/healthnest-server/internal/api/http/middleware"
	"github.com/dtroode/healthnest-server/internal/logger"
	"github.com/dtroode/healthnest-server/internal/model"
)

// Prefix is the path prefix of every REST route.
const Prefix = "/api"

// Accounts serves the account routes and authenticates every other request.
type Accounts interface {
	handler.UserService
	middleware.Authenticator
}

// Services groups the use cases the REST surface exposes.
type Services struct {
	Users               Accounts
	Patients            handler.PatientService
	HealthRecords       handler.HealthRecordService
	Medications         handler.MedicationService
	MedicationDoses     handler.MedicationDoseService
	MedicationReminders handler.MedicationReminderService
	Documents           handler.DocumentService
}

// Router builds the echo instance serving the REST API.
type Router struct {
	services       Services
	pinger         model.Pinger
	contextManager model.ContextManager
	bodyLimit      string
	logger         *logger.Logger
}

// New collects the services the router exposes.
func New(
	services Services,
	pinger model.Pinger,
	contextManager model.ContextManager,
	bodyLimit string,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		pinger:         pinger,
		contextManager: contextManager,
		bodyLimit:      bodyLimit,
		logger:         logger,
	}
}

// Register wires middleware and every route. Routes other than signup, login
// and health require a bearer token.
func (r *Router) Register() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(r.logger)

	logging := middleware.NewLogging(r.logger)
	e.Use(middleware.RequestID)
	e.Use(logging.Handle)
	e.Use(echomw.Recover())
	if r.bodyLimit != "" {
		e.Use(echomw.BodyLimit(r.bodyLimit))
	}

	auth := middleware.NewAuthenticate(r.services.Users, r.contextManager, r.logger).Handle
	api := e.Group(Prefix)

	users := handler.NewUser(r.services.Users, r.contextManager, r.logger)
	api.POST("/auth/signup", users.Signup)
	api.POST("/auth/login", users.Login)
	api.GET("/users/me", users.Me, auth)
	api.PUT("/users/me", users.UpdateMe, auth)
	api.POST("/users/onboarding/complete", users.CompleteOnboarding, auth)

	patients := handler.NewPatient(r.services.Patients, r.contextManager, r.logger)
	api.GET("/patients", patients.List, auth)
	api.POST("/patients", patients.Create, auth)
	api.GET("/patients/search", patients.Search, auth)
	api.GET("/patients/:id", patients.Get, auth)
	api.PUT("/patients/:id", patients.Update, auth)
	api.DELETE("/patients/:id", patients.Delete, auth)

	records := handler.NewHealthRecord(r.services.HealthRecords, r.contextManager, r.logger)
	api.GET("/health-records", records.List, auth)
	api.POST("/health-records", records.Create, auth)
	api.GET("/health-records/trends", records.Trends, auth)
	api.GET("/health-records/:id", records.Get, auth)
	api.PUT("/health-records/:id", records.Update, auth)
	api.DELETE("/health-records/:id", records.Delete, auth)

	medications := handler.NewMedication(r.services.Medications, r.contextManager, r.logger)
	doses := handler.NewMedicationDose(r.services.MedicationDoses, r.contextManager, r.logger)
	reminders := handler.NewMedicationReminder(r.services.MedicationReminders, r.contextManager, r.logger)
	api.GET("/medications", medications.List, auth)
	api.POST("/medications", medications.Create, auth)
	api.GET("/medications/:id", medications.Get, auth)
	api.PUT("/medications/:id", medications.Update, auth)
	api.DELETE("/medications/:id", medications.Delete, auth)
	api.GET("/medications/:id/doses", doses.List, auth)
	api.POST("/medications/:id/doses", doses.Create, auth)
	api.GET("/medications/:id/reminders", reminders.List, auth)
	api.POST("/medications/:id/reminders", reminders.Create, auth)

	api.GET("/medication-doses/:id", doses.Get, auth)
	api.PUT("/medication-doses/:id", doses.Update, auth)
	api.DELETE("/medication-doses/:id", doses.Delete, auth)

	api.GET("/medication-reminders/:id", reminders.Get, auth)
	api.PUT("/medication-reminders/:id", reminders.Update, auth)
	api.DELETE("/medication-reminders/:id", reminders.Delete, auth)

	documents := handler.NewDocument(r.services.Documents, r.contextManager, r.logger)
	api.POST("/documents/upload", documents.Upload, auth)

	health := handler.NewHealth(r.pinger, r.logger)
	api.GET("/health", health.Check)

	return e
}
