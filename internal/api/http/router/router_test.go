package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	httpctx "github.com/dtroode/healthnest-server/internal/api/http/context"
	"github.com/dtroode/healthnest-server/internal/api/http/handler"
	"github.com/dtroode/healthnest-server/internal/model"
	"github.com/dtroode/healthnest-server/internal/ownership"
	"github.com/dtroode/healthnest-server/internal/repository/memory"
	"github.com/dtroode/healthnest-server/internal/service"
	"github.com/dtroode/healthnest-server/internal/store"
	"github.com/dtroode/healthnest-server/internal/testutil"
	"github.com/dtroode/healthnest-server/internal/token"
)

const unknownID = "64b7f0c2a1b2c3d4e5f60718"

type api struct {
	t      *testing.T
	e      *echo.Echo
	stores *store.Stores
}

func newAPI(t *testing.T) *api {
	t.Helper()

	db := memory.NewDatabase()
	stores := store.Memory(db)
	log := testutil.MakeNoopLogger()
	resolver := ownership.NewResolver(log)
	chains := ownership.NewChains(
		stores.Patients,
		stores.HealthRecords,
		stores.Medications,
		stores.MedicationDoses,
		stores.MedicationReminders,
	)

	services := Services{
		Users:               service.NewUser(stores.Users, token.NewJWT("test-secret", time.Hour), bcrypt.MinCost, log),
		Patients:            service.NewPatient(stores.Patients, resolver, chains, log),
		HealthRecords:       service.NewHealthRecord(stores.HealthRecords, resolver, chains, log),
		Medications:         service.NewMedication(stores.Medications, resolver, chains, log),
		MedicationDoses:     service.NewMedicationDose(stores.MedicationDoses, resolver, chains, log),
		MedicationReminders: service.NewMedicationReminder(stores.MedicationReminders, resolver, chains, log),
		Documents:           service.NewDocument(nil, log),
	}

	e := New(services, db, httpctx.NewManager(), "1M", log).Register()
	return &api{t: t, e: e, stores: stores}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func (a *api) signup(email string) (string, string) {
	a.t.Helper()

	rec := a.do(http.MethodPost, "/api/auth/signup", "", map[string]any{
		"firstName": "Asha",
		"email":     email,
		"password":  "correct horse battery",
	})
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var res model.AuthResult
	decode(a.t, rec, &res)
	return res.User.ID, res.AccessToken
}

func (a *api) createPatient(token string, extra map[string]any) model.Patient {
	a.t.Helper()

	body := map[string]any{"firstName": "Ravi", "gender": "male", "dateOfBirth": "1961-03-14"}
	for k, v := range extra {
		body[k] = v
	}
	rec := a.do(http.MethodPost, "/api/patients", token, body)
	require.Equal(a.t, http.StatusCreated, rec.Code, rec.Body.String())

	var p model.Patient
	decode(a.t, rec, &p)
	return p
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code, message string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	var body handler.ErrorResponse
	decode(t, rec, &body)
	assert.Equal(t, code, body.Code)
	if message != "" {
		assert.Equal(t, message, body.Error)
	}
}

func TestRouter_AuthFlow(t *testing.T) {
	a := newAPI(t)

	assertError(t, a.do(http.MethodGet, "/api/users/me", "", nil), http.StatusUnauthorized, handler.CodeUnauthenticated, "Unauthorized")
	assertError(t, a.do(http.MethodGet, "/api/users/me", "not-a-jwt", nil), http.StatusUnauthorized, handler.CodeUnauthenticated, "")

	userID, tok := a.signup("asha@example.com")

	assertError(t,
		a.do(http.MethodPost, "/api/auth/signup", "", map[string]any{"firstName": "A", "email": "asha@example.com", "password": "another password"}),
		http.StatusConflict, handler.CodeDuplicateEntity, "user already exists")

	assertError(t,
		a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "asha@example.com", "password": "wrong password"}),
		http.StatusUnauthorized, handler.CodeUnauthenticated, "")

	rec := a.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "asha@example.com", "password": "correct horse battery"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login model.AuthResult
	decode(t, rec, &login)
	assert.Equal(t, userID, login.User.ID)
	assert.NotEmpty(t, login.AccessToken)

	rec = a.do(http.MethodGet, "/api/users/me", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = a.do(http.MethodPut, "/api/users/me", tok, map[string]any{"lastName": "Rao", "mobileNumbers": []any{map[string]any{"countryCode": "+91", "number": "9876543210"}}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var me model.User
	decode(t, rec, &me)
	assert.Equal(t, "Rao", me.LastName)
	assert.Equal(t, "Asha", me.FirstName)

	rec = a.do(http.MethodPost, "/api/users/onboarding/complete", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &me)
	assert.True(t, me.OnboardingCompleted)
}

func TestRouter_PatientValidationHappensBeforeWrites(t *testing.T) {
	a := newAPI(t)
	_, tok := a.signup("asha@example.com")

	rec := a.do(http.MethodPost, "/api/patients", tok, map[string]any{"firstName": "Ravi", "gender": "male"})
	assertError(t, rec, http.StatusBadRequest, handler.CodeValidation, "dateOfBirth is required")

	rec = a.do(http.MethodGet, "/api/patients", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRouter_IdentifierAndOwnershipErrors(t *testing.T) {
	a := newAPI(t)
	_, owner := a.signup("owner@example.com")
	_, stranger := a.signup("stranger@example.com")
	p := a.createPatient(owner, nil)

	assertError(t, a.do(http.MethodGet, "/api/patients/not-an-id", owner, nil), http.StatusBadRequest, handler.CodeInvalidIdentifier, "invalid patient id")
	assertError(t, a.do(http.MethodGet, "/api/patients/"+unknownID, owner, nil), http.StatusNotFound, handler.CodeNotFound, "patient not found")

	rec := a.do(http.MethodGet, "/api/patients/"+p.ID, stranger, nil)
	assertError(t, rec, http.StatusForbidden, handler.CodeForbidden, "access to this patient is forbidden")
	assert.NotContains(t, rec.Body.String(), "Ravi")

	assertError(t, a.do(http.MethodPut, "/api/patients/"+p.ID, stranger, map[string]any{"firstName": "Mallory"}), http.StatusForbidden, handler.CodeForbidden, "")
	assertError(t, a.do(http.MethodDelete, "/api/patients/"+p.ID, stranger, nil), http.StatusForbidden, handler.CodeForbidden, "")

	rec = a.do(http.MethodGet, "/api/patients/"+p.ID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Patient
	decode(t, rec, &got)
	assert.Equal(t, "Ravi", got.FirstName)

	assertError(t, a.do(http.MethodGet, "/api/health-records", owner, nil), http.StatusBadRequest, handler.CodeValidation, "patientId is required")
	assertError(t, a.do(http.MethodGet, "/api/health-records?patientId=xyz", owner, nil), http.StatusBadRequest, handler.CodeInvalidIdentifier, "")
	assertError(t, a.do(http.MethodPost, "/api/health-records", owner, map[string]any{
		"patientId": "xyz", "recordType": string(model.RecordTypeVitalSigns), "data": map[string]any{}, "source": "manual",
	}), http.StatusBadRequest, handler.CodeInvalidIdentifier, "invalid patient id")
}

func TestRouter_TrendScenario(t *testing.T) {
	a := newAPI(t)
	_, owner := a.signup("owner@example.com")
	_, stranger := a.signup("stranger@example.com")
	p := a.createPatient(owner, nil)

	rec := a.do(http.MethodPost, "/api/health-records", owner, map[string]any{
		"patientId":  p.ID,
		"recordType": string(model.RecordTypeVitalSigns),
		"data":       map[string]any{"weight": 70},
		"source":     "clinic",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var r1 model.HealthRecord
	decode(t, rec, &r1)

	rec = a.do(http.MethodPost, "/api/health-records", owner, map[string]any{
		"patientId":  p.ID,
		"recordType": string(model.RecordTypeVitalSigns),
		"data":       map[string]any{"pulse": 72},
		"source":     "wearable",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(http.MethodGet, "/api/health-records/trends?patientId="+p.ID+"&metric=weight", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var series model.TrendSeries
	decode(t, rec, &series)
	assert.Equal(t, p.ID, series.PatientID)
	assert.Equal(t, "weight", series.Metric)
	require.Len(t, series.Trends, 1)
	assert.Equal(t, 70.0, series.Trends[0].Value)
	assert.Equal(t, r1.ID, series.Trends[0].RecordID)
	assert.Equal(t, "clinic", series.Trends[0].Source)

	rec = a.do(http.MethodGet, "/api/health-records/trends?patientId="+p.ID+"&metric=weight", stranger, nil)
	assertError(t, rec, http.StatusForbidden, handler.CodeForbidden, "")
	assert.NotContains(t, rec.Body.String(), "70")

	assertError(t, a.do(http.MethodGet, "/api/health-records/trends?patientId="+p.ID, owner, nil), http.StatusBadRequest, handler.CodeValidation, "metric is required")

	rec = a.do(http.MethodGet, "/api/health-records?patientId="+p.ID+"&recordType="+string(model.RecordTypeVitalSigns), owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []model.HealthRecord
	decode(t, rec, &records)
	assert.Len(t, records, 2)

	rec = a.do(http.MethodGet, "/api/health-records?patientId="+p.ID+"&recordType="+string(model.RecordTypeLabTest), owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &records)
	assert.Empty(t, records)
}

func TestRouter_DeleteDoesNotCascade(t *testing.T) {
	a := newAPI(t)
	_, owner := a.signup("owner@example.com")
	p := a.createPatient(owner, nil)

	rec := a.do(http.MethodPost, "/api/health-records", owner, map[string]any{
		"patientId":  p.ID,
		"recordType": string(model.RecordTypeLabTest),
		"data":       map[string]any{"hba1c": "6.1%"},
		"source":     "lab",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var record model.HealthRecord
	decode(t, rec, &record)

	rec = a.do(http.MethodDelete, "/api/patients/"+p.ID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Patient deleted successfully"}`, rec.Body.String())

	assertError(t, a.do(http.MethodGet, "/api/health-records?patientId="+p.ID, owner, nil), http.StatusNotFound, handler.CodeNotFound, "patient not found")
	assertError(t, a.do(http.MethodGet, "/api/health-records/"+record.ID, owner, nil), http.StatusNotFound, handler.CodeNotFound, "health record not found")

	orphan, err := a.stores.HealthRecords.GetByID(t.Context(), record.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, orphan.PatientID)
}

func TestRouter_MedicationTree(t *testing.T) {
	a := newAPI(t)
	_, owner := a.signup("owner@example.com")
	_, stranger := a.signup("stranger@example.com")
	p := a.createPatient(owner, nil)

	rec := a.do(http.MethodPost, "/api/medications", owner, map[string]any{
		"patientId": p.ID,
		"name":      "Metformin",
		"dosage":    "500 mg",
		"frequency": "twice daily",
		"route":     "oral",
		"startDate": "2024-02-01",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var med model.Medication
	decode(t, rec, &med)
	assert.True(t, med.IsActive)

	rec = a.do(http.MethodGet, "/api/medications?patientId="+p.ID+"&isActive=false", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assertError(t, a.do(http.MethodGet, "/api/medications?patientId="+p.ID+"&isActive=maybe", owner, nil), http.StatusBadRequest, handler.CodeValidation, "isActive must be a boolean")

	rec = a.do(http.MethodPost, "/api/medications/"+med.ID+"/doses", owner, map[string]any{"scheduledTime": "2024-02-01T08:00:00Z"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var dose model.MedicationDose
	decode(t, rec, &dose)
	assert.Equal(t, med.ID, dose.MedicationID)

	assertError(t, a.do(http.MethodGet, "/api/medication-doses/"+dose.ID, stranger, nil), http.StatusForbidden, handler.CodeForbidden, "access to this medication dose is forbidden")
	assertError(t, a.do(http.MethodPost, "/api/medications/"+med.ID+"/doses", stranger, map[string]any{"scheduledTime": "2024-02-01T20:00:00Z"}), http.StatusForbidden, handler.CodeForbidden, "access to this medication is forbidden")

	rec = a.do(http.MethodPut, "/api/medication-doses/"+dose.ID, owner, map[string]any{"isTaken": true, "takenTime": "2024-02-01T08:05:00Z"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &dose)
	assert.True(t, dose.IsTaken)

	rec = a.do(http.MethodPost, "/api/medications/"+med.ID+"/reminders", owner, map[string]any{
		"title":         "Morning dose",
		"scheduledTime": "2024-02-01T07:55:00Z",
		"daysOfWeek":    []any{1, 3, 5},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var reminder model.MedicationReminder
	decode(t, rec, &reminder)
	assert.True(t, reminder.IsEnabled)
	assert.Equal(t, []int{1, 3, 5}, reminder.DaysOfWeek)

	rec = a.do(http.MethodGet, "/api/medications/"+med.ID+"/reminders", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reminders []model.MedicationReminder
	decode(t, rec, &reminders)
	assert.Len(t, reminders, 1)

	rec = a.do(http.MethodDelete, "/api/medication-reminders/"+reminder.ID, owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Medication reminder deleted successfully"}`, rec.Body.String())

	rec = a.do(http.MethodGet, "/api/medications/"+med.ID+"/doses", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doses []model.MedicationDose
	decode(t, rec, &doses)
	assert.Len(t, doses, 1)
}

func TestRouter_PatientSearch(t *testing.T) {
	a := newAPI(t)
	_, owner := a.signup("owner@example.com")
	p := a.createPatient(owner, map[string]any{
		"hospitalIdentifiers": []any{map[string]any{"systemName": "AIIMS", "identifierType": "MRN", "value": "A-1001"}},
		"mobileNumbers":       []any{map[string]any{"countryCode": "+91", "number": "9876543210"}},
	})
	a.createPatient(owner, nil)

	rec := a.do(http.MethodGet, "/api/patients/search?hospitalSystem=AIIMS&identifierType=MRN&identifierValue=A-1001", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var found []model.Patient
	decode(t, rec, &found)
	require.Len(t, found, 1)
	assert.Equal(t, p.ID, found[0].ID)

	rec = a.do(http.MethodGet, "/api/patients/search?mobileNumber=9876543210", owner, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &found)
	require.Len(t, found, 1)

	assertError(t, a.do(http.MethodGet, "/api/patients/search?hospitalSystem=AIIMS", owner, nil), http.StatusBadRequest, handler.CodeValidation, "")
}

func TestRouter_PublicAndFallbackRoutes(t *testing.T) {
	a := newAPI(t)
	_, tok := a.signup("owner@example.com")

	rec := a.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	assertError(t, a.do(http.MethodPost, "/api/documents/upload", tok, nil), http.StatusBadRequest, handler.CodeValidation, "file is required")
	assertError(t, a.do(http.MethodGet, "/api/unknown", tok, nil), http.StatusNotFound, "NOT_FOUND", "")
}
