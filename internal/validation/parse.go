package validation

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/dtroode/healthnest-server/internal/model"
)

var mobileNumber = Schema{
	{Name: "countryCode", Kind: String, Required: true},
	{Name: "number", Kind: String, Required: true},
}

var hospitalIdentifier = Schema{
	{Name: "systemName", Kind: String, Required: true},
	{Name: "identifierType", Kind: String, Required: true},
	{Name: "value", Kind: String, Required: true},
}

// SignupSchema validates POST /auth/signup.
var SignupSchema = Schema{
	{Name: "firstName", Kind: String, Required: true, Rules: "required"},
	{Name: "lastName", Kind: String},
	{Name: "email", Kind: Email, Required: true},
	{Name: "password", Kind: String, Required: true, Rules: "min=8"},
}

var LoginSchema = Schema{
	{Name: "email", Kind: Email, Required: true},
	{Name: "password", Kind: String, Required: true, Rules: "required"},
}

var UserSchema = Schema{
	{Name: "firstName", Kind: String, Rules: "required"},
	{Name: "middleName", Kind: String},
	{Name: "lastName", Kind: String},
	{Name: "title", Kind: String},
	{Name: "suffix", Kind: String},
	{Name: model.FieldEmails, Kind: Emails, Rules: "min=1"},
	{Name: model.FieldMobileNumbers, Kind: Objects, Elem: mobileNumber},
	{Name: "preferences", Kind: Object},
	{Name: model.FieldOnboardingCompleted, Kind: Bool},
}

// PatientSchema validates patient creates and updates.
var PatientSchema = Schema{
	{Name: "firstName", Kind: String, Required: true, Rules: "required"},
	{Name: "middleName", Kind: String},
	{Name: "lastName", Kind: String},
	{Name: "title", Kind: String},
	{Name: "suffix", Kind: String},
	{Name: model.FieldEmails, Kind: Emails},
	{Name: "dateOfBirth", Kind: Date, Required: true},
	{Name: "gender", Kind: String, Required: true, Rules: "required"},
	{Name: "abhaNumber", Kind: String},
	{Name: "bloodGroup", Kind: String},
	{Name: "emergencyContacts", Kind: Strings},
	{Name: "preferences", Kind: Object},
	{Name: model.FieldHospitalIdentifiers, Kind: Objects, Elem: hospitalIdentifier},
	{Name: model.FieldMobileNumbers, Kind: Objects, Elem: mobileNumber},
}

var PatientSearchSchema = Schema{
	{Name: "hospitalSystem", Kind: String},
	{Name: "identifierType", Kind: String},
	{Name: "identifierValue", Kind: String},
	{Name: "mobileNumber", Kind: String},
}

var HealthRecordSchema = Schema{
	{Name: model.FieldPatientID, Kind: String, Required: true, Rules: "required"},
	{Name: model.FieldRecordType, Kind: String, Required: true, Rules: recordTypeRule()},
	{Name: "data", Kind: Object, Required: true},
	{Name: "tags", Kind: Strings},
	{Name: "source", Kind: String, Required: true, Rules: "required"},
	{Name: "documentPath", Kind: String},
	{Name: "hospitalSystemName", Kind: String},
	{Name: "hospitalIdentifierType", Kind: String},
	{Name: "hospitalIdentifierValue", Kind: String},
}

var MedicationSchema = Schema{
	{Name: model.FieldPatientID, Kind: String, Required: true, Rules: "required"},
	{Name: "name", Kind: String, Required: true, Rules: "required"},
	{Name: "dosage", Kind: String, Required: true, Rules: "required"},
	{Name: "frequency", Kind: String, Required: true, Rules: "required"},
	{Name: "route", Kind: String, Required: true, Rules: "required"},
	{Name: model.FieldStartDate, Kind: Date, Required: true},
	{Name: "endDate", Kind: Date},
	{Name: "instructions", Kind: String},
	{Name: "prescribedBy", Kind: String},
	{Name: "source", Kind: String},
	{Name: model.FieldIsActive, Kind: Bool, Default: true},
	{Name: "tags", Kind: Strings},
}

var MedicationDoseSchema = Schema{
	{Name: model.FieldScheduledTime, Kind: Date, Required: true},
	{Name: "takenTime", Kind: Date},
	{Name: "isTaken", Kind: Bool},
	{Name: "notes", Kind: String},
}

var MedicationReminderSchema = Schema{
	{Name: "title", Kind: String, Required: true, Rules: "required"},
	{Name: "message", Kind: String},
	{Name: model.FieldScheduledTime, Kind: Date, Required: true},
	{Name: "isEnabled", Kind: Bool, Default: true},
	{Name: "frequency", Kind: String},
	{Name: "daysOfWeek", Kind: Weekdays},
}

func recordTypeRule() string {
	values := make([]string, 0, len(model.RecordTypes))
	for _, t := range model.RecordTypes {
		values = append(values, string(t))
	}
	return "oneof=" + strings.Join(values, " ")
}

func parse[T any](schema Schema, mode Mode, raw map[string]any) (T, error) {
	var out T

	fields, err := schema.Validate(raw, mode)
	if err != nil {
		return out, err
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &out,
		TagName: "mapstructure",
	})
	if err != nil {
		return out, fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(fields); err != nil {
		return out, fmt.Errorf("failed to decode fields: %w", err)
	}
	return out, nil
}

func ParseSignup(raw map[string]any) (model.SignupInput, error) {
	return parse[model.SignupInput](SignupSchema, Create, raw)
}

func ParseLogin(raw map[string]any) (model.LoginInput, error) {
	return parse[model.LoginInput](LoginSchema, Create, raw)
}

func ParseUserUpdate(raw map[string]any) (model.UserUpdate, error) {
	return parse[model.UserUpdate](UserSchema, Update, raw)
}

// ParsePatientCreate validates raw and fills defaults for absent optional fields.
func ParsePatientCreate(raw map[string]any) (model.PatientCreate, error) {
	return parse[model.PatientCreate](PatientSchema, Create, raw)
}

// ParsePatientUpdate keeps only the supplied fields.
func ParsePatientUpdate(raw map[string]any) (model.PatientUpdate, error) {
	return parse[model.PatientUpdate](PatientSchema, Update, raw)
}

// ParsePatientSearch requires either the full hospital identifier triple or a mobile number.
func ParsePatientSearch(raw map[string]any) (model.PatientSearch, error) {
	search, err := parse[model.PatientSearch](PatientSearchSchema, Update, raw)
	if err != nil {
		return search, err
	}
	if !search.ByHospitalIdentifier() && search.MobileNumber == "" {
		return search, model.NewValidationError("hospitalSystem",
			"either hospitalSystem, identifierType and identifierValue or mobileNumber is required")
	}
	return search, nil
}

func ParseHealthRecordCreate(raw map[string]any) (model.HealthRecordCreate, error) {
	return parse[model.HealthRecordCreate](HealthRecordSchema, Create, raw)
}

func ParseHealthRecordUpdate(raw map[string]any) (model.HealthRecordUpdate, error) {
	return parse[model.HealthRecordUpdate](HealthRecordSchema, Update, raw)
}

func ParseMedicationCreate(raw map[string]any) (model.MedicationCreate, error) {
	return parse[model.MedicationCreate](MedicationSchema, Create, raw)
}

func ParseMedicationUpdate(raw map[string]any) (model.MedicationUpdate, error) {
	return parse[model.MedicationUpdate](MedicationSchema, Update, raw)
}

func ParseMedicationDoseCreate(raw map[string]any) (model.MedicationDoseCreate, error) {
	return parse[model.MedicationDoseCreate](MedicationDoseSchema, Create, raw)
}

func ParseMedicationDoseUpdate(raw map[string]any) (model.MedicationDoseUpdate, error) {
	return parse[model.MedicationDoseUpdate](MedicationDoseSchema, Update, raw)
}

func ParseMedicationReminderCreate(raw map[string]any) (model.MedicationReminderCreate, error) {
	return parse[model.MedicationReminderCreate](MedicationReminderSchema, Create, raw)
}

func ParseMedicationReminderUpdate(raw map[string]any) (model.MedicationReminderUpdate, error) {
	return parse[model.MedicationReminderUpdate](MedicationReminderSchema, Update, raw)
}
