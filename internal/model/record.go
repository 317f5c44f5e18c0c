package model

import (
	"slices"
	"time"
)

// RecordType enumerates the openEHR archetypes a health record may carry.
type RecordType string

const (
	// RecordTypeLabTest is a laboratory test result.
	RecordTypeLabTest RecordType = "openEHR-EHR-OBSERVATION.lab_test.v1"
	// RecordTypeVitalSigns is a set of vital sign observations.
	RecordTypeVitalSigns RecordType = "openEHR-EHR-OBSERVATION.vital_signs.v2"
	// RecordTypeProblemDiagnosis is a problem or diagnosis evaluation.
	RecordTypeProblemDiagnosis RecordType = "openEHR-EHR-EVALUATION.problem_diagnosis.v1"
	// RecordTypeMedicationOrder is a medication order instruction.
	RecordTypeMedicationOrder RecordType = "openEHR-EHR-INSTRUCTION.medication_order.v1"
	// RecordTypeMedicationAction is a medication administration action.
	RecordTypeMedicationAction RecordType = "openEHR-EHR-ACTION.medication.v1"
	// RecordTypeClinicalSynopsis is a free-form clinical summary.
	RecordTypeClinicalSynopsis RecordType = "openEHR-EHR-EVALUATION.clinical_synopsis.v1"
)

// RecordTypes lists the accepted record types.
var RecordTypes = []RecordType{
	RecordTypeLabTest,
	RecordTypeVitalSigns,
	RecordTypeProblemDiagnosis,
	RecordTypeMedicationOrder,
	RecordTypeMedicationAction,
	RecordTypeClinicalSynopsis,
}

// Valid reports whether t belongs to the vocabulary.
func (t RecordType) Valid() bool {
	return slices.Contains(RecordTypes, t)
}

// DefaultTags are suggested to clients; any tag is accepted.
var DefaultTags = []string{
	"prescription",
	"lab_report",
	"scan_result",
	"discharge_summary",
	"consultation",
	"medication",
	"symptom",
	"vital_signs",
}

// HealthRecord is owned by exactly one patient. Data has no fixed schema.
type HealthRecord struct {
	Meta                    `bson:",inline"`
	PatientID               string         `bson:"patientId" json:"patientId"`
	RecordType              RecordType     `bson:"recordType" json:"recordType"`
	Data                    map[string]any `bson:"data" json:"data"`
	Tags                    []string       `bson:"tags" json:"tags"`
	Source                  string         `bson:"source" json:"source"`
	DocumentPath            string         `bson:"documentPath" json:"documentPath"`
	HospitalSystemName      string         `bson:"hospitalSystemName" json:"hospitalSystemName"`
	HospitalIdentifierType  string         `bson:"hospitalIdentifierType" json:"hospitalIdentifierType"`
	HospitalIdentifierValue string         `bson:"hospitalIdentifierValue" json:"hospitalIdentifierValue"`
}

func (r *HealthRecord) Ref(field string) string {
	if field == FieldPatientID {
		return r.PatientID
	}
	return ""
}

// HealthRecordCreate is the canonical payload for a new health record.
type HealthRecordCreate struct {
	PatientID               string         `mapstructure:"patientId"`
	RecordType              RecordType     `mapstructure:"recordType"`
	Data                    map[string]any `mapstructure:"data"`
	Tags                    []string       `mapstructure:"tags"`
	Source                  string         `mapstructure:"source"`
	DocumentPath            string         `mapstructure:"documentPath"`
	HospitalSystemName      string         `mapstructure:"hospitalSystemName"`
	HospitalIdentifierType  string         `mapstructure:"hospitalIdentifierType"`
	HospitalIdentifierValue string         `mapstructure:"hospitalIdentifierValue"`
}

func (c HealthRecordCreate) HealthRecord() HealthRecord {
	return HealthRecord{
		PatientID:               c.PatientID,
		RecordType:              c.RecordType,
		Data:                    c.Data,
		Tags:                    c.Tags,
		Source:                  c.Source,
		DocumentPath:            c.DocumentPath,
		HospitalSystemName:      c.HospitalSystemName,
		HospitalIdentifierType:  c.HospitalIdentifierType,
		HospitalIdentifierValue: c.HospitalIdentifierValue,
	}
}

// HealthRecordUpdate carries the supplied fields of a health record update.
type HealthRecordUpdate struct {
	RecordType              *RecordType     `mapstructure:"recordType"`
	Data                    *map[string]any `mapstructure:"data"`
	Tags                    *[]string       `mapstructure:"tags"`
	Source                  *string         `mapstructure:"source"`
	DocumentPath            *string         `mapstructure:"documentPath"`
	HospitalSystemName      *string         `mapstructure:"hospitalSystemName"`
	HospitalIdentifierType  *string         `mapstructure:"hospitalIdentifierType"`
	HospitalIdentifierValue *string         `mapstructure:"hospitalIdentifierValue"`
}

func (u HealthRecordUpdate) Fields() Fields {
	f := Fields{}
	put(f, FieldRecordType, u.RecordType)
	put(f, "data", u.Data)
	put(f, "tags", u.Tags)
	put(f, "source", u.Source)
	put(f, "documentPath", u.DocumentPath)
	put(f, "hospitalSystemName", u.HospitalSystemName)
	put(f, "hospitalIdentifierType", u.HospitalIdentifierType)
	put(f, "hospitalIdentifierValue", u.HospitalIdentifierValue)
	return f
}

// TrendPoint is one numeric observation of a metric.
type TrendPoint struct {
	Date     time.Time `json:"date"`
	Value    float64   `json:"value"`
	RecordID string    `json:"recordId"`
	Source   string    `json:"source"`
}

// TrendSeries is the response of a trend query.
type TrendSeries struct {
	PatientID string       `json:"patientId"`
	Metric    string       `json:"metric"`
	Trends    []TrendPoint `json:"trends"`
}
