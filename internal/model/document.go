package model

import (
	"context"
	"time"
)

// Collection names.
const (
	CollectionUsers               = "users"
	CollectionPatients            = "patients"
	CollectionHealthRecords       = "health_records"
	CollectionMedications         = "medications"
	CollectionMedicationDoses     = "medication_doses"
	CollectionMedicationReminders = "medication_reminders"
)

// Document field names shared by filters, sorts and ownership chains.
const (
	FieldID                  = "id"
	FieldMongoID             = "_id"
	FieldCreatedAt           = "createdAt"
	FieldUpdatedAt           = "updatedAt"
	FieldOwnerUserID         = "ownerUserId"
	FieldPatientID           = "patientId"
	FieldMedicationID        = "medicationId"
	FieldEmails              = "emails"
	FieldMobileNumbers       = "mobileNumbers"
	FieldHospitalIdentifiers = "hospitalIdentifiers"
	FieldRecordType          = "recordType"
	FieldStartDate           = "startDate"
	FieldIsActive            = "isActive"
	FieldScheduledTime       = "scheduledTime"
	FieldOnboardingCompleted = "onboardingCompleted"
)

// Meta is embedded by every stored entity.
type Meta struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GetMeta exposes the embedded metadata block.
func (m *Meta) GetMeta() *Meta {
	return m
}

// Document is a stored entity that can take part in an ownership chain.
// Ref returns the value of a reference field, or "" when the entity has no such field.
type Document interface {
	GetMeta() *Meta
	Ref(field string) string
}

// DocumentPtr constrains a type parameter to the pointer of a Document struct.
type DocumentPtr[T any] interface {
	*T
	Document
}

// Fields is a partial field set for atomic updates.
type Fields map[string]any

// Operator is a filter comparison.
type Operator int

const (
	// OpEq matches a field equal to the value.
	OpEq Operator = iota
	// OpContains matches an array field holding the scalar value.
	OpContains
	// OpElemMatch matches an array field holding an object with all the given keys.
	OpElemMatch
)

// Condition is one filter term.
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// Filter is a conjunction of conditions.
type Filter []Condition

func Eq(field string, value any) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

func Contains(field string, value any) Condition {
	return Condition{Field: field, Op: OpContains, Value: value}
}

func ElemMatch(field string, match map[string]any) Condition {
	return Condition{Field: field, Op: OpElemMatch, Value: match}
}

// Pattern renders the filter as a JSON containment document: equality terms map
// to the value, array terms to a one-element array.
func (f Filter) Pattern() map[string]any {
	pattern := make(map[string]any, len(f))
	for _, c := range f {
		switch c.Op {
		case OpContains, OpElemMatch:
			existing, _ := pattern[c.Field].([]any)
			pattern[c.Field] = append(existing, c.Value)
		default:
			pattern[c.Field] = c.Value
		}
	}
	return pattern
}

// Sort orders results by a timestamp field. The zero value means insertion order.
type Sort struct {
	Field      string
	Descending bool
}

func Asc(field string) Sort {
	return Sort{Field: field}
}

func Desc(field string) Sort {
	return Sort{Field: field, Descending: true}
}

// Collection is the backend contract over one named collection.
type Collection[T any] interface {
	Name() string
	FindByID(ctx context.Context, id string) (T, error)
	Find(ctx context.Context, filter Filter, sort Sort) ([]T, error)
	Insert(ctx context.Context, doc T) (string, error)
	Update(ctx context.Context, id string, fields Fields) (T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// EntityStore is the repository contract consumed by services.
type EntityStore[T any] interface {
	GetByID(ctx context.Context, id string) (T, error)
	Find(ctx context.Context, filter Filter, sort Sort) ([]T, error)
	Insert(ctx context.Context, doc T) (T, error)
	Update(ctx context.Context, id string, fields Fields) (T, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Pinger reports store reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}
