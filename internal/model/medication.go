package model

import "time"

// Medication is owned by exactly one patient.
type Medication struct {
	Meta         `bson:",inline"`
	PatientID    string     `bson:"patientId" json:"patientId"`
	Name         string     `bson:"name" json:"name"`
	Dosage       string     `bson:"dosage" json:"dosage"`
	Frequency    string     `bson:"frequency" json:"frequency"`
	Route        string     `bson:"route" json:"route"`
	StartDate    time.Time  `bson:"startDate" json:"startDate"`
	EndDate      *time.Time `bson:"endDate" json:"endDate"`
	Instructions string     `bson:"instructions" json:"instructions"`
	PrescribedBy string     `bson:"prescribedBy" json:"prescribedBy"`
	Source       string     `bson:"source" json:"source"`
	IsActive     bool       `bson:"isActive" json:"isActive"`
	Tags         []string   `bson:"tags" json:"tags"`
}

func (m *Medication) Ref(field string) string {
	if field == FieldPatientID {
		return m.PatientID
	}
	return ""
}

// MedicationCreate is the canonical payload for a new medication.
type MedicationCreate struct {
	PatientID    string     `mapstructure:"patientId"`
	Name         string     `mapstructure:"name"`
	Dosage       string     `mapstructure:"dosage"`
	Frequency    string     `mapstructure:"frequency"`
	Route        string     `mapstructure:"route"`
	StartDate    time.Time  `mapstructure:"startDate"`
	EndDate      *time.Time `mapstructure:"endDate"`
	Instructions string     `mapstructure:"instructions"`
	PrescribedBy string     `mapstructure:"prescribedBy"`
	Source       string     `mapstructure:"source"`
	IsActive     bool       `mapstructure:"isActive"`
	Tags         []string   `mapstructure:"tags"`
}

func (c MedicationCreate) Medication() Medication {
	return Medication{
		PatientID:    c.PatientID,
		Name:         c.Name,
		Dosage:       c.Dosage,
		Frequency:    c.Frequency,
		Route:        c.Route,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Instructions: c.Instructions,
		PrescribedBy: c.PrescribedBy,
		Source:       c.Source,
		IsActive:     c.IsActive,
		Tags:         c.Tags,
	}
}

// MedicationUpdate carries the supplied fields of a medication update.
type MedicationUpdate struct {
	Name         *string    `mapstructure:"name"`
	Dosage       *string    `mapstructure:"dosage"`
	Frequency    *string    `mapstructure:"frequency"`
	Route        *string    `mapstructure:"route"`
	StartDate    *time.Time `mapstructure:"startDate"`
	EndDate      *time.Time `mapstructure:"endDate"`
	Instructions *string    `mapstructure:"instructions"`
	PrescribedBy *string    `mapstructure:"prescribedBy"`
	Source       *string    `mapstructure:"source"`
	IsActive     *bool      `mapstructure:"isActive"`
	Tags         *[]string  `mapstructure:"tags"`
}

func (u MedicationUpdate) Fields() Fields {
	f := Fields{}
	put(f, "name", u.Name)
	put(f, "dosage", u.Dosage)
	put(f, "frequency", u.Frequency)
	put(f, "route", u.Route)
	put(f, FieldStartDate, u.StartDate)
	put(f, "endDate", u.EndDate)
	put(f, "instructions", u.Instructions)
	put(f, "prescribedBy", u.PrescribedBy)
	put(f, "source", u.Source)
	put(f, FieldIsActive, u.IsActive)
	put(f, "tags", u.Tags)
	return f
}

// MedicationDose records one scheduled intake of a medication.
type MedicationDose struct {
	Meta          `bson:",inline"`
	MedicationID  string     `bson:"medicationId" json:"medicationId"`
	ScheduledTime time.Time  `bson:"scheduledTime" json:"scheduledTime"`
	TakenTime     *time.Time `bson:"takenTime" json:"takenTime"`
	IsTaken       bool       `bson:"isTaken" json:"isTaken"`
	Notes         string     `bson:"notes" json:"notes"`
}

func (d *MedicationDose) Ref(field string) string {
	if field == FieldMedicationID {
		return d.MedicationID
	}
	return ""
}

// MedicationDoseCreate is the canonical payload for a new dose. The medication id comes from the path.
type MedicationDoseCreate struct {
	ScheduledTime time.Time  `mapstructure:"scheduledTime"`
	TakenTime     *time.Time `mapstructure:"takenTime"`
	IsTaken       bool       `mapstructure:"isTaken"`
	Notes         string     `mapstructure:"notes"`
}

func (c MedicationDoseCreate) MedicationDose(medicationID string) MedicationDose {
	return MedicationDose{
		MedicationID:  medicationID,
		ScheduledTime: c.ScheduledTime,
		TakenTime:     c.TakenTime,
		IsTaken:       c.IsTaken,
		Notes:         c.Notes,
	}
}

// MedicationDoseUpdate carries the supplied fields of a dose update.
type MedicationDoseUpdate struct {
	ScheduledTime *time.Time `mapstructure:"scheduledTime"`
	TakenTime     *time.Time `mapstructure:"takenTime"`
	IsTaken       *bool      `mapstructure:"isTaken"`
	Notes         *string    `mapstructure:"notes"`
}

func (u MedicationDoseUpdate) Fields() Fields {
	f := Fields{}
	put(f, FieldScheduledTime, u.ScheduledTime)
	put(f, "takenTime", u.TakenTime)
	put(f, "isTaken", u.IsTaken)
	put(f, "notes", u.Notes)
	return f
}

// MedicationReminder schedules a notification for a medication.
type MedicationReminder struct {
	Meta          `bson:",inline"`
	MedicationID  string    `bson:"medicationId" json:"medicationId"`
	Title         string    `bson:"title" json:"title"`
	Message       string    `bson:"message" json:"message"`
	ScheduledTime time.Time `bson:"scheduledTime" json:"scheduledTime"`
	IsEnabled     bool      `bson:"isEnabled" json:"isEnabled"`
	Frequency     string    `bson:"frequency" json:"frequency"`
	DaysOfWeek    []int     `bson:"daysOfWeek" json:"daysOfWeek"`
}

func (r *MedicationReminder) Ref(field string) string {
	if field == FieldMedicationID {
		return r.MedicationID
	}
	return ""
}

// MedicationReminderCreate is the canonical payload for a new reminder.
type MedicationReminderCreate struct {
	Title         string    `mapstructure:"title"`
	Message       string    `mapstructure:"message"`
	ScheduledTime time.Time `mapstructure:"scheduledTime"`
	IsEnabled     bool      `mapstructure:"isEnabled"`
	Frequency     string    `mapstructure:"frequency"`
	DaysOfWeek    []int     `mapstructure:"daysOfWeek"`
}

func (c MedicationReminderCreate) MedicationReminder(medicationID string) MedicationReminder {
	return MedicationReminder{
		MedicationID:  medicationID,
		Title:         c.Title,
		Message:       c.Message,
		ScheduledTime: c.ScheduledTime,
		IsEnabled:     c.IsEnabled,
		Frequency:     c.Frequency,
		DaysOfWeek:    c.DaysOfWeek,
	}
}

// MedicationReminderUpdate carries the supplied fields of a reminder update.
type MedicationReminderUpdate struct {
	Title         *string    `mapstructure:"title"`
	Message       *string    `mapstructure:"message"`
	ScheduledTime *time.Time `mapstructure:"scheduledTime"`
	IsEnabled     *bool      `mapstructure:"isEnabled"`
	Frequency     *string    `mapstructure:"frequency"`
	DaysOfWeek    *[]int     `mapstructure:"daysOfWeek"`
}

func (u MedicationReminderUpdate) Fields() Fields {
	f := Fields{}
	put(f, "title", u.Title)
	put(f, "message", u.Message)
	put(f, FieldScheduledTime, u.ScheduledTime)
	put(f, "isEnabled", u.IsEnabled)
	put(f, "frequency", u.Frequency)
	put(f, "daysOfWeek", u.DaysOfWeek)
	return f
}
