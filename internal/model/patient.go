package model

import "time"

// HospitalIdentifier links a patient to a record in an external hospital system.
type HospitalIdentifier struct {
	SystemName     string `bson:"systemName" json:"systemName" mapstructure:"systemName"`
	IdentifierType string `bson:"identifierType" json:"identifierType" mapstructure:"identifierType"`
	Value          string `bson:"value" json:"value" mapstructure:"value"`
}

// Patient is owned by exactly one user.
type Patient struct {
	Meta                `bson:",inline"`
	OwnerUserID         string               `bson:"ownerUserId" json:"ownerUserId"`
	FirstName           string               `bson:"firstName" json:"firstName"`
	MiddleName          string               `bson:"middleName" json:"middleName"`
	LastName            string               `bson:"lastName" json:"lastName"`
	Title               string               `bson:"title" json:"title"`
	Suffix              string               `bson:"suffix" json:"suffix"`
	Emails              []string             `bson:"emails" json:"emails"`
	DateOfBirth         time.Time            `bson:"dateOfBirth" json:"dateOfBirth"`
	Gender              string               `bson:"gender" json:"gender"`
	AbhaNumber          string               `bson:"abhaNumber" json:"abhaNumber"`
	BloodGroup          string               `bson:"bloodGroup" json:"bloodGroup"`
	EmergencyContacts   []string             `bson:"emergencyContacts" json:"emergencyContacts"`
	HospitalIdentifiers []HospitalIdentifier `bson:"hospitalIdentifiers" json:"hospitalIdentifiers"`
	MobileNumbers       []MobileNumber       `bson:"mobileNumbers" json:"mobileNumbers"`
	Preferences         map[string]any       `bson:"preferences" json:"preferences"`
}

func (p *Patient) Ref(field string) string {
	if field == FieldOwnerUserID {
		return p.OwnerUserID
	}
	return ""
}

// PatientCreate is the canonical payload for a new patient.
type PatientCreate struct {
	FirstName           string               `mapstructure:"firstName"`
	MiddleName          string               `mapstructure:"middleName"`
	LastName            string               `mapstructure:"lastName"`
	Title               string               `mapstructure:"title"`
	Suffix              string               `mapstructure:"suffix"`
	Emails              []string             `mapstructure:"emails"`
	DateOfBirth         time.Time            `mapstructure:"dateOfBirth"`
	Gender              string               `mapstructure:"gender"`
	AbhaNumber          string               `mapstructure:"abhaNumber"`
	BloodGroup          string               `mapstructure:"bloodGroup"`
	EmergencyContacts   []string             `mapstructure:"emergencyContacts"`
	HospitalIdentifiers []HospitalIdentifier `mapstructure:"hospitalIdentifiers"`
	MobileNumbers       []MobileNumber       `mapstructure:"mobileNumbers"`
	Preferences         map[string]any       `mapstructure:"preferences"`
}

// Patient builds the document owned by ownerUserID.
func (c PatientCreate) Patient(ownerUserID string) Patient {
	return Patient{
		OwnerUserID:         ownerUserID,
		FirstName:           c.FirstName,
		MiddleName:          c.MiddleName,
		LastName:            c.LastName,
		Title:               c.Title,
		Suffix:              c.Suffix,
		Emails:              c.Emails,
		DateOfBirth:         c.DateOfBirth,
		Gender:              c.Gender,
		AbhaNumber:          c.AbhaNumber,
		BloodGroup:          c.BloodGroup,
		EmergencyContacts:   c.EmergencyContacts,
		HospitalIdentifiers: c.HospitalIdentifiers,
		MobileNumbers:       c.MobileNumbers,
		Preferences:         c.Preferences,
	}
}

// PatientUpdate carries the supplied fields of a patient update.
type PatientUpdate struct {
	FirstName           *string               `mapstructure:"firstName"`
	MiddleName          *string               `mapstructure:"middleName"`
	LastName            *string               `mapstructure:"lastName"`
	Title               *string               `mapstructure:"title"`
	Suffix              *string               `mapstructure:"suffix"`
	Emails              *[]string             `mapstructure:"emails"`
	DateOfBirth         *time.Time            `mapstructure:"dateOfBirth"`
	Gender              *string               `mapstructure:"gender"`
	AbhaNumber          *string               `mapstructure:"abhaNumber"`
	BloodGroup          *string               `mapstructure:"bloodGroup"`
	EmergencyContacts   *[]string             `mapstructure:"emergencyContacts"`
	HospitalIdentifiers *[]HospitalIdentifier `mapstructure:"hospitalIdentifiers"`
	MobileNumbers       *[]MobileNumber       `mapstructure:"mobileNumbers"`
	Preferences         *map[string]any       `mapstructure:"preferences"`
}

func (u PatientUpdate) Fields() Fields {
	f := Fields{}
	put(f, "firstName", u.FirstName)
	put(f, "middleName", u.MiddleName)
	put(f, "lastName", u.LastName)
	put(f, "title", u.Title)
	put(f, "suffix", u.Suffix)
	put(f, FieldEmails, u.Emails)
	put(f, "dateOfBirth", u.DateOfBirth)
	put(f, "gender", u.Gender)
	put(f, "abhaNumber", u.AbhaNumber)
	put(f, "bloodGroup", u.BloodGroup)
	put(f, "emergencyContacts", u.EmergencyContacts)
	put(f, FieldHospitalIdentifiers, u.HospitalIdentifiers)
	put(f, FieldMobileNumbers, u.MobileNumbers)
	put(f, "preferences", u.Preferences)
	return f
}

// PatientSearch selects patients either by a hospital identifier triple or by mobile number.
type PatientSearch struct {
	HospitalSystem  string `mapstructure:"hospitalSystem"`
	IdentifierType  string `mapstructure:"identifierType"`
	IdentifierValue string `mapstructure:"identifierValue"`
	MobileNumber    string `mapstructure:"mobileNumber"`
}

// ByHospitalIdentifier reports whether the full identifier triple was supplied.
func (s PatientSearch) ByHospitalIdentifier() bool {
	return s.HospitalSystem != "" && s.IdentifierType != "" && s.IdentifierValue != ""
}
