package model

// AuthProviderCredentials marks users that sign in with email and password.
const AuthProviderCredentials = "credentials"

// MobileNumber is a phone number split into country code and subscriber number.
type MobileNumber struct {
	CountryCode string `bson:"countryCode" json:"countryCode" mapstructure:"countryCode"`
	Number      string `bson:"number" json:"number" mapstructure:"number"`
}

// User is the root of every ownership chain.
type User struct {
	Meta                `bson:",inline"`
	FirstName           string         `bson:"firstName" json:"firstName"`
	MiddleName          string         `bson:"middleName" json:"middleName"`
	LastName            string         `bson:"lastName" json:"lastName"`
	Title               string         `bson:"title" json:"title"`
	Suffix              string         `bson:"suffix" json:"suffix"`
	Emails              []string       `bson:"emails" json:"emails"`
	MobileNumbers       []MobileNumber `bson:"mobileNumbers" json:"mobileNumbers"`
	Preferences         map[string]any `bson:"preferences" json:"preferences"`
	OnboardingCompleted bool           `bson:"onboardingCompleted" json:"onboardingCompleted"`
	AuthProvider        string         `bson:"authProvider" json:"authProvider"`
	Password            string         `bson:"password,omitempty" json:"password,omitempty"`
}

// Ref always returns "": users have no parent.
func (u *User) Ref(string) string {
	return ""
}

// Public returns a copy safe to send to clients.
func (u User) Public() User {
	u.Password = ""
	return u
}

// SignupInput is the canonical payload of a signup request.
type SignupInput struct {
	FirstName string `mapstructure:"firstName"`
	LastName  string `mapstructure:"lastName"`
	Email     string `mapstructure:"email"`
	Password  string `mapstructure:"password"`
}

// LoginInput is the canonical payload of a login request.
type LoginInput struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// UserUpdate carries the supplied fields of a profile update.
type UserUpdate struct {
	FirstName           *string         `mapstructure:"firstName"`
	MiddleName          *string         `mapstructure:"middleName"`
	LastName            *string         `mapstructure:"lastName"`
	Title               *string         `mapstructure:"title"`
	Suffix              *string         `mapstructure:"suffix"`
	Emails              *[]string       `mapstructure:"emails"`
	MobileNumbers       *[]MobileNumber `mapstructure:"mobileNumbers"`
	Preferences         *map[string]any `mapstructure:"preferences"`
	OnboardingCompleted *bool           `mapstructure:"onboardingCompleted"`
}

func (u UserUpdate) Fields() Fields {
	f := Fields{}
	put(f, "firstName", u.FirstName)
	put(f, "middleName", u.MiddleName)
	put(f, "lastName", u.LastName)
	put(f, "title", u.Title)
	put(f, "suffix", u.Suffix)
	put(f, FieldEmails, u.Emails)
	put(f, FieldMobileNumbers, u.MobileNumbers)
	put(f, "preferences", u.Preferences)
	put(f, FieldOnboardingCompleted, u.OnboardingCompleted)
	return f
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

func put[V any](f Fields, key string, v *V) {
	if v != nil {
		f[key] = *v
	}
}
