// Package identifier validates and generates entity identifiers.
//
// Identifiers are 24 lowercase hexadecimal characters, the textual form of a
// MongoDB ObjectID. Anything else can never denote a stored entity.
package identifier

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dtroode/healthnest-server/internal/model"
)

// Length is the number of characters in an identifier.
const Length = 24

// IsValid reports whether token is a well-formed identifier.
func IsValid(token string) bool {
	if len(token) != Length {
		return false
	}
	for i := 0; i < len(token); i++ {
		c := token[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Validate returns model.ErrInvalidIdentifier for malformed tokens.
func Validate(token string) error {
	if !IsValid(token) {
		return model.ErrInvalidIdentifier
	}
	return nil
}

// New returns a fresh identifier.
func New() string {
	return primitive.NewObjectID().Hex()
}
