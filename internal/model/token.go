package model

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	GenerateAccessToken(userID string) (string, error)
	ParseAccessToken(token string) (string, error)
}
