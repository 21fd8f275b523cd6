package model

// TokenManager issues and validates signed access tokens.
type TokenManager interface {
	GenerateAccessToken(user User, authorities []string) (string, error)
	ValidateAccessToken(token string) TokenValidation
}

// TokenValidation is the outcome of access token verification. Validation
// never surfaces parse errors: any failure is collapsed to Valid=false with
// Reason kept for logging only.
type TokenValidation struct {
	Valid       bool
	Username    string
	Authorities []string
	Reason      string
}
