package dto

// AuthRequest describes email/password payload.
type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}
