package dto

// LoginRequest represents a login attempt. Admins authenticate with the admin
// password; course leaders pick a course and may supply the shared course
// password.
type LoginRequest struct {
	Role     string `json:"role" binding:"required,oneof=admin course"`
	Password string `json:"password"`
	Course   string `json:"course"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// LoginResponse represents a successful authentication
type LoginResponse struct {
	Token  TokenResponse `json:"token"`
	Role   string        `json:"role"`
	Course string        `json:"course,omitempty"`
}
