package user

import (
	"github.com/jobpulse/jobpulse/pkg/iam/auth"
	"github.com/jobpulse/jobpulse/pkg/kernel"
)

// RegisterRequest - DTO for account creation. Admin accounts are not
// self-service.
type RegisterRequest struct {
	Email       kernel.Email `json:"email" validate:"required,email"`
	Password    string       `json:"password" validate:"required,min=8"`
	FullName    string       `json:"full_name" validate:"required"`
	Role        auth.Role    `json:"role" validate:"required"`
	Phone       string       `json:"phone,omitempty"`
	CompanyName string       `json:"company_name,omitempty"`
}

// LoginRequest - DTO for credential login
type LoginRequest struct {
	Email    kernel.Email `json:"email" validate:"required"`
	Password string       `json:"password" validate:"required"`
}

// UpdateProfileRequest - DTO for a partial profile update
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	CompanyName *string `json:"company_name,omitempty"`
}

// AuthResponse carries a profile plus its freshly minted access token
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}
