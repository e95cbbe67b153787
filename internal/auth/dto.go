package auth

import (
	"github.com/only4u/only4u-backend/internal/media"
	"github.com/only4u/only4u-backend/internal/users"
)

// SignupRequest contains the payload required for onboarding a new customer.
// The business license file is optional and arrives as part of the multipart
// form.
type SignupRequest struct {
	Email      string
	Password   string
	FirstName  string
	LastName   string
	Newsletter bool
	Company    *string
	Website    *string
	Phone      *string
	Address    *string
	Apartment  *string
	City       *string
	ZipCode    *string
	Country    *string
	State      *string

	BusinessLicense *media.File
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the token pair plus the authenticated user. Signup
// returns it too, the storefront logs new customers straight in.
type AuthResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         *users.UserDTO `json:"user"`
}
