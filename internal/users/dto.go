package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/only4u/only4u-backend/pkg/db/models"
	"github.com/only4u/only4u-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Role                string     `json:"role"`
	Newsletter          bool       `json:"newsletter"`
	Company             *string    `json:"company,omitempty"`
	Website             *string    `json:"website,omitempty"`
	Phone               *string    `json:"phone,omitempty"`
	Address             *string    `json:"address,omitempty"`
	Apartment           *string    `json:"apartment,omitempty"`
	City                *string    `json:"city,omitempty"`
	ZipCode             *string    `json:"zip_code,omitempty"`
	Country             *string    `json:"country,omitempty"`
	State               *string    `json:"state,omitempty"`
	BusinessLicensePath *string    `json:"business_license_path,omitempty"`
	IsActive            bool       `json:"is_active"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
// ID may be minted by the caller when dependent writes need it up front.
type CreateUserDTO struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         enums.UserRole
	Newsletter   bool
	Company      *string
	Website      *string
	Phone        *string
	Address      *string
	Apartment    *string
	City         *string
	ZipCode      *string
	Country      *string
	State        *string

	BusinessLicensePath *string
}

// ProfileUpdate carries the editable profile fields. Email and role are not
// editable through the profile surface.
type ProfileUpdate struct {
	FirstName  *string
	LastName   *string
	Newsletter *bool
	Company    *string
	Website    *string
	Phone      *string
	Address    *string
	Apartment  *string
	City       *string
	ZipCode    *string
	Country    *string
	State      *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:                  u.ID,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Role:                string(u.Role),
		Newsletter:          u.Newsletter,
		Company:             u.Company,
		Website:             u.Website,
		Phone:               u.Phone,
		Address:             u.Address,
		Apartment:           u.Apartment,
		City:                u.City,
		ZipCode:             u.ZipCode,
		Country:             u.Country,
		State:               u.State,
		BusinessLicensePath: u.BusinessLicensePath,
		IsActive:            u.IsActive,
		LastLoginAt:         u.LastLoginAt,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if role == "" {
		role = enums.UserRoleCustomer
	}
	id := c.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return &models.User{
		ID:           id,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Role:         role,
		Newsletter:   c.Newsletter,
		Company:      c.Company,
		Website:      c.Website,
		Phone:        c.Phone,
		Address:      c.Address,
		Apartment:    c.Apartment,
		City:         c.City,
		ZipCode:      c.ZipCode,
		Country:      c.Country,
		State:        c.State,

		BusinessLicensePath: c.BusinessLicensePath,
		IsActive:            true,
	}
}
