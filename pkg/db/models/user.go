package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/only4u/only4u-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID                  uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email               string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash        string         `gorm:"column:password_hash;not null"`
	FirstName           string         `gorm:"column:first_name;not null"`
	LastName            string         `gorm:"column:last_name;not null"`
	Role                enums.UserRole `gorm:"column:role;type:text;not null;default:customer"`
	Newsletter          bool           `gorm:"column:newsletter;not null;default:false"`
	Company             *string        `gorm:"column:company"`
	Website             *string        `gorm:"column:website"`
	Phone               *string        `gorm:"column:phone"`
	Address             *string        `gorm:"column:address"`
	Apartment           *string        `gorm:"column:apartment"`
	City                *string        `gorm:"column:city"`
	ZipCode             *string        `gorm:"column:zip_code"`
	Country             *string        `gorm:"column:country"`
	State               *string        `gorm:"column:state"`
	BusinessLicensePath *string        `gorm:"column:business_license_path"`
	IsActive            bool           `gorm:"column:is_active;not null;default:true"`
	LastLoginAt         *time.Time     `gorm:"column:last_login_at"`
	CreatedAt           time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
