package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/only4u/only4u-backend/pkg/enums"
	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
)

// Service exposes profile reads and updates plus the role gate used by the
// admin surface.
type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdate) (*UserDTO, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type service struct {
	repo *Repository
}

// NewService constructs the users service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return FromModel(user), nil
}

// UpdateProfile applies the submitted fields. Email and role never change
// through this path.
func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, input ProfileUpdate) (*UserDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	columns := map[string]any{}
	if input.FirstName != nil {
		name := strings.TrimSpace(*input.FirstName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "first_name cannot be empty")
		}
		columns["first_name"] = name
	}
	if input.LastName != nil {
		name := strings.TrimSpace(*input.LastName)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "last_name cannot be empty")
		}
		columns["last_name"] = name
	}
	if input.Newsletter != nil {
		columns["newsletter"] = *input.Newsletter
	}
	if input.Company != nil {
		columns["company"] = input.Company
	}
	if input.Website != nil {
		columns["website"] = input.Website
	}
	if input.Phone != nil {
		columns["phone"] = input.Phone
	}
	if input.Address != nil {
		columns["address"] = input.Address
	}
	if input.Apartment != nil {
		columns["apartment"] = input.Apartment
	}
	if input.City != nil {
		columns["city"] = input.City
	}
	if input.ZipCode != nil {
		columns["zip_code"] = input.ZipCode
	}
	if input.Country != nil {
		columns["country"] = input.Country
	}
	if input.State != nil {
		columns["state"] = input.State
	}

	if err := s.repo.UpdateProfile(ctx, userID, columns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update profile")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload user")
	}
	return FromModel(user), nil
}

// IsAdmin reports whether the user holds the admin role. Unknown or inactive
// users are never admins.
func (s *service) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsActive && user.Role == enums.UserRoleAdmin, nil
}
