package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/only4u/only4u-backend/api/middleware"
	"github.com/only4u/only4u-backend/api/responses"
	"github.com/only4u/only4u-backend/api/validators"
	"github.com/only4u/only4u-backend/internal/users"
	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
	"github.com/only4u/only4u-backend/pkg/logger"
)

type updateProfileRequest struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Newsletter *bool   `json:"newsletter,omitempty"`
	Company    *string `json:"company,omitempty"`
	Website    *string `json:"website,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	Address    *string `json:"address,omitempty"`
	Apartment  *string `json:"apartment,omitempty"`
	City       *string `json:"city,omitempty"`
	ZipCode    *string `json:"zip_code,omitempty"`
	Country    *string `json:"country,omitempty"`
	State      *string `json:"state,omitempty"`
}

func actorID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return id, nil
}

// GetProfile returns the authenticated user's profile.
func GetProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.GetProfile(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// UpdateProfile applies the submitted profile fields. Email and role never
// change through this surface.
func UpdateProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateProfileRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := svc.UpdateProfile(r.Context(), userID, users.ProfileUpdate{
			FirstName:  body.FirstName,
			LastName:   body.LastName,
			Newsletter: body.Newsletter,
			Company:    body.Company,
			Website:    body.Website,
			Phone:      body.Phone,
			Address:    body.Address,
			Apartment:  body.Apartment,
			City:       body.City,
			ZipCode:    body.ZipCode,
			Country:    body.Country,
			State:      body.State,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, profile)
	}
}

// CheckAdmin reports whether the authenticated user holds the admin role.
// Lookup failures read as not-admin rather than an error.
func CheckAdmin(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "user service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		isAdmin, err := svc.IsAdmin(r.Context(), userID)
		if err != nil {
			if logg != nil {
				logg.Warn(logg.WithFields(r.Context(), map[string]any{"user_id": userID.String()}), "admin.check.failed")
			}
			isAdmin = false
		}

		responses.WriteSuccess(w, map[string]bool{"is_admin": isAdmin})
	}
}
