package controllers

import (
	"net/http"

	"github.com/only4u/only4u-backend/api/responses"
	"github.com/only4u/only4u-backend/api/validators"
	authsvc "github.com/only4u/only4u-backend/internal/auth"
	"github.com/only4u/only4u-backend/internal/media"
	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
	"github.com/only4u/only4u-backend/pkg/logger"
)

// AuthSignup onboards a customer. The body is multipart so wholesale accounts
// can attach a business license file alongside the profile fields.
func AuthSignup(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		if err := validators.ParseMultipart(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req := authsvc.SignupRequest{
			Email:      validators.FormString(r, "email"),
			Password:   r.FormValue("password"),
			FirstName:  validators.FormString(r, "first_name"),
			LastName:   validators.FormString(r, "last_name"),
			Newsletter: validators.FormBool(r, "newsletter"),
			Company:    validators.OptionalFormString(r, "company"),
			Website:    validators.OptionalFormString(r, "website"),
			Phone:      validators.OptionalFormString(r, "phone"),
			Address:    validators.OptionalFormString(r, "address"),
			Apartment:  validators.OptionalFormString(r, "apartment"),
			City:       validators.OptionalFormString(r, "city"),
			ZipCode:    validators.OptionalFormString(r, "zip_code"),
			Country:    validators.OptionalFormString(r, "country"),
			State:      validators.OptionalFormString(r, "state"),
		}

		license, err := validators.ReadFormFile(r, "business_license")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if license != nil {
			req.BusinessLicense = &media.File{Name: license.Name, Data: license.Data}
		}

		resp, err := svc.Signup(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// AuthLogin exchanges credentials for a token pair.
func AuthLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body authsvc.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resp)
	}
}
