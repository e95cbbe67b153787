package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/only4u/only4u-backend/api/responses"
	"github.com/only4u/only4u-backend/api/validators"
	"github.com/only4u/only4u-backend/internal/media"
	"github.com/only4u/only4u-backend/internal/users"
	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
	"github.com/only4u/only4u-backend/pkg/logger"
)

// AdminUploadProductImages stores a batch of gallery images for a product
// group and returns their public URLs. All files are validated before the
// first byte is written. The admin role is re-checked against the user store;
// a token alone is not enough to write objects.
func AdminUploadProductImages(svc media.Service, admins users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || admins == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ok, err := admins.IsAdmin(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check admin role"))
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "admin role required"))
			return
		}

		if err := validators.ParseMultipart(r); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		groupID, err := uuid.Parse(validators.FormString(r, "product_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		parts, err := validators.ReadFormFiles(r, "images")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if len(parts) == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "at least one image is required"))
			return
		}

		files := make([]media.File, 0, len(parts))
		for _, part := range parts {
			files = append(files, media.File{Name: part.Name, Data: part.Data})
		}

		results, err := svc.UploadProductImages(r.Context(), groupID, files)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{"uploads": results})
	}
}
