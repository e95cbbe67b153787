package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/only4u/only4u-backend/api/responses"
	"github.com/only4u/only4u-backend/api/validators"
	"github.com/only4u/only4u-backend/internal/media"
	productsvc "github.com/only4u/only4u-backend/internal/products"
	"github.com/only4u/only4u-backend/pkg/enums"
	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
	"github.com/only4u/only4u-backend/pkg/logger"
)

// variantFormEntry mirrors one element of the "variants" JSON field in the
// multipart submission. Image files ride alongside under mainImage-{id} and
// hoverImage-{id} parts.
type variantFormEntry struct {
	ID            string  `json:"id"`
	Color         string  `json:"color"`
	Stock         int     `json:"stock"`
	ImageURL      string  `json:"image_url"`
	HoverImageURL *string `json:"hover_image_url,omitempty"`
}

// AdminCreateProduct handles the admin product submission form.
func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := parseGroupForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		group, err := svc.CreateGroup(r.Context(), userID, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, group)
	}
}

// AdminUpdateProduct resubmits a product group; variants absent from the form
// are removed.
func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		groupID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		input, err := parseGroupForm(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		group, err := svc.UpdateGroup(r.Context(), userID, groupID, *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, group)
	}
}

// AdminDeleteProduct removes a product group and its variants.
func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		userID, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		groupID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := svc.DeleteGroup(r.Context(), userID, groupID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func parseGroupForm(r *http.Request) (*productsvc.GroupInput, error) {
	if err := validators.ParseMultipart(r); err != nil {
		return nil, err
	}

	price, err := decimal.NewFromString(validators.FormString(r, "price"))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price")
	}

	category, err := enums.ParseProductCategory(validators.FormString(r, "category"))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}
	status, err := enums.ParseProductStatus(validators.FormString(r, "status"))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
	}

	rawVariants := strings.TrimSpace(r.FormValue("variants"))
	if rawVariants == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variants field is required")
	}
	var entries []variantFormEntry
	if err := json.Unmarshal([]byte(rawVariants), &entries); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variants payload")
	}

	variants := make([]productsvc.VariantSubmission, 0, len(entries))
	for _, entry := range entries {
		variantID, err := uuid.Parse(strings.TrimSpace(entry.ID))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id")
		}

		sub := productsvc.VariantSubmission{
			ID:            variantID,
			Color:         strings.TrimSpace(entry.Color),
			Stock:         entry.Stock,
			ImageURL:      strings.TrimSpace(entry.ImageURL),
			HoverImageURL: entry.HoverImageURL,
		}

		main, err := validators.ReadFormFile(r, fmt.Sprintf("mainImage-%s", variantID))
		if err != nil {
			return nil, err
		}
		if main != nil {
			sub.MainImage = &media.File{Name: main.Name, Data: main.Data}
		}

		hover, err := validators.ReadFormFile(r, fmt.Sprintf("hoverImage-%s", variantID))
		if err != nil {
			return nil, err
		}
		if hover != nil {
			sub.HoverImage = &media.File{Name: hover.Name, Data: hover.Data}
		}

		variants = append(variants, sub)
	}

	return &productsvc.GroupInput{
		Name:        validators.SanitizeString(r.FormValue("name"), 200),
		Price:       price,
		Description: validators.SanitizeString(r.FormValue("description"), 5000),
		Category:    category,
		Status:      status,
		Variants:    variants,
	}, nil
}
