package product

import (
	"sort"
	"strings"

	"github.com/google/uuid"

	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
)

// VariantInput is a fully resolved variant: image URLs have already been
// substituted for any freshly uploaded files.
type VariantInput struct {
	ID            uuid.UUID
	Color         string
	Stock         int
	ImageURL      string
	HoverImageURL *string
}

// Plan partitions a submitted variant list against the rows already persisted
// for the group. Every desired variant lands in exactly one of ToInsert or
// ToUpdate; existing rows missing from the submission land in ToDelete.
type Plan struct {
	ToInsert []VariantInput
	ToUpdate []VariantInput
	ToDelete []uuid.UUID
}

// BuildPlan validates the desired variants and computes the write plan.
// Any invalid variant fails the whole plan; nothing is partially applied.
func BuildPlan(desired []VariantInput, existing []uuid.UUID) (Plan, error) {
	seen := make(map[uuid.UUID]struct{}, len(desired))
	for _, variant := range desired {
		if variant.ID == uuid.Nil {
			return Plan{}, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
		}
		if _, ok := seen[variant.ID]; ok {
			return Plan{}, pkgerrors.New(pkgerrors.CodeValidation, "duplicate variant id "+variant.ID.String())
		}
		seen[variant.ID] = struct{}{}

		if strings.TrimSpace(variant.Color) == "" {
			return Plan{}, pkgerrors.New(pkgerrors.CodeValidation, "variant color is required")
		}
		if strings.TrimSpace(variant.ImageURL) == "" {
			return Plan{}, pkgerrors.New(pkgerrors.CodeValidation, "variant main image is required")
		}
		if variant.Stock < 0 {
			return Plan{}, pkgerrors.New(pkgerrors.CodeValidation, "variant stock must be non-negative")
		}
	}

	existingSet := make(map[uuid.UUID]struct{}, len(existing))
	for _, id := range existing {
		if id == uuid.Nil {
			continue
		}
		existingSet[id] = struct{}{}
	}

	plan := Plan{}
	for _, variant := range desired {
		if _, ok := existingSet[variant.ID]; ok {
			plan.ToUpdate = append(plan.ToUpdate, variant)
		} else {
			plan.ToInsert = append(plan.ToInsert, variant)
		}
	}

	for id := range existingSet {
		if _, ok := seen[id]; !ok {
			plan.ToDelete = append(plan.ToDelete, id)
		}
	}
	sort.Slice(plan.ToDelete, func(i, j int) bool {
		return plan.ToDelete[i].String() < plan.ToDelete[j].String()
	})

	return plan, nil
}
