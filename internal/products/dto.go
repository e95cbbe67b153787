package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/only4u/only4u-backend/pkg/db/models"
)

// GroupDTO represents the admin product payload returned to clients.
type GroupDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`
	Variants    []VariantDTO    `json:"variants"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// VariantDTO carries one persisted color variant.
type VariantDTO struct {
	ID            uuid.UUID `json:"id"`
	Color         string    `json:"color"`
	ImageURL      string    `json:"image_url"`
	HoverImageURL *string   `json:"hover_image_url,omitempty"`
	Stock         int       `json:"stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewGroupDTO builds a DTO from the persisted model.
func NewGroupDTO(group *models.ProductGroup) *GroupDTO {
	dto := &GroupDTO{
		ID:          group.ID,
		Name:        group.Name,
		Price:       group.Price,
		Description: group.Description,
		Category:    string(group.Category),
		Status:      string(group.Status),
		Variants:    make([]VariantDTO, len(group.Variants)),
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
	for i, variant := range group.Variants {
		dto.Variants[i] = VariantDTO{
			ID:            variant.ID,
			Color:         variant.Color,
			ImageURL:      variant.ImageURL,
			HoverImageURL: variant.HoverImageURL,
			Stock:         variant.Stock,
			CreatedAt:     variant.CreatedAt,
			UpdatedAt:     variant.UpdatedAt,
		}
	}
	return dto
}
