package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/only4u/only4u-backend/pkg/db/models"
)

// ProductCard is the storefront grid entry for one browsable group.
type ProductCard struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	Status        string          `json:"status"`
	ImageURL      string          `json:"image_url"`
	HoverImageURL string          `json:"hover_image_url"`
	Colors        []string        `json:"colors"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ProductDetail is the full storefront payload for one group.
type ProductDetail struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Status      string          `json:"status"`
	Variants    []VariantView   `json:"variants"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// VariantView is one colorway as shown to shoppers. HoverImageURL is always
// populated; it falls back to the main image when no hover shot exists.
type VariantView struct {
	ID            uuid.UUID `json:"id"`
	Color         string    `json:"color"`
	ImageURL      string    `json:"image_url"`
	HoverImageURL string    `json:"hover_image_url"`
	Stock         int       `json:"stock"`
	InStock       bool      `json:"in_stock"`
}

// ListResult pairs a page of cards with the cursor for the next one.
type ListResult struct {
	Products   []ProductCard `json:"products"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

func newProductCard(group *models.ProductGroup) ProductCard {
	card := ProductCard{
		ID:        group.ID,
		Name:      group.Name,
		Price:     group.Price,
		Category:  string(group.Category),
		Status:    string(group.Status),
		Colors:    make([]string, 0, len(group.Variants)),
		CreatedAt: group.CreatedAt,
	}
	if len(group.Variants) > 0 {
		first := group.Variants[0]
		card.ImageURL = first.ImageURL
		card.HoverImageURL = hoverOrMain(first)
	}
	for _, variant := range group.Variants {
		card.Colors = append(card.Colors, variant.Color)
	}
	return card
}

func newProductDetail(group *models.ProductGroup) *ProductDetail {
	detail := &ProductDetail{
		ID:          group.ID,
		Name:        group.Name,
		Price:       group.Price,
		Description: group.Description,
		Category:    string(group.Category),
		Status:      string(group.Status),
		Variants:    make([]VariantView, len(group.Variants)),
		CreatedAt:   group.CreatedAt,
		UpdatedAt:   group.UpdatedAt,
	}
	for i, variant := range group.Variants {
		detail.Variants[i] = VariantView{
			ID:            variant.ID,
			Color:         variant.Color,
			ImageURL:      variant.ImageURL,
			HoverImageURL: hoverOrMain(variant),
			Stock:         variant.Stock,
			InStock:       variant.Stock > 0,
		}
	}
	return detail
}

func hoverOrMain(variant models.ProductVariant) string {
	if variant.HoverImageURL != nil && *variant.HoverImageURL != "" {
		return *variant.HoverImageURL
	}
	return variant.ImageURL
}
