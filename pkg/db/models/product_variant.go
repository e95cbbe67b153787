package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductVariant is a colorway of a product group. The ID is generated by the
// admin client before submission and stays stable across edits, which lets the
// write path diff the submitted set against the stored set.
type ProductVariant struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	GroupID       uuid.UUID `gorm:"column:group_id;type:uuid;not null;index"`
	Color         string    `gorm:"column:color;type:text;not null"`
	ImageURL      string    `gorm:"column:image_url;type:text;not null"`
	HoverImageURL *string   `gorm:"column:hover_image_url;type:text"`
	Stock         int       `gorm:"column:stock;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
