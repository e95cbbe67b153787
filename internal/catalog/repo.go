package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/only4u/only4u-backend/pkg/db/models"
	"github.com/only4u/only4u-backend/pkg/enums"
	"github.com/only4u/only4u-backend/pkg/pagination"
)

// Repository serves the storefront read side.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type groupListQuery struct {
	Category *enums.ProductCategory
	Status   *enums.ProductStatus
	Cursor   *pagination.Cursor
	Limit    int
}

// ListGroups returns browsable groups newest first with variants preloaded.
// Groups without a single variant never surface.
func (r *Repository) ListGroups(ctx context.Context, query groupListQuery) ([]models.ProductGroup, error) {
	qb := r.db.WithContext(ctx).
		Model(&models.ProductGroup{}).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("EXISTS (SELECT 1 FROM product_variants v WHERE v.group_id = product_groups.id)")

	if query.Category != nil {
		qb = qb.Where("category = ?", *query.Category)
	}
	if query.Status != nil {
		qb = qb.Where("status = ?", *query.Status)
	}
	if query.Cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			query.Cursor.CreatedAt, query.Cursor.CreatedAt, query.Cursor.ID)
	}

	var groups []models.ProductGroup
	err := qb.Order("created_at DESC").
		Order("id DESC").
		Limit(query.Limit).
		Find(&groups).
		Error
	return groups, err
}

// FindGroupByID loads one group with its variants.
func (r *Repository) FindGroupByID(ctx context.Context, id uuid.UUID) (*models.ProductGroup, error) {
	var group models.ProductGroup
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&group, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}
