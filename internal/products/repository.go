package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/only4u/only4u-backend/pkg/db/models"
)

// Repository wires together product group and variant persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindGroupByID loads the group with its variants ordered oldest first.
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

// FindGroupByName returns the group carrying the exact name, excluding the
// given id when non-nil so edits do not collide with themselves.
func (r *Repository) FindGroupByName(ctx context.Context, name string, excludeID uuid.UUID) (*models.ProductGroup, error) {
	qb := r.db.WithContext(ctx).Where("name = ?", name)
	if excludeID != uuid.Nil {
		qb = qb.Where("id <> ?", excludeID)
	}

	var group models.ProductGroup
	if err := qb.First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// CreateGroup inserts a new group row.
func (r *Repository) CreateGroup(ctx context.Context, group *models.ProductGroup) (*models.ProductGroup, error) {
	if err := r.db.WithContext(ctx).Omit("Variants").Create(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// UpdateGroup persists the mutable group columns.
func (r *Repository) UpdateGroup(ctx context.Context, group *models.ProductGroup) (*models.ProductGroup, error) {
	if err := r.db.WithContext(ctx).Omit("Variants").Save(group).Error; err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup removes a group; variant rows go with it via FK cascade.
func (r *Repository) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ProductGroup{}).Error
}

// ListVariantIDs returns the ids of every variant persisted for the group.
func (r *Repository) ListVariantIDs(ctx context.Context, groupID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("group_id = ?", groupID).
		Pluck("id", &ids).
		Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// CreateVariant inserts a new variant row.
func (r *Repository) CreateVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		return nil, err
	}
	return variant, nil
}

// UpdateVariant overwrites the mutable columns of an existing variant.
func (r *Repository) UpdateVariant(ctx context.Context, variant *models.ProductVariant) (*models.ProductVariant, error) {
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("id = ?", variant.ID).
		Updates(map[string]any{
			"color":           variant.Color,
			"image_url":       variant.ImageURL,
			"hover_image_url": variant.HoverImageURL,
			"stock":           variant.Stock,
		}).
		Error
	if err != nil {
		return nil, err
	}
	return variant, nil
}

// DeleteVariants removes the listed variant rows.
func (r *Repository) DeleteVariants(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.ProductVariant{}).Error
}
