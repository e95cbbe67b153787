package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/only4u/only4u-backend/internal/media"
	"github.com/only4u/only4u-backend/pkg/db"
	"github.com/only4u/only4u-backend/pkg/db/models"
	"github.com/only4u/only4u-backend/pkg/enums"
	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
)

// Service exposes admin product group management.
type Service interface {
	CreateGroup(ctx context.Context, actorID uuid.UUID, input GroupInput) (*GroupDTO, error)
	UpdateGroup(ctx context.Context, actorID, groupID uuid.UUID, input GroupInput) (*GroupDTO, error)
	DeleteGroup(ctx context.Context, actorID, groupID uuid.UUID) error
}

// GroupInput holds one full product submission. Update submissions carry the
// complete variant list; anything persisted but absent here gets deleted.
type GroupInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Category    enums.ProductCategory
	Status      enums.ProductStatus
	Variants    []VariantSubmission
}

// VariantSubmission pairs the form fields of one variant with any freshly
// selected image files. ImageURL/HoverImageURL hold the previously persisted
// URLs when the admin did not pick a replacement file.
type VariantSubmission struct {
	ID            uuid.UUID
	Color         string
	Stock         int
	ImageURL      string
	HoverImageURL *string
	MainImage     *media.File
	HoverImage    *media.File
}

type adminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type imageUploader interface {
	UploadProductImage(ctx context.Context, groupID, variantID uuid.UUID, role enums.ImageRole, file media.File) (*media.UploadResult, error)
}

type service struct {
	repo     *Repository
	dbClient *db.Client
	admins   adminChecker
	uploader imageUploader
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client, admins adminChecker, uploader imageUploader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if admins == nil {
		return nil, fmt.Errorf("admin checker required")
	}
	if uploader == nil {
		return nil, fmt.Errorf("image uploader required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		admins:   admins,
		uploader: uploader,
	}, nil
}

// CreateGroup validates, authorizes, uploads variant images, then persists the
// group and all variants in one transaction.
func (s *service) CreateGroup(ctx context.Context, actorID uuid.UUID, input GroupInput) (*GroupDTO, error) {
	if err := validateGroupInput(input); err != nil {
		return nil, err
	}
	if err := s.ensureAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(ctx, input.Name, uuid.Nil); err != nil {
		return nil, err
	}

	// The id is minted here so upload keys are known before the insert.
	groupID := uuid.New()

	desired, err := s.resolveVariantImages(ctx, groupID, input.Variants)
	if err != nil {
		return nil, err
	}
	plan, err := BuildPlan(desired, nil)
	if err != nil {
		return nil, err
	}

	group := &models.ProductGroup{
		ID:          groupID,
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Status:      input.Status,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.CreateGroup(ctx, group); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "product name already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product group")
		}
		return applyPlan(ctx, txRepo, groupID, plan)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product group")
	}

	return s.loadGroupDTO(ctx, groupID)
}

// UpdateGroup applies a full resubmission: group columns are overwritten and
// the variant list is reconciled against what is already persisted.
func (s *service) UpdateGroup(ctx context.Context, actorID, groupID uuid.UUID, input GroupInput) (*GroupDTO, error) {
	if err := validateGroupInput(input); err != nil {
		return nil, err
	}
	if err := s.ensureAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	group, err := s.repo.FindGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product group")
	}

	if err := s.ensureNameAvailable(ctx, input.Name, group.ID); err != nil {
		return nil, err
	}

	existingIDs, err := s.repo.ListVariantIDs(ctx, group.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list variant ids")
	}

	desired, err := s.resolveVariantImages(ctx, group.ID, input.Variants)
	if err != nil {
		return nil, err
	}
	plan, err := BuildPlan(desired, existingIDs)
	if err != nil {
		return nil, err
	}

	group.Name = strings.TrimSpace(input.Name)
	group.Price = input.Price
	group.Description = strings.TrimSpace(input.Description)
	group.Category = input.Category
	group.Status = input.Status
	group.Variants = nil

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.UpdateGroup(ctx, group); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "product name already in use")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update product group")
		}
		return applyPlan(ctx, txRepo, group.ID, plan)
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product group")
	}

	return s.loadGroupDTO(ctx, group.ID)
}

// DeleteGroup removes the group; variants go with it via FK cascade. Stored
// images are left behind, a later submission with the same ids overwrites them.
func (s *service) DeleteGroup(ctx context.Context, actorID, groupID uuid.UUID) error {
	if err := s.ensureAdmin(ctx, actorID); err != nil {
		return err
	}

	if _, err := s.repo.FindGroupByID(ctx, groupID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product group")
	}

	if err := s.repo.DeleteGroup(ctx, groupID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product group")
	}
	return nil
}

func (s *service) ensureAdmin(ctx context.Context, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "actor identity missing")
	}
	ok, err := s.admins.IsAdmin(ctx, actorID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check admin role")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeForbidden, "admin role required")
	}
	return nil
}

// ensureNameAvailable is a best-effort pre-check; the unique index settles any
// race between concurrent submissions.
func (s *service) ensureNameAvailable(ctx context.Context, name string, excludeID uuid.UUID) error {
	_, err := s.repo.FindGroupByName(ctx, strings.TrimSpace(name), excludeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check name uniqueness")
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "product name already in use")
}

func (s *service) resolveVariantImages(ctx context.Context, groupID uuid.UUID, subs []VariantSubmission) ([]VariantInput, error) {
	out := make([]VariantInput, 0, len(subs))
	for _, sub := range subs {
		variant := VariantInput{
			ID:            sub.ID,
			Color:         strings.TrimSpace(sub.Color),
			Stock:         sub.Stock,
			ImageURL:      strings.TrimSpace(sub.ImageURL),
			HoverImageURL: sub.HoverImageURL,
		}

		if sub.MainImage != nil {
			result, err := s.uploader.UploadProductImage(ctx, groupID, sub.ID, enums.ImageRoleMain, *sub.MainImage)
			if err != nil {
				return nil, err
			}
			variant.ImageURL = result.URL
		}
		if sub.HoverImage != nil {
			result, err := s.uploader.UploadProductImage(ctx, groupID, sub.ID, enums.ImageRoleHover, *sub.HoverImage)
			if err != nil {
				return nil, err
			}
			url := result.URL
			variant.HoverImageURL = &url
		}

		out = append(out, variant)
	}
	return out, nil
}

func applyPlan(ctx context.Context, txRepo *Repository, groupID uuid.UUID, plan Plan) error {
	for _, variant := range plan.ToInsert {
		row := &models.ProductVariant{
			ID:            variant.ID,
			GroupID:       groupID,
			Color:         variant.Color,
			ImageURL:      variant.ImageURL,
			HoverImageURL: variant.HoverImageURL,
			Stock:         variant.Stock,
		}
		if _, err := txRepo.CreateVariant(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert variant")
		}
	}
	for _, variant := range plan.ToUpdate {
		row := &models.ProductVariant{
			ID:            variant.ID,
			GroupID:       groupID,
			Color:         variant.Color,
			ImageURL:      variant.ImageURL,
			HoverImageURL: variant.HoverImageURL,
			Stock:         variant.Stock,
		}
		if _, err := txRepo.UpdateVariant(ctx, row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update variant")
		}
	}
	if err := txRepo.DeleteVariants(ctx, plan.ToDelete); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete variants")
	}
	return nil
}

func (s *service) loadGroupDTO(ctx context.Context, groupID uuid.UUID) (*GroupDTO, error) {
	group, err := s.repo.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product group")
	}
	return NewGroupDTO(group), nil
}

func validateGroupInput(input GroupInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !input.Price.IsPositive() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if !input.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid category")
	}
	if !input.Status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}
	if len(input.Variants) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one variant is required")
	}

	seen := make(map[uuid.UUID]struct{}, len(input.Variants))
	for _, variant := range input.Variants {
		if variant.ID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
		}
		if _, ok := seen[variant.ID]; ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate variant id "+variant.ID.String())
		}
		seen[variant.ID] = struct{}{}

		if strings.TrimSpace(variant.Color) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant color is required")
		}
		if variant.Stock < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant stock must be non-negative")
		}
		if variant.MainImage == nil && strings.TrimSpace(variant.ImageURL) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant main image is required")
		}
	}
	return nil
}
