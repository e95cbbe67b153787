package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/only4u/only4u-backend/pkg/enums"
	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
	"github.com/only4u/only4u-backend/pkg/pagination"
)

// Service exposes the public storefront reads.
type Service interface {
	ListProducts(ctx context.Context, input ListInput) (*ListResult, error)
	GetProduct(ctx context.Context, groupID uuid.UUID) (*ProductDetail, error)
}

// ListInput carries the optional storefront filters.
type ListInput struct {
	Category   *enums.ProductCategory
	Status     *enums.ProductStatus
	Pagination pagination.Params
}

type service struct {
	repo *Repository
}

// NewService constructs the catalog read service.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProducts(ctx context.Context, input ListInput) (*ListResult, error) {
	if input.Category != nil && !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid category filter")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	pageSize := pagination.NormalizeLimit(input.Pagination.Limit)
	limitWithBuffer := pagination.PeekLimit(input.Pagination.Limit)

	groups, err := s.repo.ListGroups(ctx, groupListQuery{
		Category: input.Category,
		Status:   input.Status,
		Cursor:   cursor,
		Limit:    limitWithBuffer,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list product groups")
	}

	nextCursor := ""
	if len(groups) > pageSize {
		groups = groups[:pageSize]
		last := groups[len(groups)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	cards := make([]ProductCard, 0, len(groups))
	for i := range groups {
		cards = append(cards, newProductCard(&groups[i]))
	}

	return &ListResult{Products: cards, NextCursor: nextCursor}, nil
}

func (s *service) GetProduct(ctx context.Context, groupID uuid.UUID) (*ProductDetail, error) {
	if groupID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	group, err := s.repo.FindGroupByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product group")
	}
	// A group without variants is not browsable.
	if len(group.Variants) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	return newProductDetail(group), nil
}
