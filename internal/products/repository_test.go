package product

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/only4u/only4u-backend/pkg/db/models"
	"github.com/only4u/only4u-backend/pkg/enums"
)

func seedGroup(t *testing.T, repo *Repository, name string) *models.ProductGroup {
	t.Helper()
	group := &models.ProductGroup{
		ID:       uuid.New(),
		Name:     name,
		Price:    decimal.RequireFromString("19.99"),
		Category: enums.ProductCategoryShirt,
		Status:   enums.ProductStatusNew,
	}
	if _, err := repo.CreateGroup(context.Background(), group); err != nil {
		t.Fatalf("seed group: %v", err)
	}
	return group
}

func TestFindGroupByNameExcludesSelf(t *testing.T) {
	client := newTestClient(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	group := seedGroup(t, repo, "Linen Shirt")

	found, err := repo.FindGroupByName(ctx, "Linen Shirt", uuid.Nil)
	if err != nil {
		t.Fatalf("expected match, got %v", err)
	}
	if found.ID != group.ID {
		t.Fatalf("expected %s, got %s", group.ID, found.ID)
	}

	_, err = repo.FindGroupByName(ctx, "Linen Shirt", group.ID)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected not found when excluding the group itself, got %v", err)
	}
}

func TestVariantLifecycle(t *testing.T) {
	client := newTestClient(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	group := seedGroup(t, repo, "Wool Jacket")

	varA := uuid.New()
	varB := uuid.New()
	for _, id := range []uuid.UUID{varA, varB} {
		if _, err := repo.CreateVariant(ctx, &models.ProductVariant{
			ID:       id,
			GroupID:  group.ID,
			Color:    "Navy",
			ImageURL: "https://cdn.example.com/navy.jpg",
			Stock:    2,
		}); err != nil {
			t.Fatalf("create variant: %v", err)
		}
	}

	ids, err := repo.ListVariantIDs(ctx, group.ID)
	if err != nil {
		t.Fatalf("list variant ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}

	hover := "https://cdn.example.com/navy-hover.jpg"
	if _, err := repo.UpdateVariant(ctx, &models.ProductVariant{
		ID:            varA,
		GroupID:       group.ID,
		Color:         "Midnight",
		ImageURL:      "https://cdn.example.com/navy.jpg",
		HoverImageURL: &hover,
		Stock:         7,
	}); err != nil {
		t.Fatalf("update variant: %v", err)
	}

	loaded, err := repo.FindGroupByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("load group: %v", err)
	}
	var updated *models.ProductVariant
	for i := range loaded.Variants {
		if loaded.Variants[i].ID == varA {
			updated = &loaded.Variants[i]
		}
	}
	if updated == nil {
		t.Fatal("updated variant missing from preload")
	}
	if updated.Color != "Midnight" || updated.Stock != 7 {
		t.Fatalf("unexpected variant after update: %+v", updated)
	}
	if updated.HoverImageURL == nil || *updated.HoverImageURL != hover {
		t.Fatalf("expected hover url, got %v", updated.HoverImageURL)
	}

	if err := repo.DeleteVariants(ctx, []uuid.UUID{varB}); err != nil {
		t.Fatalf("delete variants: %v", err)
	}
	ids, err = repo.ListVariantIDs(ctx, group.ID)
	if err != nil {
		t.Fatalf("list variant ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != varA {
		t.Fatalf("expected only %s left, got %v", varA, ids)
	}
}

func TestCreateGroupUniqueNameViolation(t *testing.T) {
	client := newTestClient(t)
	repo := NewRepository(client.DB())

	seedGroup(t, repo, "Denim Pants")

	_, err := repo.CreateGroup(context.Background(), &models.ProductGroup{
		ID:       uuid.New(),
		Name:     "Denim Pants",
		Price:    decimal.RequireFromString("29.99"),
		Category: enums.ProductCategoryPants,
		Status:   enums.ProductStatusNew,
	})
	if err == nil {
		t.Fatal("expected unique violation")
	}
}
