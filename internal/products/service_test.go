package product

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/only4u/only4u-backend/internal/media"
	"github.com/only4u/only4u-backend/pkg/enums"
	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
)

type serviceFixture struct {
	svc      Service
	repo     *Repository
	admins   *fakeAdminChecker
	uploader *fakeUploader
	adminID  uuid.UUID
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	client := newTestClient(t)
	repo := NewRepository(client.DB())
	adminID := uuid.New()
	admins := &fakeAdminChecker{admins: map[uuid.UUID]bool{adminID: true}}
	uploader := &fakeUploader{}

	svc, err := NewService(repo, client, admins, uploader)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &serviceFixture{
		svc:      svc,
		repo:     repo,
		admins:   admins,
		uploader: uploader,
		adminID:  adminID,
	}
}

func redDressInput(variantID uuid.UUID) GroupInput {
	return GroupInput{
		Name:        "Red Dress",
		Price:       decimal.RequireFromString("49.99"),
		Description: "Silk midi dress",
		Category:    enums.ProductCategoryDress,
		Status:      enums.ProductStatusNew,
		Variants: []VariantSubmission{
			{
				ID:        variantID,
				Color:     "Red",
				Stock:     10,
				MainImage: &media.File{Name: "red.png", Data: []byte("png")},
			},
		},
	}
}

func TestCreateGroupHappyPath(t *testing.T) {
	f := newServiceFixture(t)
	variantID := uuid.New()

	dto, err := f.svc.CreateGroup(context.Background(), f.adminID, redDressInput(variantID))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if dto.Name != "Red Dress" {
		t.Fatalf("unexpected name %s", dto.Name)
	}
	if !dto.Price.Equal(decimal.RequireFromString("49.99")) {
		t.Fatalf("unexpected price %s", dto.Price)
	}
	if len(dto.Variants) != 1 {
		t.Fatalf("expected 1 variant, got %d", len(dto.Variants))
	}
	variant := dto.Variants[0]
	if variant.ID != variantID {
		t.Fatalf("expected client-supplied variant id to persist, got %s", variant.ID)
	}
	if variant.Stock != 10 || variant.Color != "Red" {
		t.Fatalf("unexpected variant %+v", variant)
	}
	if variant.ImageURL == "" {
		t.Fatal("expected resolved image url")
	}
	if variant.HoverImageURL != nil {
		t.Fatalf("expected no hover url, got %v", variant.HoverImageURL)
	}

	if len(f.uploader.uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(f.uploader.uploads))
	}
	if up := f.uploader.uploads[0]; up.VariantID != variantID || up.Role != enums.ImageRoleMain {
		t.Fatalf("unexpected upload %+v", up)
	}
}

func TestCreateGroupDuplicateName(t *testing.T) {
	f := newServiceFixture(t)

	if _, err := f.svc.CreateGroup(context.Background(), f.adminID, redDressInput(uuid.New())); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := f.svc.CreateGroup(context.Background(), f.adminID, redDressInput(uuid.New()))
	if err == nil {
		t.Fatal("expected conflict")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}
}

func TestCreateGroupValidationRunsFirst(t *testing.T) {
	f := newServiceFixture(t)

	input := redDressInput(uuid.New())
	input.Variants[0].Stock = -1

	_, err := f.svc.CreateGroup(context.Background(), f.adminID, input)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
	if f.admins.calls != 0 {
		t.Fatal("role lookup must not run for invalid input")
	}
	if len(f.uploader.uploads) != 0 {
		t.Fatal("nothing may be uploaded for invalid input")
	}
}

func TestCreateGroupRequiresVariantAndImage(t *testing.T) {
	f := newServiceFixture(t)

	input := redDressInput(uuid.New())
	input.Variants = nil
	if _, err := f.svc.CreateGroup(context.Background(), f.adminID, input); err == nil {
		t.Fatal("expected error for empty variant list")
	}

	input = redDressInput(uuid.New())
	input.Variants[0].MainImage = nil
	if _, err := f.svc.CreateGroup(context.Background(), f.adminID, input); err == nil {
		t.Fatal("expected error for missing main image")
	}
}

func TestCreateGroupForbiddenForNonAdmin(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.CreateGroup(context.Background(), uuid.New(), redDressInput(uuid.New()))
	if err == nil {
		t.Fatal("expected forbidden")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden code, got %v", err)
	}
	if len(f.uploader.uploads) != 0 {
		t.Fatal("nothing may be uploaded for a forbidden actor")
	}
}

func TestCreateGroupFailsClosedOnRoleLookupError(t *testing.T) {
	f := newServiceFixture(t)
	f.admins.err = errors.New("users table unavailable")

	_, err := f.svc.CreateGroup(context.Background(), f.adminID, redDressInput(uuid.New()))
	if err == nil {
		t.Fatal("expected dependency error")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestUpdateGroupReconcilesVariants(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	varA := uuid.New()
	varB := uuid.New()

	input := redDressInput(varA)
	input.Variants = append(input.Variants, VariantSubmission{
		ID:        varB,
		Color:     "Black",
		Stock:     4,
		MainImage: &media.File{Name: "black.png", Data: []byte("png")},
	})

	created, err := f.svc.CreateGroup(ctx, f.adminID, input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	var priorURL string
	for _, variant := range created.Variants {
		if variant.ID == varA {
			priorURL = variant.ImageURL
		}
	}

	// Resubmit keeping only A, no new files, echoing the stored URL.
	update := GroupInput{
		Name:        "Red Dress",
		Price:       decimal.RequireFromString("59.99"),
		Description: "Silk midi dress, restocked",
		Category:    enums.ProductCategoryDress,
		Status:      enums.ProductStatusOnSale,
		Variants: []VariantSubmission{
			{ID: varA, Color: "Red", Stock: 3, ImageURL: priorURL},
		},
	}

	updated, err := f.svc.UpdateGroup(ctx, f.adminID, created.ID, update)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if len(updated.Variants) != 1 {
		t.Fatalf("expected 1 variant after update, got %d", len(updated.Variants))
	}
	variant := updated.Variants[0]
	if variant.ID != varA {
		t.Fatalf("expected variant %s to survive, got %s", varA, variant.ID)
	}
	if variant.ImageURL != priorURL {
		t.Fatalf("expected retained url %s, got %s", priorURL, variant.ImageURL)
	}
	if variant.Stock != 3 {
		t.Fatalf("expected stock 3, got %d", variant.Stock)
	}
	if updated.Status != string(enums.ProductStatusOnSale) {
		t.Fatalf("expected on_sale status, got %s", updated.Status)
	}

	ids, err := f.repo.ListVariantIDs(ctx, created.ID)
	if err != nil {
		t.Fatalf("list variant ids: %v", err)
	}
	if len(ids) != 1 || ids[0] != varA {
		t.Fatalf("expected only %s persisted, got %v", varA, ids)
	}
}

func TestUpdateGroupNameConflictWithOtherGroup(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateGroup(ctx, f.adminID, redDressInput(uuid.New()))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}

	secondInput := redDressInput(uuid.New())
	secondInput.Name = "Black Dress"
	second, err := f.svc.CreateGroup(ctx, f.adminID, secondInput)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	update := redDressInput(second.Variants[0].ID)
	update.Variants[0].MainImage = nil
	update.Variants[0].ImageURL = second.Variants[0].ImageURL

	_, err = f.svc.UpdateGroup(ctx, f.adminID, second.ID, update)
	if err == nil {
		t.Fatal("expected conflict renaming onto existing group")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", err)
	}

	// Re-saving the first group under its own name stays allowed.
	selfUpdate := redDressInput(first.Variants[0].ID)
	selfUpdate.Variants[0].MainImage = nil
	selfUpdate.Variants[0].ImageURL = first.Variants[0].ImageURL
	if _, err := f.svc.UpdateGroup(ctx, f.adminID, first.ID, selfUpdate); err != nil {
		t.Fatalf("self-rename should pass: %v", err)
	}
}

func TestUpdateGroupNotFound(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.UpdateGroup(context.Background(), f.adminID, uuid.New(), redDressInput(uuid.New()))
	if err == nil {
		t.Fatal("expected not found")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestDeleteGroupCascadesVariants(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateGroup(ctx, f.adminID, redDressInput(uuid.New()))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := f.svc.DeleteGroup(ctx, f.adminID, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := f.repo.FindGroupByID(ctx, created.ID); err == nil {
		t.Fatal("expected group to be gone")
	}
	ids, err := f.repo.ListVariantIDs(ctx, created.ID)
	if err != nil {
		t.Fatalf("list variant ids: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected cascade to remove variants, got %v", ids)
	}
}

func TestDeleteGroupNotFound(t *testing.T) {
	f := newServiceFixture(t)

	err := f.svc.DeleteGroup(context.Background(), f.adminID, uuid.New())
	if err == nil {
		t.Fatal("expected not found")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", err)
	}
}

func TestUpdateGroupUploadsReplacementImages(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	variantID := uuid.New()
	created, err := f.svc.CreateGroup(ctx, f.adminID, redDressInput(variantID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	f.uploader.uploads = nil

	update := redDressInput(variantID)
	update.Variants[0].HoverImage = &media.File{Name: "red-hover.png", Data: []byte("png")}

	updated, err := f.svc.UpdateGroup(ctx, f.adminID, created.ID, update)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if len(f.uploader.uploads) != 2 {
		t.Fatalf("expected main + hover uploads, got %d", len(f.uploader.uploads))
	}
	roles := map[enums.ImageRole]bool{}
	for _, up := range f.uploader.uploads {
		if up.GroupID != created.ID || up.VariantID != variantID {
			t.Fatalf("upload keyed to wrong ids: %+v", up)
		}
		roles[up.Role] = true
	}
	if !roles[enums.ImageRoleMain] || !roles[enums.ImageRoleHover] {
		t.Fatalf("expected both roles uploaded, got %v", roles)
	}
	if updated.Variants[0].HoverImageURL == nil {
		t.Fatal("expected hover url to be set")
	}
}
