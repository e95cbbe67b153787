package product

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/only4u/only4u-backend/internal/media"
	"github.com/only4u/only4u-backend/pkg/db"
	"github.com/only4u/only4u-backend/pkg/enums"
)

// newTestClient opens a per-test in-memory sqlite database with the product
// schema applied.
func newTestClient(t *testing.T) *db.Client {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	ddl := []string{
		`CREATE TABLE product_groups (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			price TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE UNIQUE INDEX idx_product_groups_name ON product_groups (name)`,
		`CREATE TABLE product_variants (
			id TEXT PRIMARY KEY,
			group_id TEXT NOT NULL REFERENCES product_groups (id) ON DELETE CASCADE,
			color TEXT NOT NULL,
			image_url TEXT NOT NULL,
			hover_image_url TEXT,
			stock INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME,
			updated_at DATETIME
		)`,
	}
	for _, stmt := range ddl {
		if err := conn.Exec(stmt).Error; err != nil {
			t.Fatalf("apply test schema: %v", err)
		}
	}

	return db.NewWithConn(conn)
}

type fakeAdminChecker struct {
	admins map[uuid.UUID]bool
	err    error
	calls  int
}

func (f *fakeAdminChecker) IsAdmin(_ context.Context, userID uuid.UUID) (bool, error) {
	f.calls++
	if f.err != nil {
		return false, f.err
	}
	return f.admins[userID], nil
}

type uploadedImage struct {
	GroupID   uuid.UUID
	VariantID uuid.UUID
	Role      enums.ImageRole
	Name      string
}

type fakeUploader struct {
	uploads []uploadedImage
	err     error
}

func (f *fakeUploader) UploadProductImage(_ context.Context, groupID, variantID uuid.UUID, role enums.ImageRole, file media.File) (*media.UploadResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.uploads = append(f.uploads, uploadedImage{
		GroupID:   groupID,
		VariantID: variantID,
		Role:      role,
		Name:      file.Name,
	})
	key := fmt.Sprintf("%s/%s-%s.png", groupID, variantID, role)
	return &media.UploadResult{
		URL:  "https://cdn.example.com/product-images/" + key,
		Path: key,
	}, nil
}
