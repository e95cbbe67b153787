package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/only4u/only4u-backend/pkg/config"
	"github.com/only4u/only4u-backend/pkg/enums"
	pkgerrors "github.com/only4u/only4u-backend/pkg/errors"
)

// File carries the raw bytes of one uploaded file.
type File struct {
	Name string
	Data []byte
}

// UploadResult reports where an uploaded object landed.
type UploadResult struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

type objectStore interface {
	Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error)
}

// Service exposes object-storage uploads for product images and business
// license documents.
type Service interface {
	UploadProductImage(ctx context.Context, groupID, variantID uuid.UUID, role enums.ImageRole, file File) (*UploadResult, error)
	UploadProductImages(ctx context.Context, groupID uuid.UUID, files []File) ([]UploadResult, error)
	UploadBusinessLicense(ctx context.Context, userID uuid.UUID, file File) (*UploadResult, error)
}

type service struct {
	store         objectStore
	imagesBucket  string
	licenseBucket string
	maxImageBytes int64
	maxBatchFiles int
}

// NewService constructs a media service over the provided object store.
func NewService(store objectStore, storageCfg config.StorageConfig, uploadsCfg config.UploadsConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("object store required")
	}
	if storageCfg.ProductImagesBucket == "" {
		return nil, fmt.Errorf("product images bucket required")
	}
	if storageCfg.BusinessLicenseBucket == "" {
		return nil, fmt.Errorf("business license bucket required")
	}
	if uploadsCfg.MaxImageBytes <= 0 {
		return nil, fmt.Errorf("max image bytes must be positive")
	}
	if uploadsCfg.MaxBatchFiles <= 0 {
		return nil, fmt.Errorf("max batch files must be positive")
	}
	return &service{
		store:         store,
		imagesBucket:  storageCfg.ProductImagesBucket,
		licenseBucket: storageCfg.BusinessLicenseBucket,
		maxImageBytes: uploadsCfg.MaxImageBytes,
		maxBatchFiles: uploadsCfg.MaxBatchFiles,
	}, nil
}

// UploadProductImage stores one variant image under a deterministic key so a
// retried submission overwrites the prior object instead of leaking a copy.
func (s *service) UploadProductImage(ctx context.Context, groupID, variantID uuid.UUID, role enums.ImageRole, file File) (*UploadResult, error) {
	if groupID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group id is required")
	}
	if variantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id is required")
	}
	if !role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid image role")
	}

	mtype, err := s.validateImage(file)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s/%s-%s%s", groupID, variantID, role, mtype.Extension())
	return s.upload(ctx, s.imagesBucket, key, file.Data, mtype.String())
}

// UploadProductImages stores a batch of gallery images for a group. Each file
// gets a fresh object id; the whole batch is validated before the first write.
func (s *service) UploadProductImages(ctx context.Context, groupID uuid.UUID, files []File) ([]UploadResult, error) {
	if groupID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "group id is required")
	}
	if len(files) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one file is required")
	}
	if len(files) > s.maxBatchFiles {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("at most %d files per request", s.maxBatchFiles))
	}

	types := make([]*mimetype.MIME, len(files))
	for i, file := range files {
		mtype, err := s.validateImage(file)
		if err != nil {
			return nil, err
		}
		types[i] = mtype
	}

	results := make([]UploadResult, 0, len(files))
	for i, file := range files {
		key := fmt.Sprintf("%s/%s%s", groupID, uuid.New(), types[i].Extension())
		result, err := s.upload(ctx, s.imagesBucket, key, file.Data, types[i].String())
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// UploadBusinessLicense stores a signup license document. Images and PDFs are
// accepted; the key is derived from the user id so re-submission overwrites.
func (s *service) UploadBusinessLicense(ctx context.Context, userID uuid.UUID, file File) (*UploadResult, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if len(file.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}
	if int64(len(file.Data)) > s.maxImageBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds %d bytes", s.maxImageBytes))
	}

	mtype := mimetype.Detect(file.Data)
	if !strings.HasPrefix(mtype.String(), "image/") && !mtype.Is("application/pdf") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file must be an image or a PDF")
	}

	key := fmt.Sprintf("%s/license%s", userID, mtype.Extension())
	return s.upload(ctx, s.licenseBucket, key, file.Data, mtype.String())
}

// validateImage sniffs the content type from the bytes rather than trusting
// the client-supplied header.
func (s *service) validateImage(file File) (*mimetype.MIME, error) {
	if len(file.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}
	if int64(len(file.Data)) > s.maxImageBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds %d bytes", s.maxImageBytes))
	}

	mtype := mimetype.Detect(file.Data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file must be an image")
	}
	return mtype, nil
}

func (s *service) upload(ctx context.Context, bucket, key string, data []byte, contentType string) (*UploadResult, error) {
	url, err := s.store.Upload(ctx, bucket, key, data, contentType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload object")
	}
	return &UploadResult{URL: url, Path: key}, nil
}
