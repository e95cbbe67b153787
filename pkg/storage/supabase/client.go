package supabase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	storage_go "github.com/supabase-community/storage-go"

	"github.com/only4u/only4u-backend/pkg/config"
)

// Client wraps the Supabase Storage API used for public asset buckets.
type Client struct {
	api *storage_go.Client
}

// New builds a storage client authenticated with the service role key.
func New(cfg config.StorageConfig) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.SupabaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("supabase url is required")
	}
	if strings.TrimSpace(cfg.SupabaseServiceKey) == "" {
		return nil, fmt.Errorf("supabase service role key is required")
	}

	api := storage_go.NewClient(baseURL+"/storage/v1", cfg.SupabaseServiceKey, nil)
	return &Client{api: api}, nil
}

// Upload writes the object at the given key, overwriting any prior version,
// and returns the public URL. Buckets are public; callers embed the URL
// directly in catalog rows.
func (c *Client) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) (string, error) {
	if bucket == "" {
		return "", fmt.Errorf("bucket is required")
	}
	if key == "" {
		return "", fmt.Errorf("object key is required")
	}

	upsert := true
	opts := storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	}

	if _, err := c.api.UploadFile(bucket, key, bytes.NewReader(data), opts); err != nil {
		return "", fmt.Errorf("upload %s/%s: %w", bucket, key, err)
	}

	return c.PublicURL(bucket, key), nil
}

// PublicURL resolves the public URL for an object in a public bucket.
func (c *Client) PublicURL(bucket, key string) string {
	return c.api.GetPublicUrl(bucket, key).SignedURL
}
