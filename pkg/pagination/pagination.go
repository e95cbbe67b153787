package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultLimit is the storefront grid page size when none is requested.
	DefaultLimit = 25
	// MaxLimit caps how many products a single catalog query may return.
	MaxLimit = 100
)

// Params holds the caller-supplied paging inputs.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor marks the last row of the previous page. Catalog listings order by
// created_at descending with the id as tiebreaker, so both travel together.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps a requested page size into the allowed range.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// PeekLimit is the normalized limit plus one extra row used to detect whether
// another page exists.
func PeekLimit(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor renders an opaque cursor token for the response.
func EncodeCursor(cursor Cursor) string {
	payload := fmt.Sprintf("%d.%s", cursor.CreatedAt.UTC().UnixNano(), cursor.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// ParseCursor decodes a cursor token. An empty token means the first page.
func ParseCursor(value string) (*Cursor, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	decoded, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor: %w", err)
	}
	nanos, rawID, found := strings.Cut(string(decoded), ".")
	if !found {
		return nil, fmt.Errorf("malformed cursor")
	}

	ts, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor timestamp: %w", err)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("malformed cursor id: %w", err)
	}
	return &Cursor{
		CreatedAt: time.Unix(0, ts).UTC(),
		ID:        id,
	}, nil
}
