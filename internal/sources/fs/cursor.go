package fs

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
)

// CursorVersion is the current cursor schema version.
const CursorVersion = 1

// Cursor records the observed state of the directory tree: every file
// path mapped to its modification time in Unix nanoseconds. Diffs are
// computed by comparing a fresh walk against the cursor.
type Cursor struct {
	// Version is the schema version for future migrations.
	Version int `json:"v"`

	// Files maps path to modification time (Unix nanoseconds).
	Files map[string]int64 `json:"files"`
}

// NewCursor creates a new empty cursor.
func NewCursor() *Cursor {
	return &Cursor{
		Version: CursorVersion,
		Files:   make(map[string]int64),
	}
}

// Encode serialises the cursor to a base64-encoded JSON string.
func (c *Cursor) Encode() string {
	if c == nil {
		return ""
	}
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeCursor deserialises a cursor from a base64-encoded JSON string.
// Returns a new empty cursor for empty input and domain.ErrInvalidCursor
// for input that cannot be decoded.
func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return NewCursor(), nil
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, domain.ErrInvalidCursor
	}

	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, domain.ErrInvalidCursor
	}

	if cursor.Files == nil {
		cursor.Files = make(map[string]int64)
	}
	return &cursor, nil
}
