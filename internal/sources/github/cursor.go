package github

import (
	"encoding/base64"
	"encoding/json"
)

// CursorVersion is the current cursor schema version.
const CursorVersion = 1

// Cursor tracks the last synchronised head commit of the repository.
type Cursor struct {
	// Version is the schema version for future migrations.
	Version int `json:"v"`

	// HeadSHA is the commit SHA the index was last built from.
	HeadSHA string `json:"head_sha,omitempty"`
}

// NewCursor creates a new empty cursor.
func NewCursor() *Cursor {
	return &Cursor{Version: CursorVersion}
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
// An empty input yields a new empty cursor.
func DecodeCursor(s string) (*Cursor, error) {
	if s == "" {
		return NewCursor(), nil
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, ErrInvalidCursor
	}
	return &cursor, nil
}
