// Package clipboard defines the shared clipboard record and its validation
// rules. A clipboard is a server-side document addressed by an opaque
// identifier; anyone holding the identifier can read and overwrite it.
package clipboard

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// MaxContentSize is the largest content payload accepted, in bytes.
// Content at or below this limit is stored verbatim; larger payloads are
// rejected before they reach the storage layer.
const MaxContentSize = 1 << 20 // 1 MiB

// ErrContentTooLarge is returned when content exceeds MaxContentSize.
var ErrContentTooLarge = errors.New("clipboard content too large")

// Clipboard is the server-side record behind a share URL.
// The ID is opaque: it carries no ownership or access semantics beyond
// "whoever has it can edit".
type Clipboard struct {
	CreatedAt time.Time `json:"created_at"` // When the clipboard was created
	UpdatedAt time.Time `json:"updated_at"` // When the content last changed
	ID        string    `json:"id"`         // Opaque identifier
	Content   string    `json:"content"`    // Current text content
}

// Summary is the listing view of a clipboard: metadata without content,
// so list responses stay small regardless of stored payload sizes.
type Summary struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	Size      int       `json:"size"` // Content length in bytes
}

// NewID returns a fresh opaque clipboard identifier.
func NewID() string {
	return uuid.NewString()
}

// New creates a clipboard with the given initial content and a fresh ID.
// Both timestamps are set to the same instant, preserving the invariant
// updated_at >= created_at from the start.
func New(content string) (*Clipboard, error) {
	if err := ValidateContent(content); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Clipboard{
		ID:        NewID(),
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ValidateContent checks that content fits within MaxContentSize.
// Empty content is valid: a cleared clipboard is still a clipboard.
func ValidateContent(content string) error {
	if len(content) > MaxContentSize {
		return ErrContentTooLarge
	}
	return nil
}

// Summary returns the metadata view of the clipboard.
func (c *Clipboard) Summary() Summary {
	return Summary{
		ID:        c.ID,
		Size:      len(c.Content),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// Clone returns a copy of the clipboard to prevent external modification
// of records held by a store.
func (c *Clipboard) Clone() *Clipboard {
	clone := *c
	return &clone
}
