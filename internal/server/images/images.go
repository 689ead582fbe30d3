// Package images stores uploaded profile images under random opaque names.
package images

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	// ErrImageNotFound indicates that no image is stored under the name
	ErrImageNotFound = errors.New("image not found")

	// ErrInvalidName indicates a name that could not have been produced by NewName
	ErrInvalidName = errors.New("invalid image name")
)

var namePattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Store persists image bytes under generated names
type Store interface {
	// Save writes data under a fresh random name and returns the name
	// An existing name is never overwritten
	Save(ctx context.Context, data []byte) (string, error)

	// Delete removes the image; deleting a missing image is not an error
	Delete(ctx context.Context, name string) error

	// Open returns the stored image content
	// Returns ErrImageNotFound if nothing is stored under the name
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// NewName returns a random 32 character hex name
func NewName() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidName reports whether name has the shape produced by NewName
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// DetectType sniffs the MIME type from content, ignoring any declared type
func DetectType(data []byte) string {
	mt := mimetype.Detect(data).String()
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = mt[:i]
	}
	return strings.TrimSpace(mt)
}
