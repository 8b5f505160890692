// Package media stores uploaded catalog images and resolves their public
// URLs. Objects live under logical slash-separated paths such as
// "perfumes/abc123.jpg".
package media

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrExists is returned when an upload targets a path that already
	// holds an object. Uploads never overwrite.
	ErrExists = errors.New("object already exists")
)

// ProgressFunc receives upload progress as a percentage in the range 0-100.
// Reported values are monotonically non-decreasing and end at 100 when the
// transfer completes successfully.
type ProgressFunc func(percent int)

// Store is the blob storage contract used by the catalog write path.
type Store interface {
	// Upload stores size bytes from r at the given logical path. It fails
	// with ErrExists if an object is already present at that path.
	Upload(ctx context.Context, objectPath string, r io.Reader, size int64, progress ProgressFunc) error
	// PublicURL resolves the dereferenceable URL of a stored object.
	PublicURL(objectPath string) string
}

// ObjectName derives a randomized object path under prefix, preserving the
// extension of the original file name so stored objects keep a usable
// content hint. Randomization avoids collisions between uploads that share
// a file name.
func ObjectName(prefix, originalName string) string {
	ext := strings.ToLower(path.Ext(originalName))
	name := strings.ReplaceAll(uuid.New().String(), "-", "")
	return path.Join(prefix, name+ext)
}
