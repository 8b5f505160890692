package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const copyChunkSize = 32 * 1024

// FSStore stores objects on the local filesystem under a root directory and
// serves them through the public base URL (mounted at /media/ by the API).
type FSStore struct {
	root    string
	baseURL string
}

// NewFSStore creates a filesystem store rooted at dir. baseURL is the
// externally reachable prefix returned by PublicURL, e.g.
// "http://localhost:8080/media".
func NewFSStore(dir, baseURL string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &FSStore{root: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Upload writes size bytes from r to objectPath. Existing objects are never
// replaced; a partial file left behind by a failed transfer is removed.
func (s *FSStore) Upload(ctx context.Context, objectPath string, r io.Reader, size int64, progress ProgressFunc) error {
	dst, err := s.localPath(objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}

	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrExists
		}
		return fmt.Errorf("create object: %w", err)
	}

	if err := copyWithProgress(ctx, f, r, size, progress); err != nil {
		f.Close()
		os.Remove(dst)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(dst)
		return fmt.Errorf("close object: %w", err)
	}
	return nil
}

// PublicURL resolves the URL the stored object is served from.
func (s *FSStore) PublicURL(objectPath string) string {
	return s.baseURL + "/" + strings.TrimLeft(path.Clean(objectPath), "/")
}

func (s *FSStore) localPath(objectPath string) (string, error) {
	// Rooting before Clean keeps any ".." segments from escaping the
	// media root.
	cleaned := path.Clean("/" + objectPath)
	if cleaned == "/" {
		return "", fmt.Errorf("invalid object path %q", objectPath)
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

func copyWithProgress(ctx context.Context, w io.Writer, r io.Reader, size int64, progress ProgressFunc) error {
	if progress == nil {
		progress = func(int) {}
	}
	progress(0)

	buf := make([]byte, copyChunkSize)
	var written int64
	lastPercent := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, readErr := r.Read(buf)
		if n > 0 {
			if _, err := w.Write(buf[:n]); err != nil {
				return fmt.Errorf("write object: %w", err)
			}
			written += int64(n)
			if size > 0 {
				percent := int(written * 100 / size)
				if percent > 100 {
					percent = 100
				}
				if percent > lastPercent {
					lastPercent = percent
					progress(percent)
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("read upload: %w", readErr)
		}
	}
	if lastPercent < 100 {
		progress(100)
	}
	return nil
}
