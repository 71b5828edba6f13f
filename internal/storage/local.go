package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const pagesDir = "book_pages"

var _ Store = (*Local)(nil)

// Local stores images on the filesystem under <root>/book_pages and
// serves them through the server's /media/ route.
type Local struct {
	root    string
	baseURL string
}

// NewLocal creates the backing directory if needed. baseURL is the
// externally visible origin, e.g. http://localhost:8000.
func NewLocal(root, baseURL string) (*Local, error) {
	if err := os.MkdirAll(filepath.Join(root, pagesDir), os.ModePerm); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}

	return &Local{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Root returns the directory served at /media/.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) Save(ctx context.Context, filename string, data []byte) (string, error) {
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".jpg"
	}

	ref := filepath.Join(pagesDir, uuid.New().String()+ext)
	if err := os.WriteFile(filepath.Join(l.root, ref), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}

	return ref, nil
}

func (l *Local) Delete(ctx context.Context, ref string) error {
	err := os.Remove(filepath.Join(l.root, ref))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func (l *Local) URL(ref string) string {
	if ref == "" {
		return ""
	}

	return l.baseURL + "/media/" + filepath.ToSlash(ref)
}

func (l *Local) ModTime(ctx context.Context, ref string) (time.Time, error) {
	info, err := os.Stat(filepath.Join(l.root, ref))
	if err != nil {
		return time.Time{}, err
	}

	return info.ModTime(), nil
}

func (l *Local) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(l.root, pagesDir))
	if err != nil {
		return nil, err
	}

	refs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		refs = append(refs, filepath.Join(pagesDir, entry.Name()))
	}

	return refs, nil
}
