// Package storage keeps uploaded teacher documents on disk, confined to a
// single root directory. Paths handed out (and stored on teacher records) are
// always relative to that root.
package storage

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"teacher-transfer-system/internal/util"
	"teacher-transfer-system/pkg/apierror"
)

type Store struct {
	rootAbs string
}

func New(root string) (*Store, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("upload root cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve upload root: %w", err)
	}

	if err := os.MkdirAll(rootAbs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}

	return &Store{rootAbs: rootAbs}, nil
}

func (s *Store) RootAbs() string {
	return s.rootAbs
}

// Save streams r into <root>/<category>/<uuid>_<sanitized name> and returns
// the root-relative path for persistence on the owning record.
func (s *Store) Save(category string, filename string, r io.Reader) (string, error) {
	cleanName, err := util.SanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	category = strings.Trim(strings.TrimSpace(category), "/")
	if category == "" || strings.Contains(category, "..") {
		return "", apierror.New("INVALID_PATH", "invalid upload category", category, http.StatusBadRequest)
	}

	relPath := filepath.ToSlash(filepath.Join(category, uuid.NewString()+"_"+cleanName))
	resolved, err := s.Resolve(relPath)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return "", fmt.Errorf("create category dir: %w", err)
	}

	dst, err := os.OpenFile(resolved, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("open upload target: %w", err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(resolved)
		return "", err
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(resolved)
		return "", err
	}

	return relPath, nil
}

func (s *Store) Open(relPath string) (*os.File, error) {
	resolved, err := s.Resolve(relPath)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apierror.New("NOT_FOUND", "document not found", relPath, http.StatusNotFound)
		}
		return nil, err
	}

	return f, nil
}

func (s *Store) Remove(relPath string) error {
	resolved, err := s.Resolve(relPath)
	if err != nil {
		return err
	}

	if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %q: %w", relPath, err)
	}

	return nil
}

// Resolve maps a stored relative path to an absolute one, rejecting anything
// that would escape the upload root.
func (s *Store) Resolve(relPath string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(relPath), `\`, "/")
	if normalized == "" || normalized == "/" {
		return "", apierror.New("INVALID_PATH", "document path cannot be empty", "", http.StatusBadRequest)
	}

	if strings.Contains(normalized, "\x00") || hasControlCharacters(normalized) {
		return "", apierror.New("INVALID_PATH", "path contains invalid characters", relPath, http.StatusBadRequest)
	}

	for _, segment := range strings.Split(normalized, "/") {
		if segment == ".." {
			return "", apierror.New("PATH_TRAVERSAL", "path traversal attempt detected", relPath, http.StatusForbidden)
		}
	}

	cleanRel := filepath.Clean(strings.TrimPrefix(normalized, "/"))
	resolvedAbs, err := filepath.Abs(filepath.Join(s.rootAbs, cleanRel))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	if !isWithinRoot(s.rootAbs, resolvedAbs) {
		return "", apierror.New("PATH_TRAVERSAL", "resolved path is outside upload root", relPath, http.StatusForbidden)
	}

	return resolvedAbs, nil
}

func hasControlCharacters(value string) bool {
	for _, char := range value {
		if unicode.IsControl(char) {
			return true
		}
	}

	return false
}

func isWithinRoot(rootAbs string, candidateAbs string) bool {
	if candidateAbs == rootAbs {
		return true
	}

	return strings.HasPrefix(candidateAbs, rootAbs+string(filepath.Separator))
}
