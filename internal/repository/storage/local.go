package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"kledje/domain"
)

var validName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ErrInvalidName rejects anything that is not a plain file name.
var ErrInvalidName = errors.New("invalid file name")

// ValidName reports whether name is a single path element safe to store.
func ValidName(name string) bool {
	return validName.MatchString(name) && !strings.Contains(name, "..") && filepath.Base(name) == name
}

// LocalStore keeps uploads on disk; they are served under /uploads.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir %s: %w", dir, err)
	}

	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

func (s *LocalStore) Dir() string {
	return s.dir
}

// Save returns "/uploads/<name>" prefixed by the public base URL when one
// is configured.
func (s *LocalStore) Save(ctx context.Context, name string, data []byte, _ string) (string, error) {
	if !ValidName(name) {
		return "", ErrInvalidName
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}

	return s.baseURL + "/uploads/" + name, nil
}

func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("delete %s: %w", name, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}

	return nil
}
