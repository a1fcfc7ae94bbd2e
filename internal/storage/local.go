package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PublicPrefix is the URL path the avatar directory is mounted on
const PublicPrefix = "/avatars/"

type LocalStore struct {
	Dir string
}

func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create avatar directory, %w", err)
	}

	return &LocalStore{Dir: dir}, nil
}

func (l *LocalStore) Put(_ context.Context, path, name, _ string) (string, error) {
	dst := filepath.Join(l.Dir, name)

	if err := os.Rename(path, dst); err != nil {
		// Rename fails across filesystems, retry with a plain copy
		// before giving up
		if cErr := copyFile(path, dst); cErr != nil {
			os.Remove(path)
			return "", fmt.Errorf("failed to move avatar into place, %w", err)
		}
		os.Remove(path)
	}

	return PublicPrefix + name, nil
}

func (l *LocalStore) Remove(_ context.Context, url string) error {
	name, ok := strings.CutPrefix(url, PublicPrefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return nil
	}

	err := os.Remove(filepath.Join(l.Dir, name))
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
