// Package storage implements the upload store for category images and user
// avatars. Files live on local disk under a configurable root; records keep
// the path relative to that root (e.g. "category_images/3f1c….png").
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Logical folders, one per attachment kind.
const (
	FolderCategoryImages = "category_images"
	FolderAvatars        = "avatars"
)

// Store accepts uploaded files and returns stored paths. Deletion takes the
// stored path back; Exists checks local disk before a delete.
type Store interface {
	Save(file *multipart.FileHeader, folder string) (string, error)
	Exists(path string) bool
	Delete(path string) error
}

// DiskStore is the local-filesystem Store.
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("upload store: create root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Root returns the absolute directory the store writes under.
func (s *DiskStore) Root() string { return s.root }

// Save writes the uploaded file under folder with a random name, keeping the
// original extension, and returns the path relative to the store root.
func (s *DiskStore) Save(file *multipart.FileHeader, folder string) (string, error) {
	if err := os.MkdirAll(filepath.Join(s.root, folder), 0o755); err != nil {
		return "", fmt.Errorf("upload store: create folder: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	rel := filepath.ToSlash(filepath.Join(folder, uuid.NewString()+ext))

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("upload store: open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return "", fmt.Errorf("upload store: create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("upload store: write file: %w", err)
	}
	return rel, nil
}

func (s *DiskStore) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(path)))
	return err == nil
}

func (s *DiskStore) Delete(path string) error {
	return os.Remove(filepath.Join(s.root, filepath.FromSlash(path)))
}
