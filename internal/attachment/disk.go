package attachment

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

var allowedContentTypes = []string{
	"image/jpeg",
	"image/png",
	"application/pdf",
}

// DiskStore writes attachments under a base directory and returns the
// relative path as the reference.
type DiskStore struct {
	baseDir string
}

func NewDiskStore(baseDir string) *DiskStore {
	if baseDir == "" {
		baseDir = "statics"
	}
	return &DiskStore{baseDir: baseDir}
}

func (s *DiskStore) Store(_ context.Context, file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !contains(allowedContentTypes, contentType) {
		return "", fmt.Errorf("invalid file type, expected one of %v, got: %s", allowedContentTypes, contentType)
	}

	if err := os.MkdirAll(s.baseDir, os.ModePerm); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s-%s-%s", time.Now().Format("20060102T150405"), uuid.New().String()[:8], filepath.Base(file.Filename))
	target := filepath.Join(s.baseDir, name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		// never leave a partial file behind
		os.Remove(target)
		return "", err
	}

	return target, nil
}

func (s *DiskStore) Remove(_ context.Context, ref string) error {
	return os.Remove(ref)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
