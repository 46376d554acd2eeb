// Package storage persists uploaded movie images on the local filesystem.
// Files are stored flat under a configured directory with generated names
// and are served statically under /uploads.
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MaxUploadBytes is the hard cap for a single uploaded image (5 MiB).
const MaxUploadBytes int64 = 5 << 20

// ErrFileTooLarge is returned when an upload exceeds MaxUploadBytes.  The
// check runs before anything is written to disk.
var ErrFileTooLarge = errors.New("file exceeds upload size limit")

// UploadStore writes uploaded files into a single directory.
type UploadStore struct {
	dir      string
	maxBytes int64
}

// NewUploadStore ensures the upload directory exists and returns a store.
func NewUploadStore(dir string) (*UploadStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &UploadStore{dir: dir, maxBytes: MaxUploadBytes}, nil
}

// Save stores the uploaded file under a generated name and returns the
// public reference path ("/uploads/<name>").  The generated name is the
// nanosecond timestamp plus a short random suffix plus the original
// extension, so concurrent uploads cannot collide.
func (s *UploadStore) Save(fh *multipart.FileHeader) (string, error) {
	if fh.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	name := fmt.Sprintf("%d%s%s", time.Now().UnixNano(), randomSuffix(), strings.ToLower(filepath.Ext(fh.Filename)))
	path := filepath.Join(s.dir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// The header size is client supplied, so cap the copy as well and drop
	// the file if the stream turns out larger than declared.
	n, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		os.Remove(path)
		return "", err
	}
	if n > s.maxBytes {
		os.Remove(path)
		return "", ErrFileTooLarge
	}
	return "/uploads/" + name, nil
}

// Dir returns the directory files are stored in, for the static route.
func (s *UploadStore) Dir() string { return s.dir }

// randomSuffix returns four random bytes hex encoded.
func randomSuffix() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "0000"
	}
	return hex.EncodeToString(buf)
}
