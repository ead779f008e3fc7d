package service

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/foliohq/folio/internal/config"
	"github.com/foliohq/folio/internal/domain"
)

// imageExtensions maps allowed upload extensions to the content types the
// sniffed bytes must match.
var imageExtensions = map[string][]string{
	".png":  {"image/png"},
	".jpg":  {"image/jpeg"},
	".jpeg": {"image/jpeg"},
	".gif":  {"image/gif"},
	".webp": {"image/webp"},
}

// UploadService stores project images on local disk under a configured
// directory and hands back the public path to reference them by.
type UploadService struct {
	dir      string
	maxBytes int64
}

// NewUploadService creates the upload directory if needed.
func NewUploadService(cfg *config.Upload) (*UploadService, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadService{
		dir:      cfg.Dir,
		maxBytes: cfg.MaxSizeMB << 20,
	}, nil
}

// MaxBytes returns the per-file size limit.
func (s *UploadService) MaxBytes() int64 { return s.maxBytes }

// Dir returns the directory files are stored in (for static serving).
func (s *UploadService) Dir() string { return s.dir }

// Store validates and saves an uploaded image. The stored name is a random
// UUID plus the original extension; the client-supplied name is never used
// on disk. Returns the public URL path of the stored file.
func (s *UploadService) Store(file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > s.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", domain.ErrValidation, s.maxBytes)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed, ok := imageExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: unsupported file type %q", domain.ErrValidation, ext)
	}

	// Sniff the real content type; the extension alone is not trusted.
	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if n == 0 {
		return "", fmt.Errorf("%w: empty file", domain.ErrValidation)
	}
	sniffed := http.DetectContentType(head[:n])

	match := false
	for _, ct := range allowed {
		if sniffed == ct {
			match = true
			break
		}
	}
	if !match {
		return "", fmt.Errorf("%w: content type %s does not match extension %s", domain.ErrValidation, sniffed, ext)
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("rewind upload: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(file, s.maxBytes)); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("write file: %w", err)
	}

	return "/uploads/" + name, nil
}

// Delete removes a stored image by its file name. Only plain base names
// with an allowed image extension are accepted; anything that could escape
// the upload directory is rejected before touching the filesystem.
func (s *UploadService) Delete(name string) error {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: invalid file name", domain.ErrValidation)
	}
	if _, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
		return fmt.Errorf("%w: unsupported file type", domain.ErrValidation)
	}

	if err := os.Remove(filepath.Join(s.dir, name)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: upload %s", domain.ErrNotFound, name)
		}
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}
