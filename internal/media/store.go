package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bellakids/storefront-backend/pkg/config"
	pkgerrors "github.com/bellakids/storefront-backend/pkg/errors"
)

var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/gif":  {},
}

var allowedExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
	".gif":  {},
}

// Upload is one incoming product image, decoupled from the multipart form so
// the store can be exercised without HTTP machinery.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// Store writes product images to the local upload directory and serves them
// back under the configured public path.
type Store struct {
	dir            string
	publicBasePath string
	placeholderURL string
	maxFiles       int
	maxBytes       int64
}

// NewStore prepares the upload directory.
func NewStore(cfg config.UploadsConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("upload directory required")
	}
	if cfg.MaxFiles <= 0 {
		return nil, fmt.Errorf("max upload files must be positive")
	}
	if cfg.MaxUploadMB <= 0 {
		return nil, fmt.Errorf("max upload size must be positive")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	basePath := cfg.PublicBasePath
	if !strings.HasSuffix(basePath, "/") {
		basePath += "/"
	}

	return &Store{
		dir:            cfg.Dir,
		publicBasePath: basePath,
		placeholderURL: cfg.PlaceholderURL,
		maxFiles:       cfg.MaxFiles,
		maxBytes:       int64(cfg.MaxUploadMB) * 1024 * 1024,
	}, nil
}

// Dir returns the directory the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// PublicBasePath returns the URL prefix uploads are served under.
func (s *Store) PublicBasePath() string {
	return s.publicBasePath
}

// SaveAll persists every upload and returns their public URLs in input order.
// On any failure the already-written files are removed again.
func (s *Store) SaveAll(ctx context.Context, uploads []Upload) ([]string, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	if len(uploads) > s.maxFiles {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "too many files").
			WithDetails(map[string]int{"max_files": s.maxFiles})
	}

	urls := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		url, err := s.save(ctx, upload)
		if err != nil {
			for _, written := range urls {
				_ = s.Remove(ctx, written)
			}
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *Store) save(ctx context.Context, upload Upload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if upload.Reader == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "empty upload")
	}
	if upload.Size > s.maxBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "file too large").
			WithDetails(map[string]int64{"max_bytes": s.maxBytes})
	}
	ext, err := validateImageUpload(upload)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), ext)
	target := filepath.Join(s.dir, name)

	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating upload file")
	}

	written, err := io.Copy(file, io.LimitReader(upload.Reader, s.maxBytes+1))
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = pkgerrors.New(pkgerrors.CodeValidation, "file too large").
			WithDetails(map[string]int64{"max_bytes": s.maxBytes})
	}
	if err != nil {
		_ = os.Remove(target)
		if typed := pkgerrors.As(err); typed != nil {
			return "", typed
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "writing upload file")
	}

	return s.publicBasePath + name, nil
}

// Remove deletes a previously saved upload. URLs outside the public upload
// path are ignored, as is a file that is already gone.
func (s *Store) Remove(_ context.Context, url string) error {
	name, ok := strings.CutPrefix(url, s.publicBasePath)
	if !ok || name == "" {
		return nil
	}
	// Base strips any traversal a stored URL could smuggle in.
	name = filepath.Base(name)
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing upload %s: %w", name, err)
	}
	return nil
}

func validateImageUpload(upload Upload) (string, error) {
	ext := strings.ToLower(filepath.Ext(upload.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "only image files are allowed").
			WithDetails(map[string]string{"filename": upload.Filename})
	}

	if upload.ContentType != "" {
		mediaType, _, err := mime.ParseMediaType(upload.ContentType)
		if err != nil {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid content type")
		}
		if _, ok := allowedImageTypes[strings.ToLower(mediaType)]; !ok {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "only image files are allowed").
				WithDetails(map[string]string{"content_type": mediaType})
		}
	}
	return ext, nil
}
