package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"mime"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
)

const (
	DefaultMaxUploadSize  = 10 << 20
	DefaultMaxUploadFiles = 5

	maxBaseNameLength = 20
	maxNameAttempts   = 5
)

var (
	extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,10}$`)
	nonAlnum   = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// UploadLimits bounds what one request may upload.
type UploadLimits struct {
	MaxFileSize int64
	MaxFiles    int
}

// UploadService validates image attachments and persists them through a
// FileStore.
type UploadService struct {
	store  ports.FileStore
	limits UploadLimits
	logger zerolog.Logger
	now    func() time.Time
	suffix func() int64
}

func NewUploadService(store ports.FileStore, limits UploadLimits, logger zerolog.Logger) *UploadService {
	if limits.MaxFileSize <= 0 {
		limits.MaxFileSize = DefaultMaxUploadSize
	}
	if limits.MaxFiles <= 0 {
		limits.MaxFiles = DefaultMaxUploadFiles
	}
	return &UploadService{
		store:  store,
		limits: limits,
		logger: logger,
		now:    time.Now,
		suffix: func() int64 { return rand.Int64N(1_000_000_000) },
	}
}

// Limits returns the effective limits.
func (s *UploadService) Limits() UploadLimits {
	return s.limits
}

// Store validates every part before writing any of them, then writes them
// under category. If a write fails, files already written for this call are
// removed.
func (s *UploadService) Store(ctx context.Context, category string, parts []ports.UploadPart) ([]domain.StoredFile, error) {
	category, err := s.category(category)
	if err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, domain.Invalid(domain.ErrNoFiles, "no file uploaded")
	}
	if len(parts) > s.limits.MaxFiles {
		return nil, domain.Invalid(domain.ErrTooManyFiles, "too many files: at most %d files per request", s.limits.MaxFiles)
	}

	types := make([]string, len(parts))
	for i, part := range parts {
		mt, err := s.validate(part)
		if err != nil {
			return nil, err
		}
		types[i] = mt
	}

	stored := make([]domain.StoredFile, 0, len(parts))
	for i, part := range parts {
		file, err := s.write(ctx, category, part, types[i])
		if err != nil {
			s.rollback(stored)
			return nil, err
		}
		stored = append(stored, file)
	}

	return stored, nil
}

func (s *UploadService) category(raw string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(raw))
	if c == "" {
		return domain.DefaultUploadCategory, nil
	}
	if !domain.ValidUploadCategory(c) {
		return "", domain.Invalid(domain.ErrInvalidCategory, "invalid upload category %q", raw)
	}
	return c, nil
}

// validate checks the declared type, the size and the sniffed content type of
// one part and returns the accepted MIME type.
func (s *UploadService) validate(part ports.UploadPart) (string, error) {
	declared := mediaType(part.ContentType)
	if _, ok := domain.AllowedImageTypes[declared]; !ok {
		return "", unsupported(declared)
	}
	if part.Size > s.limits.MaxFileSize {
		return "", s.tooLarge(part.Filename)
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", part.Filename, err)
	}
	defer rc.Close()

	detected, err := mimetype.DetectReader(rc)
	if err != nil {
		return "", fmt.Errorf("sniff upload %q: %w", part.Filename, err)
	}
	if !allowedDetected(detected) {
		return "", unsupported(detected.String())
	}

	return declared, nil
}

func (s *UploadService) write(ctx context.Context, category string, part ports.UploadPart, mimeType string) (domain.StoredFile, error) {
	name, n, err := s.save(ctx, category, part)
	if err != nil {
		return domain.StoredFile{}, err
	}
	if n > s.limits.MaxFileSize {
		_ = s.store.Remove(category, name)
		return domain.StoredFile{}, s.tooLarge(part.Filename)
	}

	return domain.StoredFile{
		Category:     category,
		Filename:     name,
		OriginalName: part.Filename,
		MimeType:     mimeType,
		Size:         n,
		URL:          s.store.URL(category, name),
	}, nil
}

// save writes the part under a fresh name, drawing another one when the
// store reports the name as taken by a concurrent upload.
func (s *UploadService) save(ctx context.Context, category string, part ports.UploadPart) (string, int64, error) {
	for attempt := 1; ; attempt++ {
		name := s.filename(part.Filename)
		n, err := s.saveAs(ctx, category, name, part)
		if err == nil {
			return name, n, nil
		}
		if !errors.Is(err, fs.ErrExist) || attempt == maxNameAttempts {
			return "", 0, fmt.Errorf("store upload %q: %w", part.Filename, err)
		}
		s.logger.Debug().Str("category", category).Str("file", name).Msg("upload name taken, retrying")
	}
}

func (s *UploadService) saveAs(ctx context.Context, category, name string, part ports.UploadPart) (int64, error) {
	rc, err := part.Open()
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	return s.store.Save(ctx, category, name, io.LimitReader(rc, s.limits.MaxFileSize+1))
}

func (s *UploadService) rollback(stored []domain.StoredFile) {
	for _, f := range stored {
		if err := s.store.Remove(f.Category, f.Filename); err != nil {
			s.logger.Warn().Err(err).Str("category", f.Category).Str("file", f.Filename).Msg("failed to remove partial upload")
		}
	}
}

// filename builds sanitized-base + "-<millis>-<random>" + lower-cased ext.
func (s *UploadService) filename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	if !extPattern.MatchString(ext) {
		ext = ""
	}

	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	base = nonAlnum.ReplaceAllString(base, "")
	if len(base) > maxBaseNameLength {
		base = base[:maxBaseNameLength]
	}
	if base == "" {
		base = "file"
	}

	return fmt.Sprintf("%s-%d-%d%s", base, s.now().UnixMilli(), s.suffix(), ext)
}

func (s *UploadService) tooLarge(name string) error {
	return domain.Invalid(domain.ErrFileTooLarge, "file %q is too large: maximum size is %d MB", name, s.limits.MaxFileSize>>20)
}

func unsupported(mt string) error {
	if mt == "" {
		mt = "unknown"
	}
	return domain.Invalid(domain.ErrUnsupportedMediaType, "unsupported file type %q: only JPEG, PNG, GIF and WebP images are allowed", mt)
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func allowedDetected(m *mimetype.MIME) bool {
	for t := range domain.AllowedImageTypes {
		if m.Is(t) {
			return true
		}
	}
	return false
}
