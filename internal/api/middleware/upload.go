package middleware

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/matchday/club-api/internal/api/metrics"
	"github.com/matchday/club-api/internal/core/domain"
	"github.com/matchday/club-api/internal/core/ports"
	"github.com/matchday/club-api/pkg/logger"
)

const storedFilesKey = "stored_files"

// multipartMemory is how much of a multipart body is held in memory before
// parts spill to temporary files.
const multipartMemory = 8 << 20

// UploadOptions configures one upload gate.
type UploadOptions struct {
	// Category fixes the storage category. When empty the category comes from
	// the :type route parameter, then the "type" form or query value.
	Category string
	// Required rejects requests without file parts. Otherwise they pass
	// through with no stored files.
	Required bool
	// MaxBodyBytes caps the whole request body. Zero disables the cap.
	MaxBodyBytes int64
}

// Upload parses a multipart body, hands every file part to svc and attaches
// the stored files to the context. Nothing is written unless every part is
// accepted.
func Upload(svc ports.Uploader, audit ports.AuditRecorder, opts UploadOptions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if opts.MaxBodyBytes > 0 {
				req.Body = http.MaxBytesReader(c.Response(), req.Body, opts.MaxBodyBytes)
			}

			parts, err := multipartParts(req)
			if err != nil {
				category := uploadCategory(c, opts)
				metrics.UploadsTotal.WithLabelValues(categoryLabel(category), uploadResult(err)).Inc()
				return err
			}
			if req.MultipartForm != nil {
				defer func() { _ = req.MultipartForm.RemoveAll() }()
			}

			category := uploadCategory(c, opts)
			if len(parts) == 0 && !opts.Required {
				return next(c)
			}

			stored, err := svc.Store(req.Context(), category, parts)
			if err != nil {
				metrics.UploadsTotal.WithLabelValues(categoryLabel(category), uploadResult(err)).Inc()
				if uploadResult(err) != "error" {
					logger.Ctx(req.Context()).Info().Err(err).Str("category", category).Msg("upload rejected")
				}
				return err
			}

			var total int64
			names := make([]string, 0, len(stored))
			for _, f := range stored {
				total += f.Size
				names = append(names, f.Filename)
			}
			label := stored[0].Category
			metrics.UploadsTotal.WithLabelValues(label, "stored").Inc()
			metrics.UploadBytesTotal.WithLabelValues(label).Add(float64(total))

			if audit != nil {
				entry := domain.AuditEntry{
					Action:  domain.AuditUpload,
					Subject: label,
					Detail: map[string]string{
						"files": strings.Join(names, ","),
						"bytes": strconv.FormatInt(total, 10),
					},
					At: time.Now().UTC(),
				}
				if p := PrincipalFrom(c); p != nil {
					entry.ActorRole = p.Role
					entry.ActorID = p.ID
				}
				audit.Record(entry)
			}

			c.Set(storedFilesKey, stored)
			return next(c)
		}
	}
}

// StoredFilesFrom returns the files persisted by the upload gate.
func StoredFilesFrom(c echo.Context) []domain.StoredFile {
	files, _ := c.Get(storedFilesKey).([]domain.StoredFile)
	return files
}

// multipartParts parses the body and returns its file parts ordered by form
// field name. A non-multipart body yields no parts.
func multipartParts(req *http.Request) ([]ports.UploadPart, error) {
	if err := req.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrNotMultipart), errors.Is(err, http.ErrMissingBoundary):
			return nil, nil
		case errors.As(err, &tooBig):
			return nil, domain.Invalid(domain.ErrFileTooLarge, "request body exceeds %d bytes", tooBig.Limit)
		default:
			return nil, domain.Invalid(domain.ErrInvalidInput, "malformed multipart body")
		}
	}

	form := req.MultipartForm
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		fields = append(fields, field)
	}
	slices.Sort(fields)

	var parts []ports.UploadPart
	for _, field := range fields {
		for _, fh := range form.File[field] {
			parts = append(parts, ports.UploadPart{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get(echo.HeaderContentType),
				Size:        fh.Size,
				Open: func() (io.ReadCloser, error) {
					return fh.Open()
				},
			})
		}
	}
	return parts, nil
}

func uploadCategory(c echo.Context, opts UploadOptions) string {
	if opts.Category != "" {
		return opts.Category
	}
	if v := c.Param("type"); v != "" {
		return v
	}
	if c.Request().MultipartForm != nil {
		if vs := c.Request().MultipartForm.Value["type"]; len(vs) > 0 && vs[0] != "" {
			return vs[0]
		}
	}
	return c.QueryParam("type")
}

func categoryLabel(category string) string {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return domain.DefaultUploadCategory
	}
	if !domain.ValidUploadCategory(category) {
		return "invalid"
	}
	return category
}

func uploadResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnsupportedMediaType):
		return "unsupported_type"
	case errors.Is(err, domain.ErrFileTooLarge):
		return "too_large"
	case errors.Is(err, domain.ErrTooManyFiles):
		return "too_many"
	case errors.Is(err, domain.ErrNoFiles):
		return "no_files"
	case errors.Is(err, domain.ErrInvalidCategory):
		return "invalid_category"
	case errors.Is(err, domain.ErrInvalidInput):
		return "malformed"
	default:
		return "error"
	}
}
