package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/observability"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

var (
	// ErrPortfolioItemNotFound indicates no item matches the student and id.
	ErrPortfolioItemNotFound = errors.New("portfolio item not found")
	// ErrArtifactTooLarge indicates the upload exceeded the configured limit.
	ErrArtifactTooLarge = errors.New("artifact exceeds maximum allowed size")
	// ErrArtifactTypeNotAllowed indicates the detected MIME type is not permitted.
	ErrArtifactTypeNotAllowed = errors.New("artifact type not allowed")
	// ErrArtifactUploadsDisabled indicates no upload backend is configured.
	ErrArtifactUploadsDisabled = errors.New("artifact uploads are not configured")
)

// ArtifactUploader abstracts the destination artifact files are sent to.
type ArtifactUploader interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// PortfolioService manages per-student work samples and artifact uploads.
type PortfolioService interface {
	List(ctx context.Context, studentID string) ([]store.PortfolioItem, error)
	Add(ctx context.Context, req dto.PortfolioItemRequest) (store.PortfolioItem, error)
	Remove(ctx context.Context, studentID, itemID string) error
	UploadArtifact(ctx context.Context, file *multipart.FileHeader) (dto.ArtifactUploadResult, error)
}

type portfolioService struct {
	container *store.Container
	uploader  ArtifactUploader
	validator *validator.Validate
	maxSize   int64
	logger    zerolog.Logger
}

// NewPortfolioService constructs the portfolio service. A nil uploader
// disables artifact uploads while leaving link-based items available.
func NewPortfolioService(container *store.Container, uploader ArtifactUploader, validator *validator.Validate, maxSizeMB int, logger zerolog.Logger) PortfolioService {
	if maxSizeMB <= 0 {
		maxSizeMB = 10
	}
	return &portfolioService{
		container: container,
		uploader:  uploader,
		validator: validator,
		maxSize:   int64(maxSizeMB) * 1024 * 1024,
		logger:    logger.With().Str("component", "portfolio_service").Logger(),
	}
}

func (s *portfolioService) List(_ context.Context, studentID string) ([]store.PortfolioItem, error) {
	doc := s.container.Snapshot()
	if _, ok := doc.StudentByID(studentID); !ok {
		return nil, ErrStudentNotFound
	}
	items := doc.Portfolio[studentID]
	if items == nil {
		return []store.PortfolioItem{}, nil
	}
	return items, nil
}

func (s *portfolioService) Add(ctx context.Context, req dto.PortfolioItemRequest) (store.PortfolioItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return store.PortfolioItem{}, err
	}
	if _, ok := s.container.Snapshot().StudentByID(req.StudentID); !ok {
		return store.PortfolioItem{}, ErrStudentNotFound
	}

	item := store.PortfolioItem{
		Date:    req.Date,
		Title:   strings.TrimSpace(req.Title),
		Subject: strings.TrimSpace(req.Subject),
		URL:     strings.TrimSpace(req.URL),
		Notes:   req.Notes,
	}

	var saved store.PortfolioItem
	s.container.Apply(ctx, func(doc store.Document) store.Document {
		next := store.AddPortfolioItem(doc, req.StudentID, item)
		items := next.Portfolio[req.StudentID]
		saved = items[len(items)-1]
		return next
	})

	s.logger.Info().Str("student_id", req.StudentID).Str("item_id", saved.ID).Msg("portfolio item added")
	return saved, nil
}

func (s *portfolioService) Remove(ctx context.Context, studentID, itemID string) error {
	doc := s.container.Snapshot()
	found := false
	for _, item := range doc.Portfolio[studentID] {
		if item.ID == itemID {
			found = true
		}
	}
	if !found {
		return ErrPortfolioItemNotFound
	}

	s.container.Apply(ctx, func(doc store.Document) store.Document {
		return store.RemovePortfolioItem(doc, studentID, itemID)
	})
	return nil
}

func (s *portfolioService) UploadArtifact(ctx context.Context, file *multipart.FileHeader) (dto.ArtifactUploadResult, error) {
	if s.uploader == nil {
		return dto.ArtifactUploadResult{}, ErrArtifactUploadsDisabled
	}
	if file == nil {
		return dto.ArtifactUploadResult{}, errors.New("file is required")
	}
	if file.Size > s.maxSize {
		observability.ArtifactRejected().WithLabelValues("size").Inc()
		return dto.ArtifactUploadResult{}, ErrArtifactTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		return dto.ArtifactUploadResult{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxSize+1)); err != nil {
		return dto.ArtifactUploadResult{}, err
	}
	if int64(buf.Len()) > s.maxSize {
		observability.ArtifactRejected().WithLabelValues("size").Inc()
		return dto.ArtifactUploadResult{}, ErrArtifactTooLarge
	}

	mime := mimetype.Detect(buf.Bytes())
	if !isAllowedArtifactType(mime.String()) {
		observability.ArtifactRejected().WithLabelValues("type").Inc()
		return dto.ArtifactUploadResult{}, ErrArtifactTypeNotAllowed
	}

	url, err := s.uploader.Upload(ctx, file.Filename, bytes.NewReader(buf.Bytes()))
	if err != nil {
		observability.ArtifactRejected().WithLabelValues("storage").Inc()
		return dto.ArtifactUploadResult{}, err
	}

	observability.ArtifactUploads().WithLabelValues(mime.String()).Inc()
	s.logger.Info().Str("mime", mime.String()).Int("bytes", buf.Len()).Msg("artifact uploaded")

	return dto.ArtifactUploadResult{
		URL:    url,
		Format: mime.Extension(),
		Bytes:  int64(buf.Len()),
	}, nil
}

func isAllowedArtifactType(mime string) bool {
	lower := strings.ToLower(mime)
	if strings.HasPrefix(lower, "image/") {
		return true
	}
	return lower == "application/pdf"
}
