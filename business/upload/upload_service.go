package upload

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"kledje/domain"
	"kledje/internal/imaging"
	"kledje/internal/repository/storage"
	"kledje/pkg/logger"
	"kledje/pkg/metrics"

	"github.com/google/uuid"
)

type ImageStore interface {
	Save(ctx context.Context, name string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
}

type Limits struct {
	MaxFileSize int64
	MaxFiles    int
}

type uploadService struct {
	store  ImageStore
	limits Limits
	now    func() time.Time
}

func NewUploadService(store ImageStore, limits Limits) *uploadService {
	return &uploadService{
		store:  store,
		limits: limits,
		now:    time.Now,
	}
}

// UploadImages decodes and resizes every file before storing any of them, so
// a bad file in the batch stores nothing. A storage failure removes the
// files already written for the batch.
func (s *uploadService) UploadImages(ctx context.Context, files []*multipart.FileHeader) ([]domain.UploadedImage, error) {
	if len(files) == 0 {
		return nil, domain.NewValidationError(domain.MsgNoFiles)
	}
	if s.limits.MaxFiles > 0 && len(files) > s.limits.MaxFiles {
		return nil, domain.NewValidationError(domain.MsgTooManyFiles)
	}

	for _, fh := range files {
		if err := s.check(fh); err != nil {
			return nil, err
		}
	}

	processed := make([]processedImage, 0, len(files))
	for _, fh := range files {
		img, err := s.process(fh)
		if err != nil {
			return nil, err
		}
		processed = append(processed, img)
	}

	uploaded := make([]domain.UploadedImage, 0, len(processed))
	for _, img := range processed {
		stored, err := s.persist(ctx, img)
		if err != nil {
			s.rollback(uploaded)
			return nil, err
		}
		uploaded = append(uploaded, stored)
	}

	return uploaded, nil
}

func (s *uploadService) UploadImage(ctx context.Context, fh *multipart.FileHeader) (domain.UploadedImage, error) {
	if fh == nil {
		return domain.UploadedImage{}, domain.NewValidationError(domain.MsgNoFile)
	}
	if err := s.check(fh); err != nil {
		return domain.UploadedImage{}, err
	}

	img, err := s.process(fh)
	if err != nil {
		return domain.UploadedImage{}, err
	}

	return s.persist(ctx, img)
}

func (s *uploadService) DeleteImage(ctx context.Context, filename string) error {
	if !storage.ValidName(filename) {
		return domain.NewValidationError(domain.MsgInvalidFilename)
	}

	if err := s.store.Delete(ctx, filename); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFoundError(domain.MsgFileNotFound, err)
		}
		logger.Error("Failed to delete image", "filename", filename, "error", err)
		return err
	}

	logger.Info("Image deleted", "filename", filename)
	return nil
}

func (s *uploadService) check(fh *multipart.FileHeader) error {
	if !strings.HasPrefix(fh.Header.Get("Content-Type"), "image/") {
		return domain.NewValidationError(domain.MsgImagesOnly)
	}
	if s.limits.MaxFileSize > 0 && fh.Size > s.limits.MaxFileSize {
		return domain.NewValidationError(domain.MsgFileTooLarge)
	}
	return nil
}

type processedImage struct {
	data         []byte
	originalSize int64
}

func (s *uploadService) process(fh *multipart.FileHeader) (processedImage, error) {
	src, err := fh.Open()
	if err != nil {
		return processedImage{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	data, err := imaging.Process(src)
	if err != nil {
		if errors.Is(err, imaging.ErrUnsupportedImage) {
			return processedImage{}, domain.NewValidationError(domain.MsgImagesOnly)
		}
		if errors.Is(err, imaging.ErrImageTooLarge) {
			return processedImage{}, domain.NewValidationError(domain.MsgFileTooLarge)
		}
		return processedImage{}, err
	}

	return processedImage{data: data, originalSize: fh.Size}, nil
}

func (s *uploadService) persist(ctx context.Context, img processedImage) (domain.UploadedImage, error) {
	name := s.filename()
	url, err := s.store.Save(ctx, name, img.data, imaging.ContentType)
	if err != nil {
		logger.Error("Failed to store image", "filename", name, "error", err)
		return domain.UploadedImage{}, err
	}

	metrics.ImagesUploaded.Inc()
	logger.Debug("Image stored", "filename", name, "original_size", img.originalSize, "stored_size", len(img.data))

	return domain.UploadedImage{
		Filename: name,
		URL:      url,
		Size:     img.originalSize,
	}, nil
}

// rollback runs on a fresh context; the request context may already be done.
func (s *uploadService) rollback(uploaded []domain.UploadedImage) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, img := range uploaded {
		if err := s.store.Delete(ctx, img.Filename); err != nil {
			logger.Error("Failed to remove image after batch failure", "filename", img.Filename, "error", err)
		}
	}
}

// filename is "<unix millis>-<uuid>.jpg".
func (s *uploadService) filename() string {
	return strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + uuid.NewString() + imaging.Extension
}
