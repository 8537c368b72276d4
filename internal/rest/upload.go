package rest

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"kledje/domain"
	"kledje/pkg/response"

	"github.com/labstack/echo/v4"
)

type UploadService interface {
	UploadImage(ctx context.Context, fh *multipart.FileHeader) (domain.UploadedImage, error)
	UploadImages(ctx context.Context, files []*multipart.FileHeader) ([]domain.UploadedImage, error)
	DeleteImage(ctx context.Context, filename string) error
}

type UploadHandler struct {
	uploadService UploadService
	timeout       time.Duration
}

func NewUploadHandler(uploadService UploadService) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		timeout:       30 * time.Second,
	}
}

func (h *UploadHandler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return domain.NewValidationError(domain.MsgNoFile)
		}
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	img, err := h.uploadService.UploadImage(ctx, fh)
	if err != nil {
		return err
	}
	img.URL = absoluteURL(c, img.URL)

	return c.JSON(http.StatusOK, response.Message(domain.MsgImageUploaded, img))
}

func (h *UploadHandler) UploadImages(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return domain.NewValidationError(domain.MsgNoFiles)
		}
		return err
	}

	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	images, err := h.uploadService.UploadImages(ctx, form.File["images"])
	if err != nil {
		return err
	}
	for i := range images {
		images[i].URL = absoluteURL(c, images[i].URL)
	}

	return c.JSON(http.StatusOK, response.Message(fmt.Sprintf(domain.MsgImagesUploaded, len(images)), images))
}

func (h *UploadHandler) DeleteImage(c echo.Context) error {
	ctx, cancel := withTimeout(c, h.timeout)
	defer cancel()

	if err := h.uploadService.DeleteImage(ctx, c.Param("filename")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, response.Message(domain.MsgImageDeleted, nil))
}
