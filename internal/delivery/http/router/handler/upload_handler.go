package handler

import (
	"log/slog"
	"net/http"

	"eduvn/config"
	"eduvn/internal/delivery/http/response"
	"eduvn/internal/domain/service"
	"eduvn/internal/infra/upload"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const defaultMaxUploadBytes = 500 << 20 // 500 MB

// UploadHandler holds dependencies for course asset uploads.
type UploadHandler struct {
	storage  service.FileStorage
	maxBytes int64
	logger   *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler, injected by Fx.
func NewUploadHandler(cfg *config.Config, storage service.FileStorage, logger *slog.Logger) *UploadHandler {
	maxBytes := int64(defaultMaxUploadBytes)
	if cfg.Upload != nil && cfg.Upload.MaxSizeBytes > 0 {
		maxBytes = cfg.Upload.MaxSizeBytes
	}

	return &UploadHandler{storage: storage, maxBytes: maxBytes, logger: logger}
}

// Upload receives one multipart file and stores it under the requested
// folder. The folder defaults to "misc" when the form omits it.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Missing file field")
	}
	if fileHeader.Size > h.maxBytes {
		return response.BindingError(c, "FILE_TOO_LARGE", "File exceeds the upload size limit")
	}

	folder := c.FormValue("folder")
	if folder == "" {
		folder = "misc"
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "open uploaded file")
	}
	defer src.Close()

	url, err := h.storage.Upload(c.Request().Context(), src, fileHeader.Filename, folder)
	if err != nil {
		if errors.Is(err, upload.ErrExtensionNotAllowed) {
			return response.BindingError(c, "EXTENSION_NOT_ALLOWED", "File type is not allowed")
		}
		if errors.Is(err, upload.ErrInvalidFolder) {
			return response.BindingError(c, "INVALID_INPUT", "Invalid upload folder")
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"url": url}, "File uploaded")
}
