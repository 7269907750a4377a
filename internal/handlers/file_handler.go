package handlers

import (
	"mime"
	"net/http"
	"path/filepath"

	"cardswap/internal/storage"
	"cardswap/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// FileHandler отдаёт загруженные изображения (публично, без авторизации)
type FileHandler struct {
	*BaseHandler
	storage storage.Storage
}

func NewFileHandler(base *BaseHandler, storage storage.Storage) *FileHandler {
	return &FileHandler{
		BaseHandler: base,
		storage:     storage,
	}
}

func (h *FileHandler) RegisterRoutes(r *gin.RouterGroup) {
	uploads := r.Group("/uploads")
	{
		uploads.GET("/:filename", h.ServeFile)
		uploads.HEAD("/:filename", h.ServeFile)
	}
}

// ServeFile отдаёт файл по имени; неизвестное имя - 404
func (h *FileHandler) ServeFile(c *gin.Context) {
	ctx := c.Request.Context()
	name := c.Param("filename")

	size, err := h.storage.GetSize(ctx, name)
	if err != nil {
		h.handleStorageError(c, err)
		return
	}

	reader, err := h.storage.Get(ctx, name)
	if err != nil {
		h.handleStorageError(c, err)
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, size, contentType, reader, map[string]string{
		"Cache-Control":          "public, max-age=86400",
		"X-Content-Type-Options": "nosniff",
	})
}

func (h *FileHandler) handleStorageError(c *gin.Context, err error) {
	if apperrors.Is(err, storage.ErrNotFound) || apperrors.Is(err, storage.ErrInvalidPath) {
		apperrors.HandleTextError(c, apperrors.ErrUploadNotFound)
		return
	}
	h.HandleServiceText(c, apperrors.StorageError(err))
}
