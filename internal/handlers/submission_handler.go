package handlers

import (
	"errors"
	"mime"
	"net/http"
	"strings"

	"cardswap/internal/services"
	"cardswap/internal/services/dto"
	"cardswap/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

const (
	// Запас на текстовые поля и заголовки частей multipart
	formOverhead int64 = 1 << 20

	// Сколько multipart держим в памяти, остальное во временных файлах
	multipartMemory int64 = 8 << 20

	submitSuccessHTML = `<h3>Thanks — your submission was received. We will contact you.</h3><p><a href="/">Back</a></p>`
)

type SubmissionHandler struct {
	*BaseHandler
	service       services.SubmissionService
	maxUploadSize int64
}

func NewSubmissionHandler(base *BaseHandler, service services.SubmissionService, maxUploadSize int64) *SubmissionHandler {
	return &SubmissionHandler{
		BaseHandler:   base,
		service:       service,
		maxUploadSize: maxUploadSize,
	}
}

func (h *SubmissionHandler) RegisterRoutes(r *gin.RouterGroup, mw ...gin.HandlerFunc) {
	r.POST("/submit", chain(append(mw, h.Submit)...)...)
}

// Submit принимает заявку из публичной формы (multipart или urlencoded)
func (h *SubmissionHandler) Submit(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize+formOverhead)

	if err := h.parseForm(c.Request); err != nil {
		if isBodyTooLarge(err) {
			h.HandleServiceText(c, apperrors.ErrFileTooLarge.WithError(err))
			return
		}
		h.HandleServiceText(c, apperrors.NewBadRequestError("Invalid form data.").WithError(err))
		return
	}

	var req dto.SubmitRequest
	if err := c.ShouldBindWith(&req, binding.Form); err != nil {
		h.HandleServiceText(c, apperrors.NewBadRequestError("Invalid form data.").WithError(err))
		return
	}

	if fh, err := c.FormFile("cardImage"); err == nil {
		req.Image = fh
	} else if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		h.HandleServiceText(c, apperrors.NewBadRequestError("Invalid form data.").WithError(err))
		return
	}

	if _, err := h.service.Submit(c.Request.Context(), &req); err != nil {
		h.HandleServiceText(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(submitSuccessHTML))
}

func (h *SubmissionHandler) parseForm(r *http.Request) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		return r.ParseMultipartForm(multipartMemory)
	}
	return r.ParseForm()
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
