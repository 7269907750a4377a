package handlers

import (
	"bytes"
	"net/http"
	"strconv"

	"cardswap/internal/models"
	"cardswap/internal/services"
	"cardswap/internal/services/dto"
	"cardswap/internal/templates"
	"cardswap/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// AdminHandler - просмотр и выгрузка заявок (за Basic-аутентификацией)
type AdminHandler struct {
	*BaseHandler
	service services.SubmissionService
}

func NewAdminHandler(base *BaseHandler, service services.SubmissionService) *AdminHandler {
	return &AdminHandler{
		BaseHandler: base,
		service:     service,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup, auth gin.HandlerFunc) {
	admin := r.Group("/admin", chain(auth)...)
	{
		admin.GET("", h.List)
		admin.GET("/export", h.Export)
		admin.GET("/submissions", h.ListJSON)
	}
}

// List - HTML-таблица заявок, новые сверху
func (h *AdminHandler) List(c *gin.Context) {
	submissions, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleServiceText(c, err)
		return
	}

	c.HTML(http.StatusOK, templates.AdminPage, gin.H{
		"Submissions": submissions,
	})
}

// Export отдаёт файл хранилища как вложение
func (h *AdminHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), &buf); err != nil {
		h.HandleServiceText(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="submissions.json"`)
	c.Data(http.StatusOK, "application/json", buf.Bytes())
}

// ListJSON godoc
// @Summary Заявки в JSON
// @Description Заявки, новые сверху. limit ограничивает количество, 0 - все.
// @Tags admin
// @Produce json
// @Security BasicAuth
// @Param limit query int false "Сколько последних заявок вернуть"
// @Success 200 {object} dto.SubmissionListResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 401 {string} string
// @Failure 500 {object} apperrors.ErrorResponse
// @Router /admin/submissions [get]
func (h *AdminHandler) ListJSON(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.HandleServiceError(c, apperrors.NewBadRequestError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	submissions, err := h.service.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if submissions == nil {
		submissions = []models.Submission{}
	}
	total := len(submissions)
	if limit > 0 && limit < total {
		submissions = submissions[:limit]
	}

	c.JSON(http.StatusOK, dto.SubmissionListResponse{
		Total:       total,
		Submissions: submissions,
	})
}
