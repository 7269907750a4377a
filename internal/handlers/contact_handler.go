package handlers

import (
	"net/http"

	"cardswap/internal/logger"
	"cardswap/internal/services"
	"cardswap/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	*BaseHandler
	service services.ContactService
}

func NewContactHandler(base *BaseHandler, service services.ContactService) *ContactHandler {
	return &ContactHandler{
		BaseHandler: base,
		service:     service,
	}
}

func (h *ContactHandler) RegisterRoutes(r *gin.RouterGroup, mw ...gin.HandlerFunc) {
	r.POST("/send-email", chain(append(mw, h.SendEmail)...)...)
}

// SendEmail godoc
// @Summary Сообщение из контактной формы
// @Description Отправляет сообщение посетителя на адрес поддержки. Ничего не сохраняет.
// @Tags contact
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param message body dto.ContactRequest true "Имя, email и текст сообщения"
// @Success 200 {object} dto.ContactResponse
// @Failure 400 {object} dto.ContactResponse "Некорректное тело запроса"
// @Failure 429 {string} string "Слишком много запросов"
// @Failure 500 {object} dto.ContactResponse "Ошибка отправки"
// @Router /send-email [post]
func (h *ContactHandler) SendEmail(c *gin.Context) {
	var req dto.ContactRequest
	if err := h.Bind(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ContactResponse{Success: false, Message: "Invalid request body."})
		return
	}

	if err := h.service.SendContactMessage(c.Request.Context(), &req); err != nil {
		logger.CtxWithError(c.Request.Context(), "Contact message failed", err)
		c.JSON(http.StatusInternalServerError, dto.ContactResponse{Success: false, Message: "Error sending email."})
		return
	}

	c.JSON(http.StatusOK, dto.ContactResponse{Success: true, Message: "Email sent successfully!"})
}
