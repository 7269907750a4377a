package handlers

import (
	"cardswap/internal/logger"
	"cardswap/internal/validator"
	"cardswap/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ============================================================================
// 1. Базовая структура обработчика
// ============================================================================

type BaseHandler struct {
	validator *validator.Validator
}

func NewBaseHandler(v *validator.Validator) *BaseHandler {
	if v == nil {
		v = validator.New()
	}
	return &BaseHandler{
		validator: v,
	}
}

// ============================================================================
// 2. Привязка и валидация (с контекстным логгированием)
// ============================================================================

// Bind привязывает тело (JSON или форма по Content-Type) и валидирует его.
// Ответ при ошибке не пишет: формат ответа выбирает вызывающий.
func (h *BaseHandler) Bind(c *gin.Context, obj interface{}) error {
	ctx := c.Request.Context()

	if err := c.ShouldBind(obj); err != nil {
		logger.CtxWithError(ctx, "Failed to bind request body", err, "path", c.Request.URL.Path)
		return apperrors.NewBadRequestError("Invalid request body.").WithError(err)
	}

	if err := h.validator.Validate(obj); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			logger.CtxWarn(ctx, "Validation failed", "errors", vErr.Errors, "path", c.Request.URL.Path)
			return apperrors.ValidationError(vErr.Errors)
		}
		logger.CtxWithError(ctx, "Internal validator error", err, "path", c.Request.URL.Path)
		return apperrors.InternalError(err)
	}
	return nil
}

// ============================================================================
// 3. Обработчики ошибок
// ============================================================================

func (h *BaseHandler) logServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		logger.CtxWarn(ctx, "Service error",
			"error", appErr.Error(),
			"details", appErr.Details,
			"path", c.Request.URL.Path,
		)
		return
	}
	logger.CtxWithError(ctx, "Internal server error", err, "path", c.Request.URL.Path)
}

// HandleServiceError отвечает JSON-ошибкой
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	h.logServiceError(c, err)
	apperrors.HandleError(c, err)
}

// HandleServiceText отвечает текстом (HTML-формы и админка)
func (h *BaseHandler) HandleServiceText(c *gin.Context, err error) {
	h.logServiceError(c, err)
	apperrors.HandleTextError(c, err)
}

// chain собирает цепочку обработчиков, пропуская nil
func chain(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
