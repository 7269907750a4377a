package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
}

// resolve приводит любую ошибку к *AppError
func (h *GinErrorHandler) resolve(err error) *AppError {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
		if !h.Debug {
			appErr.Details = nil
		}
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("Server error", "code", appErr.Code, "error", appErr.Error())
	}
	return appErr
}

// HandleGinError отвечает JSON-ошибкой
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr := h.resolve(err)
	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleGinText отвечает текстом (для HTML-форм)
func (h *GinErrorHandler) HandleGinText(c *gin.Context, err error) {
	appErr := h.resolve(err)
	c.Abort()
	c.String(appErr.HTTPCode, appErr.Message)
}

var defaultHandler = &GinErrorHandler{}

// HandleError - JSON-ответ об ошибке
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

// HandleTextError - текстовый ответ об ошибке
func HandleTextError(c *gin.Context, err error) {
	defaultHandler.HandleGinText(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
