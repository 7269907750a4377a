package apperrors

import "net/http"

// --- Submissions ---

// ErrConsentRequired - поле consent отсутствует или не равно "yes"
var ErrConsentRequired = New(
	CodeValidationFailed,
	"submission",
	"Consent is required.",
	http.StatusBadRequest,
)

// ErrMissingFields - не заполнено одно из name, contact, brand, value
var ErrMissingFields = New(
	CodeValidationFailed,
	"submission",
	"Please fill all required fields.",
	http.StatusBadRequest,
)

// --- Uploads & Files ---

// ErrFileTooLarge - файл (или всё тело запроса) превышает лимит
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"upload",
	"File too large.",
	http.StatusRequestEntityTooLarge, // 413
)

// ErrUploadNotFound - запрошенный файл не существует
var ErrUploadNotFound = New(
	CodeNotFound,
	"upload",
	"File not found",
	http.StatusNotFound,
)

// --- Notifications ---

// ErrNotificationDisabled - почта не настроена
var ErrNotificationDisabled = New(
	CodeExternalServiceError,
	"notification",
	"Email delivery is not configured",
	http.StatusInternalServerError,
)

// ErrEmailDelivery - SMTP-транспорт вернул ошибку
var ErrEmailDelivery = New(
	CodeExternalServiceError,
	"notification",
	"Error sending email.",
	http.StatusInternalServerError,
)

// --- Auth & limits ---

// ErrInvalidCredentials - неверный логин или пароль администратора
var ErrInvalidCredentials = New(
	CodeUnauthorized,
	"auth",
	"Unauthorized",
	http.StatusUnauthorized,
)

// ErrRateLimited - слишком много запросов с одного IP
var ErrRateLimited = New(
	CodeRateLimited,
	"request",
	"Too many requests.",
	http.StatusTooManyRequests,
)
