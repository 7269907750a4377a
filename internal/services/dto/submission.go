package dto

import (
	"mime/multipart"

	"cardswap/internal/models"
)

// ConsentAccepted - единственное значение consent, при котором заявка принимается
const ConsentAccepted = "yes"

// SubmitRequest - поля формы POST /submit
type SubmitRequest struct {
	Name    string `form:"name" json:"name" validate:"required"`
	Contact string `form:"contact" json:"contact" validate:"required"`
	Brand   string `form:"brand" json:"brand" validate:"required"`
	Value   string `form:"value" json:"value" validate:"required"`
	Code    string `form:"code" json:"code"`
	Consent string `form:"consent" json:"consent" validate:"required,consent"`

	// Необязательное изображение карты (поле cardImage)
	Image *multipart.FileHeader `form:"-" json:"-"`
}

// ContactRequest - тело POST /send-email (JSON или форма)
type ContactRequest struct {
	Name    string `form:"name" json:"name" validate:"required"`
	Email   string `form:"email" json:"email" validate:"required,email"`
	Message string `form:"message" json:"message" validate:"required"`
}

// ContactResponse - ответ POST /send-email
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SubmissionListResponse - ответ GET /admin/submissions
type SubmissionListResponse struct {
	Total       int                 `json:"total"`
	Submissions []models.Submission `json:"submissions"`
}
