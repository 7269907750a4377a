package models

import (
	"strconv"
	"time"
)

// TimestampLayout - ISO-8601 в UTC с миллисекундами (2024-01-02T03:04:05.678Z)
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Submission - заявка на обмен карты. Создаётся только через приём формы,
// после сохранения не изменяется.
type Submission struct {
	ID        string `json:"id" gorm:"primaryKey;size:32"`
	Name      string `json:"name" gorm:"not null"`
	Contact   string `json:"contact" gorm:"not null"`
	Brand     string `json:"brand" gorm:"not null"`
	Value     string `json:"value" gorm:"not null"`
	Code      string `json:"code"`
	Image     string `json:"image"`
	Timestamp string `json:"timestamp" gorm:"not null;index"`
}

// SubmissionID кодирует момент создания (миллисекунды) в base36
func SubmissionID(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 36)
}

// FormatTimestamp форматирует время создания заявки
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
