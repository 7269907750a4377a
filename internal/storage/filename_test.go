package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "card.png", "card.png"},
		{"traversal", "../../etc/passwd", "etcpasswd"},
		{"windows traversal", `..\..\boot.ini`, "boot.ini"},
		{"reserved chars", `a<b>c:d"e|f?g*h.jpg`, "abcdefgh.jpg"},
		{"control chars", "card\x00\x1f.png", "card.png"},
		{"hidden file", ".htaccess", "htaccess"},
		{"dots only", "..", ""},
		{"windows device", "CON.txt", ""},
		{"trailing dots", "photo.png. . ", "photo.png"},
		{"unicode kept", "карта.jpg", "карта.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeFilename(tt.in))
		})
	}
}

func TestSanitizeFilename_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("й", 200) // 400 байт

	got := SanitizeFilename(long)
	assert.LessOrEqual(t, len(got), maxFilenameBytes)
	assert.True(t, strings.HasPrefix(long, got))
}

func TestUploadName(t *testing.T) {
	assert.Equal(t, "1700000000000-card.png", UploadName(1700000000000, "card.png"))
	assert.Equal(t, "1700000000000-etcpasswd", UploadName(1700000000000, "../../etc/passwd"))
	assert.Equal(t, "1700000000000-upload", UploadName(1700000000000, "///"))
	assert.NotEqual(t, UploadName(1, "a.png"), UploadName(2, "a.png"))
}
