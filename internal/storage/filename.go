package storage

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxFilenameBytes = 255

var (
	illegalChars    = regexp.MustCompile(`[/\\?<>:*|"]`)
	windowsReserved = regexp.MustCompile(`(?i)^(con|prn|aux|nul|com[0-9]|lpt[0-9])(\..*)?$`)
	trailingDots    = regexp.MustCompile(`[. ]+$`)
)

// SanitizeFilename убирает из имени разделители путей, управляющие и
// зарезервированные символы. Может вернуть пустую строку.
func SanitizeFilename(name string) string {
	name = illegalChars.ReplaceAllString(name, "")
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || r == utf8.RuneError {
			return -1
		}
		return r
	}, name)
	name = strings.TrimLeft(name, ".")

	if name == "" || windowsReserved.MatchString(name) {
		return ""
	}
	name = trailingDots.ReplaceAllString(name, "")

	return truncateBytes(name, maxFilenameBytes)
}

// UploadName строит имя сохраняемого файла: "<millis>-<имя клиента>".
// Префикс берётся из монотонных часов, поэтому имена не пересекаются.
func UploadName(millis int64, clientName string) string {
	base := SanitizeFilename(clientName)
	if base == "" {
		base = "upload"
	}
	return SanitizeFilename(strconv.FormatInt(millis, 10) + "-" + base)
}

func truncateBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
