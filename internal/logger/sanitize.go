package logger

import (
	"strings"
	"unicode"
)

// Length caps for caller-controlled values written to logs
const (
	MaxPathLength          = 500
	MaxUserNameLength      = 128
	MaxErrorMessageLength  = 1000
	MaxGeneralStringLength = 2000
)

// SanitizePath prepares a URL path for logging
func SanitizePath(path string) string {
	return SanitizeString(path, MaxPathLength)
}

// SanitizeUserName prepares a planner user name for logging. Names come
// straight from the query string.
func SanitizeUserName(name string) string {
	return SanitizeString(name, MaxUserNameLength)
}

// SanitizeError prepares an error message for logging
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return SanitizeString(err.Error(), MaxErrorMessageLength)
}

// SanitizeString replaces invalid UTF-8, strips control characters other
// than common whitespace and truncates to maxLength bytes with a "..."
// suffix. maxLength <= 0 means MaxGeneralStringLength.
func SanitizeString(s string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = MaxGeneralStringLength
	}
	s = strings.Map(keepPrintable, strings.ToValidUTF8(s, ""))
	if len(s) <= maxLength {
		return s
	}
	return strings.ToValidUTF8(s[:maxLength], "") + "..."
}

func keepPrintable(r rune) rune {
	switch {
	case r == ' ', r == '\t', r == '\n', r == '\r':
		return r
	case unicode.IsPrint(r):
		return r
	default:
		return -1
	}
}
