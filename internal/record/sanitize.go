package record

import (
	"strings"
	"unicode"
)

const defaultMaxFieldLen = 200

// Sanitize prepares one field value for emission: control characters are
// stripped, backslashes and quotes are escaped, and the result is truncated
// to the default field length. The whole operation is idempotent: already
// escaped sequences pass through untouched.
func Sanitize(s string) string {
	return SanitizeN(s, defaultMaxFieldLen)
}

// SanitizeN is Sanitize with a field-specific length cap.
func SanitizeN(s string, maxLen int) string {
	return truncate(escape(stripControl(s)), maxLen)
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// escape backslash-escapes quotes and lone backslashes. A backslash already
// starting an escaped pair is left alone, which is what makes repeated
// sanitization a no-op.
func escape(s string) string {
	if !strings.ContainsAny(s, `\"`) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
				b.WriteByte(s[i])
				b.WriteByte(s[i+1])
				i++
			} else {
				b.WriteString(`\\`)
			}
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteByte(s[i])
		}
	}

	return b.String()
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen])
}
