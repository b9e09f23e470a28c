// Package filename derives download file names from free-form topics.
package filename

import (
	"regexp"
	"strings"
)

const (
	// DefaultMaxLength caps the sanitized base name, in characters.
	DefaultMaxLength = 50
	// DefaultPlaceholder is used when nothing survives sanitization.
	DefaultPlaceholder = "article"
)

var (
	unsafeChars   = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	separatorRuns = regexp.MustCompile(`[-\s]+`)
)

// Options overrides the default length cap and placeholder.
type Options struct {
	MaxLength   int
	Placeholder string
}

// Sanitize applies the default options.
func Sanitize(topic string) string {
	return Options{}.Sanitize(topic)
}

// Sanitize keeps letters, digits and underscores, collapses runs of spaces
// and hyphens into a single underscore, lowercases, and truncates.
func (o Options) Sanitize(topic string) string {
	maxLength := o.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	placeholder := o.Placeholder
	if placeholder == "" {
		placeholder = DefaultPlaceholder
	}

	name := unsafeChars.ReplaceAllString(strings.TrimSpace(topic), "")
	name = separatorRuns.ReplaceAllString(name, "_")
	name = strings.ToLower(name)

	if name == "" {
		return placeholder
	}
	if runes := []rune(name); len(runes) > maxLength {
		name = string(runes[:maxLength])
	}
	return name
}

// WithSuffix joins a sanitized base, a suffix and an extension, as in
// "ai_trends" + "_article" + ".docx".
func WithSuffix(base, suffix, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return base + suffix + ext
}
