package telemetry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// PIILevel controls how much prompt content reaches logs and spans.
type PIILevel string

const (
	// PIILevelNone drops prompt content entirely
	PIILevelNone PIILevel = "none"
	// PIILevelHashed keeps the text but replaces detected PII with salted hashes
	PIILevelHashed PIILevel = "hashed"
	// PIILevelFull logs prompts verbatim
	PIILevelFull PIILevel = "full"
)

// ParsePIILevel falls back to hashed for unknown values.
func ParsePIILevel(raw string) PIILevel {
	switch PIILevel(strings.ToLower(strings.TrimSpace(raw))) {
	case PIILevelNone:
		return PIILevelNone
	case PIILevelFull:
		return PIILevelFull
	default:
		return PIILevelHashed
	}
}

type piiPattern struct {
	re     *regexp.Regexp
	label  string
	hashed bool
}

// Order matters: longer numeric shapes go first so that a card number is
// not half eaten by the phone pattern.
var piiPatterns = []piiPattern{
	{re: regexp.MustCompile(`\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`), label: "CC"},
	{re: regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), label: "SSN"},
	{re: regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`), label: "EMAIL", hashed: true},
	{re: regexp.MustCompile(`\b(?:[A-Fa-f0-9]{1,4}:){7}[A-Fa-f0-9]{1,4}\b`), label: "IP", hashed: true},
	{re: regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), label: "IP", hashed: true},
	{re: regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`), label: "PHONE", hashed: true},
	{re: regexp.MustCompile(`\b(?:sk|r8|pk)[-_][A-Za-z0-9_-]{16,}\b`), label: "KEY"},
}

// Redactor prepares task content for logging.
type Redactor struct {
	level PIILevel
	salt  string
}

func NewRedactor(level PIILevel, salt string) *Redactor {
	return &Redactor{level: level, salt: salt}
}

func (r *Redactor) Level() PIILevel {
	return r.level
}

// Redact returns content as it may appear in logs.
func (r *Redactor) Redact(content string) string {
	switch r.level {
	case PIILevelNone:
		return "[REDACTED]"
	case PIILevelFull:
		return content
	default:
		return r.hashPII(content)
	}
}

// Excerpt redacts content and cuts it to at most limit runes.
func (r *Redactor) Excerpt(content string, limit int) string {
	redacted := r.Redact(content)
	if r.level == PIILevelNone || limit <= 0 || utf8.RuneCountInString(redacted) <= limit {
		return redacted
	}
	runes := []rune(redacted)
	return string(runes[:limit]) + "…"
}

func (r *Redactor) hashPII(input string) string {
	result := input
	for _, p := range piiPatterns {
		result = p.re.ReplaceAllStringFunc(result, func(match string) string {
			if p.hashed {
				return fmt.Sprintf("[%s:%s]", p.label, r.hash(match))
			}
			return fmt.Sprintf("[%s:REDACTED]", p.label)
		})
	}
	return result
}

// hash is the first 8 hex chars of a salted SHA-256.
func (r *Redactor) hash(data string) string {
	sum := sha256.Sum256([]byte(data + r.salt))
	return hex.EncodeToString(sum[:])[:8]
}
