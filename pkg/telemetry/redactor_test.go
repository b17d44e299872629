package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePIILevel(t *testing.T) {
	tests := map[string]PIILevel{
		"none":    PIILevelNone,
		" FULL ":  PIILevelFull,
		"hashed":  PIILevelHashed,
		"":        PIILevelHashed,
		"verbose": PIILevelHashed,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParsePIILevel(raw), raw)
	}
}

func TestRedactLevels(t *testing.T) {
	input := "Write to john@example.com about the launch"

	assert.Equal(t, "[REDACTED]", NewRedactor(PIILevelNone, "salt").Redact(input))
	assert.Equal(t, input, NewRedactor(PIILevelFull, "salt").Redact(input))

	hashed := NewRedactor(PIILevelHashed, "salt").Redact(input)
	assert.NotContains(t, hashed, "john@example.com")
	assert.Contains(t, hashed, "[EMAIL:")
	assert.Contains(t, hashed, "about the launch")
}

func TestRedactHashedPatterns(t *testing.T) {
	r := NewRedactor(PIILevelHashed, "salt")

	tests := []struct {
		name    string
		input   string
		want    string
		removed string
	}{
		{"phone", "Call 555-123-4567 today", "[PHONE:", "555-123-4567"},
		{"ssn", "SSN 123-45-6789", "[SSN:REDACTED]", "123-45-6789"},
		{"card", "card 4111 1111 1111 1111 expires", "[CC:REDACTED]", "4111 1111 1111 1111"},
		{"ipv4", "server at 192.168.1.20", "[IP:", "192.168.1.20"},
		{"api key", "use sk-or-v1abcdefghijklmnopqrstu please", "[KEY:REDACTED]", "sk-or-v1abcdefghijklmnopqrstu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := r.Redact(tt.input)
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, tt.removed)
		})
	}
}

func TestRedactHashIsStablePerSalt(t *testing.T) {
	a := NewRedactor(PIILevelHashed, "one").Redact("mail a@b.io")
	b := NewRedactor(PIILevelHashed, "one").Redact("mail a@b.io")
	c := NewRedactor(PIILevelHashed, "two").Redact("mail a@b.io")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestExcerpt(t *testing.T) {
	r := NewRedactor(PIILevelFull, "")
	assert.Equal(t, "short", r.Excerpt("short", 10))
	assert.Equal(t, "héllo…", r.Excerpt("héllo world", 5))
	assert.Equal(t, "[REDACTED]", NewRedactor(PIILevelNone, "").Excerpt("anything at all", 3))
}
