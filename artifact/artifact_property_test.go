package artifact

import (
	"strings"
	"testing"
	"unicode"

	"pgregory.net/rapid"
)

func safeStem(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
		if unicode.ToLower(r) != r {
			return false
		}
	}
	return true
}

// Sanitized names are never empty and hold only lower-case letters, digits and underscores.
func TestProperty_SanitizeIsTotalAndSafe(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		topic := rapid.String().Draw(rt, "topic")
		got := Sanitize(topic)
		if !safeStem(got) {
			t.Fatalf("Sanitize(%q) = %q contains unsafe characters", topic, got)
		}
	})
}

// Sanitize(Sanitize(x)) == Sanitize(x).
func TestProperty_SanitizeIdempotent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		topic := rapid.String().Draw(rt, "topic")
		once := Sanitize(topic)
		if twice := Sanitize(once); twice != once {
			t.Fatalf("Sanitize not idempotent: %q -> %q -> %q", topic, once, twice)
		}
	})
}

// Topics made of letters, digits and separators keep their letters in order.
func TestProperty_SanitizeKeepsAlphanumerics(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		topic := rapid.StringMatching(`[A-Za-z0-9][A-Za-z0-9 /-]{0,40}`).Draw(rt, "topic")
		got := Sanitize(topic)

		want := strings.NewReplacer(" ", "_", "-", "_", "/", "_").Replace(strings.ToLower(topic))
		if got != want {
			t.Fatalf("Sanitize(%q) = %q, want %q", topic, got, want)
		}
	})
}

// Display names never contain underscores.
func TestProperty_DisplayNameHasNoUnderscores(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := Sanitize(rapid.String().Draw(rt, "topic"))
		if got := DisplayName(name); strings.Contains(got, "_") {
			t.Fatalf("DisplayName(%q) = %q", name, got)
		}
	})
}
