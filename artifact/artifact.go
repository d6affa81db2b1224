// Package artifact stores generated demo pages on disk and reads them back.
//
// Each topic maps to <demos_dir>/<sanitized topic>.html. Two topics that
// sanitize to the same name share a file and the later write wins.
package artifact

import (
	"errors"
	"strings"
	"unicode"
)

// Ext is the extension of every stored page.
const Ext = ".html"

// ErrNotFound is returned when a requested page does not exist.
var ErrNotFound = errors.New("demo not found")

const untitled = "untitled"

// Sanitize turns a topic into a lower-case file name stem made of letters,
// digits and underscores. Spaces, hyphens and slashes become underscores;
// everything else is removed. A topic without any usable character becomes
// "untitled".
func Sanitize(topic string) string {
	var b strings.Builder
	for _, r := range topic {
		r = unicode.ToLower(r)
		switch {
		case r == ' ' || r == '-' || r == '/':
			b.WriteByte('_')
		case r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return untitled
	}
	return b.String()
}

// DisplayName renders a stored name for humans: underscores become spaces and
// each word is capitalized.
func DisplayName(name string) string {
	name = strings.TrimSuffix(name, Ext)
	name = strings.ReplaceAll(name, "_", " ")

	var b strings.Builder
	prevLetter := false
	for _, r := range name {
		isLetter := unicode.IsLetter(r)
		switch {
		case isLetter && !prevLetter:
			b.WriteRune(unicode.ToUpper(r))
		case isLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
		prevLetter = isLetter
	}
	return b.String()
}
