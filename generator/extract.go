package generator

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

const (
	fence     = "```"
	htmlFence = "```html"
)

// ExtractFenced returns the body of the first ```html block, or of the first
// plain ``` block when no html-tagged one exists. Without a closing fence the
// text is returned unchanged.
func ExtractFenced(raw string) string {
	open := htmlFence
	start := strings.Index(raw, htmlFence)
	if start == -1 {
		open = fence
		start = strings.Index(raw, fence)
	}
	if start == -1 {
		return raw
	}
	bodyStart := start + len(open)
	end := strings.Index(raw[bodyStart:], fence)
	if end == -1 {
		return raw
	}
	return strings.TrimSpace(raw[bodyStart : bodyStart+end])
}

// TrimToDocument drops anything before the document start marker (<!DOCTYPE
// or <html, any case). Text that already starts with a marker, or contains
// none, is returned unchanged.
func TrimToDocument(s string) string {
	trimmed := strings.TrimSpace(s)
	if hasDocumentPrefix(trimmed) {
		return trimmed
	}
	idx := -1
	for _, marker := range documentMarkers {
		if i := indexFoldASCII(s, marker); i != -1 && (idx == -1 || i < idx) {
			idx = i
		}
	}
	if idx == -1 {
		return s
	}
	return s[idx:]
}

// ExtractHTML runs both stages over a raw model answer.
func ExtractHTML(raw string) string {
	return TrimToDocument(ExtractFenced(strings.TrimSpace(raw)))
}

var documentMarkers = []string{"<!doctype", "<html"}

func hasDocumentPrefix(s string) bool {
	for _, marker := range documentMarkers {
		if len(s) >= len(marker) && equalFoldASCII(s[:len(marker)], marker) {
			return true
		}
	}
	return false
}

// indexFoldASCII is strings.Index with ASCII case folding; byte offsets stay valid for s.
func indexFoldASCII(s, lowerSub string) int {
	for i := 0; i+len(lowerSub) <= len(s); i++ {
		if equalFoldASCII(s[i:i+len(lowerSub)], lowerSub) {
			return i
		}
	}
	return -1
}

func equalFoldASCII(s, lowerSub string) bool {
	for i := 0; i < len(lowerSub); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != lowerSub[i] {
			return false
		}
	}
	return true
}

// hasBody reports whether doc parses into a page with a non-empty <body>.
func hasBody(doc string) bool {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return false
	}
	body := d.Find("body")
	return body.Length() > 0 && (strings.TrimSpace(body.Text()) != "" || body.Children().Length() > 0)
}

// CleanTopic normalizes a discovery answer: only the first line is kept and
// surrounding quotes, whitespace and a leading "Topic:" label are dropped.
func CleanTopic(raw string) string {
	t := strings.TrimSpace(raw)
	if first, _, ok := strings.Cut(t, "\n"); ok {
		t = first
	}
	for {
		prev := t
		t = strings.TrimFunc(t, isQuoteOrSpace)
		t = strings.TrimPrefix(t, "Topic:")
		if t == prev {
			return t
		}
	}
}

func isQuoteOrSpace(r rune) bool {
	switch r {
	case '"', '\'', '`':
		return true
	}
	return unicode.IsSpace(r)
}
