package validation

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Sanitize cleans a free-text field before it is validated or stored:
// markup is stripped down to its text content (script and style bodies are
// dropped entirely), URLs with schemes other than http, https, or mailto are
// removed, and control characters collapse to single spaces. Sanitizing
// already-clean text is a no-op, so the pipeline is idempotent.
func Sanitize(s string) string {
	s = stripMarkup(s)
	s = dropUnsafeURLs(s)
	s = collapseControl(s)
	return strings.TrimSpace(s)
}

// stripMarkup removes any markup-like constructs and returns text content.
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skipDepth := 0

	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if skipDepth == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			name, _ := z.TagName()
			if dangerousTag(string(name)) {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if dangerousTag(string(name)) && skipDepth > 0 {
				skipDepth--
			}
		}
	}
}

func dangerousTag(name string) bool {
	switch name {
	case "script", "style", "iframe", "object":
		return true
	}
	return false
}

// urlScheme matches a URI-shaped token: a scheme prefix followed by
// non-space content.
var urlScheme = regexp.MustCompile(`(?i)\b[a-z][a-z0-9+.-]*:(?://)?\S+`)

// dropUnsafeURLs removes URL tokens whose scheme could execute or exfiltrate
// (anything but http, https, and mailto). A bare "9:30" is not a URL: schemes
// must start with a letter. Plain prose like "Note: bring lunch" is left
// alone; removal needs either a known-dangerous scheme or an authority slash
// pair after the colon.
func dropUnsafeURLs(s string) string {
	return urlScheme.ReplaceAllStringFunc(s, func(match string) string {
		rest := match[strings.Index(match, ":")+1:]
		scheme := strings.ToLower(match[:strings.Index(match, ":")])
		switch scheme {
		case "http", "https", "mailto":
			return match
		case "javascript", "data", "vbscript", "file", "blob", "ftp", "ws", "wss":
			return ""
		}
		if strings.HasPrefix(rest, "//") {
			return ""
		}
		return match
	})
}

// collapseControl replaces control characters with single spaces and folds
// runs of whitespace.
func collapseControl(s string) string {
	clean := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return strings.Join(strings.Fields(clean), " ")
}
