package highlight

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy = bluemonday.StrictPolicy()

	boldFixer = strings.NewReplacer(
		"**$****", "**$",
		"****", "**",
	)

	// markupTag matches a tag of the elements scrapers leave behind. Attributes
	// must be quoted, so prose such as "a<b and c>d" is not taken for a tag.
	markupTag = regexp.MustCompile(`(?i)^</?(?:a|abbr|article|aside|b|blockquote|br|caption|cite|code|del|div|em|figcaption|figure|footer|h[1-6]|header|hr|i|iframe|img|ins|li|mark|nav|noscript|ol|p|picture|pre|q|s|script|section|small|source|span|strong|style|sub|sup|table|tbody|td|th|thead|time|tr|u|ul|video)(?:\s+[a-z_:][a-z0-9_:.-]*\s*=\s*(?:"[^"]*"|'[^']*'))*\s*/?>`)
)

// Clean prepares scraped article text for display: it repairs malformed
// bold markers, strips HTML tags, and decodes entities. Double-escaped
// entities such as "&amp;quot;" decode to their readable character.
// A '<' that does not open a known tag is kept as text.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	s := boldFixer.Replace(text)
	s = stripPolicy.Sanitize(escapeStrayAngles(s))

	// Sanitize re-escapes text, so one decode undoes that and the second
	// undoes an escape the scraper applied on top.
	for i := 0; i < 3; i++ {
		decoded := html.UnescapeString(s)
		if decoded == s {
			break
		}
		s = decoded
	}

	return strings.ReplaceAll(s, "\r\n", "\n")
}

// escapeStrayAngles turns every '<' that does not start a markup tag into
// an entity so the sanitizer keeps it as text
func escapeStrayAngles(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '<' && !markupTag.MatchString(s[i:]) {
			b.WriteString("&lt;")
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
