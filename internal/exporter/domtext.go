package exporter

import (
	"regexp"
	"strings"
)

var (
	reBr         = regexp.MustCompile(`(?i)<br\s*/?>`)
	reBlockClose = regexp.MustCompile(`(?i)</(?:p|div|ul|ol|li|blockquote)>`)
	reTag        = regexp.MustCompile(`<[^>]*>`)
	reMultiSpace = regexp.MustCompile(`[^\S\n]{2,}`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

// cleanDOMText normalizes message text captured from the Slack web client's
// DOM: markup becomes line structure, entities are decoded, and runs of
// whitespace collapse. API-sourced text passes through nearly untouched.
func cleanDOMText(text string) string {
	if text == "" {
		return ""
	}

	s := text

	s = reBr.ReplaceAllString(s, "\n")
	s = reBlockClose.ReplaceAllString(s, "\n")
	s = reTag.ReplaceAllString(s, "")

	s = strings.ReplaceAll(s, "&nbsp;", " ")
	s = strings.ReplaceAll(s, "&amp;", "&")
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	s = strings.ReplaceAll(s, "&quot;", `"`)
	s = strings.ReplaceAll(s, "&#39;", "'")
	s = strings.ReplaceAll(s, "&apos;", "'")

	s = reMultiSpace.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = strings.Join(lines, "\n")

	s = reMultiBlank.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}
