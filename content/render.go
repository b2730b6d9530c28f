// Package content converts author-supplied markdown into HTML that is safe
// for public display, and validates the free-text fields stored alongside it.
package content

import (
	"bytes"
	"regexp"
	"strconv"

	"github.com/microcosm-cc/bluemonday"
	"github.com/projectwalnut/backend/apperr"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

// markdown passes raw HTML through to the sanitizer instead of dropping it;
// bluemonday is the single place where unsafe constructs are removed.
var markdown = goldmark.New(goldmark.WithRendererOptions(goldmarkhtml.WithUnsafe()))

var headingTag = regexp.MustCompile(`<(/?)h([1-3])>`)

// postPolicy is the allow-list for rendered post bodies: the usual
// user-generated-content subset plus inline images.
var postPolicy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("src", "alt", "title").OnElements("img")
	return p
}()

var strictPolicy = bluemonday.StrictPolicy()

// Render converts markdown to sanitized HTML and shifts every heading one
// level down (h1→h2, h2→h3, h3→h4) so post content never outranks the page
// chrome. Script-capable constructs are stripped by the allow-list.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", &apperr.RenderError{Err: err}
	}
	html := postPolicy.Sanitize(buf.String())
	html = headingTag.ReplaceAllStringFunc(html, func(tag string) string {
		m := headingTag.FindStringSubmatch(tag)
		level := int(m[2][0]-'0') + 1
		return "<" + m[1] + "h" + strconv.Itoa(level) + ">"
	})
	return html, nil
}

// SanitizePlainText strips every HTML construct from input. Callers compare
// the result with the input to detect injection attempts in fields where no
// markup is ever legitimate (names, site metadata).
func SanitizePlainText(input string) string {
	return strictPolicy.Sanitize(input)
}
