// Package markup converts between the markdown stored for notes and
// the constrained HTML subset the rich-text editor emits: headings
// h1-h3, bold, italic, ordered/unordered lists, paragraphs, line
// breaks and GitHub-style task list items. Anything outside the
// subset is stripped.
package markup

import (
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

const (
	checkboxUnchecked = `<input type="checkbox" disabled="">`
	checkboxChecked   = `<input type="checkbox" checked="" disabled="">`
)

var policy = editorPolicy()

// editorPolicy allows exactly the tags the editor round-trips.
func editorPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h1", "h2", "h3", "p", "br", "strong", "em", "b", "i", "ul", "ol", "li")
	p.AllowAttrs("type", "checked", "disabled").OnElements("input")
	return p
}

// MarkdownToHTML renders markdown to sanitized HTML for the editor.
func MarkdownToHTML(md string) string {
	src := expandTaskItems(md)

	exts := parser.NoIntraEmphasis | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(exts)
	doc := p.Parse([]byte(src))

	// Smartypants and friends rewrite the text itself, which would
	// break the editor round-trip.
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.FlagsNone})
	rendered := markdown.Render(doc, renderer)

	return strings.TrimSpace(string(policy.SanitizeBytes(rendered)))
}

// expandTaskItems rewrites `- [ ]` / `- [x]` list markers into inline
// checkbox spans before parsing, so the structural work stays with the
// markdown parser.
func expandTaskItems(md string) string {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		rest := line[len(indent):]

		marker := ""
		for _, bullet := range []string{"- ", "* "} {
			if strings.HasPrefix(rest, bullet) {
				marker = bullet
				break
			}
		}
		if marker == "" {
			continue
		}

		body := rest[len(marker):]
		switch {
		case strings.HasPrefix(body, "[ ] "):
			lines[i] = indent + marker + checkboxUnchecked + " " + body[4:]
		case strings.HasPrefix(body, "[x] "), strings.HasPrefix(body, "[X] "):
			lines[i] = indent + marker + checkboxChecked + " " + body[4:]
		case body == "[ ]":
			lines[i] = indent + marker + checkboxUnchecked
		case body == "[x]", body == "[X]":
			lines[i] = indent + marker + checkboxChecked
		}
	}
	return strings.Join(lines, "\n")
}
