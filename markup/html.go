package markup

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var blankLines = regexp.MustCompile(`\n{3,}`)

// HTMLToMarkdown serializes editor HTML back to markdown. The input is
// parsed into a tree and walked; tags outside the supported subset are
// unwrapped, keeping their text.
func HTMLToMarkdown(input string) (string, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return "", err
	}

	body := findBody(doc)
	if body == nil {
		return "", nil
	}

	var b strings.Builder
	renderBlocks(body, &b, 0)

	out := blankLines.ReplaceAllString(b.String(), "\n\n")
	return strings.TrimSpace(out), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func renderBlocks(n *html.Node, b *strings.Builder, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if text := collapseSpace(c.Data); text != "" {
				b.WriteString(text + "\n\n")
			}
		case html.ElementNode:
			switch c.Data {
			case "h1", "h2", "h3":
				level := int(c.Data[1] - '0')
				if text := inlineText(c); text != "" {
					b.WriteString(strings.Repeat("#", level) + " " + text + "\n\n")
				}
			case "p":
				if text := inlineText(c); text != "" {
					b.WriteString(text + "\n\n")
				}
			case "ul":
				renderList(c, b, false, depth)
				if depth == 0 {
					b.WriteString("\n")
				}
			case "ol":
				renderList(c, b, true, depth)
				if depth == 0 {
					b.WriteString("\n")
				}
			default:
				// Unsupported containers are unwrapped.
				renderBlocks(c, b, depth)
			}
		}
	}
}

func renderList(n *html.Node, b *strings.Builder, ordered bool, depth int) {
	index := 1
	indent := strings.Repeat("  ", depth)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}

		prefix := "- "
		if ordered {
			prefix = fmt.Sprintf("%d. ", index)
			index++
		}

		text := inlineText(c)
		if marker, rest, ok := taskItem(c, text); ok {
			text = marker + " " + rest
		}
		b.WriteString(indent + prefix + text + "\n")

		// Nested lists follow their parent item line.
		for nested := c.FirstChild; nested != nil; nested = nested.NextSibling {
			if nested.Type == html.ElementNode && (nested.Data == "ul" || nested.Data == "ol") {
				renderList(nested, b, nested.Data == "ol", depth+1)
			}
		}
	}
}

// taskItem recognizes both checkbox inputs and the editor's legacy
// text markers inside a list item.
func taskItem(li *html.Node, text string) (marker, rest string, ok bool) {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "input" && attr(c, "type") == "checkbox" {
			if hasAttr(c, "checked") {
				return "[x]", strings.TrimSpace(text), true
			}
			return "[ ]", strings.TrimSpace(text), true
		}
	}
	if strings.HasPrefix(text, "☑ ") {
		return "[x]", text[len("☑ "):], true
	}
	if strings.HasPrefix(text, "☐ ") {
		return "[ ]", text[len("☐ "):], true
	}
	return "", "", false
}

// inlineText renders the inline content of a node, skipping nested
// lists and checkbox inputs, which the callers serialize themselves.
func inlineText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(collapseInline(c.Data))
		case html.ElementNode:
			switch c.Data {
			case "strong", "b":
				if inner := inlineText(c); inner != "" {
					b.WriteString("**" + inner + "**")
				}
			case "em", "i":
				if inner := inlineText(c); inner != "" {
					b.WriteString("*" + inner + "*")
				}
			case "br":
				b.WriteString("\n")
			case "ul", "ol", "input":
				// handled by the block walker
			default:
				b.WriteString(inlineText(c))
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// collapseInline squeezes runs of whitespace but keeps the word
// boundaries against neighboring inline elements.
func collapseInline(s string) string {
	out := collapseSpace(s)
	if out == "" {
		if s != "" {
			return " "
		}
		return ""
	}
	if strings.TrimLeft(s, " \t\n\r") != s {
		out = " " + out
	}
	if strings.TrimRight(s, " \t\n\r") != s {
		out = out + " "
	}
	return out
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}
