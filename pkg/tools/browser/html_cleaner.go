package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// CleanedHTML is page content with noise elements removed, plus the
// metadata pulled from the document head.
type CleanedHTML struct {
	HTML        string
	Title       string
	Description string
	Truncated   bool
}

// Elements removed entirely from cleaned output.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"embed":    true,
	"object":   true,
	"svg":      true,
}

// Block-level elements, used for newline and indent placement.
var blockElements = map[string]bool{
	"div": true, "p": true, "section": true, "article": true,
	"header": true, "footer": true, "nav": true, "main": true,
	"aside": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "ul": true, "ol": true, "li": true,
	"table": true, "tr": true, "td": true, "th": true, "form": true,
	"fieldset": true, "blockquote": true, "pre": true,
}

// Void elements take no closing tag.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "param": true, "source": true,
	"track": true, "wbr": true,
}

// Globally preserved attributes, useful for selector targeting.
var globalAttributes = map[string]bool{
	"id":               true,
	"class":            true,
	"role":             true,
	"aria-label":       true,
	"aria-describedby": true,
}

// cleanHTML parses raw page HTML and rebuilds it with scripts, styles,
// and presentational noise stripped, keeping enough attributes for the
// caller to build selectors against the result.
func cleanHTML(rawHTML string, maxLength int) (*CleanedHTML, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	result := &CleanedHTML{
		Title:       headText(doc, "title"),
		Description: metaDescription(doc),
	}

	var builder strings.Builder
	var length int
	result.Truncated = writeNode(doc, &builder, &length, maxLength, 0)
	result.HTML = builder.String()

	return result, nil
}

// writeNode recursively serializes a node into the builder, skipping
// noise. Returns true when output was truncated at maxLength.
func writeNode(n *html.Node, builder *strings.Builder, length *int, maxLength, depth int) bool {
	if *length >= maxLength {
		return true
	}

	switch n.Type {
	case html.CommentNode:
		return false

	case html.TextNode:
		text := strings.TrimSpace(n.Data)
		if text == "" {
			return false
		}
		if *length+len(text) > maxLength {
			builder.WriteString(text[:maxLength-*length])
			builder.WriteString("...")
			*length = maxLength
			return true
		}
		builder.WriteString(text)
		*length += len(text)
		return false

	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if skippedElements[tag] {
			return false
		}
		return writeElement(n, tag, builder, length, maxLength, depth)

	default:
		return writeChildren(n, builder, length, maxLength, depth)
	}
}

func writeElement(n *html.Node, tag string, builder *strings.Builder, length *int, maxLength, depth int) bool {
	if depth > 0 && blockElements[tag] {
		builder.WriteString("\n")
		builder.WriteString(strings.Repeat("  ", depth))
	}

	builder.WriteString("<")
	builder.WriteString(tag)
	for _, attr := range n.Attr {
		if preserveAttribute(tag, strings.ToLower(attr.Key)) {
			fmt.Fprintf(builder, ` %s="%s"`, attr.Key, html.EscapeString(attr.Val))
		}
	}
	builder.WriteString(">")
	*length += len(tag) + 2

	truncated := writeChildren(n, builder, length, maxLength, depth+1)

	if !voidElements[tag] {
		if blockElements[tag] {
			builder.WriteString("\n")
			builder.WriteString(strings.Repeat("  ", depth))
		}
		builder.WriteString("</")
		builder.WriteString(tag)
		builder.WriteString(">")
		*length += len(tag) + 3
	}

	return truncated
}

func writeChildren(n *html.Node, builder *strings.Builder, length *int, maxLength, depth int) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if writeNode(c, builder, length, maxLength, depth) {
			return true
		}
	}
	return false
}

// preserveAttribute reports whether an attribute survives cleaning.
func preserveAttribute(tag, attr string) bool {
	if globalAttributes[attr] {
		return true
	}
	if strings.HasPrefix(attr, "data-") {
		return true
	}

	switch tag {
	case "a":
		return attr == "href" || attr == "target"
	case "img":
		return attr == "src" || attr == "alt"
	case "input", "textarea", "select":
		return attr == "name" || attr == "type" || attr == "placeholder" || attr == "value"
	case "button":
		return attr == "type" || attr == "name"
	case "form":
		return attr == "action" || attr == "method"
	case "table":
		return attr == "summary"
	}
	return false
}

// headText returns the trimmed text of the first element with the given
// tag name.
func headText(doc *html.Node, tag string) string {
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				found = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
			if found != "" {
				return
			}
		}
	}
	walk(doc)
	return found
}

// metaDescription returns the content of the meta description tag.
func metaDescription(doc *html.Node) string {
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var isDescription bool
			var content string
			for _, attr := range n.Attr {
				if attr.Key == "name" && attr.Val == "description" {
					isDescription = true
				}
				if attr.Key == "content" {
					content = attr.Val
				}
			}
			if isDescription && content != "" {
				found = strings.TrimSpace(content)
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
			if found != "" {
				return
			}
		}
	}
	walk(doc)
	return found
}
