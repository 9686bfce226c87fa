// Package format derives plain-text alternatives from rendered HTML emails.
package format

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

var blockElements = map[string]bool{
	"p": true, "div": true, "tr": true, "table": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "li": true, "ul": true, "ol": true, "hr": true,
	"section": true, "header": true, "footer": true, "body": true,
}

var skipElements = map[string]bool{
	"head": true, "style": true, "script": true, "title": true,
}

// HTML2Text renders htmlContent as readable plain text.
// Block elements become line breaks, links keep their target as "text (url)"
// and runs of whitespace collapse. Unparseable input is returned unchanged.
func HTML2Text(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var buf bytes.Buffer
	writeText(&buf, doc)

	return tidyLines(buf.String())
}

func writeText(buf *bytes.Buffer, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		buf.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipElements[n.Data] {
			return
		}
		if n.Data == "br" {
			buf.WriteByte('\n')
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		buf.WriteByte('\n')
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(buf, c)
	}

	if n.Type == html.ElementNode && n.Data == "a" {
		if href := attr(n, "href"); href != "" && !strings.Contains(textOf(n), href) {
			buf.WriteString(" (" + href + ")")
		}
	}

	if block {
		buf.WriteByte('\n')
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var buf bytes.Buffer
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(&buf, c)
	}
	return buf.String()
}

// tidyLines collapses inner whitespace, drops blank lines and trims the result.
func tidyLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}
