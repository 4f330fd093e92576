package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/net/html"
)

// ErrUnsupportedFormat is returned for documents that must be converted to
// text before analysis, such as PDF or Word files
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Document is the text of one document to analyze
type Document struct {
	ID   string
	Name string
	Text string
}

// NewDocument wraps text in a Document with a fresh identifier
func NewDocument(name, text string) Document {
	return Document{ID: uuid.NewString(), Name: name, Text: text}
}

// LoadFile reads a document from disk. HTML is reduced to its visible text;
// anything else must already be UTF-8 text.
func LoadFile(path string) (Document, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read document: %w", err)
	}

	text, err := decode(filepath.Ext(path), "", body)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}

	return NewDocument(filepath.Base(path), text), nil
}

// decode turns raw bytes into analyzable text, deciding the format from
// the file extension or the Content-Type
func decode(ext, contentType string, body []byte) (string, error) {
	ext = strings.ToLower(ext)
	contentType = strings.ToLower(contentType)

	switch {
	case ext == ".pdf" || ext == ".docx" || ext == ".doc" ||
		strings.Contains(contentType, "application/pdf") ||
		strings.Contains(contentType, "officedocument"):
		return "", ErrUnsupportedFormat
	case ext == ".html" || ext == ".htm" || ext == ".xhtml" ||
		strings.Contains(contentType, "html"):
		return VisibleText(string(body))
	}

	if !utf8.Valid(body) {
		return "", fmt.Errorf("%w: not UTF-8 text", ErrUnsupportedFormat)
	}
	return strings.ReplaceAll(string(body), "\r\n", "\n"), nil
}

// blockElements end a line of visible text
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"section": true, "article": true, "aside": true, "footer": true,
	"blockquote": true, "pre": true, "hr": true, "dt": true, "dd": true,
}

var (
	inlineSpace = regexp.MustCompile(`[ \t\f\r\v]+`)
	blankLines  = regexp.MustCompile(`\n{3,}`)
)

// VisibleText returns the text a reader would see, one line per block
// element, skipping scripts, styles and embedded frames
func VisibleText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("parse HTML: %w", err)
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "iframe", "template", "head":
				return
			}
		}

		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}

		if n.Type == html.ElementNode && blockElements[n.Data] {
			buf.WriteString("\n")
		}
	}
	walk(doc)

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(inlineSpace.ReplaceAllString(line, " "))
	}
	text := blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(text), nil
}
