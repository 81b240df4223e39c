package lovdata

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Fields provides lenient, namespace-insensitive text lookup over a source
// document. Tag names are matched by their trailing local name regardless of
// namespace prefix, case-insensitively, mirroring how the upstream archives
// mix schema generations in one package.
type Fields struct {
	doc *goquery.Document
}

// ParseFields decodes raw document bytes. Parsing is lenient: structurally
// odd markup still yields a navigable tree.
func ParseFields(raw []byte) (*Fields, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Fields{doc: doc}, nil
}

// FirstText returns the first non-empty direct text of any element matching
// one of the alias names, trying aliases in order.
func (f *Fields) FirstText(names ...string) string {
	for _, name := range names {
		first := ""
		f.each(name, func(s *goquery.Selection) bool {
			if t := ownText(s); t != "" {
				first = t
				return false
			}
			return true
		})
		if first != "" {
			return first
		}
	}
	return ""
}

// AllText collects the non-empty direct texts of every element matching any
// alias name, in alias order then document order.
func (f *Fields) AllText(names ...string) []string {
	var out []string
	for _, name := range names {
		f.each(name, func(s *goquery.Selection) bool {
			if t := ownText(s); t != "" {
				out = append(out, t)
			}
			return true
		})
	}
	return out
}

// FullText renders the whole document as plain text for free-text mining.
func (f *Fields) FullText() string {
	return f.doc.Text()
}

func (f *Fields) each(name string, visit func(*goquery.Selection) bool) {
	want := strings.ToLower(name)
	f.doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		return localName(s) != want || visit(s)
	})
}

// localName strips any namespace prefix from the element tag name. The
// lenient parser already lowercases names.
func localName(s *goquery.Selection) string {
	name := goquery.NodeName(s)
	if i := strings.LastIndex(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// ownText is the text directly inside the element before its first child
// element, the way field values appear in the source metadata tags.
func ownText(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	var b strings.Builder
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			break
		}
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(b.String())
}
