// Package infobox locates the summary table of an encyclopedia article and
// exposes its label/value rows together with the links inside each value.
package infobox

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/OFFIS-RIT/wikigraph/internal/util"
)

// ErrNoInfobox is returned when the page has no summary table.
var ErrNoInfobox = errors.New("no infobox found")

var (
	infoboxSel = cascadia.MustCompile("table.infobox")
	headerSel  = cascadia.MustCompile("th")
	linkSel    = cascadia.MustCompile("a[href]")
)

// Infobox holds the rows of a summary table in document order.
type Infobox struct {
	Fields []Field
}

// Field is one labelled row. Links come from the first td following the
// label cell and keep document order.
type Field struct {
	Label string
	Links []Link
}

// Link is an anchor inside a value cell.
type Link struct {
	Href  string
	Title string
	Text  string
}

// IsAnchor reports whether the link points into a page section.
func (l Link) IsAnchor() bool {
	return strings.Contains(l.Href, "#")
}

// IsFile reports whether the link targets a media file instead of an article.
func (l Link) IsFile() bool {
	return strings.HasPrefix(l.Title, "File:")
}

// Parse reads an HTML document and returns its first infobox.
func Parse(r io.Reader) (*Infobox, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	table := infoboxSel.MatchFirst(doc)
	if table == nil {
		return nil, ErrNoInfobox
	}

	box := &Infobox{}
	for _, th := range headerSel.MatchAll(table) {
		field := Field{Label: textContent(th)}
		if td := nextSiblingCell(th); td != nil {
			for _, a := range linkSel.MatchAll(td) {
				field.Links = append(field.Links, Link{
					Href:  attr(a, "href"),
					Title: util.NormalizeText(attr(a, "title")),
					Text:  textContent(a),
				})
			}
		}
		box.Fields = append(box.Fields, field)
	}

	return box, nil
}

func nextSiblingCell(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode && s.DataAtom == atom.Td {
			return s
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return util.NormalizeText(b.String())
}
