package imslp

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"scribe/internal/works"
)

// ErrNoContent reports a page without the general information block or a
// piece style.
var ErrNoContent = errors.New("imslp page has no work information")

const (
	generalInformationID = "General_Information"
	labelPieceStyle      = "Piece Style"
	labelGenreCategories = "Genre Categories"
	labelFirstPub        = "First Pub"
)

// Parse extracts work metadata from an IMSLP page.
func Parse(r io.Reader) (works.Metadata, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return works.Metadata{}, fmt.Errorf("parse html: %w", err)
	}
	if findNode(doc, hasID(generalInformationID)) == nil {
		return works.Metadata{}, fmt.Errorf("%w: missing %s", ErrNoContent, generalInformationID)
	}

	var style string
	if th := findNode(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Th && strings.Contains(textContent(n), labelPieceStyle)
	}); th != nil {
		if td := rowCell(th); td != nil {
			if a := findNode(td, isElement(atom.A)); a != nil {
				style = strings.TrimSpace(textContent(a))
			}
		}
	}
	if style == "" {
		return works.Metadata{}, fmt.Errorf("%w: missing piece style", ErrNoContent)
	}

	meta := works.Metadata{Style: style}
	if td := labelledCell(doc, labelGenreCategories); td != nil {
		for _, s := range strippedStrings(td) {
			if s != ";" {
				meta.GenreCategories = append(meta.GenreCategories, s)
			}
		}
	}
	if td := labelledCell(doc, labelFirstPub); td != nil {
		if parts := strippedStrings(td); len(parts) > 0 {
			meta.FirstPublication = parts[0]
		}
	}
	return meta, nil
}

// labelledCell finds the first text containing label and returns the data cell
// of the table row it sits in.
func labelledCell(doc *html.Node, label string) *html.Node {
	text := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.TextNode && strings.Contains(n.Data, label)
	})
	if text == nil {
		return nil
	}
	return rowCell(text)
}

// rowCell returns the first td of the row enclosing n.
func rowCell(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Tr {
			return findNode(p, isElement(atom.Td))
		}
	}
	return nil
}

func findNode(root *html.Node, match func(*html.Node) bool) *html.Node {
	if match(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func isElement(a atom.Atom) func(*html.Node) bool {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func hasID(id string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode {
			return false
		}
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val == id {
				return true
			}
		}
		return false
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// strippedStrings returns the trimmed, non-empty text nodes under n in
// document order.
func strippedStrings(n *html.Node) []string {
	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				out = append(out, s)
			}
		}
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}
