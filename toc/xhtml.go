package toc

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"
)

const (
	XHTMLNamespace = "http://www.w3.org/1999/xhtml"
	OPSNamespace   = "http://www.idpf.org/2007/ops"
)

// ReadXHTML reads and parses navigation document. Source does not have to be
// well formed XML: it is parsed as HTML5 so unclosed tags and missing
// namespaces are tolerated. Unless byte order mark says otherwise input is
// expected to be UTF-8.
func ReadXHTML(r io.Reader, opts ReadOptions, log *zap.Logger) (*Toc, error) {
	ur, err := charset.NewReader(r, "application/xhtml+xml; charset=utf-8")
	if err != nil {
		return nil, fmt.Errorf("unable to detect document encoding: %w", err)
	}
	doc, err := html.Parse(ur)
	if err != nil {
		return nil, &MalformedError{Path: "html", Reason: "unable to parse document", Err: err}
	}
	return ParseXHTML(doc, opts, log)
}

// ParseXHTML locates body > nav > ol and builds table of contents from its
// list items. When body has several nav elements the one with epub:type
// "toc" wins, otherwise the first one is used.
func ParseXHTML(doc *html.Node, opts ReadOptions, log *zap.Logger) (*Toc, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}

	body := findElement(doc, "body")
	if body == nil {
		return nil, malformed("html/body", "element is missing")
	}

	var navs []*html.Node
	collectElements(body, "nav", &navs)
	if len(navs) == 0 {
		return nil, malformed("html/body/nav", "element is missing")
	}
	nav := navs[0]
	for _, n := range navs {
		if hasEpubType(n, "toc") {
			nav = n
			break
		}
	}
	if len(navs) > 1 {
		log.Debug("Multiple nav elements found", zap.Int("count", len(navs)), zap.String("selected", getAttr(nav, "epub:type")))
	}

	ol := firstChildElement(nav, "ol")
	if ol == nil {
		return nil, malformed("html/body/nav/ol", "element is missing")
	}

	entries, err := parseList(ol, "html/body/nav/ol", opts, log)
	if err != nil {
		return nil, err
	}
	return &Toc{Entries: entries}, nil
}

func parseList(ol *html.Node, path string, opts ReadOptions, log *zap.Logger) ([]Entry, error) {
	var entries []Entry
	for c := ol.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data != "li" {
			log.Debug("Unexpected tag in list, ignoring", zap.String("path", path), zap.String("tag", c.Data))
			continue
		}
		entry, err := parseListItem(c, fmt.Sprintf("%s/li[%d]", path, len(entries)+1), opts, log)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func parseListItem(li *html.Node, path string, opts ReadOptions, log *zap.Logger) (Entry, error) {
	var entry Entry

	a := findAnchor(li)
	if a == nil {
		return Entry{}, malformed(path+"/a", "element is missing")
	}
	href, ok := lookupAttr(a, "href")
	if !ok {
		return Entry{}, malformed(path+"/a/@href", "attribute is missing")
	}
	if len(href) == 0 {
		return Entry{}, malformed(path+"/a/@href", "attribute is empty")
	}
	entry.Href = href
	entry.Text = nodeTextContent(a)
	if opts.TrimText {
		entry.Text = strings.TrimSpace(entry.Text)
	}

	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "ol" {
			continue
		}
		children, err := parseList(c, path+"/ol", opts, log)
		if err != nil {
			return Entry{}, err
		}
		entry.Children = append(entry.Children, children...)
	}
	return entry, nil
}

// findAnchor returns first "a" element of the list item, nested lists are
// not searched.
func findAnchor(li *html.Node) *html.Node {
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data == "ol" {
			continue
		}
		if c.Data == "a" {
			return c
		}
		if a := findAnchor(c); a != nil {
			return a
		}
	}
	return nil
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// collectElements gathers descendants with given tag in document order, it
// does not descend into matched elements.
func collectElements(n *html.Node, tag string, out *[]*html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data == tag {
			*out = append(*out, c)
			continue
		}
		collectElements(c, tag, out)
	}
}

func firstChildElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
	}
	return nil
}

func hasEpubType(n *html.Node, typeName string) bool {
	for _, t := range strings.Fields(getAttr(n, "epub:type")) {
		if t == typeName {
			return true
		}
	}
	return false
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func getAttr(n *html.Node, key string) string {
	val, _ := lookupAttr(n, key)
	return val
}

func nodeTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeTextContent(c))
	}
	return sb.String()
}

// RenderXHTML produces ordered list element with a list item per entry.
// Entries with children get nested list after the anchor.
func RenderXHTML(t *Toc) *etree.Element {
	ol := etree.NewElement("ol")
	if t == nil {
		return ol
	}
	for i := range t.Entries {
		renderListItem(ol, &t.Entries[i])
	}
	return ol
}

func renderListItem(parent *etree.Element, entry *Entry) {
	li := parent.CreateElement("li")
	a := li.CreateElement("a")
	a.CreateAttr("href", entry.Href)
	a.SetText(entry.Text)

	if len(entry.Children) == 0 {
		return
	}
	ol := li.CreateElement("ol")
	for i := range entry.Children {
		renderListItem(ol, &entry.Children[i])
	}
}
