package toc

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

const NCXNamespace = "http://www.daisy.org/z3986/2005/ncx/"

// ReadNCX reads and parses NCX document.
func ReadNCX(r io.Reader, opts ReadOptions, log *zap.Logger) (*Toc, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, &MalformedError{Path: "ncx", Reason: "unable to read XML", Err: err}
	}
	return ParseNCX(doc, opts, log)
}

// ParseNCX walks NCX DOM and builds table of contents from navMap. Every
// navPoint must have navLabel with at least one child element and content
// with non empty src.
func ParseNCX(doc *etree.Document, opts ReadOptions, log *zap.Logger) (*Toc, error) {
	if doc == nil {
		return nil, errors.New("nil document")
	}

	root := doc.Root()
	if root == nil {
		return nil, malformed("ncx", "document has no root element")
	}
	if root.Tag != "ncx" {
		return nil, malformed(root.Tag, "unexpected root element, expected ncx")
	}
	if ns := root.NamespaceURI(); ns != NCXNamespace {
		log.Warn("Unexpected NCX namespace", zap.String("namespace", ns), zap.String("expected", NCXNamespace))
	}

	var navMap *etree.Element
	for _, child := range root.ChildElements() {
		if child.Tag != "navMap" {
			continue
		}
		if navMap != nil {
			return nil, malformed("ncx/navMap", "more than one element found")
		}
		navMap = child
	}
	if navMap == nil {
		return nil, malformed("ncx/navMap", "element is missing")
	}

	t := &Toc{}
	for _, child := range navMap.ChildElements() {
		if child.Tag != "navPoint" {
			log.Debug("Unexpected tag in navMap, ignoring", zap.String("tag", child.Tag))
			continue
		}
		entry, err := parseNavPoint(child, fmt.Sprintf("ncx/navMap/navPoint[%d]", len(t.Entries)+1), opts, log)
		if err != nil {
			return nil, err
		}
		t.Entries = append(t.Entries, entry)
	}
	return t, nil
}

func parseNavPoint(el *etree.Element, path string, opts ReadOptions, log *zap.Logger) (Entry, error) {
	var (
		entry          Entry
		label, content *etree.Element
	)

	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "navLabel":
			if label == nil {
				label = child
			}
		case "content":
			if content == nil {
				content = child
			}
		case "navPoint":
			sub, err := parseNavPoint(child, fmt.Sprintf("%s/navPoint[%d]", path, len(entry.Children)+1), opts, log)
			if err != nil {
				return Entry{}, err
			}
			entry.Children = append(entry.Children, sub)
		default:
			log.Debug("Unexpected tag in navPoint, ignoring", zap.String("path", path), zap.String("tag", child.Tag))
		}
	}

	if label == nil {
		return Entry{}, malformed(path+"/navLabel", "element is missing")
	}
	texts := label.ChildElements()
	if len(texts) == 0 {
		return Entry{}, malformed(path+"/navLabel", "label has no text element")
	}
	entry.Text = extractAllText(texts[0])
	if opts.TrimText {
		entry.Text = strings.TrimSpace(entry.Text)
	}

	if content == nil {
		return Entry{}, malformed(path+"/content", "element is missing")
	}
	src := content.SelectAttr("src")
	if src == nil {
		return Entry{}, malformed(path+"/content/@src", "attribute is missing")
	}
	if len(src.Value) == 0 {
		return Entry{}, malformed(path+"/content/@src", "attribute is empty")
	}
	entry.Href = src.Value

	return entry, nil
}

func extractAllText(el *etree.Element) string {
	var sb strings.Builder
	for _, token := range el.Child {
		switch tok := token.(type) {
		case *etree.CharData:
			sb.WriteString(tok.Data)
		case *etree.Element:
			sb.WriteString(extractAllText(tok))
		}
	}
	return sb.String()
}

// RenderNCX produces navMap element. Every navPoint gets id "navPoint_N" and
// playOrder N, where N is assigned in document (pre-order) order starting
// with 1 and shared by all depths.
func RenderNCX(t *Toc) *etree.Element {
	navMap := etree.NewElement("navMap")
	if t == nil {
		return navMap
	}
	playOrder := 0
	for i := range t.Entries {
		renderNavPoint(navMap, &t.Entries[i], &playOrder)
	}
	return navMap
}

func renderNavPoint(parent *etree.Element, entry *Entry, playOrder *int) {
	*playOrder++

	navPoint := parent.CreateElement("navPoint")
	navPoint.CreateAttr("id", "navPoint_"+strconv.Itoa(*playOrder))
	navPoint.CreateAttr("playOrder", strconv.Itoa(*playOrder))

	navLabel := navPoint.CreateElement("navLabel")
	navLabel.CreateElement("text").SetText(entry.Text)

	navContent := navPoint.CreateElement("content")
	navContent.CreateAttr("src", entry.Href)

	for i := range entry.Children {
		renderNavPoint(navPoint, &entry.Children[i], playOrder)
	}
}
