package toc

import (
	"io"
	"strconv"

	"github.com/beevik/etree"
)

// NoIndent disables pretty printing in WriteDocument.
const NoIndent = -1

// NCXHeader holds values for NCX boilerplate surrounding navMap.
type NCXHeader struct {
	UID       string
	Title     string
	PageCount int
}

// XHTMLHeader holds values for navigation document boilerplate surrounding
// the list. Empty Heading means no h1 inside nav.
type XHTMLHeader struct {
	Title   string
	Heading string
}

// NCXDocument wraps navMap produced by RenderNCX into complete NCX document.
func NCXDocument(t *Toc, hdr NCXHeader) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	doc.CreateDirective(`DOCTYPE ncx PUBLIC "-//NISO//DTD ncx 2005-1//EN" "http://www.daisy.org/z3986/2005/ncx-2005-1.dtd"`)

	ncx := doc.CreateElement("ncx")
	ncx.CreateAttr("xmlns", NCXNamespace)
	ncx.CreateAttr("version", "2005-1")

	head := ncx.CreateElement("head")
	pages := strconv.Itoa(hdr.PageCount)
	for _, meta := range []struct{ name, content string }{
		{"dtb:isbn", hdr.UID},
		{"dtb:depth", strconv.Itoa(max(1, t.Depth()))},
		{"dtb:totalPageCount", pages},
		{"dtb:maxPageNumber", pages},
	} {
		m := head.CreateElement("meta")
		m.CreateAttr("name", meta.name)
		m.CreateAttr("content", meta.content)
	}

	docTitle := ncx.CreateElement("docTitle")
	docTitle.CreateElement("text").SetText(hdr.Title)

	ncx.AddChild(RenderNCX(t))
	return doc
}

// XHTMLDocument wraps list produced by RenderXHTML into complete navigation
// document. Result is always written with explicit end tags so HTML parsers
// read it back the same way XML parsers do.
func XHTMLDocument(t *Toc, hdr XHTMLHeader) *etree.Document {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	html := doc.CreateElement("html")
	html.CreateAttr("xmlns", XHTMLNamespace)
	html.CreateAttr("xmlns:epub", OPSNamespace)

	head := html.CreateElement("head")
	head.CreateElement("title").SetText(hdr.Title)

	body := html.CreateElement("body")
	nav := body.CreateElement("nav")
	nav.CreateAttr("epub:type", "toc")
	if len(hdr.Heading) > 0 {
		nav.CreateElement("h1").SetText(hdr.Heading)
	}

	nav.AddChild(RenderXHTML(t))
	return doc
}

// WriteDocument serializes document. Positive indent is number of spaces per
// level, 0 indents with tabs and NoIndent (or any negative value) leaves
// document as built.
func WriteDocument(w io.Writer, doc *etree.Document, indent int) error {
	switch {
	case indent > 0:
		doc.Indent(indent)
	case indent == 0:
		doc.IndentTabs()
	}
	_, err := doc.WriteTo(w)
	return err
}
