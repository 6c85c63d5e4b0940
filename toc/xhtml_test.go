package toc

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"golang.org/x/net/html"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const nestedNav = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<head><title>Contents</title></head>
<body>
<nav epub:type="toc" id="toc">
  <h1>Contents</h1>
  <ol>
    <li><a href="part1.xhtml">Part I</a>
      <ol>
        <li><a href="chapter1.xhtml">Chapter 1</a>
          <ol><li><a href="chapter1.xhtml#sec1">Section 1.1</a></li></ol>
        </li>
        <li><a href="chapter2.xhtml">Chapter 2</a></li>
      </ol>
    </li>
    <li><a href="part2.xhtml">Part II</a></li>
  </ol>
</nav>
</body>
</html>`

func readXHTMLString(t *testing.T, data string, opts ReadOptions) (*Toc, error) {
	t.Helper()
	return ReadXHTML(strings.NewReader(data), opts, setupTestLogger(t))
}

func nestedWant() []Entry {
	return []Entry{
		{
			Text: "Part I", Href: "part1.xhtml",
			Children: []Entry{
				{
					Text: "Chapter 1", Href: "chapter1.xhtml",
					Children: []Entry{{Text: "Section 1.1", Href: "chapter1.xhtml#sec1"}},
				},
				{Text: "Chapter 2", Href: "chapter2.xhtml"},
			},
		},
		{Text: "Part II", Href: "part2.xhtml"},
	}
}

func TestReadXHTML_Nested(t *testing.T) {
	got, err := readXHTMLString(t, nestedNav, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadXHTML() error = %v", err)
	}
	compareEntries(t, "Entries", got.Entries, nestedWant())
}

func TestReadXHTML_Lenient(t *testing.T) {
	// no namespaces, no prolog, unclosed list items and paragraphs
	const data = `<html><body><p>Before
<nav><ol>
  <li><a href=part1.xhtml>Part I</a>
    <ol>
      <li><a href="chapter1.xhtml">Chapter 1</a>
        <ol><li><a href="chapter1.xhtml#sec1">Section 1.1</a></ol>
      <li><a href="chapter2.xhtml">Chapter 2</a>
    </ol>
  <li><a href="part2.xhtml">Part II</a>
</ol></nav>`

	got, err := readXHTMLString(t, data, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadXHTML() error = %v", err)
	}
	compareEntries(t, "Entries", got.Entries, nestedWant())
}

func TestReadXHTML_SelectsTocNav(t *testing.T) {
	const data = `<html><body>
<nav epub:type="landmarks"><ol><li><a href="cover.xhtml">Cover</a></li></ol></nav>
<section><nav epub:type="toc"><ol><li><a href="ch1.xhtml">Chapter 1</a></li></ol></nav></section>
<nav epub:type="page-list"><ol><li><a href="p1.xhtml">1</a></li></ol></nav>
</body></html>`

	got, err := readXHTMLString(t, data, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadXHTML() error = %v", err)
	}
	compareEntries(t, "Entries", got.Entries, []Entry{{Text: "Chapter 1", Href: "ch1.xhtml"}})
}

func TestReadXHTML_FirstNavFallback(t *testing.T) {
	const data = `<html><body>
<nav><ol><li><a href="a.xhtml">A</a></li></ol></nav>
<nav><ol><li><a href="b.xhtml">B</a></li></ol></nav>
</body></html>`

	got, err := readXHTMLString(t, data, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadXHTML() error = %v", err)
	}
	compareEntries(t, "Entries", got.Entries, []Entry{{Text: "A", Href: "a.xhtml"}})
}

func TestReadXHTML_AnchorText(t *testing.T) {
	const tmpl = `<html><body><nav><ol><li>%s</li></ol></nav></body></html>`

	tests := []struct {
		name string
		item string
		trim bool
		want Entry
	}{
		{name: "plain", item: `<a href="a.xhtml">Plain</a>`, want: Entry{Text: "Plain", Href: "a.xhtml"}},
		{name: "nested markup", item: `<a href="a.xhtml">Chapter <em>one</em></a>`, want: Entry{Text: "Chapter one", Href: "a.xhtml"}},
		{name: "wrapped anchor", item: `<span><a href="a.xhtml">Wrapped</a></span>`, want: Entry{Text: "Wrapped", Href: "a.xhtml"}},
		{name: "first anchor wins", item: `<a href="1.xhtml">One</a><a href="2.xhtml">Two</a>`, want: Entry{Text: "One", Href: "1.xhtml"}},
		{name: "entities", item: `<a href="a.xhtml?x=1&amp;y=2">Q &amp; A</a>`, want: Entry{Text: "Q & A", Href: "a.xhtml?x=1&y=2"}},
		{name: "empty text", item: `<a href="a.xhtml"></a>`, want: Entry{Text: "", Href: "a.xhtml"}},
		{name: "whitespace kept", item: `<a href="a.xhtml"> Padded </a>`, want: Entry{Text: " Padded ", Href: "a.xhtml"}},
		{name: "whitespace trimmed", item: "<a href=\"a.xhtml\">\n  Padded\n</a>", trim: true, want: Entry{Text: "Padded", Href: "a.xhtml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readXHTMLString(t, strings.Replace(tmpl, "%s", tt.item, 1), ReadOptions{TrimText: tt.trim})
			if err != nil {
				t.Fatalf("ReadXHTML() error = %v", err)
			}
			compareEntries(t, "Entries", got.Entries, []Entry{tt.want})
		})
	}
}

func TestReadXHTML_UTF16(t *testing.T) {
	data := strings.Replace(nestedNav, "Part II", "Часть II", 1)

	var buf bytes.Buffer
	w := transform.NewWriter(&buf, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder())
	if _, err := w.Write([]byte(data)); err != nil {
		t.Fatalf("encode sample: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("finalize encoded sample: %v", err)
	}

	got, err := ReadXHTML(&buf, ReadOptions{}, setupTestLogger(t))
	if err != nil {
		t.Fatalf("ReadXHTML() error = %v", err)
	}
	if len(got.Entries) != 2 || got.Entries[1].Text != "Часть II" {
		t.Errorf("unexpected entries: %+v", got.Entries)
	}
}

func TestReadXHTML_Empty(t *testing.T) {
	got, err := readXHTMLString(t, `<html><body><nav epub:type="toc"><ol></ol></nav></body></html>`, ReadOptions{})
	if err != nil {
		t.Fatalf("ReadXHTML() error = %v", err)
	}
	if len(got.Entries) != 0 {
		t.Errorf("got %d entries, want 0", len(got.Entries))
	}
}

func TestReadXHTML_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{
			name:     "no nav",
			data:     `<html><body><ol><li><a href="a.xhtml">A</a></li></ol></body></html>`,
			wantPath: "html/body/nav",
		},
		{
			name:     "nav without list",
			data:     `<html><body><nav><ul><li><a href="a.xhtml">A</a></li></ul></nav></body></html>`,
			wantPath: "html/body/nav/ol",
		},
		{
			name:     "item without anchor",
			data:     `<html><body><nav><ol><li><a href="a.xhtml">A</a></li><li><span>B</span></li></ol></nav></body></html>`,
			wantPath: "html/body/nav/ol/li[2]/a",
		},
		{
			name:     "anchor only in nested list",
			data:     `<html><body><nav><ol><li><span>A</span><ol><li><a href="a.xhtml">A1</a></li></ol></li></ol></nav></body></html>`,
			wantPath: "html/body/nav/ol/li[1]/a",
		},
		{
			name:     "missing href",
			data:     `<html><body><nav><ol><li><a href="a.xhtml">A</a><ol><li><a name="x">A1</a></li></ol></li></ol></nav></body></html>`,
			wantPath: "html/body/nav/ol/li[1]/ol/li[1]/a/@href",
		},
		{
			name:     "empty href",
			data:     `<html><body><nav><ol><li><a href="">A</a></li></ol></nav></body></html>`,
			wantPath: "html/body/nav/ol/li[1]/a/@href",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readXHTMLString(t, tt.data, ReadOptions{})
			if err == nil {
				t.Fatalf("ReadXHTML() = %+v, want error", got)
			}
			if !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("ReadXHTML() error = %v, want ErrMalformedInput", err)
			}
			var me *MalformedError
			if !errors.As(err, &me) {
				t.Fatalf("ReadXHTML() error %T is not *MalformedError", err)
			}
			if me.Path != tt.wantPath {
				t.Errorf("MalformedError.Path = %q, want %q", me.Path, tt.wantPath)
			}
		})
	}
}

func TestParseXHTML_NilDocument(t *testing.T) {
	if _, err := ParseXHTML(nil, ReadOptions{}, setupTestLogger(t)); err == nil {
		t.Error("Expected error for nil document")
	}
}

func TestParseXHTML_PreParsed(t *testing.T) {
	node, err := html.Parse(strings.NewReader(nestedNav))
	if err != nil {
		t.Fatalf("html.Parse() error = %v", err)
	}
	got, err := ParseXHTML(node, ReadOptions{}, setupTestLogger(t))
	if err != nil {
		t.Fatalf("ParseXHTML() error = %v", err)
	}
	if got.Count() != 5 {
		t.Errorf("Count() = %d, want 5", got.Count())
	}
}

func TestRenderXHTML_Markup(t *testing.T) {
	doc := etree.NewDocument()
	doc.SetRoot(RenderXHTML(chapterToc()))
	got, err := doc.WriteToString()
	if err != nil {
		t.Fatalf("WriteToString() error = %v", err)
	}
	want := `<ol><li><a href="ch1.xhtml">Chapter 1</a><ol><li><a href="ch1.xhtml#s1">Section 1.1</a></li></ol></li></ol>`
	if got != want {
		t.Errorf("RenderXHTML() =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderXHTML_Empty(t *testing.T) {
	for _, src := range []*Toc{nil, {}} {
		ol := RenderXHTML(src)
		if ol.Tag != "ol" {
			t.Errorf("root tag = %q, want ol", ol.Tag)
		}
		if len(ol.ChildElements()) != 0 {
			t.Errorf("empty toc rendered %d children", len(ol.ChildElements()))
		}
	}
}

func TestRenderXHTML_LeafHasNoList(t *testing.T) {
	ol := RenderXHTML(&Toc{Entries: []Entry{{Text: "Leaf", Href: "leaf.xhtml"}}})
	li := ol.SelectElement("li")
	if li == nil {
		t.Fatal("li element is missing")
	}
	if li.SelectElement("ol") != nil {
		t.Error("leaf entry rendered nested list")
	}
}

func TestXHTML_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		toc    *Toc
		indent int
	}{
		{name: "chapter with section", toc: chapterToc(), indent: 2},
		{name: "empty", toc: &Toc{}, indent: 2},
		{name: "deep nesting", toc: nestedToc(5), indent: 0},
		{name: "random 1", toc: randomToc(11, 8, 6), indent: 4},
		{name: "random 2", toc: randomToc(12, 3, 8), indent: NoIndent},
		{name: "random 3", toc: randomToc(13, 20, 3), indent: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteDocument(&buf, XHTMLDocument(tt.toc, XHTMLHeader{Heading: "Contents"}), tt.indent); err != nil {
				t.Fatalf("WriteDocument() error = %v", err)
			}
			got, err := ReadXHTML(&buf, ReadOptions{}, setupTestLogger(t))
			if err != nil {
				t.Fatalf("ReadXHTML() error = %v", err)
			}
			compareEntries(t, "Entries", got.Entries, tt.toc.Entries)
		})
	}
}
