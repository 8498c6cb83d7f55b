package xmltree

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	doc := []byte(`<dblpperson name="Jane Doe" n="42">
		<person>
			<note type="affiliation">Example University</note>
			<url>https://example.edu/~jane</url>
		</person>
		<r><article key="x"><title>On Things</title></article></r>
	</dblpperson>`)

	root, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if root.Tag != "dblpperson" {
		t.Errorf("root tag = %q, want dblpperson", root.Tag)
	}
	if name, ok := root.Attr("name"); !ok || name != "Jane Doe" {
		t.Errorf("name attr = %q, %v; want Jane Doe, true", name, ok)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}

	person := root.Find("person")
	if person == nil {
		t.Fatal("Find(person) = nil")
	}
	note := person.Find("note")
	if note == nil || note.Text != "Example University" {
		t.Errorf("note = %+v, want text Example University", note)
	}
	if typ, _ := note.Attr("type"); typ != "affiliation" {
		t.Errorf("note type attr = %q, want affiliation", typ)
	}

	title := root.Find("r").Find("article").Find("title")
	if title == nil || title.Text != "On Things" {
		t.Errorf("title = %+v, want text On Things", title)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty document", input: ""},
		{name: "whitespace only", input: "  \n "},
		{name: "unclosed but empty", input: "<!-- comment only -->"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Errorf("Parse(%q) succeeded, want error", tt.input)
			}
		})
	}
}

func TestHasText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "direct text", input: "<a>x</a>", want: true},
		{name: "nested text only", input: "<a><b><c>deep</c></b></a>", want: true},
		{name: "no text anywhere", input: "<a><b/><c attr=\"v\"/></a>", want: false},
		{name: "whitespace only", input: "<a>   \n\t </a>", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if got := root.HasText(); got != tt.want {
				t.Errorf("HasText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeLeaf(t *testing.T) {
	root, err := Parse([]byte("<year>2020</year>"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	v := Decode(root)
	if v.Kind != KindScalar || v.Text != "2020" {
		t.Errorf("Decode(leaf) = %+v, want Scalar 2020", v)
	}
}

func TestDecodeListPromotion(t *testing.T) {
	doc := []byte(`<article>
		<author>Ada</author>
		<author>Bob</author>
		<author>Cam</author>
		<title>One Title</title>
	</article>`)
	root, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	v := Decode(root)
	if v.Kind != KindObject {
		t.Fatalf("Decode() kind = %v, want KindObject", v.Kind)
	}

	// Repeated tag promotes to a list in document order.
	authors := v.Fields["author"]
	if authors.Kind != KindList {
		t.Fatalf("author kind = %v, want KindList", authors.Kind)
	}
	if len(authors.Items) != 3 {
		t.Fatalf("len(author items) = %d, want 3", len(authors.Items))
	}
	for i, want := range []string{"Ada", "Bob", "Cam"} {
		if got := authors.Items[i].Text; got != want {
			t.Errorf("author[%d] = %q, want %q", i, got, want)
		}
	}

	// A singleton tag stays scalar, not a one-element list.
	title := v.Fields["title"]
	if title.Kind != KindScalar || title.Text != "One Title" {
		t.Errorf("title = %+v, want Scalar One Title", title)
	}
}

func TestDecodeNested(t *testing.T) {
	doc := []byte(`<r>
		<article><title>A</title></article>
		<article><title>B</title></article>
	</r>`)
	root, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	v := Decode(root)
	articles := v.Fields["article"]
	if articles.Kind != KindList || len(articles.Items) != 2 {
		t.Fatalf("article = %+v, want list of 2", articles)
	}
	for i, want := range []string{"A", "B"} {
		item := articles.Items[i]
		if item.Kind != KindObject {
			t.Fatalf("article[%d] kind = %v, want KindObject", i, item.Kind)
		}
		if got := item.Fields["title"].Text; got != want {
			t.Errorf("article[%d] title = %q, want %q", i, got, want)
		}
	}
}

func TestDecodeTree(t *testing.T) {
	root, err := Parse([]byte("<article><title>A</title></article>"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	v := DecodeTree(root)
	if v.Kind != KindObject || len(v.Fields) != 1 {
		t.Fatalf("DecodeTree() = %+v, want one-entry object", v)
	}
	inner, ok := v.Fields["article"]
	if !ok || inner.Kind != KindObject {
		t.Fatalf("DecodeTree()[article] = %+v, want object", inner)
	}
	if got := inner.Fields["title"].Text; got != "A" {
		t.Errorf("title = %q, want A", got)
	}
}

func TestValueMarshalJSON(t *testing.T) {
	doc := []byte(`<article><author>Ada</author><author>Bob</author><title>T</title></article>`)
	root, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	data, err := json.Marshal(Decode(root))
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	authors, ok := out["author"].([]any)
	if !ok || len(authors) != 2 {
		t.Errorf("marshalled author = %v, want 2-element array", out["author"])
	}
	if title, ok := out["title"].(string); !ok || title != "T" {
		t.Errorf("marshalled title = %v, want string T", out["title"])
	}
}
