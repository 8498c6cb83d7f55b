package dblp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/matsen/dblp/internal/xmltree"
)

// citationPlaceholder marks an omitted reference in a record's cite
// list; such entries are excluded from extraction.
const citationPlaceholder = "..."

// Citation is one cited work in a publication record. Label is the
// optional label attribute; empty means absent.
type Citation struct {
	Reference string `json:"reference"`
	Label     string `json:"label,omitempty"`
}

// Series describes the series containing a publication. Only the first
// series element of a record is kept; later ones are discarded.
type Series struct {
	Text string `json:"text"`
	Href string `json:"href,omitempty"`
}

// Publisher pairs a publisher name with its href. It mirrors the
// upstream schema, but record extraction stores only the raw publisher
// text on PublicationRecord and never populates this pair.
type Publisher struct {
	Name string `json:"name"`
	Href string `json:"href,omitempty"`
}

// PublicationRecord holds the loaded fields of a publication record.
// Optional string fields are empty when the underlying XML does not
// provide them.
type PublicationRecord struct {
	Type      string     `json:"type"`
	SubType   string     `json:"sub_type,omitempty"`
	MDate     string     `json:"mdate,omitempty"`
	Authors   []string   `json:"authors,omitempty"`
	Editors   []string   `json:"editors,omitempty"`
	Title     string     `json:"title,omitempty"`
	Year      int        `json:"year"`
	Month     string     `json:"month,omitempty"`
	Journal   string     `json:"journal,omitempty"`
	Volume    string     `json:"volume,omitempty"`
	Number    string     `json:"number,omitempty"`
	Chapter   string     `json:"chapter,omitempty"`
	Pages     string     `json:"pages,omitempty"`
	EE        string     `json:"ee,omitempty"`
	ISBN      string     `json:"isbn,omitempty"`
	URL       string     `json:"url,omitempty"`
	BookTitle string     `json:"booktitle,omitempty"`
	CrossRef  string     `json:"crossref,omitempty"`
	Publisher string     `json:"publisher,omitempty"`
	School    string     `json:"school,omitempty"`
	Citations []Citation `json:"citations,omitempty"`
	Series    *Series    `json:"series,omitempty"`
}

// Publication represents a DBLP publication record, eg an article or
// inproceedings entry, addressed by its record key. All fields are
// loaded lazily from the record endpoint on first access.
type Publication struct {
	client *Client
	key    string
	lazy   lazyData[PublicationRecord]
}

// Publication returns a lazily loaded publication record for the given
// key. No request is made until a field is accessed.
func (c *Client) Publication(key string) *Publication {
	return &Publication{client: c, key: key}
}

// publicationFields is the declared field set for dynamic Field lookups.
var publicationFields = map[string]func(*PublicationRecord) any{
	"type":      func(r *PublicationRecord) any { return r.Type },
	"sub_type":  func(r *PublicationRecord) any { return r.SubType },
	"mdate":     func(r *PublicationRecord) any { return r.MDate },
	"authors":   func(r *PublicationRecord) any { return r.Authors },
	"editors":   func(r *PublicationRecord) any { return r.Editors },
	"title":     func(r *PublicationRecord) any { return r.Title },
	"year":      func(r *PublicationRecord) any { return r.Year },
	"month":     func(r *PublicationRecord) any { return r.Month },
	"journal":   func(r *PublicationRecord) any { return r.Journal },
	"volume":    func(r *PublicationRecord) any { return r.Volume },
	"number":    func(r *PublicationRecord) any { return r.Number },
	"chapter":   func(r *PublicationRecord) any { return r.Chapter },
	"pages":     func(r *PublicationRecord) any { return r.Pages },
	"ee":        func(r *PublicationRecord) any { return r.EE },
	"isbn":      func(r *PublicationRecord) any { return r.ISBN },
	"url":       func(r *PublicationRecord) any { return r.URL },
	"booktitle": func(r *PublicationRecord) any { return r.BookTitle },
	"crossref":  func(r *PublicationRecord) any { return r.CrossRef },
	"publisher": func(r *PublicationRecord) any { return r.Publisher },
	"school":    func(r *PublicationRecord) any { return r.School },
	"citations": func(r *PublicationRecord) any { return r.Citations },
	"series":    func(r *PublicationRecord) any { return r.Series },
}

// Key returns the publication's record key.
func (p *Publication) Key() string {
	return p.key
}

// Loaded reports whether the record has been fetched. It never
// triggers a load.
func (p *Publication) Loaded() bool {
	return p.lazy.loaded()
}

// Record returns the full loaded field set, fetching it on first call.
func (p *Publication) Record(ctx context.Context) (*PublicationRecord, error) {
	return p.lazy.ensure(ctx, p.load)
}

// Field resolves a declared field by name, loading the record if
// needed. Undeclared names fail with ErrInvalidField whether or not
// the record is loaded.
func (p *Publication) Field(ctx context.Context, name string) (any, error) {
	get, ok := publicationFields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, name)
	}
	r, err := p.Record(ctx)
	if err != nil {
		return nil, err
	}
	return get(r), nil
}

// Title returns the title of the work.
func (p *Publication) Title(ctx context.Context) (string, error) {
	r, err := p.Record(ctx)
	if err != nil {
		return "", err
	}
	return r.Title, nil
}

// Year returns the publication year.
func (p *Publication) Year(ctx context.Context) (int, error) {
	r, err := p.Record(ctx)
	if err != nil {
		return 0, err
	}
	return r.Year, nil
}

// Type returns the publication type, eg "article" or "inproceedings".
func (p *Publication) Type(ctx context.Context) (string, error) {
	r, err := p.Record(ctx)
	if err != nil {
		return "", err
	}
	return r.Type, nil
}

func (p *Publication) load(ctx context.Context) (*PublicationRecord, error) {
	path := fmt.Sprintf(recordPathFmt, p.key)
	_, body, err := p.client.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return parsePublication(body)
}

func parsePublication(body []byte) (*PublicationRecord, error) {
	root, err := xmltree.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(root.Children) == 0 {
		return nil, fmt.Errorf("%w: document has no record element", ErrNotFound)
	}

	// The first child of the document root is the record; its tag is
	// the publication type.
	rec := root.Children[0]
	r := &PublicationRecord{Type: rec.Tag}
	r.SubType, _ = rec.Attr("publtype")
	r.MDate, _ = rec.Attr("mdate")

	for _, a := range rec.FindAll("author") {
		r.Authors = append(r.Authors, a.Text)
	}
	for _, e := range rec.FindAll("editor") {
		r.Editors = append(r.Editors, e.Text)
	}

	yearText := firstText(rec, "year")
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return nil, fmt.Errorf("%w: record has no numeric year (%q)", ErrInvalidResponse, yearText)
	}
	r.Year = year

	r.Title = firstText(rec, "title")
	r.Month = firstText(rec, "month")
	r.Journal = firstText(rec, "journal")
	r.Volume = firstText(rec, "volume")
	r.Number = firstText(rec, "number")
	r.Chapter = firstText(rec, "chapter")
	r.Pages = firstText(rec, "pages")
	r.EE = firstText(rec, "ee")
	r.ISBN = firstText(rec, "isbn")
	r.URL = firstText(rec, "url")
	r.BookTitle = firstText(rec, "booktitle")
	r.CrossRef = firstText(rec, "crossref")
	r.Publisher = firstText(rec, "publisher")
	r.School = firstText(rec, "school")

	for _, c := range rec.FindAll("cite") {
		if c.Text == citationPlaceholder {
			continue
		}
		label, _ := c.Attr("label")
		r.Citations = append(r.Citations, Citation{Reference: c.Text, Label: label})
	}

	if s := rec.Find("series"); s != nil {
		href, _ := s.Attr("href")
		r.Series = &Series{Text: s.Text, Href: href}
	}

	return r, nil
}

// firstText returns the text of the first direct child with the given
// tag, or empty.
func firstText(n *xmltree.Node, tag string) string {
	if c := n.Find(tag); c != nil {
		return c.Text
	}
	return ""
}
