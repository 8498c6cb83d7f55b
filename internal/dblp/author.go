package dblp

import (
	"context"
	"fmt"

	"github.com/matsen/dblp/internal/xmltree"
)

// AuthorRecord holds the loaded fields of an author profile.
type AuthorRecord struct {
	Name         string          `json:"name"`
	Affiliations []string        `json:"affiliations,omitempty"`
	Homepages    []string        `json:"homepages,omitempty"`
	Publications []xmltree.Value `json:"publications,omitempty"`
}

// Author represents a DBLP author profile, addressed by the two
// trailing path segments of its canonical URL. All fields are loaded
// lazily from the person endpoint on first access.
type Author struct {
	client *Client
	urlpt  [2]string
	lazy   lazyData[AuthorRecord]
}

// Author returns a lazily loaded author record for the given
// identifier segments. No request is made until a field is accessed.
func (c *Client) Author(seg1, seg2 string) *Author {
	return &Author{client: c, urlpt: [2]string{seg1, seg2}}
}

// authorFields is the declared field set for dynamic Field lookups.
var authorFields = map[string]func(*AuthorRecord) any{
	"name":         func(r *AuthorRecord) any { return r.Name },
	"affiliation":  func(r *AuthorRecord) any { return r.Affiliations },
	"homepages":    func(r *AuthorRecord) any { return r.Homepages },
	"publications": func(r *AuthorRecord) any { return r.Publications },
}

// Key returns the author identifier as a path fragment.
func (a *Author) Key() string {
	return a.urlpt[0] + "/" + a.urlpt[1]
}

// Loaded reports whether the profile has been fetched. It never
// triggers a load.
func (a *Author) Loaded() bool {
	return a.lazy.loaded()
}

// Record returns the full loaded field set, fetching it on first call.
func (a *Author) Record(ctx context.Context) (*AuthorRecord, error) {
	return a.lazy.ensure(ctx, a.load)
}

// Field resolves a declared field by name, loading the profile if
// needed. Undeclared names fail with ErrInvalidField whether or not
// the profile is loaded.
func (a *Author) Field(ctx context.Context, name string) (any, error) {
	get, ok := authorFields[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidField, name)
	}
	r, err := a.Record(ctx)
	if err != nil {
		return nil, err
	}
	return get(r), nil
}

// Name returns the author's primary name record.
func (a *Author) Name(ctx context.Context) (string, error) {
	r, err := a.Record(ctx)
	if err != nil {
		return "", err
	}
	return r.Name, nil
}

// Affiliations returns the affiliation notes on the profile.
func (a *Author) Affiliations(ctx context.Context) ([]string, error) {
	r, err := a.Record(ctx)
	if err != nil {
		return nil, err
	}
	return r.Affiliations, nil
}

// Homepages returns the homepage URLs on the profile.
func (a *Author) Homepages(ctx context.Context) ([]string, error) {
	r, err := a.Record(ctx)
	if err != nil {
		return nil, err
	}
	return r.Homepages, nil
}

// Publications returns the decoded publication records on the profile.
func (a *Author) Publications(ctx context.Context) ([]xmltree.Value, error) {
	r, err := a.Record(ctx)
	if err != nil {
		return nil, err
	}
	return r.Publications, nil
}

func (a *Author) load(ctx context.Context) (*AuthorRecord, error) {
	path := fmt.Sprintf(personPathFmt, a.urlpt[0], a.urlpt[1])
	_, body, err := a.client.get(ctx, path, nil)
	if err != nil {
		return nil, err
	}
	return parseAuthor(body)
}

func parseAuthor(body []byte) (*AuthorRecord, error) {
	root, err := xmltree.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	name, ok := root.Attr("name")
	if !ok {
		return nil, fmt.Errorf("%w: person document has no name attribute", ErrInvalidResponse)
	}

	r := &AuthorRecord{Name: name}
	for _, person := range root.FindAll("person") {
		for _, note := range person.FindAll("note") {
			if typ, _ := note.Attr("type"); typ == "affiliation" {
				r.Affiliations = append(r.Affiliations, note.Text)
			}
		}
		for _, u := range person.FindAll("url") {
			r.Homepages = append(r.Homepages, u.Text)
		}
	}

	// One record per child of each top-level r element; records whose
	// subtree carries no text at all are skipped.
	for _, rec := range root.FindAll("r") {
		for _, pub := range rec.Children {
			if pub.HasText() {
				r.Publications = append(r.Publications, xmltree.DecodeTree(pub))
			}
		}
	}

	return r, nil
}
