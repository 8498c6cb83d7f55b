// Package xmltree parses XML documents into a generic element tree and
// decodes subtrees into nested mappings, promoting repeated sibling
// tags into ordered lists.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Node is one element of a parsed XML document: its tag, attributes,
// the trimmed character data appearing directly inside it, and its
// child elements in document order.
type Node struct {
	Tag      string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

// Parse builds the element tree for an XML document. Character data is
// accumulated per element and trimmed of surrounding whitespace.
func Parse(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false
	dec.Entity = xml.HTMLEntity

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Tag: t.Name.Local}
			if len(t.Attr) > 0 {
				n.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					n.Attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("parsing xml: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.Text = strings.TrimSpace(top.Text)
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("parsing xml: empty document")
	}
	return root, nil
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Find returns the first direct child with the given tag, or nil.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// FindAll returns all direct children with the given tag in document order.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// HasText reports whether the subtree rooted at n contains any
// non-empty character data.
func (n *Node) HasText() bool {
	if n.Text != "" {
		return true
	}
	for _, c := range n.Children {
		if c.HasText() {
			return true
		}
	}
	return false
}
