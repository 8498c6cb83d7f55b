package xmltree

import "encoding/json"

// Kind discriminates the payload of a decoded Value.
type Kind int

const (
	// KindScalar is the text of a leaf element.
	KindScalar Kind = iota

	// KindList is an ordered list of values for a tag repeated among
	// siblings.
	KindList

	// KindObject is a mapping of child tags to their decoded values.
	KindObject
)

// Value is the result of decoding an element subtree. Exactly one of
// Text, Items, or Fields is meaningful, selected by Kind. A tag that
// repeats two or more times among siblings decodes to a KindList in
// document order; a tag appearing once decodes to its scalar or object
// value directly, so callers must handle either shape under one key.
type Value struct {
	Kind   Kind
	Text   string
	Items  []Value
	Fields map[string]Value
}

// Decode converts the subtree rooted at n into a Value. A leaf element
// becomes a Scalar carrying its text; an element with children becomes
// an Object merging each child's decode, with repeated child tags
// promoted to Lists.
func Decode(n *Node) Value {
	if len(n.Children) == 0 {
		return Value{Kind: KindScalar, Text: n.Text}
	}
	fields := make(map[string]Value, len(n.Children))
	for _, c := range n.Children {
		v := Decode(c)
		existing, ok := fields[c.Tag]
		if !ok {
			fields[c.Tag] = v
			continue
		}
		if existing.Kind != KindList {
			existing = Value{Kind: KindList, Items: []Value{existing}}
		}
		existing.Items = append(existing.Items, v)
		fields[c.Tag] = existing
	}
	return Value{Kind: KindObject, Fields: fields}
}

// DecodeTree decodes n and wraps the result in a one-entry mapping
// keyed by n's own tag.
func DecodeTree(n *Node) Value {
	return Value{Kind: KindObject, Fields: map[string]Value{n.Tag: Decode(n)}}
}

// MarshalJSON renders the value as the natural JSON for its kind:
// string, array, or object.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindList:
		return json.Marshal(v.Items)
	case KindObject:
		return json.Marshal(v.Fields)
	default:
		return json.Marshal(v.Text)
	}
}
