// Package manifest parses composer manifests into an ordered JSON tree.
// Object keys keep their document order.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// MaxDepth is the deepest array/object nesting Parse accepts. The top-level
// object is depth 1.
const MaxDepth = 512

var (
	// ErrMalformed is returned when the manifest content is not valid JSON.
	ErrMalformed = errors.New("manifest is not valid JSON")
	// ErrNotObject is returned when the manifest top level is not a JSON object.
	ErrNotObject = errors.New("manifest top level is not an object")
)

// Kind identifies the JSON type held by a Node.
type Kind int

const (
	// KindNull is a JSON null.
	KindNull Kind = iota
	// KindBool is true or false.
	KindBool
	// KindNumber is a number, kept as its raw literal.
	KindNumber
	// KindString is a string.
	KindString
	// KindArray is an ordered list of nodes.
	KindArray
	// KindObject is a set of key/value entries in document order.
	KindObject
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Entry is a single key/value pair of an object node.
type Entry struct {
	Key   string
	Value *Node
}

// Node is one value of a parsed manifest.
type Node struct {
	Kind Kind

	text    string // string value or raw number literal
	boolean bool
	items   []*Node
	entries []Entry
	index   map[string]int
}

// Parse decodes data into a tree. The top level must be an object. Input
// that is not valid UTF-8 or nests deeper than MaxDepth is malformed.
func Parse(data []byte) (*Node, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: invalid UTF-8", ErrMalformed)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeValue(dec, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	// Anything after the top-level value makes the document invalid.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after top-level value", ErrMalformed)
	}

	if root.Kind != KindObject {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, root.Kind)
	}

	return root, nil
}

func decodeValue(dec *json.Decoder, depth int) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch v := tok.(type) {
	case json.Delim:
		if depth >= MaxDepth {
			return nil, fmt.Errorf("nesting exceeds depth %d", MaxDepth)
		}
		switch v {
		case '{':
			return decodeObject(dec, depth+1)
		case '[':
			return decodeArray(dec, depth+1)
		}
		return nil, fmt.Errorf("unexpected delimiter %q", rune(v))
	case string:
		return &Node{Kind: KindString, text: v}, nil
	case json.Number:
		return &Node{Kind: KindNumber, text: v.String()}, nil
	case bool:
		return &Node{Kind: KindBool, boolean: v}, nil
	case nil:
		return &Node{Kind: KindNull}, nil
	}

	return nil, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder, depth int) (*Node, error) {
	n := &Node{Kind: KindObject, index: make(map[string]int)}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is %v, not a string", tok)
		}

		child, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		n.set(key, child)
	}

	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return n, nil
}

func decodeArray(dec *json.Decoder, depth int) (*Node, error) {
	n := &Node{Kind: KindArray}

	for dec.More() {
		child, err := decodeValue(dec, depth)
		if err != nil {
			return nil, err
		}
		n.items = append(n.items, child)
	}

	// Closing bracket.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	return n, nil
}

// set stores value under key. A duplicate key replaces the earlier value but
// keeps its original position.
func (n *Node) set(key string, value *Node) {
	if i, ok := n.index[key]; ok {
		n.entries[i].Value = value
		return
	}
	n.index[key] = len(n.entries)
	n.entries = append(n.entries, Entry{Key: key, Value: value})
}

// Lookup follows keys through nested objects. It returns nil when any step is
// missing or is not an object. Lookup is safe on a nil receiver.
func (n *Node) Lookup(keys ...string) *Node {
	cur := n
	for _, key := range keys {
		if cur == nil || cur.Kind != KindObject {
			return nil
		}
		i, ok := cur.index[key]
		if !ok {
			return nil
		}
		cur = cur.entries[i].Value
	}
	return cur
}

// Has reports whether the key path exists, whatever its value.
func (n *Node) Has(keys ...string) bool {
	return n.Lookup(keys...) != nil
}

// String returns the string at the key path. The boolean is false when the
// path is missing or holds a non-string value.
func (n *Node) String(keys ...string) (string, bool) {
	v := n.Lookup(keys...)
	if v == nil || v.Kind != KindString {
		return "", false
	}
	return v.text, true
}

// Text returns the string value or raw number literal of a scalar node.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text
}

// Bool returns the value of a boolean node.
func (n *Node) Bool() bool {
	return n != nil && n.boolean
}

// IsObject reports whether n is an object node.
func (n *Node) IsObject() bool {
	return n != nil && n.Kind == KindObject
}

// IsArray reports whether n is an array node.
func (n *Node) IsArray() bool {
	return n != nil && n.Kind == KindArray
}

// Entries returns the key/value pairs of an object in document order, or nil
// for any other kind.
func (n *Node) Entries() []Entry {
	if !n.IsObject() {
		return nil
	}
	return n.entries
}

// Items returns the elements of an array, or nil for any other kind.
func (n *Node) Items() []*Node {
	if !n.IsArray() {
		return nil
	}
	return n.items
}

// Strings returns the string elements of an array, skipping anything else.
func (n *Node) Strings() []string {
	var out []string
	for _, item := range n.Items() {
		if item.Kind == KindString {
			out = append(out, item.text)
		}
	}
	return out
}

// ContainsString reports whether an array node holds the string s.
func (n *Node) ContainsString(s string) bool {
	for _, item := range n.Items() {
		if item.Kind == KindString && item.text == s {
			return true
		}
	}
	return false
}
