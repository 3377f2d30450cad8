package catalog

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Node is a read-only view over a decoded JSON value. Lookups on a missing
// key or on the wrong kind of value return an empty Node instead of failing,
// so mapping code can chain Get calls and pick a default at the leaf.
type Node struct {
	v any
}

// ParseNode decodes raw JSON into a Node.
func ParseNode(data []byte) (Node, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return Node{}, fmt.Errorf("decoding JSON: %w", err)
	}
	return Node{v: v}, nil
}

// NewNode wraps an already decoded value (maps, slices, float64, string, bool).
func NewNode(v any) Node {
	return Node{v: v}
}

// Raw returns the underlying decoded value.
func (n Node) Raw() any {
	return n.v
}

// Exists reports whether the node holds a non-null value.
func (n Node) Exists() bool {
	return n.v != nil
}

// Get walks object keys. Numeric path elements index into arrays.
func (n Node) Get(path ...string) Node {
	cur := n.v
	for _, key := range path {
		switch t := cur.(type) {
		case map[string]any:
			cur = t[key]
		case []any:
			i, err := strconv.Atoi(key)
			if err != nil || i < 0 || i >= len(t) {
				return Node{}
			}
			cur = t[i]
		default:
			return Node{}
		}
	}
	return Node{v: cur}
}

// IsEmpty reports whether the node is anything other than a non-empty object
// or array. Nested entities are only built from non-empty nodes.
func (n Node) IsEmpty() bool {
	switch t := n.v.(type) {
	case map[string]any:
		return len(t) == 0
	case []any:
		return len(t) == 0
	default:
		return true
	}
}

// String returns the value if the node is a JSON string.
func (n Node) String() (string, bool) {
	s, ok := n.v.(string)
	return s, ok
}

// StringValue coerces scalars to a string, returning "" for anything else.
func (n Node) StringValue() string {
	switch t := n.v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// Int returns the value if the node is a JSON number.
func (n Node) Int() (int, bool) {
	f, ok := n.v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// IntValue coerces numbers, numeric strings and booleans to an int,
// returning 0 for anything else.
func (n Node) IntValue() int {
	switch t := n.v.(type) {
	case float64:
		i, _ := n.Int()
		return i
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return NewNode(f).IntValue()
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// Float returns the value if the node is a JSON number.
func (n Node) Float() (float64, bool) {
	f, ok := n.v.(float64)
	return f, ok
}

// BoolValue coerces booleans, numbers and common truthy strings to a bool,
// returning false for anything else.
func (n Node) BoolValue() bool {
	switch t := n.v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "t", "y", "yes", "1":
			return true
		}
		return false
	default:
		return false
	}
}

// Array returns the elements of a JSON array, or nil for any other value.
func (n Node) Array() []Node {
	arr, ok := n.v.([]any)
	if !ok {
		return nil
	}
	nodes := make([]Node, 0, len(arr))
	for _, v := range arr {
		nodes = append(nodes, Node{v: v})
	}
	return nodes
}

// StringArray maps every array element through StringValue.
// A missing or non-array node yields an empty, non-nil slice.
func (n Node) StringArray() []string {
	elems := n.Array()
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		out = append(out, e.StringValue())
	}
	return out
}

// URL returns the string value when it parses as an absolute URL.
func (n Node) URL() (string, bool) {
	s, ok := n.String()
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", false
	}
	return u.String(), true
}
