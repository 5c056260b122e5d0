// Package activitystreams normalizes the loosely shaped JSON-LD objects a
// PixelTube instance federates (actors, videos, collections) into fixed shapes.
//
// Fields the vocabulary allows to be either a scalar or an array, and either a
// bare IRI string or an embedded object, are decoded into Nodes at the JSON
// boundary. Nothing downstream ever sees the raw polymorphic value.
package activitystreams

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// ToArray wraps scalars into a one-element slice, maps nil to an empty slice
// and returns slices unchanged. ToArray(ToArray(x)) equals ToArray(x).
func ToArray(v any) []any {
	switch x := v.(type) {
	case nil:
		return []any{}
	case []any:
		return x
	default:
		return []any{v}
	}
}

// Node is the single element shape every polymorphic field is normalized to.
// A bare string element sets only Value.
type Node struct {
	Value     string
	ID        string
	Type      string
	Href      string
	URL       string
	MediaType string
	Name      string
	Width     int
	Height    int
}

// Link is the address of an image or media element: the string itself, else
// its url, else its href.
func (n Node) Link() string {
	switch {
	case n.Value != "":
		return n.Value
	case n.URL != "":
		return n.URL
	default:
		return n.Href
	}
}

// Ref is the IRI of a referenced object: the string itself, else its id,
// else its href.
func (n Node) Ref() string {
	switch {
	case n.Value != "":
		return n.Value
	case n.ID != "":
		return n.ID
	default:
		return n.Href
	}
}

// NodeOf converts one decoded JSON element. Numbers, booleans and nulls are not nodes.
func NodeOf(v any) (Node, bool) {
	switch x := v.(type) {
	case string:
		if x == "" {
			return Node{}, false
		}
		return Node{Value: x}, true
	case map[string]any:
		return Node{
			ID:        stringField(x, "id"),
			Type:      stringField(x, "type"),
			Href:      stringField(x, "href"),
			URL:       urlField(x),
			MediaType: stringField(x, "mediaType"),
			Name:      stringField(x, "name"),
			Width:     intField(x, "width"),
			Height:    intField(x, "height"),
		}, true
	default:
		return Node{}, false
	}
}

// Nodes is a normalized array-or-scalar field.
type Nodes []Node

// NodesOf normalizes any decoded JSON value.
func NodesOf(v any) Nodes {
	items := ToArray(v)
	nodes := make(Nodes, 0, len(items))
	for _, item := range items {
		if n, ok := NodeOf(item); ok {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// UnmarshalJSON accepts null, a string, an object, or an array of those.
func (ns *Nodes) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*ns = NodesOf(raw)
	return nil
}

// First returns the first node, if any.
func (ns Nodes) First() (Node, bool) {
	if len(ns) == 0 {
		return Node{}, false
	}
	return ns[0], true
}

// IRI is a reference to another object that may arrive as a string, an
// embedded object or a one-element array. It holds the referenced IRI only.
type IRI string

// UnmarshalJSON keeps the Ref of the first element.
func (i *IRI) UnmarshalJSON(b []byte) error {
	var ns Nodes
	if err := ns.UnmarshalJSON(b); err != nil {
		return err
	}
	*i = ""
	if n, ok := ns.First(); ok {
		*i = IRI(n.Ref())
	}
	return nil
}

// Count is a non-negative total that may be encoded as a number or numeric string.
type Count int64

// UnmarshalJSON maps null, garbage and negatives to zero instead of failing.
func (c *Count) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*c = 0
	switch x := raw.(type) {
	case float64:
		switch {
		case x >= math.MaxInt64:
			*c = math.MaxInt64
		case x > 0:
			*c = Count(x)
		}
	case string:
		// Out of range values come back saturated alongside ErrRange.
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if (err == nil || errors.Is(err, strconv.ErrRange)) && n > 0 {
			*c = Count(n)
		}
	}
	return nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// urlField reads "url", which is itself a string, a Link or an array of them.
func urlField(m map[string]any) string {
	if n, ok := NodesOf(m["url"]).First(); ok {
		return n.Link()
	}
	return ""
}

func intField(m map[string]any, key string) int {
	switch x := m[key].(type) {
	case float64:
		if x > 0 {
			return int(x)
		}
	case string:
		if n, err := strconv.Atoi(x); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
