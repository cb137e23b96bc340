package messages

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultDelimiter separates the segments of a message key.
const DefaultDelimiter = "."

// Node is one level of a message tree. A node is either a leaf holding a
// message string or a branch holding named children; never both.
// Nodes are immutable once built and safe for concurrent reads.
type Node struct {
	children map[string]*Node
	message  string
	leaf     bool
}

// Leaf returns a node holding a single message.
func Leaf(message string) *Node {
	return &Node{message: message, leaf: true}
}

// Branch returns a node holding the given children.
// The map is copied; nil children are dropped.
func Branch(children map[string]*Node) *Node {
	n := &Node{children: make(map[string]*Node, len(children))}
	for k, v := range children {
		if v != nil {
			n.children[k] = v
		}
	}
	return n
}

// IsLeaf reports whether the node holds a message.
func (n *Node) IsLeaf() bool {
	return n != nil && n.leaf
}

// Message returns the leaf message, or an empty string for branches.
func (n *Node) Message() string {
	if n == nil {
		return ""
	}
	return n.message
}

// Child returns the named child of a branch.
func (n *Node) Child(key string) (*Node, bool) {
	if n == nil || n.leaf {
		return nil, false
	}
	c, ok := n.children[key]
	return c, ok
}

// Keys returns the sorted child keys of a branch.
func (n *Node) Keys() []string {
	if n == nil || n.leaf {
		return nil
	}
	return slices.Sorted(maps.Keys(n.children))
}

// Len returns the number of children of a branch.
func (n *Node) Len() int {
	if n == nil || n.leaf {
		return 0
	}
	return len(n.children)
}

// Value converts the node back into plain Go values: a string for leaves,
// map[string]any for branches.
func (n *Node) Value() any {
	if n == nil {
		return nil
	}
	if n.leaf {
		return n.message
	}
	out := make(map[string]any, len(n.children))
	for k, c := range n.children {
		out[k] = c.Value()
	}
	return out
}

// Walk calls fn for every leaf under n, in key order, with the full key
// joined by delim. Walking stops at the first error.
func (n *Node) Walk(delim string, fn func(key, message string) error) error {
	return n.walk(nil, delim, fn)
}

func (n *Node) walk(path []string, delim string, fn func(key, message string) error) error {
	if n == nil {
		return nil
	}
	if n.leaf {
		return fn(strings.Join(path, delim), n.message)
	}
	for _, k := range n.Keys() {
		if err := n.children[k].walk(append(path, k), delim, fn); err != nil {
			return err
		}
	}
	return nil
}

// FromMap builds a tree from decoded JSON/YAML data.
// Strings become leaves, maps become branches and other scalars are
// formatted with fmt.Sprint.
func FromMap(data map[string]any) (*Node, error) {
	children := make(map[string]*Node, len(data))
	for k, v := range data {
		child, err := fromValue(v)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", k, err)
		}
		children[k] = child
	}
	return Branch(children), nil
}

func fromValue(v any) (*Node, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("%w: null value", ErrInvalidTree)
	case string:
		return Leaf(val), nil
	case *Node:
		return val, nil
	case map[string]any:
		return FromMap(val)
	case map[string]string:
		children := make(map[string]*Node, len(val))
		for k, s := range val {
			children[k] = Leaf(s)
		}
		return Branch(children), nil
	case map[any]any:
		converted := make(map[string]any, len(val))
		for k, item := range val {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: non-string key %v", ErrInvalidTree, k)
			}
			converted[ks] = item
		}
		return FromMap(converted)
	case []any:
		return nil, fmt.Errorf("%w: arrays are not supported", ErrInvalidTree)
	default:
		return Leaf(fmt.Sprint(val)), nil
	}
}

// FromFlat builds a tree from flat keys such as "auth.login.title".
// A key that is both a message and a prefix of another key is rejected.
func FromFlat(flat map[string]string, delim string) (*Node, error) {
	if delim == "" {
		delim = DefaultDelimiter
	}

	root := map[string]any{}
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		segments := strings.Split(key, delim)
		level := root
		for i, seg := range segments {
			if seg == "" {
				return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidKey, key)
			}
			if i == len(segments)-1 {
				if _, exists := level[seg]; exists {
					return nil, fmt.Errorf("%w: %q", ErrConflictingKeys, key)
				}
				level[seg] = flat[key]
				break
			}
			next, exists := level[seg]
			if !exists {
				m := map[string]any{}
				level[seg] = m
				level = m
				continue
			}
			m, ok := next.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrConflictingKeys, key)
			}
			level = m
		}
	}
	return FromMap(root)
}

// Merge returns a new tree with src laid over dst. Leaves in src replace
// whatever dst holds at the same path; branches merge recursively.
func Merge(dst, src *Node) *Node {
	switch {
	case src == nil:
		return dst
	case dst == nil, src.leaf, dst.leaf:
		return src
	}
	children := maps.Clone(dst.children)
	for k, c := range src.children {
		children[k] = Merge(children[k], c)
	}
	return Branch(children)
}

// Validate reports keys that contain the delimiter, since such keys can
// never be addressed by a dotted path.
func Validate(root *Node, delim string) error {
	if delim == "" {
		delim = DefaultDelimiter
	}
	return validate(root, nil, delim)
}

func validate(n *Node, path []string, delim string) error {
	if n == nil || n.leaf {
		return nil
	}
	for _, k := range n.Keys() {
		if k == "" || strings.Contains(k, delim) {
			return fmt.Errorf("%w: %q at %q must not be empty or contain %q",
				ErrInvalidKey, k, strings.Join(path, delim), delim)
		}
		if err := validate(n.children[k], append(path, k), delim); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes the tree as nested JSON objects.
func (n *Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value())
}

// UnmarshalJSON decodes nested JSON objects into a tree. A bare JSON
// string decodes into a leaf.
func (n *Node) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	decoded, err := fromValue(raw)
	if err != nil {
		return err
	}
	*n = *decoded
	return nil
}
