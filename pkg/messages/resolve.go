package messages

import (
	"fmt"
	"strings"
)

// JoinKey prepends a namespace to a key. Either part may be empty.
func JoinKey(namespace, key, delim string) string {
	if delim == "" {
		delim = DefaultDelimiter
	}
	switch {
	case namespace == "":
		return key
	case key == "":
		return namespace
	default:
		return namespace + delim + key
	}
}

// Resolve walks root along the delimited key and returns the node found
// there, leaf or branch. An empty key resolves to root itself.
func Resolve(root *Node, key, delim string) (*Node, error) {
	if root == nil {
		return nil, fmt.Errorf("%w: %q (no messages)", ErrMissingMessage, key)
	}
	if key == "" {
		return root, nil
	}
	if delim == "" {
		delim = DefaultDelimiter
	}

	current := root
	for seg := range strings.SplitSeq(key, delim) {
		next, ok := current.Child(seg)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingMessage, key)
		}
		current = next
	}
	return current, nil
}

// ResolveMessage is Resolve restricted to leaves.
func ResolveMessage(root *Node, key, delim string) (string, error) {
	n, err := Resolve(root, key, delim)
	if err != nil {
		return "", err
	}
	if !n.IsLeaf() {
		return "", fmt.Errorf("%w: %q", ErrNotMessage, key)
	}
	return n.Message(), nil
}
