package icu

import (
	"slices"
)

// Element is one node of a parsed message.
type Element interface {
	element()
}

// Literal is plain text.
type Literal struct {
	Value string
}

// Argument is a simple placeholder: {name}.
type Argument struct {
	Name string
}

// NumberArg is {name, number[, style]}.
type NumberArg struct {
	Name  string
	Style string
}

// DateArg is {name, date[, style]}.
type DateArg struct {
	Name  string
	Style string
}

// TimeArg is {name, time[, style]}.
type TimeArg struct {
	Name  string
	Style string
}

// Branch is one option of a plural or select argument.
type Branch struct {
	Selector string
	Value    []Element
	Exact    float64 // valid when IsExact
	IsExact  bool    // selector has the "=N" form
}

// PluralArg is {name, plural, ...} or, with Ordinal set, {name, selectordinal, ...}.
type PluralArg struct {
	Name     string
	Branches []Branch
	Offset   float64
	Ordinal  bool
}

// SelectArg is {name, select, ...}.
type SelectArg struct {
	Name     string
	Branches []Branch
}

// Pound is "#" inside a plural branch.
type Pound struct{}

// Tag is <name>children</name> or <name/>.
type Tag struct {
	Name        string
	Children    []Element
	SelfClosing bool
}

func (*Literal) element()   {}
func (*Argument) element()  {}
func (*NumberArg) element() {}
func (*DateArg) element()   {}
func (*TimeArg) element()   {}
func (*PluralArg) element() {}
func (*SelectArg) element() {}
func (*Pound) element()     {}
func (*Tag) element()       {}

// Message is a parsed message descriptor. It is immutable and safe to
// share between goroutines.
type Message struct {
	source   string
	elements []Element
}

// Source returns the raw message the descriptor was parsed from.
func (m *Message) Source() string {
	return m.source
}

// Elements returns the top-level elements.
func (m *Message) Elements() []Element {
	return m.elements
}

// IsLiteral reports whether the message contains no placeholders or tags.
func (m *Message) IsLiteral() bool {
	for _, el := range m.elements {
		if _, ok := el.(*Literal); !ok {
			return false
		}
	}
	return true
}

// Arguments returns the sorted names of every placeholder and tag the
// message references, including those nested in branches.
func (m *Message) Arguments() []string {
	seen := map[string]struct{}{}
	collectArguments(m.elements, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func collectArguments(elems []Element, seen map[string]struct{}) {
	for _, el := range elems {
		switch e := el.(type) {
		case *Argument:
			seen[e.Name] = struct{}{}
		case *NumberArg:
			seen[e.Name] = struct{}{}
		case *DateArg:
			seen[e.Name] = struct{}{}
		case *TimeArg:
			seen[e.Name] = struct{}{}
		case *PluralArg:
			seen[e.Name] = struct{}{}
			for _, b := range e.Branches {
				collectArguments(b.Value, seen)
			}
		case *SelectArg:
			seen[e.Name] = struct{}{}
			for _, b := range e.Branches {
				collectArguments(b.Value, seen)
			}
		case *Tag:
			seen[e.Name] = struct{}{}
			collectArguments(e.Children, seen)
		}
	}
}

func findBranch(branches []Branch, selector string) ([]Element, bool) {
	for _, b := range branches {
		if b.Selector == selector {
			return b.Value, true
		}
	}
	return nil, false
}
