package icu

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// MissingValuePolicy decides what happens when a placeholder has no value.
type MissingValuePolicy int

const (
	// MissingValueError fails formatting with ErrMissingValue.
	MissingValueError MissingValuePolicy = iota
	// MissingValueRaw renders the raw placeholder token, e.g. "{name}".
	MissingValueRaw
)

// Options controls rendering. The zero value formats with en-US rules,
// no named formats and strict missing-value handling.
type Options struct {
	Locale        *Locale
	Formats       Formats
	TimeZone      *time.Location
	MissingValues MissingValuePolicy
}

var defaultLocale = sync.OnceValue(func() *Locale {
	l, _ := NewLocale(DefaultLocale)
	return l
})

type renderMode int

const (
	modeText renderMode = iota
	modeMarkup
	modeRich
)

// Format renders the message as plain text. MarkupTag results are inserted
// as returned; RichTag nodes are converted to their string form.
func (m *Message) Format(values Values, opts Options) (string, error) {
	parts, err := m.render(modeText, values, opts)
	if err != nil {
		return "", err
	}
	return parts.String(), nil
}

// FormatMarkup renders the message for markup embedding. Every tag must be
// bound to a MarkupTag.
func (m *Message) FormatMarkup(values Values, opts Options) (string, error) {
	parts, err := m.render(modeMarkup, values, opts)
	if err != nil {
		return "", err
	}
	return parts.String(), nil
}

// FormatRich renders the message into text runs and nodes. RichTag results
// and Embed values are kept as nodes.
func (m *Message) FormatRich(values Values, opts Options) (Parts, error) {
	return m.render(modeRich, values, opts)
}

func (m *Message) render(mode renderMode, values Values, opts Options) (Parts, error) {
	r := &renderer{mode: mode, values: values, opts: opts, locale: opts.Locale}
	if r.locale == nil {
		r.locale = defaultLocale()
	}
	return r.render(nil, m.elements, nil)
}

type renderer struct {
	mode   renderMode
	values Values
	opts   Options
	locale *Locale
}

// render appends the rendering of elems to out. pound is the number that
// "#" stands for, nil outside plural branches.
func (r *renderer) render(out Parts, elems []Element, pound *float64) (Parts, error) {
	var err error
	for _, el := range elems {
		switch e := el.(type) {
		case *Literal:
			out = out.appendText(e.Value)

		case *Pound:
			if pound == nil {
				out = out.appendText("#")
				continue
			}
			out = out.appendText(r.locale.FormatNumber(*pound))

		case *Argument:
			out, err = r.renderArgument(out, e)

		case *NumberArg:
			out, err = r.renderFormatted(out, e.Name, func(v any) (string, error) {
				n, ok := toFloat(v)
				if !ok {
					return "", fmt.Errorf("%w: argument %q is %T, not a number", ErrFormatting, e.Name, v)
				}
				return r.locale.formatNumberStyle(n, e.Style, r.opts.Formats)
			})

		case *DateArg:
			out, err = r.renderFormatted(out, e.Name, func(v any) (string, error) {
				return r.formatDate(e.Name, v, e.Style, false)
			})

		case *TimeArg:
			out, err = r.renderFormatted(out, e.Name, func(v any) (string, error) {
				return r.formatDate(e.Name, v, e.Style, true)
			})

		case *PluralArg:
			out, err = r.renderPlural(out, e)

		case *SelectArg:
			out, err = r.renderSelect(out, e, pound)

		case *Tag:
			out, err = r.renderTag(out, e, pound)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *renderer) lookup(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

func (r *renderer) missing(out Parts, name, token string) (Parts, error) {
	if r.opts.MissingValues == MissingValueRaw {
		return out.appendText(token), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrMissingValue, name)
}

func (r *renderer) renderArgument(out Parts, e *Argument) (Parts, error) {
	v, ok := r.lookup(e.Name)
	if !ok {
		return r.missing(out, e.Name, "{"+e.Name+"}")
	}

	switch x := v.(type) {
	case Embed:
		if r.mode == modeRich {
			return out.appendNode(x.Node), nil
		}
		return out.appendText(stringify(x.Node)), nil
	case string:
		return out.appendText(x), nil
	case bool:
		return out.appendText(strconv.FormatBool(x)), nil
	case RichTag, MarkupTag, func(Parts) any, func(string) string:
		return nil, fmt.Errorf("%w: argument %q is a tag function", ErrFormatting, e.Name)
	}

	if t, ok := toTime(v); ok {
		if r.opts.TimeZone != nil {
			t = t.In(r.opts.TimeZone)
		}
		return out.appendText(r.locale.FormatDateTime(t, StyleMedium, StyleShort)), nil
	}
	if _, ok := toFloat(v); ok {
		return out.appendText(r.locale.FormatNumber(v)), nil
	}
	return out.appendText(stringify(v)), nil
}

func (r *renderer) renderFormatted(out Parts, name string, format func(any) (string, error)) (Parts, error) {
	v, ok := r.lookup(name)
	if !ok {
		return r.missing(out, name, "{"+name+"}")
	}
	s, err := format(v)
	if err != nil {
		return nil, err
	}
	return out.appendText(s), nil
}

func (r *renderer) formatDate(name string, v any, style string, isTime bool) (string, error) {
	t, ok := toTime(v)
	if !ok {
		return "", fmt.Errorf("%w: argument %q is %T, not a time.Time", ErrFormatting, name, v)
	}
	return r.locale.formatDateStyle(t, style, isTime, r.opts.Formats, r.opts.TimeZone)
}

func (r *renderer) renderPlural(out Parts, e *PluralArg) (Parts, error) {
	v, ok := r.lookup(e.Name)
	if !ok {
		return r.missing(out, e.Name, "{"+e.Name+"}")
	}
	n, ok := toFloat(v)
	if !ok {
		return nil, fmt.Errorf("%w: plural argument %q is %T, not a number", ErrFormatting, e.Name, v)
	}

	value := r.selectPlural(e, n)
	adjusted := n - e.Offset
	return r.render(out, value, &adjusted)
}

// selectPlural prefers an exact "=N" match on the raw value, then the plural
// category of the value minus offset, then "other".
func (r *renderer) selectPlural(e *PluralArg, n float64) []Element {
	for _, b := range e.Branches {
		if b.IsExact && b.Exact == n {
			return b.Value
		}
	}
	category := r.locale.PluralCategory(n-e.Offset, e.Ordinal)
	if value, ok := findBranch(e.Branches, category); ok {
		return value
	}
	value, _ := findBranch(e.Branches, Other)
	return value
}

func (r *renderer) renderSelect(out Parts, e *SelectArg, pound *float64) (Parts, error) {
	v, ok := r.lookup(e.Name)
	if !ok {
		return r.missing(out, e.Name, "{"+e.Name+"}")
	}
	value, ok := findBranch(e.Branches, stringify(v))
	if !ok {
		value, _ = findBranch(e.Branches, Other)
	}
	return r.render(out, value, pound)
}

func (r *renderer) renderTag(out Parts, e *Tag, pound *float64) (Parts, error) {
	fn, ok := r.lookup(e.Name)
	if !ok && r.opts.MissingValues != MissingValueRaw {
		return nil, fmt.Errorf("%w: tag %q", ErrMissingValue, e.Name)
	}

	children, err := r.render(nil, e.Children, pound)
	if err != nil {
		return nil, err
	}

	if !ok {
		if e.SelfClosing {
			return out.appendText("<" + e.Name + "/>"), nil
		}
		out = out.appendText("<" + e.Name + ">")
		out = out.appendNode(children)
		return out.appendText("</" + e.Name + ">"), nil
	}

	var rich func(Parts) any
	switch f := fn.(type) {
	case MarkupTag:
		return out.appendText(f(children.String())), nil
	case func(string) string:
		return out.appendText(f(children.String())), nil
	case RichTag:
		rich = f
	case func(Parts) any:
		rich = f
	default:
		return nil, fmt.Errorf("%w: tag %q is bound to %T, not a tag function", ErrFormatting, e.Name, fn)
	}

	if r.mode == modeMarkup {
		return nil, fmt.Errorf("%w: tag %q must be a MarkupTag in markup mode", ErrFormatting, e.Name)
	}
	node := rich(children)
	if r.mode == modeRich {
		return out.appendNode(node), nil
	}
	return out.appendText(stringify(node)), nil
}
