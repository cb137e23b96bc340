package icu

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse parses an ICU MessageFormat string into a message descriptor.
// Malformed input returns a *SyntaxError.
func Parse(src string) (*Message, error) {
	p := &parser{src: src}
	elems, err := p.parseMessage(false, false, "")
	if err != nil {
		return nil, err
	}
	return &Message{source: src, elements: elems}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Message {
	m, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return m
}

type parser struct {
	src string
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Source: p.src, Offset: p.pos, Reason: fmt.Sprintf(format, args...)}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(offset int) byte {
	if p.pos+offset >= len(p.src) {
		return 0
	}
	return p.src[p.pos+offset]
}

// parseMessage reads elements until the end of input, an unmatched '}' when
// inBranch is set, or the closing tag named closeTag (which is consumed).
func (p *parser) parseMessage(inPlural, inBranch bool, closeTag string) ([]Element, error) {
	var (
		elems []Element
		text  strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			elems = append(elems, &Literal{Value: text.String()})
			text.Reset()
		}
	}

	for !p.eof() {
		c := p.peek()
		switch {
		case c == '\'':
			p.readQuoted(&text, inPlural)

		case c == '{':
			flush()
			el, err := p.parseArgument(inPlural)
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)

		case c == '}':
			if !inBranch {
				return nil, p.errorf("unexpected '}'")
			}
			flush()
			return elems, nil

		case c == '#' && inPlural:
			flush()
			elems = append(elems, &Pound{})
			p.pos++

		case c == '<' && p.peekAt(1) == '/':
			if closeTag == "" {
				return nil, p.errorf("unexpected closing tag")
			}
			p.pos += 2
			name := p.readTagName()
			if name != closeTag {
				return nil, p.errorf("closing tag </%s> does not match <%s>", name, closeTag)
			}
			if p.peek() != '>' {
				return nil, p.errorf("expected '>' after closing tag name")
			}
			p.pos++
			flush()
			return elems, nil

		case c == '<' && isTagStart(p.peekAt(1)):
			flush()
			el, err := p.parseTag(inPlural)
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)

		default:
			text.WriteByte(c)
			p.pos++
		}
	}

	if closeTag != "" {
		return nil, p.errorf("unclosed tag <%s>", closeTag)
	}
	flush()
	return elems, nil
}

// readQuoted handles ICU apostrophe rules. A doubled apostrophe is literal.
// An apostrophe before a syntax character starts a quoted run that ends at
// the next single apostrophe.
func (p *parser) readQuoted(text *strings.Builder, inPlural bool) {
	next := p.peekAt(1)
	if next == '\'' {
		text.WriteByte('\'')
		p.pos += 2
		return
	}
	if !isQuotable(next, inPlural) {
		text.WriteByte('\'')
		p.pos++
		return
	}

	p.pos++
	for !p.eof() {
		c := p.peek()
		if c == '\'' {
			if p.peekAt(1) == '\'' {
				text.WriteByte('\'')
				p.pos += 2
				continue
			}
			p.pos++
			return
		}
		text.WriteByte(c)
		p.pos++
	}
}

func isQuotable(c byte, inPlural bool) bool {
	switch c {
	case '{', '}', '<', '>', '|':
		return true
	case '#':
		return inPlural
	}
	return false
}

func (p *parser) parseTag(inPlural bool) (Element, error) {
	start := p.pos
	p.pos++ // '<'
	name := p.readTagName()
	p.skipSpace()

	if strings.HasPrefix(p.src[p.pos:], "/>") {
		p.pos += 2
		return &Tag{Name: name, SelfClosing: true}, nil
	}
	if p.peek() != '>' {
		p.pos = start
		return nil, p.errorf("malformed tag <%s", name)
	}
	p.pos++

	children, err := p.parseMessage(inPlural, false, name)
	if err != nil {
		return nil, err
	}
	return &Tag{Name: name, Children: children}, nil
}

func (p *parser) readTagName() string {
	start := p.pos
	for !p.eof() && isTagChar(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isTagStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isTagChar(c byte) bool {
	return isTagStart(c) || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '.'
}

func (p *parser) parseArgument(inPlural bool) (Element, error) {
	p.pos++ // '{'
	p.skipSpace()

	name := p.readIdent()
	if name == "" {
		return nil, p.errorf("expected argument name")
	}
	p.skipSpace()

	switch p.peek() {
	case '}':
		p.pos++
		return &Argument{Name: name}, nil
	case ',':
		p.pos++
	case 0:
		return nil, p.errorf("unclosed argument {%s", name)
	default:
		return nil, p.errorf("unexpected %q in argument %q", p.peek(), name)
	}

	p.skipSpace()
	kind := p.readIdent()
	p.skipSpace()

	switch kind {
	case "number", "date", "time":
		style, err := p.readStyle(name)
		if err != nil {
			return nil, err
		}
		switch kind {
		case "number":
			return &NumberArg{Name: name, Style: style}, nil
		case "date":
			return &DateArg{Name: name, Style: style}, nil
		default:
			return &TimeArg{Name: name, Style: style}, nil
		}

	case "plural", "selectordinal":
		if err := p.expectComma(name); err != nil {
			return nil, err
		}
		arg := &PluralArg{Name: name, Ordinal: kind == "selectordinal"}
		branches, err := p.parseBranches(true, &arg.Offset)
		if err != nil {
			return nil, err
		}
		arg.Branches = branches
		return arg, nil

	case "select":
		if err := p.expectComma(name); err != nil {
			return nil, err
		}
		branches, err := p.parseBranches(inPlural, nil)
		if err != nil {
			return nil, err
		}
		return &SelectArg{Name: name, Branches: branches}, nil

	case "":
		return nil, p.errorf("expected argument type for %q", name)
	default:
		return nil, p.errorf("unknown argument type %q", kind)
	}
}

func (p *parser) expectComma(name string) error {
	if p.peek() != ',' {
		return p.errorf("expected ',' after type of %q", name)
	}
	p.pos++
	return nil
}

// readStyle reads an optional ", style" and the closing brace.
func (p *parser) readStyle(name string) (string, error) {
	switch p.peek() {
	case '}':
		p.pos++
		return "", nil
	case ',':
		p.pos++
	default:
		return "", p.errorf("unclosed argument {%s", name)
	}

	end := strings.IndexByte(p.src[p.pos:], '}')
	if end < 0 {
		p.pos = len(p.src)
		return "", p.errorf("unclosed argument {%s", name)
	}
	style := strings.TrimSpace(p.src[p.pos : p.pos+end])
	p.pos += end + 1
	if style == "" {
		return "", p.errorf("empty style for %q", name)
	}
	return style, nil
}

// parseBranches reads "selector {message}" pairs up to the closing brace of
// the argument. offset is non-nil for plural arguments.
func (p *parser) parseBranches(inPlural bool, offset *float64) ([]Branch, error) {
	var branches []Branch
	seen := map[string]bool{}

	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unclosed argument")
		}
		if p.peek() == '}' {
			p.pos++
			break
		}

		if offset != nil && len(branches) == 0 && strings.HasPrefix(p.src[p.pos:], "offset:") {
			p.pos += len("offset:")
			p.skipSpace()
			n, err := p.readNumber()
			if err != nil {
				return nil, err
			}
			*offset = n
			continue
		}

		b, err := p.parseBranch(inPlural, offset != nil)
		if err != nil {
			return nil, err
		}
		if seen[b.Selector] {
			return nil, p.errorf("duplicate selector %q", b.Selector)
		}
		seen[b.Selector] = true
		branches = append(branches, b)
	}

	if !seen["other"] {
		return nil, p.errorf("missing 'other' branch")
	}
	return branches, nil
}

func (p *parser) parseBranch(inPlural, plural bool) (Branch, error) {
	var b Branch
	if plural && p.peek() == '=' {
		p.pos++
		start := p.pos
		n, err := p.readNumber()
		if err != nil {
			return b, err
		}
		b.Selector = "=" + p.src[start:p.pos]
		b.Exact = n
		b.IsExact = true
	} else {
		b.Selector = p.readIdent()
		if b.Selector == "" {
			return b, p.errorf("expected selector")
		}
	}

	p.skipSpace()
	if p.peek() != '{' {
		return b, p.errorf("expected '{' after selector %q", b.Selector)
	}
	p.pos++

	value, err := p.parseMessage(inPlural, true, "")
	if err != nil {
		return b, err
	}
	if p.peek() != '}' {
		return b, p.errorf("unclosed branch %q", b.Selector)
	}
	p.pos++
	b.Value = value
	return b, nil
}

func (p *parser) readNumber() (float64, error) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for !p.eof() && (p.peek() >= '0' && p.peek() <= '9' || p.peek() == '.') {
		p.pos++
	}
	raw := p.src[start:p.pos]
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		p.pos = start
		return 0, p.errorf("invalid number %q", raw)
	}
	return n, nil
}

func (p *parser) readIdent() string {
	start := p.pos
	for !p.eof() && !isIdentStop(p.peek()) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func isIdentStop(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', ',', '{', '}', '\'', '#', '<', '>':
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.peek() {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}
