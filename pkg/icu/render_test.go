package icu_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/intl/pkg/icu"
)

func mustLocale(t *testing.T, name string) *icu.Locale {
	t.Helper()
	l, err := icu.NewLocale(name)
	require.NoError(t, err)
	return l
}

func format(t *testing.T, src string, values icu.Values, opts icu.Options) string {
	t.Helper()
	msg, err := icu.Parse(src)
	require.NoError(t, err)
	out, err := msg.Format(values, opts)
	require.NoError(t, err)
	return out
}

type node struct {
	tag      string
	children icu.Parts
}

func (n node) String() string {
	return "[" + n.tag + ":" + n.children.String() + "]"
}

func TestFormat_Greeting(t *testing.T) {
	t.Parallel()

	const src = "Hello {name}, you have {count, plural, one {# message} other {# messages}}"
	opts := icu.Options{Locale: mustLocale(t, "en")}

	assert.Equal(t, "Hello Ana, you have 1 message", format(t, src, icu.Values{"name": "Ana", "count": 1}, opts))
	assert.Equal(t, "Hello Ana, you have 5 messages", format(t, src, icu.Values{"name": "Ana", "count": 5}, opts))
	assert.Equal(t, "Hello Ana, you have 0 messages", format(t, src, icu.Values{"name": "Ana", "count": 0}, opts))
}

func TestFormat_LiteralIgnoresValues(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "Plain text", "1 < 2", "Issue #7", "Dots. And, commas!"} {
		msg, err := icu.Parse(src)
		require.NoError(t, err)
		for _, values := range []icu.Values{nil, {}, {"name": "Ana", "n": 3}} {
			out, err := msg.Format(values, icu.Options{})
			require.NoError(t, err)
			assert.Equal(t, src, out)
		}
	}
}

func TestFormat_Idempotent(t *testing.T) {
	t.Parallel()

	msg := icu.MustParse("{g, select, female {She} other {They}} bought {n, plural, one {# book} other {# books}} on {d, date, long}")
	values := icu.Values{"g": "female", "n": 3, "d": time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	opts := icu.Options{Locale: mustLocale(t, "en-US")}

	first, err := msg.Format(values, opts)
	require.NoError(t, err)
	second, err := msg.Format(values, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, "She bought 3 books on January 2, 2024", first)
}

func TestFormat_Plural(t *testing.T) {
	t.Parallel()

	t.Run("russian categories", func(t *testing.T) {
		t.Parallel()
		const src = "{n, plural, one {# файл} few {# файла} many {# файлов} other {# файла}}"
		opts := icu.Options{Locale: mustLocale(t, "ru")}

		tests := map[any]string{
			1:   "1 файл",
			3:   "3 файла",
			5:   "5 файлов",
			11:  "11 файлов",
			21:  "21 файл",
			22:  "22 файла",
			1.5: "1,5 файла",
		}
		for n, want := range tests {
			assert.Equal(t, want, format(t, src, icu.Values{"n": n}, opts), "n=%v", n)
		}
	})

	t.Run("missing category falls back to other", func(t *testing.T) {
		t.Parallel()
		opts := icu.Options{Locale: mustLocale(t, "ru")}
		assert.Equal(t, "2 things", format(t, "{n, plural, one {# thing} other {# things}}", icu.Values{"n": 2}, opts))
	})

	t.Run("exact match wins over category", func(t *testing.T) {
		t.Parallel()
		const src = "{n, plural, =0 {no messages} =1 {one message} one {# message} other {# messages}}"
		opts := icu.Options{Locale: mustLocale(t, "en")}
		assert.Equal(t, "no messages", format(t, src, icu.Values{"n": 0}, opts))
		assert.Equal(t, "one message", format(t, src, icu.Values{"n": 1}, opts))
		assert.Equal(t, "2 messages", format(t, src, icu.Values{"n": 2}, opts))
	})

	t.Run("offset", func(t *testing.T) {
		t.Parallel()
		const src = "{n, plural, offset:1 =0 {nobody} =1 {just {name}} one {{name} and # other} other {{name} and # others}}"
		opts := icu.Options{Locale: mustLocale(t, "en")}
		values := func(n int) icu.Values { return icu.Values{"n": n, "name": "Ana"} }

		assert.Equal(t, "nobody", format(t, src, values(0), opts))
		assert.Equal(t, "just Ana", format(t, src, values(1), opts))
		assert.Equal(t, "Ana and 1 other", format(t, src, values(2), opts))
		assert.Equal(t, "Ana and 4 others", format(t, src, values(5), opts))
	})

	t.Run("ordinal", func(t *testing.T) {
		t.Parallel()
		const src = "{n, selectordinal, one {#st} two {#nd} few {#rd} other {#th}}"
		opts := icu.Options{Locale: mustLocale(t, "en")}

		tests := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 112: "112th"}
		for n, want := range tests {
			assert.Equal(t, want, format(t, src, icu.Values{"n": n}, opts), "n=%d", n)
		}
	})

	t.Run("pound in nested select", func(t *testing.T) {
		t.Parallel()
		const src = "{n, plural, one {{kind, select, photo {# photo} other {# file}}} other {{kind, select, photo {# photos} other {# files}}}}"
		opts := icu.Options{Locale: mustLocale(t, "en")}
		assert.Equal(t, "1 photo", format(t, src, icu.Values{"n": 1, "kind": "photo"}, opts))
		assert.Equal(t, "1,200 files", format(t, src, icu.Values{"n": 1200, "kind": "doc"}, opts))
	})

	t.Run("quoted pound", func(t *testing.T) {
		t.Parallel()
		opts := icu.Options{Locale: mustLocale(t, "en")}
		assert.Equal(t, "# is 3", format(t, "{n, plural, other {'#' is #}}", icu.Values{"n": 3}, opts))
	})

	t.Run("unsigned and float values", func(t *testing.T) {
		t.Parallel()
		const src = "{n, plural, one {# item} other {# items}}"
		opts := icu.Options{Locale: mustLocale(t, "en")}
		assert.Equal(t, "1 item", format(t, src, icu.Values{"n": uint8(1)}, opts))
		assert.Equal(t, "1.5 items", format(t, src, icu.Values{"n": 1.5}, opts))
		assert.Equal(t, "1 item", format(t, src, icu.Values{"n": float32(1)}, opts))
	})

	t.Run("non numeric value", func(t *testing.T) {
		t.Parallel()
		msg := icu.MustParse("{n, plural, other {#}}")
		_, err := msg.Format(icu.Values{"n": "five"}, icu.Options{})
		require.ErrorIs(t, err, icu.ErrFormatting)
		assert.NotErrorIs(t, err, icu.ErrMissingValue)
	})
}

func TestFormat_Select(t *testing.T) {
	t.Parallel()

	const src = "{gender, select, male {He} female {She} other {They}} replied"
	for value, want := range map[any]string{
		"male":   "He replied",
		"female": "She replied",
		"robot":  "They replied",
		42:       "They replied",
	} {
		assert.Equal(t, want, format(t, src, icu.Values{"gender": value}, icu.Options{}))
	}

	assert.Equal(t, "yes", format(t, "{ok, select, true {yes} other {no}}", icu.Values{"ok": true}, icu.Options{}))
}

func TestFormat_SimpleArguments(t *testing.T) {
	t.Parallel()

	d := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	opts := icu.Options{Locale: mustLocale(t, "en-US")}

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "Ana", "Ana"},
		{"int", 1234, "1,234"},
		{"float", 1234.5, "1,234.5"},
		{"bool", true, "true"},
		{"time", d, "Jan 2, 2024, 3:04 PM"},
		{"stringer", node{tag: "x"}, "[x:]"},
		{"error", fmt.Errorf("boom"), "boom"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, "<"+tt.want+">", format(t, "<{v}>", icu.Values{"v": tt.value}, opts))
		})
	}

	t.Run("tag function as argument", func(t *testing.T) {
		t.Parallel()
		_, err := icu.MustParse("{v}").Format(icu.Values{"v": icu.MarkupTag(strings.ToUpper)}, opts)
		require.ErrorIs(t, err, icu.ErrFormatting)
	})
}

func TestFormat_Number(t *testing.T) {
	t.Parallel()

	en := icu.Options{Locale: mustLocale(t, "en-US")}
	de := icu.Options{Locale: mustLocale(t, "de-DE")}

	tests := []struct {
		name   string
		src    string
		value  any
		opts   icu.Options
		expect string
	}{
		{"decimal", "{n, number}", 1234.5, en, "1,234.5"},
		{"decimal german", "{n, number}", 1234.5, de, "1.234,5"},
		{"integer", "{n, number, integer}", 3.7, en, "4"},
		{"percent", "{n, number, percent}", 0.25, en, "25%"},
		{"currency", "{n, number, currency}", 1234.5, en, "$1,234.50"},
		{"currency german", "{n, number, currency}", 1234.5, de, "1.234,50 €"},
		{"negative currency", "{n, number, currency}", -5, en, "-$5.00"},
		{"skeleton currency", "{n, number, ::currency/EUR}", 5, en, "€5.00"},
		{"skeleton fraction", "{n, number, ::.00}", 3.5, en, "3.50"},
		{"skeleton optional fraction", "{n, number, ::.0#}", 3.456, en, "3.46"},
		{"skeleton group off", "{n, number, ::group-off}", 1234567, en, "1234567"},
		{"skeleton percent", "{n, number, ::percent}", 0.5, en, "50%"},
		{"skeleton integer", "{n, number, ::precision-integer}", 2.2, en, "2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, format(t, tt.src, icu.Values{"n": tt.value}, tt.opts))
		})
	}

	t.Run("named format", func(t *testing.T) {
		t.Parallel()
		two := 2
		opts := en
		opts.Formats = icu.Formats{Number: map[string]icu.NumberFormat{
			"price": {Style: icu.NumberCurrency, Currency: "EUR"},
			"ratio": {MinimumFractionDigits: &two, MaximumFractionDigits: &two},
		}}
		assert.Equal(t, "€12.50", format(t, "{n, number, price}", icu.Values{"n": 12.5}, opts))
		assert.Equal(t, "0.50", format(t, "{n, number, ratio}", icu.Values{"n": 0.5}, opts))
	})

	t.Run("named format overrides built-in style", func(t *testing.T) {
		t.Parallel()
		two := 2
		opts := en
		opts.Formats = icu.Formats{Number: map[string]icu.NumberFormat{
			"percent":  {MinimumFractionDigits: &two},
			"currency": {Style: icu.NumberCurrency, Currency: "EUR"},
			"integer":  {Style: icu.NumberPercent},
		}}
		assert.Equal(t, "25.00%", format(t, "{n, number, percent}", icu.Values{"n": 0.25}, opts))
		assert.Equal(t, "€5.00", format(t, "{n, number, currency}", icu.Values{"n": 5}, opts))
		assert.Equal(t, "50%", format(t, "{n, number, integer}", icu.Values{"n": 0.5}, opts))
		assert.Equal(t, "1,234.5", format(t, "{n, number}", icu.Values{"n": 1234.5}, opts))
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		for _, src := range []string{"{n, number, unknown}", "{n, number, ::scientific}", "{n, number, ::currency/ZZ}", "{n, number, ::.0x}"} {
			_, err := icu.MustParse(src).Format(icu.Values{"n": 1}, en)
			assert.ErrorIs(t, err, icu.ErrFormatting, src)
		}
		_, err := icu.MustParse("{n, number}").Format(icu.Values{"n": "12"}, en)
		assert.ErrorIs(t, err, icu.ErrFormatting)
	})
}

func TestFormat_DateTime(t *testing.T) {
	t.Parallel()

	d := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	en := icu.Options{Locale: mustLocale(t, "en-US")}

	tests := []struct {
		name   string
		src    string
		opts   icu.Options
		expect string
	}{
		{"default date", "{d, date}", en, "Jan 2, 2024"},
		{"short date", "{d, date, short}", en, "01/02/2024"},
		{"long date", "{d, date, long}", en, "January 2, 2024"},
		{"full date", "{d, date, full}", en, "Tuesday, January 2, 2024"},
		{"short time", "{d, time, short}", en, "3:04 PM"},
		{"default time", "{d, time}", en, "3:04:05 PM"},
		{"german long", "{d, date, long}", icu.Options{Locale: mustLocale(t, "de-DE")}, "2. Januar 2024"},
		{"german full", "{d, date, full}", icu.Options{Locale: mustLocale(t, "de")}, "Dienstag, 2. Januar 2024"},
		{"french full", "{d, date, full}", icu.Options{Locale: mustLocale(t, "fr-FR")}, "mardi 2 janvier 2024"},
		{"russian long", "{d, date, long}", icu.Options{Locale: mustLocale(t, "ru-RU")}, "2 января 2024 г."},
		{"chinese short", "{d, date, short}", icu.Options{Locale: mustLocale(t, "zh-CN")}, "2024-01-02"},
		{"japanese long", "{d, date, long}", icu.Options{Locale: mustLocale(t, "ja")}, "2024年1月2日"},
		{"time zone", "{d, time, short}", icu.Options{Locale: en.Locale, TimeZone: time.FixedZone("EET", 2*60*60)}, "5:04 PM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, format(t, tt.src, icu.Values{"d": d}, tt.opts))
		})
	}

	t.Run("named formats", func(t *testing.T) {
		t.Parallel()
		opts := en
		opts.Formats = icu.Formats{DateTime: map[string]icu.DateTimeFormat{
			"iso":     {Layout: "2006-01-02"},
			"stamp":   {DateStyle: "short", TimeStyle: "short"},
			"utcTime": {TimeStyle: "short", TimeZone: "UTC"},
		}}
		local := d.In(time.FixedZone("EET", 2*60*60))

		assert.Equal(t, "2024-01-02", format(t, "{d, date, iso}", icu.Values{"d": d}, opts))
		assert.Equal(t, "01/02/2024, 3:04 PM", format(t, "{d, date, stamp}", icu.Values{"d": d}, opts))
		assert.Equal(t, "3:04 PM", format(t, "{d, time, utcTime}", icu.Values{"d": local}, opts))
	})

	t.Run("named format overrides built-in style", func(t *testing.T) {
		t.Parallel()
		opts := en
		opts.Formats = icu.Formats{DateTime: map[string]icu.DateTimeFormat{
			"short": {Layout: "2006"},
			"long":  {TimeZone: "UTC"},
		}}
		early := time.Date(2024, 1, 3, 1, 0, 0, 0, time.FixedZone("EET", 2*60*60))

		assert.Equal(t, "2024", format(t, "{d, date, short}", icu.Values{"d": d}, opts))
		assert.Equal(t, "2024", format(t, "{d, time, short}", icu.Values{"d": d}, opts))
		assert.Equal(t, "January 2, 2024", format(t, "{d, date, long}", icu.Values{"d": early}, opts))
		assert.Equal(t, "Jan 2, 2024", format(t, "{d, date, medium}", icu.Values{"d": d}, opts))
	})

	t.Run("pointer value", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Jan 2, 2024", format(t, "{d, date}", icu.Values{"d": &d}, en))
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()
		for _, tt := range []struct {
			src   string
			value any
		}{
			{"{d, date}", "2024-01-02"},
			{"{d, time}", 1704207845},
			{"{d, date, ::yyyyMMdd}", d},
			{"{d, date, unknown}", d},
		} {
			_, err := icu.MustParse(tt.src).Format(icu.Values{"d": tt.value}, en)
			assert.ErrorIs(t, err, icu.ErrFormatting, tt.src)
		}
	})
}

func TestFormat_MissingValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		raw  string
	}{
		{"argument", "Hello {name}", "Hello {name}"},
		{"number", "Total: {n, number}", "Total: {n}"},
		{"plural", "{n, plural, other {# items}}", "{n}"},
		{"select", "{g, select, other {x}}", "{g}"},
		{"tag", "Click <link>here</link>", "Click <link>here</link>"},
		{"self closing tag", "Line<br/>break", "Line<br/>break"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			msg := icu.MustParse(tt.src)

			_, err := msg.Format(nil, icu.Options{})
			require.ErrorIs(t, err, icu.ErrMissingValue)

			out, err := msg.Format(nil, icu.Options{MissingValues: icu.MissingValueRaw})
			require.NoError(t, err)
			assert.Equal(t, tt.raw, out)
		})
	}
}

func TestFormat_Tags(t *testing.T) {
	t.Parallel()

	link := icu.MarkupTag(func(children string) string { return `<a href="/docs">` + children + "</a>" })
	richLink := icu.RichTag(func(children icu.Parts) any { return node{tag: "link", children: children} })

	t.Run("text mode with markup tag", func(t *testing.T) {
		t.Parallel()
		out, err := icu.MustParse("Read <link>the docs</link>").Format(icu.Values{"link": link}, icu.Options{})
		require.NoError(t, err)
		assert.Equal(t, `Read <a href="/docs">the docs</a>`, out)
	})

	t.Run("text mode coerces rich nodes", func(t *testing.T) {
		t.Parallel()
		out, err := icu.MustParse("Read <link>the <b>docs</b></link>").Format(icu.Values{
			"link": richLink,
			"b":    func(children string) string { return strings.ToUpper(children) },
		}, icu.Options{})
		require.NoError(t, err)
		assert.Equal(t, "Read [link:the DOCS]", out)
	})

	t.Run("markup mode", func(t *testing.T) {
		t.Parallel()
		msg := icu.MustParse("Read <link>{what}</link><br/>")
		out, err := msg.FormatMarkup(icu.Values{
			"link": link,
			"br":   icu.MarkupTag(func(string) string { return "<br>" }),
			"what": "the docs",
		}, icu.Options{})
		require.NoError(t, err)
		assert.Equal(t, `Read <a href="/docs">the docs</a><br>`, out)

		_, err = msg.FormatMarkup(icu.Values{"link": richLink, "br": link, "what": "x"}, icu.Options{})
		require.ErrorIs(t, err, icu.ErrFormatting)
	})

	t.Run("rich mode keeps nodes", func(t *testing.T) {
		t.Parallel()
		parts, err := icu.MustParse("Hi {name}, read <link>the <b>docs</b></link>!").FormatRich(icu.Values{
			"name": "Ana",
			"link": richLink,
			"b":    link,
		}, icu.Options{})
		require.NoError(t, err)
		require.Len(t, parts, 3)

		assert.Equal(t, icu.Part{Text: "Hi Ana, read "}, parts[0])
		require.True(t, parts[1].IsNode())
		n, ok := parts[1].Node.(node)
		require.True(t, ok)
		assert.Equal(t, "link", n.tag)
		assert.Equal(t, icu.Parts{{Text: `the <a href="/docs">docs</a>`}}, n.children)
		assert.Equal(t, icu.Part{Text: "!"}, parts[2])
		assert.Len(t, parts.Nodes(), 1)
	})

	t.Run("rich mode string results merge into text", func(t *testing.T) {
		t.Parallel()
		parts, err := icu.MustParse("a<x>b</x>c").FormatRich(icu.Values{
			"x": icu.RichTag(func(children icu.Parts) any { return children.String() }),
		}, icu.Options{})
		require.NoError(t, err)
		assert.Equal(t, icu.Parts{{Text: "abc"}}, parts)
	})

	t.Run("embed", func(t *testing.T) {
		t.Parallel()
		msg := icu.MustParse("Icon: {icon}")
		values := icu.Values{"icon": icu.Embed{Node: node{tag: "svg"}}}

		parts, err := msg.FormatRich(values, icu.Options{})
		require.NoError(t, err)
		require.Len(t, parts, 2)
		assert.Equal(t, node{tag: "svg"}, parts[1].Node)

		out, err := msg.Format(values, icu.Options{})
		require.NoError(t, err)
		assert.Equal(t, "Icon: [svg:]", out)
	})

	t.Run("tag bound to a plain value", func(t *testing.T) {
		t.Parallel()
		_, err := icu.MustParse("<b>x</b>").Format(icu.Values{"b": "bold"}, icu.Options{})
		require.ErrorIs(t, err, icu.ErrFormatting)
	})

	t.Run("pound inside tag", func(t *testing.T) {
		t.Parallel()
		out, err := icu.MustParse("{n, plural, other {<b>#</b> items}}").FormatMarkup(icu.Values{
			"n": 3,
			"b": icu.MarkupTag(func(c string) string { return "<strong>" + c + "</strong>" }),
		}, icu.Options{})
		require.NoError(t, err)
		assert.Equal(t, "<strong>3</strong> items", out)
	})
}
