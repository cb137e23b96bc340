package icu

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when a requested locale cannot be parsed.
const DefaultLocale = "en-US"

// PluralRule maps a number to a CLDR plural category
// (zero, one, two, few, many, other).
type PluralRule func(n float64) string

// Locale bundles everything the renderer needs to format values for one
// language: CLDR number and plural data from golang.org/x/text plus the
// layout rules of a LocaleFormat. It is immutable and safe for concurrent use.
type Locale struct {
	name     string
	tag      language.Tag
	printer  *message.Printer
	format   *LocaleFormat
	currency currency.Unit
	cardinal PluralRule
	ordinal  PluralRule
}

// LocaleOption configures a Locale during construction.
type LocaleOption func(*Locale)

// WithLocaleFormat overrides the predefined LocaleFormat.
func WithLocaleFormat(lf *LocaleFormat) LocaleOption {
	return func(l *Locale) {
		if lf != nil {
			l.format = lf
		}
	}
}

// WithCardinalRule overrides the CLDR cardinal plural rule.
func WithCardinalRule(rule PluralRule) LocaleOption {
	return func(l *Locale) {
		l.cardinal = rule
	}
}

// WithOrdinalRule overrides the CLDR ordinal plural rule.
func WithOrdinalRule(rule PluralRule) LocaleOption {
	return func(l *Locale) {
		l.ordinal = rule
	}
}

// WithCurrency sets the currency used by {n, number, currency}.
// By default it is derived from the locale's region.
func WithCurrency(unit currency.Unit) LocaleOption {
	return func(l *Locale) {
		l.currency = unit
	}
}

// NewLocale builds a Locale for a BCP 47 name.
//
// When the name cannot be parsed, or no date/time layout is known for it,
// NewLocale still returns a usable Locale degraded to en-US rules together
// with an error wrapping ErrUnsupportedLocale.
func NewLocale(name string, opts ...LocaleOption) (*Locale, error) {
	var envErr error

	tag, err := language.Parse(name)
	if err != nil {
		envErr = errors.Join(fmt.Errorf("%w: %q", ErrUnsupportedLocale, name), err)
		tag = language.MustParse(DefaultLocale)
	}

	l := &Locale{name: name, tag: tag}
	for _, opt := range opts {
		opt(l)
	}

	if l.format == nil {
		lf, ok := LookupLocaleFormat(tag)
		if !ok {
			if envErr == nil {
				envErr = fmt.Errorf("%w: no date formats for %q, using %s", ErrUnsupportedLocale, name, DefaultLocale)
			}
			lf = FormatEnUS()
		}
		l.format = lf
	}

	l.printer = message.NewPrinter(tag)

	if l.currency == (currency.Unit{}) {
		unit, conf := currency.FromTag(tag)
		if conf == language.No {
			unit = currency.USD
		}
		l.currency = unit
	}

	return l, envErr
}

// MustNewLocale is like NewLocale but panics when the locale is unsupported.
func MustNewLocale(name string, opts ...LocaleOption) *Locale {
	l, err := NewLocale(name, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the locale name as requested.
func (l *Locale) Name() string {
	return l.name
}

// Tag returns the parsed language tag.
func (l *Locale) Tag() language.Tag {
	return l.tag
}

// Format returns the locale's layout rules.
func (l *Locale) Format() *LocaleFormat {
	return l.format
}

// Currency returns the default currency unit.
func (l *Locale) Currency() currency.Unit {
	return l.currency
}

// FormatDate formats t using the given date style.
func (l *Locale) FormatDate(t time.Time, style Style) string {
	return l.format.FormatDate(t, style)
}

// FormatTime formats t using the given time style.
func (l *Locale) FormatTime(t time.Time, style Style) string {
	return l.format.FormatTime(t, style)
}

// FormatDateTime formats t using the given date and time styles.
func (l *Locale) FormatDateTime(t time.Time, dateStyle, timeStyle Style) string {
	return l.format.FormatDateTime(t, dateStyle, timeStyle)
}
