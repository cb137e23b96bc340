package icu

import (
	"strings"
	"time"
)

// Style is a date or time presentation length.
type Style int

const (
	StyleShort Style = iota
	StyleMedium
	StyleLong
	StyleFull
)

// ParseStyle maps the ICU style names short, medium, long and full.
func ParseStyle(s string) (Style, bool) {
	switch s {
	case "short":
		return StyleShort, true
	case "medium":
		return StyleMedium, true
	case "long":
		return StyleLong, true
	case "full":
		return StyleFull, true
	}
	return StyleMedium, false
}

// Currency symbol placement.
const (
	CurrencyBefore = "before"
	CurrencyAfter  = "after"
)

// CalendarNames holds localized month and weekday names. Days are indexed
// by time.Weekday, Sunday first.
type CalendarNames struct {
	Months      [12]string
	ShortMonths [12]string
	Days        [7]string
	ShortDays   [7]string
}

// LocaleFormat contains the date, time and currency layout rules of a locale.
// Digits and separators come from CLDR data; LocaleFormat only decides
// where things go. It is immutable after creation and safe for concurrent use.
type LocaleFormat struct {
	dateLayouts       [4]string
	timeLayouts       [4]string
	dateTimeSeparator string
	currencyPosition  string
	names             *CalendarNames
}

// LocaleFormatOption configures a LocaleFormat during construction.
type LocaleFormatOption func(*LocaleFormat)

// NewLocaleFormat creates a new LocaleFormat with the given options.
// If no options are provided, it defaults to US English formatting.
func NewLocaleFormat(opts ...LocaleFormatOption) *LocaleFormat {
	lf := &LocaleFormat{
		dateLayouts: [4]string{
			"01/02/2006",
			"Jan 2, 2006",
			"January 2, 2006",
			"Monday, January 2, 2006",
		},
		timeLayouts: [4]string{
			"3:04 PM",
			"3:04:05 PM",
			"3:04:05 PM MST",
			"3:04:05 PM MST",
		},
		dateTimeSeparator: ", ",
		currencyPosition:  CurrencyBefore,
	}

	for _, opt := range opts {
		opt(lf)
	}

	return lf
}

// WithDateLayouts sets the Go layouts for the short, medium, long and full
// date styles.
func WithDateLayouts(short, medium, long, full string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateLayouts = [4]string{short, medium, long, full}
	}
}

// WithTimeLayouts sets the Go layouts for the short, medium, long and full
// time styles.
func WithTimeLayouts(short, medium, long, full string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.timeLayouts = [4]string{short, medium, long, full}
	}
}

// WithDateTimeSeparator sets the text placed between date and time.
func WithDateTimeSeparator(sep string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.dateTimeSeparator = sep
	}
}

// WithCurrencyPosition sets the currency position ("before" or "after").
func WithCurrencyPosition(pos string) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		if pos == CurrencyBefore || pos == CurrencyAfter {
			lf.currencyPosition = pos
		}
	}
}

// WithCalendarNames replaces the English month and weekday names.
func WithCalendarNames(names CalendarNames) LocaleFormatOption {
	return func(lf *LocaleFormat) {
		lf.names = &names
	}
}

// FormatDate formats t with the date layout of the given style.
func (lf *LocaleFormat) FormatDate(t time.Time, style Style) string {
	return lf.formatLayout(t, lf.dateLayouts[clampStyle(style)])
}

// FormatTime formats t with the time layout of the given style.
func (lf *LocaleFormat) FormatTime(t time.Time, style Style) string {
	return lf.formatLayout(t, lf.timeLayouts[clampStyle(style)])
}

// FormatDateTime joins the date and time representations of t.
func (lf *LocaleFormat) FormatDateTime(t time.Time, dateStyle, timeStyle Style) string {
	return lf.FormatDate(t, dateStyle) + lf.dateTimeSeparator + lf.FormatTime(t, timeStyle)
}

// FormatLayout formats t with an arbitrary Go layout, substituting the
// locale's month and weekday names.
func (lf *LocaleFormat) FormatLayout(t time.Time, layout string) string {
	return lf.formatLayout(t, layout)
}

// placeCurrency attaches a symbol to an already formatted amount.
func (lf *LocaleFormat) placeCurrency(amount, symbol string) string {
	if lf.currencyPosition == CurrencyAfter {
		return amount + " " + symbol
	}
	if symbol == "$" || strings.HasSuffix(symbol, "$") || symbol == "¥" || symbol == "£" || symbol == "₩" || symbol == "€" {
		return symbol + amount
	}
	return symbol + " " + amount
}

func clampStyle(s Style) Style {
	if s < StyleShort || s > StyleFull {
		return StyleMedium
	}
	return s
}

var nameTokens = []string{"January", "Jan", "Monday", "Mon"}

func (lf *LocaleFormat) formatLayout(t time.Time, layout string) string {
	if lf.names == nil {
		return t.Format(layout)
	}

	var b strings.Builder
	for layout != "" {
		tok, idx := nextNameToken(layout)
		if idx < 0 {
			b.WriteString(t.Format(layout))
			break
		}
		b.WriteString(t.Format(layout[:idx]))
		switch tok {
		case "January":
			b.WriteString(lf.names.Months[t.Month()-1])
		case "Jan":
			b.WriteString(lf.names.ShortMonths[t.Month()-1])
		case "Monday":
			b.WriteString(lf.names.Days[t.Weekday()])
		case "Mon":
			b.WriteString(lf.names.ShortDays[t.Weekday()])
		}
		layout = layout[idx+len(tok):]
	}
	return b.String()
}

func nextNameToken(layout string) (string, int) {
	for i := range len(layout) {
		for _, tok := range nameTokens {
			if strings.HasPrefix(layout[i:], tok) {
				return tok, i
			}
		}
	}
	return "", -1
}
