package i18n

import (
	"time"

	"github.com/dmitrymomot/intl/pkg/icu"
)

// FormatNumber formats n with the locale's decimal format.
func (t *Translator) FormatNumber(n float64) string {
	return t.locale.FormatNumber(n)
}

// FormatCurrency formats amount in the locale's default currency.
func (t *Translator) FormatCurrency(amount float64) string {
	out, err := t.locale.FormatCurrency(amount, t.locale.Currency().String())
	if err != nil {
		t.report("", err)
		return t.locale.FormatNumber(amount)
	}
	return out
}

// FormatCurrencyCode formats amount in the currency with the given ISO
// 4217 code. Unknown codes are reported and the bare number returned.
func (t *Translator) FormatCurrencyCode(amount float64, code string) string {
	out, err := t.locale.FormatCurrency(amount, code)
	if err != nil {
		t.report("", err)
		return t.locale.FormatNumber(amount)
	}
	return out
}

// FormatPercent formats a ratio as a percentage (0.5 -> 50%).
func (t *Translator) FormatPercent(n float64) string {
	return t.locale.FormatPercent(n)
}

// FormatDate formats the date part of tm in the medium style.
func (t *Translator) FormatDate(tm time.Time) string {
	return t.locale.FormatDate(t.inZone(tm), icu.StyleMedium)
}

// FormatTime formats the time part of tm in the short style.
func (t *Translator) FormatTime(tm time.Time) string {
	return t.locale.FormatTime(t.inZone(tm), icu.StyleShort)
}

// FormatDateTime formats tm as a medium date followed by a short time.
func (t *Translator) FormatDateTime(tm time.Time) string {
	return t.locale.FormatDateTime(t.inZone(tm), icu.StyleMedium, icu.StyleShort)
}

func (t *Translator) inZone(tm time.Time) time.Time {
	if t.timeZone != nil {
		return tm.In(t.timeZone)
	}
	return tm
}
