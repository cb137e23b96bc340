package icu

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/number"
)

// FormatNumber formats v with the locale's decimal pattern.
func (l *Locale) FormatNumber(v any, opts ...number.Option) string {
	return l.printer.Sprint(number.Decimal(v, opts...))
}

// FormatPercent formats a ratio (0.25 -> 25%).
func (l *Locale) FormatPercent(v any, opts ...number.Option) string {
	return l.printer.Sprint(number.Percent(v, opts...))
}

// FormatCurrency formats amount in the given ISO 4217 currency, or the
// locale's default currency when code is empty.
func (l *Locale) FormatCurrency(amount float64, code string) (string, error) {
	unit := l.currency
	if code != "" {
		u, err := currency.ParseISO(code)
		if err != nil {
			return "", fmt.Errorf("%w: currency %q: %w", ErrFormatting, code, err)
		}
		unit = u
	}
	scale, _ := currency.Standard.Rounding(unit)
	return l.formatMoney(amount, unit, number.Scale(scale)), nil
}

func (l *Locale) formatMoney(amount float64, unit currency.Unit, opts ...number.Option) string {
	digits := l.FormatNumber(math.Abs(amount), opts...)
	symbol := l.printer.Sprint(currency.NarrowSymbol(unit))
	out := l.format.placeCurrency(digits, symbol)
	if amount < 0 {
		return "-" + out
	}
	return out
}

// formatNumberStyle renders {n, number, style}.
func (l *Locale) formatNumberStyle(v float64, style string, formats Formats) (string, error) {
	// Named formats shadow the built-in styles and inherit their style when
	// they only adjust digits or grouping.
	if nf, ok := formats.Number[style]; ok && style != "" {
		if nf.Style == "" && isNumberStyle(style) {
			nf.Style = style
		}
		return l.formatNamedNumber(v, nf)
	}

	switch style {
	case "", NumberDecimal:
		return l.FormatNumber(v), nil
	case NumberInteger:
		return l.FormatNumber(v, number.MaxFractionDigits(0)), nil
	case NumberPercent:
		return l.FormatPercent(v), nil
	case NumberCurrency:
		return l.FormatCurrency(v, "")
	}

	if skeleton, ok := strings.CutPrefix(style, "::"); ok {
		return l.formatSkeleton(v, skeleton)
	}

	return "", fmt.Errorf("%w: unknown number format %q", ErrFormatting, style)
}

func isNumberStyle(style string) bool {
	switch style {
	case NumberDecimal, NumberInteger, NumberPercent, NumberCurrency:
		return true
	}
	return false
}

func (l *Locale) formatNamedNumber(v float64, nf NumberFormat) (string, error) {
	var opts []number.Option
	if nf.MinimumFractionDigits != nil {
		opts = append(opts, number.MinFractionDigits(*nf.MinimumFractionDigits))
	}
	if nf.MaximumFractionDigits != nil {
		opts = append(opts, number.MaxFractionDigits(*nf.MaximumFractionDigits))
	}
	if nf.NoGrouping {
		opts = append(opts, number.NoSeparator())
	}

	switch nf.Style {
	case "", NumberDecimal:
		return l.FormatNumber(v, opts...), nil
	case NumberInteger:
		return l.FormatNumber(v, append(opts, number.MaxFractionDigits(0))...), nil
	case NumberPercent:
		return l.FormatPercent(v, opts...), nil
	case NumberCurrency:
		unit := l.currency
		if nf.Currency != "" {
			u, err := currency.ParseISO(nf.Currency)
			if err != nil {
				return "", fmt.Errorf("%w: currency %q: %w", ErrFormatting, nf.Currency, err)
			}
			unit = u
		}
		if len(opts) == 0 {
			scale, _ := currency.Standard.Rounding(unit)
			opts = append(opts, number.Scale(scale))
		}
		return l.formatMoney(v, unit, opts...), nil
	}
	return "", fmt.Errorf("%w: unknown number style %q", ErrFormatting, nf.Style)
}

// formatSkeleton supports a subset of ICU number skeletons:
// percent, currency/XXX, integer, precision-integer, group-off and
// fraction precision stems such as .00, .## or .0#.
func (l *Locale) formatSkeleton(v float64, skeleton string) (string, error) {
	var (
		nf        NumberFormat
		precision []int
	)
	for stem := range strings.FieldsSeq(skeleton) {
		switch {
		case stem == "percent":
			nf.Style = NumberPercent
		case stem == "integer", stem == "precision-integer":
			precision = []int{0, 0}
		case stem == "group-off":
			nf.NoGrouping = true
		case strings.HasPrefix(stem, "currency/"):
			nf.Style = NumberCurrency
			nf.Currency = strings.TrimPrefix(stem, "currency/")
		case strings.HasPrefix(stem, "."):
			minDigits, maxDigits, err := parseFractionStem(stem)
			if err != nil {
				return "", err
			}
			precision = []int{minDigits, maxDigits}
		default:
			return "", fmt.Errorf("%w: unsupported number skeleton %q", ErrFormatting, stem)
		}
	}
	if precision != nil {
		nf.MinimumFractionDigits = &precision[0]
		nf.MaximumFractionDigits = &precision[1]
	}
	return l.formatNamedNumber(v, nf)
}

// parseFractionStem reads ".00##": zeros are required digits, hashes optional.
func parseFractionStem(stem string) (int, int, error) {
	digits := stem[1:]
	minDigits := len(digits) - len(strings.TrimLeft(digits, "0"))
	rest := digits[minDigits:]
	if strings.Trim(rest, "#") != "" {
		return 0, 0, fmt.Errorf("%w: invalid fraction precision %q", ErrFormatting, stem)
	}
	return minDigits, minDigits + len(rest), nil
}

// toFloat converts numeric values to float64. Strings are not numbers.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		f, _ := strconv.ParseFloat(strconv.FormatFloat(float64(n), 'g', -1, 32), 64)
		return f, true
	case float64:
		return n, true
	}
	return 0, false
}
