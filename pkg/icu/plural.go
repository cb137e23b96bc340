package icu

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
)

// Plural categories.
const (
	Zero  = "zero"
	One   = "one"
	Two   = "two"
	Few   = "few"
	Many  = "many"
	Other = "other"
)

// PluralCategory returns the CLDR cardinal (or ordinal) category of n.
func (l *Locale) PluralCategory(n float64, ordinal bool) string {
	if rule := l.cardinal; !ordinal && rule != nil {
		return rule(n)
	}
	if rule := l.ordinal; ordinal && rule != nil {
		return rule(n)
	}

	rules := plural.Cardinal
	if ordinal {
		rules = plural.Ordinal
	}
	// Regional tags resolve to their own CLDR rules when they exist
	// (pt-PT differs from pt) and to the parent language otherwise.
	i, v, w, f, t := pluralOperands(n)
	return formName(rules.MatchPlural(l.tag, i, v, w, f, t))
}

// pluralOperands computes the CLDR operands of the plain decimal
// representation of n. Long digit runs keep their last seven digits and stay
// above 10^7 so that rules testing for large values still match.
func pluralOperands(n float64) (i, v, w, f, t int) {
	s := strconv.FormatFloat(math.Abs(n), 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	i = approxInt(intPart)
	if frac == "" {
		return i, 0, 0, 0, 0
	}
	v = len(frac)
	f = approxInt(frac)
	trimmed := strings.TrimRight(frac, "0")
	w = len(trimmed)
	t = approxInt(trimmed)
	return i, v, w, f, t
}

func approxInt(digits string) int {
	if digits == "" {
		return 0
	}
	if len(digits) > 7 {
		n, _ := strconv.Atoi(digits[len(digits)-7:])
		return n + 1e7
	}
	n, _ := strconv.Atoi(digits)
	return n
}

func formName(f plural.Form) string {
	switch f {
	case plural.Zero:
		return Zero
	case plural.One:
		return One
	case plural.Two:
		return Two
	case plural.Few:
		return Few
	case plural.Many:
		return Many
	}
	return Other
}
