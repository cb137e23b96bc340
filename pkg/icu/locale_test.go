package icu_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"

	"github.com/dmitrymomot/intl/pkg/icu"
)

func TestNewLocale(t *testing.T) {
	t.Parallel()

	t.Run("known locale", func(t *testing.T) {
		t.Parallel()
		l, err := icu.NewLocale("de-DE")
		require.NoError(t, err)
		assert.Equal(t, "de-DE", l.Name())
		assert.Equal(t, language.MustParse("de-DE"), l.Tag())
		assert.Equal(t, currency.EUR, l.Currency())
	})

	t.Run("regional variant uses base language formats", func(t *testing.T) {
		t.Parallel()
		l, err := icu.NewLocale("de-AT")
		require.NoError(t, err)
		d := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "5. März 2024", l.FormatDate(d, icu.StyleLong))
	})

	t.Run("unparseable locale degrades to en-US", func(t *testing.T) {
		t.Parallel()
		l, err := icu.NewLocale("not a locale!")
		require.ErrorIs(t, err, icu.ErrUnsupportedLocale)
		require.NotNil(t, l)
		assert.Equal(t, language.MustParse(icu.DefaultLocale), l.Tag())
		assert.Equal(t, "1,234.5", l.FormatNumber(1234.5))
	})

	t.Run("locale without date formats degrades", func(t *testing.T) {
		t.Parallel()
		l, err := icu.NewLocale("sw")
		require.ErrorIs(t, err, icu.ErrUnsupportedLocale)
		require.NotNil(t, l)
		d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "January 2, 2024", l.FormatDate(d, icu.StyleLong))
	})

	t.Run("explicit locale format", func(t *testing.T) {
		t.Parallel()
		l, err := icu.NewLocale("sw", icu.WithLocaleFormat(icu.FormatEnGB()))
		require.NoError(t, err)
		d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, "02/01/2024", l.FormatDate(d, icu.StyleShort))
	})

	t.Run("must", func(t *testing.T) {
		t.Parallel()
		assert.NotPanics(t, func() { icu.MustNewLocale("en") })
		assert.Panics(t, func() { icu.MustNewLocale("not a locale!") })
	})
}

func TestLocale_PluralCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		locale  string
		n       float64
		ordinal bool
		want    string
	}{
		{"en", 0, false, icu.Other},
		{"en", 1, false, icu.One},
		{"en", 2, false, icu.Other},
		{"en", 1.5, false, icu.Other},
		{"en-GB", 1, false, icu.One},
		{"pt", 0, false, icu.One},
		{"pt", 1.5, false, icu.One},
		{"pt-PT", 0, false, icu.Other},
		{"pt-PT", 1, false, icu.One},
		{"pt-PT", 1.5, false, icu.Other},
		{"de-AT", 1, false, icu.One},
		{"de-AT", 2, false, icu.Other},
		{"en", -1, false, icu.One},
		{"ru", 1, false, icu.One},
		{"ru", 2, false, icu.Few},
		{"ru", 5, false, icu.Many},
		{"ru", 12, false, icu.Many},
		{"ru", 21, false, icu.One},
		{"ru", 104, false, icu.Few},
		{"pl", 1, false, icu.One},
		{"pl", 3, false, icu.Few},
		{"pl", 5, false, icu.Many},
		{"pl", 22, false, icu.Few},
		{"ar", 0, false, icu.Zero},
		{"ar", 1, false, icu.One},
		{"ar", 2, false, icu.Two},
		{"ar", 3, false, icu.Few},
		{"ar", 11, false, icu.Many},
		{"ar", 100, false, icu.Other},
		{"ja", 1, false, icu.Other},
		{"en", 1, true, icu.One},
		{"en", 2, true, icu.Two},
		{"en", 3, true, icu.Few},
		{"en", 11, true, icu.Other},
		{"en", 101, true, icu.One},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v/ordinal=%t", tt.locale, tt.n, tt.ordinal), func(t *testing.T) {
			t.Parallel()
			l := mustLocale(t, tt.locale)
			assert.Equal(t, tt.want, l.PluralCategory(tt.n, tt.ordinal))
		})
	}
}

func TestLocale_CustomRules(t *testing.T) {
	t.Parallel()

	l, err := icu.NewLocale("en",
		icu.WithCardinalRule(func(n float64) string {
			if n == 0 {
				return icu.Zero
			}
			return icu.Other
		}),
		icu.WithOrdinalRule(func(float64) string { return icu.Many }),
	)
	require.NoError(t, err)

	assert.Equal(t, icu.Zero, l.PluralCategory(0, false))
	assert.Equal(t, icu.Other, l.PluralCategory(1, false))
	assert.Equal(t, icu.Many, l.PluralCategory(1, true))

	out, err := icu.MustParse("{n, plural, zero {nothing} one {one} other {#}}").Format(icu.Values{"n": 0}, icu.Options{Locale: l})
	require.NoError(t, err)
	assert.Equal(t, "nothing", out)
}

func TestLocale_Numbers(t *testing.T) {
	t.Parallel()

	en := mustLocale(t, "en-US")
	de := mustLocale(t, "de-DE")

	assert.Equal(t, "1,234,567", en.FormatNumber(1234567))
	assert.Equal(t, "1.234.567", de.FormatNumber(1234567))
	assert.Equal(t, "0.5", en.FormatNumber(0.5))
	assert.Equal(t, "50%", en.FormatPercent(0.5))

	got, err := en.FormatCurrency(1234.5, "")
	require.NoError(t, err)
	assert.Equal(t, "$1,234.50", got)

	got, err = de.FormatCurrency(1234.5, "")
	require.NoError(t, err)
	assert.Equal(t, "1.234,50 €", got)

	got, err = en.FormatCurrency(10, "EUR")
	require.NoError(t, err)
	assert.Equal(t, "€10.00", got)

	_, err = en.FormatCurrency(10, "ZZ")
	require.ErrorIs(t, err, icu.ErrFormatting)

	l, err := icu.NewLocale("en-US", icu.WithCurrency(currency.EUR))
	require.NoError(t, err)
	got, err = l.FormatCurrency(2, "")
	require.NoError(t, err)
	assert.Equal(t, "€2.00", got)
}
