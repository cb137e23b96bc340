package icu

import (
	"fmt"
	"strings"
	"time"
)

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	}
	return time.Time{}, false
}

// formatDateStyle renders {d, date, style} and {d, time, style}.
func (l *Locale) formatDateStyle(t time.Time, style string, isTime bool, formats Formats, tz *time.Location) (string, error) {
	if tz != nil {
		t = t.In(tz)
	}

	// Named formats shadow the built-in styles of the same name.
	if df, ok := formats.DateTime[style]; ok && style != "" {
		if _, builtin := ParseStyle(style); builtin && df.Layout == "" && df.DateStyle == "" && df.TimeStyle == "" {
			if isTime {
				df.TimeStyle = style
			} else {
				df.DateStyle = style
			}
		}
		return l.formatNamedDate(t, df, isTime)
	}

	if style == "" {
		style = "medium"
	}
	if st, ok := ParseStyle(style); ok {
		if isTime {
			return l.FormatTime(t, st), nil
		}
		return l.FormatDate(t, st), nil
	}
	if strings.HasPrefix(style, "::") {
		return "", fmt.Errorf("%w: date skeletons are not supported: %q", ErrFormatting, style)
	}
	return "", fmt.Errorf("%w: unknown date format %q", ErrFormatting, style)
}

func (l *Locale) formatNamedDate(t time.Time, df DateTimeFormat, isTime bool) (string, error) {
	if df.TimeZone != "" {
		zone, err := time.LoadLocation(df.TimeZone)
		if err != nil {
			return "", fmt.Errorf("%w: time zone %q: %w", ErrFormatting, df.TimeZone, err)
		}
		t = t.In(zone)
	}
	if df.Layout != "" {
		return l.format.FormatLayout(t, df.Layout), nil
	}

	dateStyle, hasDate := parseOptionalStyle(df.DateStyle)
	timeStyle, hasTime := parseOptionalStyle(df.TimeStyle)
	if (df.DateStyle != "" && !hasDate) || (df.TimeStyle != "" && !hasTime) {
		return "", fmt.Errorf("%w: invalid styles %q/%q", ErrFormatting, df.DateStyle, df.TimeStyle)
	}

	switch {
	case hasDate && hasTime:
		return l.FormatDateTime(t, dateStyle, timeStyle), nil
	case hasDate:
		return l.FormatDate(t, dateStyle), nil
	case hasTime:
		return l.FormatTime(t, timeStyle), nil
	case isTime:
		return l.FormatTime(t, StyleMedium), nil
	default:
		return l.FormatDate(t, StyleMedium), nil
	}
}

func parseOptionalStyle(s string) (Style, bool) {
	if s == "" {
		return StyleMedium, false
	}
	return ParseStyle(s)
}
