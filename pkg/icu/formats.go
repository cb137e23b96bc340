package icu

import (
	"maps"
)

// Number styles understood by NumberFormat.Style.
const (
	NumberDecimal  = "decimal"
	NumberInteger  = "integer"
	NumberPercent  = "percent"
	NumberCurrency = "currency"
)

// NumberFormat is a named number format referenced as {n, number, name}.
type NumberFormat struct {
	Style                 string `json:"style,omitempty" yaml:"style,omitempty"`
	Currency              string `json:"currency,omitempty" yaml:"currency,omitempty"`
	MinimumFractionDigits *int   `json:"minimumFractionDigits,omitempty" yaml:"minimumFractionDigits,omitempty"`
	MaximumFractionDigits *int   `json:"maximumFractionDigits,omitempty" yaml:"maximumFractionDigits,omitempty"`
	NoGrouping            bool   `json:"noGrouping,omitempty" yaml:"noGrouping,omitempty"`
}

// DateTimeFormat is a named date or time format referenced as
// {d, date, name} or {d, time, name}. Layout, when set, is a Go time layout
// and takes precedence over the styles.
type DateTimeFormat struct {
	DateStyle string `json:"dateStyle,omitempty" yaml:"dateStyle,omitempty"`
	TimeStyle string `json:"timeStyle,omitempty" yaml:"timeStyle,omitempty"`
	Layout    string `json:"layout,omitempty" yaml:"layout,omitempty"`
	TimeZone  string `json:"timeZone,omitempty" yaml:"timeZone,omitempty"`
}

// Formats holds named formats consulted when a placeholder references a
// format by name instead of an inline style.
type Formats struct {
	Number   map[string]NumberFormat   `json:"number,omitempty" yaml:"number,omitempty"`
	DateTime map[string]DateTimeFormat `json:"dateTime,omitempty" yaml:"dateTime,omitempty"`
}

// Merge returns a copy of f with the entries of override added on top.
func (f Formats) Merge(override Formats) Formats {
	out := Formats{
		Number:   maps.Clone(f.Number),
		DateTime: maps.Clone(f.DateTime),
	}
	if len(override.Number) > 0 && out.Number == nil {
		out.Number = make(map[string]NumberFormat, len(override.Number))
	}
	maps.Copy(out.Number, override.Number)
	if len(override.DateTime) > 0 && out.DateTime == nil {
		out.DateTime = make(map[string]DateTimeFormat, len(override.DateTime))
	}
	maps.Copy(out.DateTime, override.DateTime)
	return out
}

// IsZero reports whether no named formats are defined.
func (f Formats) IsZero() bool {
	return len(f.Number) == 0 && len(f.DateTime) == 0
}
