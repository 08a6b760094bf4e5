package normalize

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Field coercion. Upstream payloads put strings, nulls, or nothing at all
// where numbers and dates belong, so every function here is total: any value
// that cannot be interpreted degrades to the field kind's default instead of
// returning an error.

const (
	defaultQuantity = 1.0
	defaultMoney    = 0.0
)

// Quantity coerces v to a quantity. Missing or unparseable values default to 1.
func Quantity(v any) float64 {
	if f, ok := numeric(v); ok {
		return f
	}
	return defaultQuantity
}

// Money coerces v to a monetary amount. Missing or unparseable values default
// to 0. Negative amounts are preserved; documents encode credits that way.
func Money(v any) float64 {
	if f, ok := numeric(v); ok {
		return f
	}
	return defaultMoney
}

// OptionalMoney coerces v to a monetary amount, or nil when v is absent or
// unparseable. Used for fields where "no value" is meaningful (max_amount,
// an item's explicit total).
func OptionalMoney(v any) *float64 {
	if f, ok := numeric(v); ok {
		return &f
	}
	return nil
}

// Date coerces v to a date, or nil when it cannot be parsed. Accepts ISO
// YYYY-MM-DD strings, RFC 3339 timestamps (truncated to the date), and
// time.Time values.
func Date(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		d := dateOnly(t)
		return &d
	case *time.Time:
		if t == nil {
			return nil
		}
		d := dateOnly(*t)
		return &d
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if parsed, err := time.ParseInLocation("2006-01-02", s, time.UTC); err == nil {
			d := dateOnly(parsed)
			return &d
		}
		if parsed, err := time.Parse(time.RFC3339, s); err == nil {
			d := dateOnly(parsed)
			return &d
		}
	}
	return nil
}

// DateOrToday is Date with today as the fallback, for fields whose absence
// must not be read as "no date applicable" (an invoice's issue_date).
func DateOrToday(v any) time.Time {
	if d := Date(v); d != nil {
		return *d
	}
	return dateOnly(time.Now().UTC())
}

// String coerces v to a non-empty trimmed string, or fallback.
func String(v any, fallback string) string {
	if s, ok := v.(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return fallback
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// numeric interprets v as a finite float64.
func numeric(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		return parseNumber(t)
	}
	return 0, false
}

// parseNumber parses a human-formatted amount: currency symbols and
// whitespace are stripped, both "," and "." are accepted as decimal marks,
// and a leading minus or parenthesization means negative.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			negative = true
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0, false
	}

	cleaned = normalizeSeparators(cleaned)
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}

// normalizeSeparators resolves mixed thousands/decimal separators: when both
// "," and "." occur, the rightmost one is the decimal mark and the other is a
// thousands separator; a lone "," is a decimal mark; repeated separators of
// one kind are thousands separators except the last ".".
func normalizeSeparators(s string) string {
	comma := strings.LastIndex(s, ",")
	dot := strings.LastIndex(s, ".")

	switch {
	case comma >= 0 && dot >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") > 1 {
			s = strings.ReplaceAll(s, ",", "")
		} else {
			s = strings.Replace(s, ",", ".", 1)
		}
	case dot >= 0:
		if n := strings.Count(s, "."); n > 1 {
			s = strings.Replace(s, ".", "", n-1)
		}
	}
	return s
}
