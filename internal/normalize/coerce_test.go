package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil defaults to one", nil, 1.0},
		{"float passes through", 3.5, 3.5},
		{"int passes through", 4, 4.0},
		{"numeric string", "12", 12.0},
		{"garbage string defaults", "a few", 1.0},
		{"empty string defaults", "", 1.0},
		{"bool defaults", true, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quantity(tt.in))
		})
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil defaults to zero", nil, 0.0},
		{"float passes through", 99.99, 99.99},
		{"negative preserved", -25.0, -25.0},
		{"plain string", "100.50", 100.5},
		{"currency symbol", "$1,234.56", 1234.56},
		{"euro comma decimal", "€1.234,56", 1234.56},
		{"comma decimal mark", "12,5", 12.5},
		{"parenthesized negative", "(45.00)", -45.0},
		{"leading minus", "-17.25", -17.25},
		{"surrounding whitespace", "  250.00 ", 250.0},
		{"garbage defaults", "n/a", 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Money(tt.in), 1e-9)
		})
	}
}

func TestOptionalMoney(t *testing.T) {
	assert.Nil(t, OptionalMoney(nil))
	assert.Nil(t, OptionalMoney("unknown"))

	v := OptionalMoney("42.00")
	require.NotNil(t, v)
	assert.Equal(t, 42.0, *v)
}

func TestDate(t *testing.T) {
	d := Date("2024-03-01")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *d)

	// RFC 3339 timestamps are truncated to the date.
	d = Date("2024-03-01T15:04:05Z")
	require.NotNil(t, d)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *d)

	assert.Nil(t, Date("03/01/2024"))
	assert.Nil(t, Date(nil))
	assert.Nil(t, Date(12345))
	assert.Nil(t, Date(""))
}

func TestDateOrToday(t *testing.T) {
	got := DateOrToday(nil)
	now := time.Now().UTC()
	assert.Equal(t, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), got)

	got = DateOrToday("2023-07-31")
	assert.Equal(t, time.Date(2023, 7, 31, 0, 0, 0, 0, time.UTC), got)
}

func TestString(t *testing.T) {
	assert.Equal(t, "abc", String("  abc ", "fallback"))
	assert.Equal(t, "fallback", String("", "fallback"))
	assert.Equal(t, "fallback", String(nil, "fallback"))
	assert.Equal(t, "fallback", String(42, "fallback"))
}
