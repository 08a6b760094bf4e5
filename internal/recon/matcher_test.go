package recon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/entity"
)

func items(descs ...string) []entity.LineItem {
	out := make([]entity.LineItem, len(descs))
	for i, d := range descs {
		out[i] = entity.LineItem{Description: d, Quantity: 1, UnitPrice: 100}
	}
	return out
}

func TestMatchExact(t *testing.T) {
	m := NewTieredMatcher(0, 0)
	idx, ok := m.Match(entity.LineItem{Description: "consulting services"}, items("Development", "Consulting Services"))
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestMatchExactWhitespaceInsensitive(t *testing.T) {
	m := NewTieredMatcher(0, 0)
	_, ok := m.Match(entity.LineItem{Description: "Consulting   Services"}, items("consulting services"))
	assert.True(t, ok)
}

func TestMatchSubstring(t *testing.T) {
	m := NewTieredMatcher(0, 0)
	idx, ok := m.Match(entity.LineItem{Description: "Consulting"}, items("Development", "Consulting Services"))
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	// And the reverse direction: invoice description longer than contract's.
	idx, ok = m.Match(entity.LineItem{Description: "Monthly Hosting Fee"}, items("Hosting"))
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMatchWordOverlap(t *testing.T) {
	m := NewTieredMatcher(0, 0)
	idx, ok := m.Match(
		entity.LineItem{Description: "Web Design and Hosting"},
		items("Hosting and Web Design Services"),
	)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMatchWordOverlapRatio(t *testing.T) {
	m := NewTieredMatcher(0, 0)
	// Single shared word out of two invoice words: 0.5 ratio is accepted.
	_, ok := m.Match(entity.LineItem{Description: "Premium Hosting"}, items("Hosting Tier"))
	assert.True(t, ok)
}

func TestMatchFirstHitWins(t *testing.T) {
	m := NewTieredMatcher(0, 0)
	// Both candidates pass the substring tier; contract order decides.
	idx, ok := m.Match(entity.LineItem{Description: "Support"}, items("Support Plan A", "Support Plan B"))
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestMatchExactBeatsSubstring(t *testing.T) {
	m := NewTieredMatcher(0, 0)
	// The earlier candidate would win the substring tier, but the exact tier
	// runs first across all candidates.
	idx, ok := m.Match(entity.LineItem{Description: "Support"}, items("Support Plan", "Support"))
	require.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestMatchNone(t *testing.T) {
	m := NewTieredMatcher(0, 0)
	_, ok := m.Match(entity.LineItem{Description: "Travel"}, items("Consulting", "Development"))
	assert.False(t, ok)
}

func TestMatchEmptyCandidates(t *testing.T) {
	m := NewTieredMatcher(0, 0)
	_, ok := m.Match(entity.LineItem{Description: "Anything"}, nil)
	assert.False(t, ok)
}
