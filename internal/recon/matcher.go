package recon

import (
	"strings"

	"github.com/mohsinm-dev/smart-invoice-validator/internal/entity"
	"github.com/mohsinm-dev/smart-invoice-validator/internal/normalize"
)

// Matcher finds the contract line item corresponding to an invoice line item.
// It returns the index into candidates, or false when nothing corresponds.
// It is an interface so the tiered heuristic below can be swapped for an
// edit-distance or embedding matcher without touching the engine.
type Matcher interface {
	Match(item entity.LineItem, candidates []entity.LineItem) (int, bool)
}

// TieredMatcher applies three ordered strategies, first hit wins:
//
//  1. exact: normalized descriptions equal, case-insensitively
//  2. substring: one normalized description contains the other
//  3. word overlap: the descriptions share at least MinOverlap words, or a
//     non-empty intersection covering at least MinRatio of the invoice
//     item's words
//
// The word-overlap tier trades precision for recall on purpose: an unmatched
// genuine service is worse for the reviewer than an occasional spurious match.
type TieredMatcher struct {
	MinOverlap int
	MinRatio   float64
}

func NewTieredMatcher(minOverlap int, minRatio float64) *TieredMatcher {
	if minOverlap <= 0 {
		minOverlap = 2
	}
	if minRatio <= 0 {
		minRatio = 0.5
	}
	return &TieredMatcher{MinOverlap: minOverlap, MinRatio: minRatio}
}

func (m *TieredMatcher) Match(item entity.LineItem, candidates []entity.LineItem) (int, bool) {
	want := strings.ToLower(normalize.Text(item.Description))
	if want == "" {
		return 0, false
	}

	// Tier 1: exact.
	for i, c := range candidates {
		if strings.ToLower(normalize.Text(c.Description)) == want {
			return i, true
		}
	}

	// Tier 2: substring, either direction. Tolerates truncation and
	// expansion ("Consulting" vs "Consulting Services").
	for i, c := range candidates {
		have := strings.ToLower(normalize.Text(c.Description))
		if have == "" {
			continue
		}
		if strings.Contains(have, want) || strings.Contains(want, have) {
			return i, true
		}
	}

	// Tier 3: word overlap. Tolerates reordering and partial phrasing.
	wantWords := wordSet(want)
	if len(wantWords) == 0 {
		return 0, false
	}
	for i, c := range candidates {
		haveWords := wordSet(strings.ToLower(normalize.Text(c.Description)))
		shared := 0
		for w := range wantWords {
			if _, ok := haveWords[w]; ok {
				shared++
			}
		}
		if shared >= m.MinOverlap {
			return i, true
		}
		if shared > 0 && float64(shared)/float64(len(wantWords)) >= m.MinRatio {
			return i, true
		}
	}

	return 0, false
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
