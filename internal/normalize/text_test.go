package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Consulting Services", "Consulting Services"},
		{"  Web   Design  ", "Web Design"},
		{"A - B", "A-B"},
		{"Install / Setup", "Install/Setup"},
		{"Multi -  Part - Name", "Multi-Part-Name"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Text(tt.in), "input %q", tt.in)
	}
}

func TestTextIdempotent(t *testing.T) {
	inputs := []string{"A - B / C", "  spaced   out  ", "already-normal"}
	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once))
	}
}
