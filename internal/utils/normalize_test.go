package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNameLower(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice Trekker", "alice trekker"},
		{"  spaced   out  ", "spaced out"},
		{"ＡＬＩＣＥ", "alice"}, // fullwidth folds to ascii
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeNameLower(tt.in))
	}
}
