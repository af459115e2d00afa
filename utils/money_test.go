package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTWD(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "NT$ 0"},
		{950, "NT$ 950"},
		{1000, "NT$ 1,000"},
		{38000, "NT$ 38,000"},
		{105000, "NT$ 105,000"},
		{1234567, "NT$ 1,234,567"},
		{1050000, "NT$ 1,050,000"},
		{-1200, "-NT$ 1,200"},
		{-2500, "-NT$ 2,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTWD(tt.amount))
	}
}
