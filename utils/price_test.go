package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoercePrice(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want int64
	}{
		{"missing", nil, 0},
		{"number", float64(38000), 38000},
		{"fractional number", 12.9, 12},
		{"negative number", float64(-5), 0},
		{"int", 1500, 1500},
		{"json number", json.Number("2500"), 2500},
		{"currency string", "$12,500", 12500},
		{"twd string", "NT$ 1,000", 1000},
		{"full-width digits", "１２５００元", 12500},
		{"negative string loses sign", "-300", 300},
		{"garbage", "call us", 0},
		{"empty", "", 0},
		{"bool", true, 0},
		{"overflow", "99999999999999999999999", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoercePrice(tt.raw))
		})
	}
}

func TestCoerceNumber(t *testing.T) {
	assert.Equal(t, 150.0, CoerceNumber(float64(150)))
	assert.Equal(t, 210.5, CoerceNumber(" 210.5 "))
	assert.Equal(t, 0.0, CoerceNumber("heavy"))
	assert.Equal(t, 0.0, CoerceNumber(nil))
}
