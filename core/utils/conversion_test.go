package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"int", 5, 5},
		{"int64", int64(7), 7},
		{"float truncates", 3.9, 3},
		{"string", "12", 12},
		{"decimal string", "4.00", 4},
		{"comma decimal", "4,5", 4},
		{"bytes", []byte("9"), 9},
		{"garbage", "abc", 0},
		{"nil", nil, 0},
		{"unsupported", struct{}{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToInt(tt.in))
		})
	}
}

func TestParseInt(t *testing.T) {
	n, ok := ParseInt(" 10 ")
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	_, ok = ParseInt("")
	assert.False(t, ok)

	_, ok = ParseInt("NaN")
	assert.False(t, ok)
}
