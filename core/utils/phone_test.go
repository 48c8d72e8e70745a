package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "51987654321", DigitsOnly("+51 987-654-321"))
	assert.Equal(t, "", DigitsOnly("abc"))
}

func TestPhoneSuffix(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		n     int
		want  string
	}{
		{"international", "+51 987 654 321", 9, "987654321"},
		{"whatsapp format", "51987654321", 9, "987654321"},
		{"short number", "12345", 9, "12345"},
		{"no limit", "+51 987", 0, "51987"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PhoneSuffix(tt.phone, tt.n))
		})
	}
}
