package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "0 €"},
		{19, "19 €"},
		{19.4, "19 €"},
		{19.5, "20 €"},
		{999, "999 €"},
		{1000, "1 000 €"},
		{1234.5, "1 235 €"},
		{1234567, "1 234 567 €"},
		{-1250, "-1 250 €"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.value), "Format(%v)", tt.value)
	}
}
