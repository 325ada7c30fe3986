package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCondenseSpaces(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"hello world", "hello world"},
		{"hello   world", "hello world"},
		{"hello\nworld", "hello world"},
		{"hello \n\t world", "hello world"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CondenseSpaces(tt.in), tt.in)
	}
}
