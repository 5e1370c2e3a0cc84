package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"accents and case", "É Fácil", "e facil"},
		{"already normalized", "e facil", "e facil"},
		{"empty", "", ""},
		{"whitespace only", "   \t ", ""},
		{"cedilla and tilde", "Geração São João", "geracao sao joao"},
		{"surrounding spaces trimmed", "  Tronos ", "tronos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_SameKeyForAccentVariants(t *testing.T) {
	assert.Equal(t, Normalize("É Fácil"), Normalize("e facil"))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains("A Guerra dos Tronos", "guerra"))
	assert.True(t, Contains("Geração", "GERACAO"))
	assert.True(t, Contains("anything", "  "))
	assert.False(t, Contains("O Alquimista", "potter"))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, ContainsAny("rowling", "Harry Potter", "J.K. Rowling"))
	assert.False(t, ContainsAny("coelho", "Harry Potter", "J.K. Rowling"))
	assert.True(t, ContainsAny(""))
	assert.False(t, ContainsAny("x"))
}
