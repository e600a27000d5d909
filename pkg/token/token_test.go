package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  TokenType
		want string
	}{
		{PLUS, "+"},
		{SLASH, "/"},
		{DPIPE, "||"},
		{NE, "!="},
		{CAST, "CAST"},
		{PARTITION, "PARTITION"},
		{UNBOUNDED, "UNBOUNDED"},
		{TokenType(500), "TOKEN(500)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tok.String())
		})
	}
}

func TestClassification(t *testing.T) {
	assert.True(t, IsOperator(STAR))
	assert.False(t, IsOperator(AND))
	assert.True(t, IsKeyword(AND))
	assert.True(t, IsKeyword(WHERE))
	assert.False(t, IsKeyword(GE))
	assert.True(t, IsComparison(LE))
	assert.False(t, IsComparison(PLUS))
}
