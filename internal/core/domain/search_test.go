package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryOp_NativeValues(t *testing.T) {
	assert.Equal(t, QueryOp(0), OpAnd)
	assert.Equal(t, QueryOp(1), OpOr)
	assert.Equal(t, QueryOp(2), OpAndNot)
	assert.Equal(t, QueryOp(3), OpXor)
	assert.Equal(t, QueryOp(4), OpAndMaybe)
	assert.Equal(t, QueryOp(5), OpFilter)
}

func TestQueryOp_String(t *testing.T) {
	tests := []struct {
		op       QueryOp
		expected string
	}{
		{OpAnd, "AND"},
		{OpOr, "OR"},
		{OpAndNot, "AND_NOT"},
		{OpXor, "XOR"},
		{OpAndMaybe, "AND_MAYBE"},
		{OpFilter, "FILTER"},
		{QueryOp(-1), "Unknown"},
		{QueryOp(6), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.op.String())
			assert.Equal(t, tt.expected != "Unknown", tt.op.IsValid())
		})
	}
}

func TestParseQueryOp(t *testing.T) {
	tests := []struct {
		input    string
		expected QueryOp
	}{
		{"and", OpAnd},
		{"OR", OpOr},
		{"and-not", OpAndNot},
		{"AND_NOT", OpAndNot},
		{" xor ", OpXor},
		{"and_maybe", OpAndMaybe},
		{"Filter", OpFilter},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			op, err := ParseQueryOp(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, op)
		})
	}
}

func TestParseQueryOp_Invalid(t *testing.T) {
	for _, input := range []string{"", "near", "AND NOT"} {
		_, err := ParseQueryOp(input)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %q", input)
	}
}

// TestSearchHit_EmbedsMatch tests that SearchHit exposes Match fields
func TestSearchHit_EmbedsMatch(t *testing.T) {
	hit := SearchHit{
		Match: Match{DocID: 3, Rank: 0, Weight: 1.5, Percent: 100},
		Path:  "/notes/a.md",
	}

	assert.Equal(t, DocumentID(3), hit.DocID)
	assert.Equal(t, 100, hit.Percent)
	assert.Equal(t, "/notes/a.md", hit.Path)
}
