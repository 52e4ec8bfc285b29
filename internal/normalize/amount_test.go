package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  any
		name string
		want float64
	}{
		{name: "plain number", raw: "12.34", want: 12.34},
		{name: "currency and thousands separators", raw: "$1,234.56", want: 1234.56},
		{name: "parenthesized negative", raw: "(12.34)", want: -12.34},
		{name: "trailing minus", raw: "12.34-", want: -12.34},
		{name: "credit marker", raw: "12.34 CR", want: -12.34},
		{name: "lowercase credit marker", raw: "12.34 cr", want: -12.34},
		{name: "debit marker forces no sign", raw: "12.34 DR", want: 12.34},
		{name: "explicit negative preserved", raw: "-45.00", want: -45},
		{name: "explicit plus preserved", raw: "+45.00", want: 45},
		{name: "numeric input", raw: -12.34, want: -12.34},
		{name: "integer input", raw: 200, want: 200},
		{name: "ocr noise around digits", raw: " $ 1,2O3.45 ", want: 123.45},
		{name: "duplicated decimal points keep first", raw: "12..34", want: 12.34},
		{name: "parens with currency", raw: "($5.00)", want: -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestParseAmountErrors(t *testing.T) {
	tests := []struct {
		raw  any
		name string
	}{
		{name: "empty string", raw: ""},
		{name: "whitespace only", raw: "   "},
		{name: "nil", raw: nil},
		{name: "no digits", raw: "CR"},
		{name: "lone minus", raw: "-"},
		{name: "lone dot", raw: "."},
		{name: "text only", raw: "pending"},
		{name: "double sign noise", raw: "--12..34,,"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAmount(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnparseableAmount)
		})
	}
}
