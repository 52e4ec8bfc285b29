package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		input string
		want  AccountType
	}{
		{"credit_card", AccountTypeCreditCard},
		{"deposit_account", AccountTypeDeposit},
		{"CREDIT_CARD", AccountTypeCreditCard},
		{"  deposit_account  ", AccountTypeDeposit},
		{"chequing", AccountTypeUnknown},
		{"", AccountTypeUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAccountType(tt.input), "input %q", tt.input)
	}
}
