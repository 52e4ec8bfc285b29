package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calvescott/ledgerflow/internal/model"
)

func TestNormalizeAmountDepositAccount(t *testing.T) {
	tests := []struct {
		name   string
		desc   string
		amount float64
		want   float64
	}{
		{name: "payroll flips negative", desc: "PAYROLL DEPOSIT ACME LTD", amount: 2500, want: -2500},
		{name: "interest flips negative", desc: "Interest earned", amount: -1.25, want: -1.25},
		{name: "refund flips negative", desc: "POS Return Walmart", amount: 30, want: -30},
		{name: "withdrawal stays positive", desc: "Withdrawal ATM", amount: -100, want: 100},
		{name: "purchase stays positive", desc: "Pos Purchase Fpos T&T Supermarket", amount: -54.2, want: 54.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAmount("RBC", model.AccountTypeDeposit, tt.desc, tt.amount)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestNormalizeAmountCreditCard(t *testing.T) {
	tests := []struct {
		name   string
		bank   string
		desc   string
		amount float64
		want   float64
	}{
		{name: "bill payment is a credit", bank: "Scotiabank", desc: "Bill Payment", amount: 200, want: -200},
		{name: "loc pay is a credit", bank: "Scotiabank", desc: "MB-CREDIT CARD/LOC PAY.", amount: 950, want: -950},
		{name: "purchase stays positive", bank: "Scotiabank", desc: "Starbucks", amount: 4.50, want: 4.50},
		{name: "refund flips negative", bank: "AnyBank", desc: "REFUND KFC", amount: -6.25, want: -6.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAmount(tt.bank, model.AccountTypeCreditCard, tt.desc, tt.amount)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}

func TestNormalizeAmountBankNameInference(t *testing.T) {
	// With no explicit account type, bank-name hints choose the branch.
	assert.InDelta(t, -2500.0, NormalizeAmount("RBC Royal Bank", model.AccountTypeUnknown, "Payroll Deposit", 2500), 0.0001)
	assert.InDelta(t, 100.0, NormalizeAmount("RBC Royal Bank", model.AccountTypeUnknown, "Withdrawal", -100), 0.0001)
	assert.InDelta(t, -200.0, NormalizeAmount("Scotiabank", model.AccountTypeUnknown, "Bill Payment", 200), 0.0001)

	// Unknown bank and type falls through to the credit-card-style test.
	assert.InDelta(t, -200.0, NormalizeAmount("Tangerine", model.AccountTypeUnknown, "Bill Payment", 200), 0.0001)
	assert.InDelta(t, 18.0, NormalizeAmount("Tangerine", model.AccountTypeUnknown, "Dollarama", 18), 0.0001)
}

func TestNormalizeAmountIgnoresRawSign(t *testing.T) {
	// The extractor's sign only contributes magnitude.
	for _, raw := range []float64{88.12, -88.12} {
		assert.InDelta(t, 88.12, NormalizeAmount("RBC", model.AccountTypeDeposit, "Costco Wholesale", raw), 0.0001)
		assert.InDelta(t, -88.12, NormalizeAmount("RBC", model.AccountTypeDeposit, "E-Transfer credit", raw), 0.0001)
	}
}
