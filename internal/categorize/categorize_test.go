package categorize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name   string
		desc   string
		want   string
		amount float64
	}{
		{name: "credit card payment", desc: "MB-CREDIT CARD/LOC PAY.", amount: -950, want: "Credit Card Payment"},
		{name: "bill payment", desc: "Bill Payment to VISA", amount: -200, want: "Credit Card Payment"},
		{name: "e-transfer", desc: "E-Transfer sent to John", amount: -100, want: "Transfers"},
		{name: "interac", desc: "INTERAC purchase refund pending", amount: 12, want: "Transfers"},
		{name: "payroll", desc: "PAYROLL DEPOSIT ACME", amount: -2500, want: "Income"},
		{name: "pos return", desc: "Pos Return Fpos Walmart", amount: -30, want: "Refund"},
		{name: "monthly fee", desc: "Monthly fee", amount: 16.95, want: "Fees"},
		{name: "utilities", desc: "Utility Bill Pmt Hydro Ottawa", amount: 88, want: "Utilities"},
		{name: "phone", desc: "Telephone Bill Pmt Fido Mobile", amount: 45, want: "Phone/Internet"},
		{name: "insurance", desc: "SUN LIFE PREMIUM", amount: 120, want: "Insurance"},
		{name: "investments", desc: "WS INVESTMENTS", amount: 500, want: "Investments"},
		{name: "groceries", desc: "Pos Purchase Fpos The Indian Supermarket", amount: 64.1, want: "Groceries"},
		{name: "wholesale", desc: "COSTCO WHOLESALE W550", amount: 210, want: "Wholesale"},
		{name: "subscription", desc: "Amazon Prime Member", amount: 9.99, want: "Subscriptions"},
		{name: "retail", desc: "WALMART SUPERCENTER", amount: 55, want: "Retail"},
		{name: "eating out stripped prefix", desc: "Pos Purchase Fpos Tim Hortons", amount: 6.25, want: "Eating Out"},
		{name: "eating out", desc: "STARBUCKS COFFEE #123", amount: 4.5, want: "Eating Out"},
		{name: "negative fallback", desc: "Random Shop XYZ", amount: -50, want: "Credit/Income"},
		{name: "positive fallback", desc: "Random Shop XYZ", amount: 50, want: "Other"},
		{name: "zero uses positive fallback", desc: "Random Shop XYZ", amount: 0, want: "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.desc, tt.amount))
		})
	}
}

func TestCategorizeOrderingPrefersBookkeeping(t *testing.T) {
	// A payment description that also names a merchant resolves as
	// bookkeeping because those rules come first.
	assert.Equal(t, "Credit Card Payment", Categorize("Bill Payment Rogers Mastercard", -300))
	assert.Equal(t, "Transfers", Categorize("E-Transfer from Walmart refund", 25))
}

func TestIsBookkeeping(t *testing.T) {
	assert.True(t, IsBookkeeping("Transfers"))
	assert.True(t, IsBookkeeping("Credit Card Payment"))

	for _, cat := range []string{
		"Income", "Refund", "Fees", "Utilities", "Phone/Internet", "Insurance",
		"Investments", "Groceries", "Wholesale", "Subscriptions", "Retail",
		"Eating Out", CategoryCreditIncome, CategoryOther,
	} {
		assert.False(t, IsBookkeeping(cat), cat)
	}
}

func TestStripTransactionPrefix(t *testing.T) {
	assert.Equal(t, "Fpos Tim Hortons", StripTransactionPrefix("Pos Purchase Fpos Tim Hortons"))
	assert.Equal(t, "ATM", StripTransactionPrefix("Withdrawal ATM"))
	assert.Equal(t, "No Prefix Here", StripTransactionPrefix("No Prefix Here"))
}
