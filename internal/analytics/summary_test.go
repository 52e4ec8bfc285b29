package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvescott/ledgerflow/internal/model"
)

func spendRow(category, desc string, amount float64) model.Transaction {
	return model.Transaction{
		Category:         category,
		Description:      desc,
		NormalizedAmount: amount,
	}
}

func TestSummarizeEmpty(t *testing.T) {
	want := []string{
		"Total spend: $0.00",
		"Top category: N/A",
		"Eating Out: $0.00",
		"Top merchants: N/A",
	}

	assert.Equal(t, want, Summarize(nil))
	assert.Equal(t, want, Summarize([]model.Transaction{}))
}

func TestSummarizeExcludesBookkeepingAndCredits(t *testing.T) {
	txns := []model.Transaction{
		{Category: "Credit Card Payment", Description: "Bill Payment", NormalizedAmount: 500, IsBookkeeping: true},
		{Category: "Transfers", Description: "E-Transfer", NormalizedAmount: 100, IsBookkeeping: true},
		spendRow("Income", "Payroll", -2500),
	}

	// All bookkeeping or non-positive: degrades to the placeholder form.
	assert.Equal(t, []string{
		"Total spend: $0.00",
		"Top category: N/A",
		"Eating Out: $0.00",
		"Top merchants: N/A",
	}, Summarize(txns))
}

func TestSummarizeTotals(t *testing.T) {
	txns := []model.Transaction{
		spendRow("Eating Out", "Tim Hortons", 20),
		spendRow("Groceries", "T&T Supermarket", 80),
		spendRow("Eating Out", "Starbucks", 5),
		{Category: "Transfers", Description: "E-Transfer", NormalizedAmount: 300, IsBookkeeping: true},
		spendRow("Income", "Payroll Deposit", -2500),
	}

	lines := Summarize(txns)
	require.Len(t, lines, 4)

	assert.Equal(t, "Total spend (excl. transfers/CC payments): $105.00", lines[0])
	assert.Equal(t, "Top category: Groceries ($80.00)", lines[1])
	assert.Equal(t, "Eating Out: $25.00", lines[2])
	assert.Equal(t, "Top merchants: T&T Supermarket ($80.00), Tim Hortons ($20.00), Starbucks ($5.00)", lines[3])
}

func TestSummarizeTopMerchantsGroupsCleanedNames(t *testing.T) {
	txns := []model.Transaction{
		spendRow("Eating Out", "Pos Purchase Fpos Tim Hortons", 6),
		spendRow("Eating Out", "Tim  Hortons", 4),
		spendRow("Groceries", "Withdrawal T&T Supermarket", 9),
	}

	lines := Summarize(txns)
	assert.Equal(t, "Top merchants: Tim Hortons ($10.00), T&T Supermarket ($9.00)", lines[3])
}

func TestSummarizeEatingOutCaseInsensitive(t *testing.T) {
	txns := []model.Transaction{
		spendRow("eating out", "KFC", 15),
	}

	lines := Summarize(txns)
	assert.Equal(t, "Eating Out: $15.00", lines[2])
}

func TestCleanMerchant(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Pos Purchase Fpos Tim Hortons", "Tim Hortons"},
		{"Withdrawal ATM  Main St", "ATM Main St"},
		{"Misc Payment Hydro   Ottawa", "Hydro Ottawa"},
		{"  Starbucks  ", "Starbucks"},
		{"Plain Merchant", "Plain Merchant"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanMerchant(tt.in), tt.in)
	}
}
