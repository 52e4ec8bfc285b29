package normalize

import (
	"math"
	"regexp"
	"strings"

	"github.com/calvescott/ledgerflow/internal/model"
)

// Income-like descriptions flip to negative (money in) regardless of the
// sign the statement printed. Compiled once; read-only afterwards.
var incomeHints = compileHints([]string{
	`\bpayroll\b`,
	`\bsalary\b`,
	`\bdeposit\b`,
	`\binterest\b`,
	`\brefund\b`,
	`\breversal\b`,
	`\bcredit\b`,
	`\bcr\b`,
	`\bpos return\b`,
	`\bcanada\s+(fed|pro)\b`,
	`\bgst\b`,
	`\bchild\s*benefit\b`,
	`\bfee\s*rebate\b`,
})

// Payments toward a card or line of credit are credits on that account.
var ccPaymentHints = compileHints([]string{
	`\bcrd\.?\s*card\b`,
	`\bcredit\s*card\b`,
	`\bbill\s*payment\b`,
	`\bloc\s*pay\b`,
})

func compileHints(patterns []string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		res = append(res, regexp.MustCompile(`(?i)`+p))
	}
	return res
}

func matchesAny(hints []*regexp.Regexp, desc string) bool {
	for _, re := range hints {
		if re.MatchString(desc) {
			return true
		}
	}
	return false
}

// LooksLikeIncome reports whether a description reads as money coming in.
func LooksLikeIncome(desc string) bool {
	return matchesAny(incomeHints, desc)
}

// LooksLikeCCPayment reports whether a description reads as a payment
// toward a credit card or line of credit.
func LooksLikeCCPayment(desc string) bool {
	return matchesAny(ccPaymentHints, desc)
}

// NormalizeAmount maps a parsed amount onto the canonical sign convention:
// positive = expense/outflow, negative = income/credit. Only the magnitude
// of the parsed amount is trusted; the sign is rederived from the account
// classification and the description. Never fails.
func NormalizeAmount(bank string, accountType model.AccountType, description string, parsed float64) float64 {
	b := strings.ToLower(bank)
	mag := math.Abs(parsed)

	// Deposit accounts: statements often show withdrawals as negative, so
	// only income-like lines flip to negative.
	if accountType == model.AccountTypeDeposit ||
		(strings.Contains(b, "rbc") && accountType == model.AccountTypeUnknown) {
		if LooksLikeIncome(description) {
			return -mag
		}
		return mag
	}

	// Credit cards: purchases are expenses, payments and refunds are credits.
	if accountType == model.AccountTypeCreditCard ||
		(strings.Contains(b, "scotia") && accountType == model.AccountTypeUnknown) {
		if LooksLikeIncome(description) || LooksLikeCCPayment(description) {
			return -mag
		}
		return mag
	}

	if LooksLikeIncome(description) || LooksLikeCCPayment(description) {
		return -mag
	}
	return mag
}
