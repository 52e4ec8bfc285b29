package categorize

import (
	"regexp"
	"strings"
)

// Fallback labels used when no rule matches.
const (
	CategoryCreditIncome = "Credit/Income"
	CategoryOther        = "Other"
)

// transactionPrefixRe strips leading bank transaction-type markers so rules
// match the merchant part of the description.
var transactionPrefixRe = regexp.MustCompile(
	`(?i)^(pos\s*purchase|pos\s*return|withdrawal|deposit|misc\s*payment|utility\s*bill\s*pmt|telephone\s*bill\s*pmt)\s+`)

// StripTransactionPrefix removes a leading transaction-type marker, if any.
func StripTransactionPrefix(desc string) string {
	return transactionPrefixRe.ReplaceAllString(desc, "")
}

// Categorize assigns a category to a transaction. It is total: every
// description gets a label, falling back on the amount's sign when no rule
// matches. Rules are tested against both the prefix-stripped and the
// original description.
func Categorize(description string, amount float64) string {
	d := strings.TrimSpace(description)
	stripped := StripTransactionPrefix(d)

	for _, rule := range rules {
		for _, re := range rule.Patterns {
			if re.MatchString(stripped) || re.MatchString(d) {
				return rule.Category
			}
		}
	}

	if amount < 0 {
		return CategoryCreditIncome
	}
	return CategoryOther
}

// bookkeepingCategories are internal money movement, not real spend.
var bookkeepingCategories = map[string]struct{}{
	"Transfers":           {},
	"Credit Card Payment": {},
}

// IsBookkeeping reports whether a category represents internal money
// movement (excluded from spend analytics).
func IsBookkeeping(category string) bool {
	_, ok := bookkeepingCategories[category]
	return ok
}
