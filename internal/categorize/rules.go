// Package categorize assigns a spending category to each transaction from
// an ordered, first-match-wins rule set.
package categorize

import "regexp"

// Rule pairs a category label with the patterns that select it.
type Rule struct {
	Category string
	Patterns []*regexp.Regexp
}

// rules is evaluated strictly in order; the order encodes precedence.
// Bookkeeping categories come first so an ambiguous description (a bill
// payment that also names a merchant) resolves as internal money movement
// rather than spend. Compiled once at init and read-only afterwards.
var rules = compileRules([]struct {
	category string
	patterns []string
}{
	// Non-spend / bookkeeping first.
	{"Credit Card Payment", []string{
		`\bcrd\.?\s*card\b`, `\bcredit\s*card\b`, `\bbill\s*payment\b`,
		`\bmb-?credit\s*card/loc\s*pay\b`, `\bloc\s*pay\b`,
	}},
	{"Transfers", []string{
		`\be-?transfer\b`, `\binterac\b`, `\bcustomer\s*transfer\b`,
		`\bbr\s*to\s*br\b`,
	}},
	{"Income", []string{
		`\bpayroll\b`, `\bsalary\b`,
	}},
	{"Refund", []string{
		`\bpos\s*return\b`, `\brefund\b`, `\breversal\b`,
	}},
	{"Fees", []string{
		`\bservice\s*charge\b`, `\bmonthly\s*fees\b`, `\bmonthly\s*fee\b`, `\bfee\s*rebate\b`,
	}},

	// Bills / recurring.
	{"Utilities", []string{
		`\bhydro\s*ottawa\b`, `\benbridge\b`, `\benercare\b`,
		`\breliance\b`, `\bwater\b`, `\bgas\b`,
	}},
	{"Phone/Internet", []string{
		`\bfido\b`, `\brogers\b`, `\bbell\b`, `\btelus\b`, `\bvirgin\b`, `\bkoodo\b`,
	}},
	{"Insurance", []string{
		`\bmanulife\b`, `\bsun\s*life\b`, `\binsurance\b`,
	}},
	{"Investments", []string{
		`\bws\s*investments\b`, `\binvestment\b`,
	}},

	// Shopping & groceries.
	{"Groceries", []string{
		`\bt&?t\b`, `\bsupermarket\b`, `\bindian\s*supermarket\b`,
		`\bthe\s*indian\s*supermarket\b`, `\bshoppers\s*drug\s*mart\b`,
	}},
	{"Wholesale", []string{
		`\bcostco\b`,
	}},
	{"Subscriptions", []string{
		`\bamazon\s*prime\b`, `\bprime\b`, `\bchatgpt\b`, `\bopenai\b`,
	}},
	{"Retail", []string{
		`\bwalmart\b`, `\bdollarama\b`, `\bamazon\b`,
	}},

	// Eating out / fast food.
	{"Eating Out", []string{
		`\bkfc\b`, `\btaco\s*bell\b`, `\btim\s*hortons\b`, `\bstarbucks\b`,
		`\bbiryani\b`,
	}},
})

func compileRules(specs []struct {
	category string
	patterns []string
}) []Rule {
	out := make([]Rule, 0, len(specs))
	for _, s := range specs {
		compiled := make([]*regexp.Regexp, 0, len(s.patterns))
		for _, p := range s.patterns {
			compiled = append(compiled, regexp.MustCompile(`(?i)`+p))
		}
		out = append(out, Rule{Category: s.category, Patterns: compiled})
	}
	return out
}
