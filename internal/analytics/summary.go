// Package analytics aggregates a batch of normalized transactions into a
// short human-readable spend summary.
package analytics

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/calvescott/ledgerflow/internal/model"
)

// EatingOutCategory is the category singled out in the summary.
const EatingOutCategory = "Eating Out"

var (
	merchantPrefix1Re = regexp.MustCompile(`(?i)^(pos\s*purchase|pos\s*return|withdrawal|deposit)\s+`)
	merchantPrefix2Re = regexp.MustCompile(`(?i)^(fpos\s+)`)
	merchantPrefix3Re = regexp.MustCompile(`(?i)^(misc\s*payment|utility\s*bill\s*pmt|telephone\s*bill\s*pmt)\s+`)
	whitespaceRe      = regexp.MustCompile(`\s+`)
)

// CleanMerchant normalizes a merchant string so the top-merchants grouping
// isn't split by bank transaction-type prefixes.
func CleanMerchant(desc string) string {
	d := strings.TrimSpace(desc)
	d = merchantPrefix1Re.ReplaceAllString(d, "")
	d = merchantPrefix2Re.ReplaceAllString(d, "")
	d = merchantPrefix3Re.ReplaceAllString(d, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(d, " "))
}

// Summarize returns 4 lines: total spend, top category, Eating Out spend,
// and the top 3 merchants. Spend is the subset with a positive normalized
// amount and a non-bookkeeping category. Degrades to placeholders when the
// spend set is empty.
func Summarize(txns []model.Transaction) []string {
	var spend []model.Transaction
	total := 0.0
	for _, t := range txns {
		if t.NormalizedAmount > 0 && !t.IsBookkeeping {
			spend = append(spend, t)
			total += t.NormalizedAmount
		}
	}

	if len(spend) == 0 {
		return []string{
			"Total spend: $0.00",
			"Top category: N/A",
			"Eating Out: $0.00",
			"Top merchants: N/A",
		}
	}

	byCategory := make(map[string]float64)
	byMerchant := make(map[string]float64)
	eatingOut := 0.0
	for _, t := range spend {
		byCategory[t.Category] += t.NormalizedAmount
		byMerchant[CleanMerchant(t.Description)] += t.NormalizedAmount
		if strings.EqualFold(t.Category, EatingOutCategory) {
			eatingOut += t.NormalizedAmount
		}
	}

	topCategory, topCategoryAmount := maxEntry(byCategory)

	merchants := sortedEntries(byMerchant)
	if len(merchants) > 3 {
		merchants = merchants[:3]
	}
	parts := make([]string, 0, len(merchants))
	for _, m := range merchants {
		parts = append(parts, fmt.Sprintf("%s ($%.2f)", m.name, m.amount))
	}

	return []string{
		fmt.Sprintf("Total spend (excl. transfers/CC payments): $%.2f", total),
		fmt.Sprintf("Top category: %s ($%.2f)", topCategory, topCategoryAmount),
		fmt.Sprintf("%s: $%.2f", EatingOutCategory, eatingOut),
		fmt.Sprintf("Top merchants: %s", strings.Join(parts, ", ")),
	}
}

type entry struct {
	name   string
	amount float64
}

func sortedEntries(m map[string]float64) []entry {
	entries := make([]entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, entry{name: k, amount: v})
	}
	// Highest sum first; ties break by name so output is stable.
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].amount != entries[j].amount {
			return entries[i].amount > entries[j].amount
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

func maxEntry(m map[string]float64) (string, float64) {
	entries := sortedEntries(m)
	if len(entries) == 0 {
		return "", 0
	}
	return entries[0].name, entries[0].amount
}
