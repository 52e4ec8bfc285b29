// Package pipeline assembles extractor output into normalized, categorized
// ledger records and serializes them for CSV and tabular-store output.
package pipeline

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/calvescott/ledgerflow/internal/categorize"
	"github.com/calvescott/ledgerflow/internal/model"
	"github.com/calvescott/ledgerflow/internal/normalize"
)

// AssembleRows runs each raw triple through parse, sign normalization and
// categorization. The first unparseable amount aborts the whole batch; the
// pipeline does no partial-row recovery.
func AssembleRows(stmt *model.Statement) ([]model.Transaction, error) {
	txns := make([]model.Transaction, 0, len(stmt.Transactions))
	for _, raw := range stmt.Transactions {
		desc := strings.TrimSpace(raw.Description)

		parsed, err := normalize.ParseAmount(raw.Amount)
		if err != nil {
			return nil, fmt.Errorf("transaction %q on %s: %w", desc, raw.Date, err)
		}

		normalized := normalize.NormalizeAmount(stmt.Bank, stmt.AccountType, desc, parsed)
		category := categorize.Categorize(desc, normalized)

		txns = append(txns, model.Transaction{
			Date:             raw.Date,
			Description:      desc,
			Bank:             stmt.Bank,
			AccountType:      stmt.AccountType,
			Category:         category,
			ParsedAmount:     parsed,
			NormalizedAmount: normalized,
			IsBookkeeping:    categorize.IsBookkeeping(category),
		})
	}
	return txns, nil
}

var monthKeyRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// InferMonth derives the month tab key (YYYY-MM) from the modal year-month
// of the batch's dates. Ties resolve to the earliest month; when no date
// qualifies the current month is used.
func InferMonth(txns []model.Transaction, now time.Time) string {
	counts := make(map[string]int)
	for _, t := range txns {
		if len(t.Date) < 7 {
			continue
		}
		key := t.Date[:7]
		if monthKeyRe.MatchString(key) {
			counts[key]++
		}
	}
	if len(counts) == 0 {
		return now.Format("2006-01")
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best := keys[0]
	for _, k := range keys[1:] {
		if counts[k] > counts[best] {
			best = k
		}
	}
	return best
}

// Rows converts transactions into the six-column row schema used by both
// CSV output and the tabular store.
func Rows(txns []model.Transaction) [][]string {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{
			t.Date,
			t.Category,
			t.Description,
			fmt.Sprintf("%.2f", t.NormalizedAmount),
			t.Bank,
			fmt.Sprintf("%t", t.IsBookkeeping),
		})
	}
	return rows
}
