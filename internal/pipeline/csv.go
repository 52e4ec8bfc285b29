package pipeline

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/calvescott/ledgerflow/internal/model"
)

// WriteCSV writes the header row followed by one row per transaction.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range Rows(txns) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var unsafeBankRe = regexp.MustCompile(`[^A-Za-z0-9]+`)

// DefaultCSVName builds a timestamped output filename from the bank name.
func DefaultCSVName(bank string, now time.Time) string {
	safe := strings.Trim(unsafeBankRe.ReplaceAllString(bank, "_"), "_")
	return fmt.Sprintf("transactions_%s_%s.csv", safe, now.Format("20060102_1504"))
}
