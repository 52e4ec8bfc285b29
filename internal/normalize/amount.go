// Package normalize turns raw extractor amounts into signed values under a
// single convention: expenses/outflows positive, income/credits negative.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparseableAmount indicates that no numeric content survived cleanup.
var ErrUnparseableAmount = errors.New("unparseable amount")

var (
	creditTokenRe = regexp.MustCompile(`(?i)\bCR\b`)
	debitTokenRe  = regexp.MustCompile(`(?i)\bDR\b`)
	amountNoiseRe = regexp.MustCompile(`[^0-9.+\-]`)
)

// ParseAmount parses a raw statement amount into a signed float. The input
// may be a number or a string with OCR noise: currency symbols, thousands
// separators, parenthesized negatives, trailing minus, CR/DR markers,
// duplicated decimal points.
func ParseAmount(raw any) (float64, error) {
	s := strings.TrimSpace(fmt.Sprint(raw))
	if raw == nil || s == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableAmount, raw)
	}

	neg := false

	// (12.34) means negative.
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// 12.34- means negative.
	if strings.HasSuffix(s, "-") {
		neg = true
		s = strings.TrimSuffix(s, "-")
	}

	// A standalone CR token marks a credit; DR carries no sign of its own.
	if creditTokenRe.MatchString(s) {
		neg = true
		s = creditTokenRe.ReplaceAllString(s, "")
	}
	s = debitTokenRe.ReplaceAllString(s, "")

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	// Keep digits, dot and signs only.
	s = amountNoiseRe.ReplaceAllString(s, "")

	// Collapse duplicated decimal points, keeping the first.
	if strings.Count(s, ".") > 1 {
		first := strings.Index(s, ".")
		s = s[:first+1] + strings.ReplaceAll(s[first+1:], ".", "")
	}

	switch s {
	case "", "-", "+", ".":
		return 0, fmt.Errorf("%w: %q", ErrUnparseableAmount, raw)
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnparseableAmount, raw)
	}

	if neg {
		return -math.Abs(val), nil
	}
	return val, nil
}
