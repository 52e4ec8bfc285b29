// Package model defines the core data structures for the ledgerflow application.
package model

import "strings"

// AccountType classifies the source account of a statement.
type AccountType string

// Known account types. An empty AccountType means the extractor could not
// determine one and classification falls back to bank-name hints.
const (
	AccountTypeCreditCard AccountType = "credit_card"
	AccountTypeDeposit    AccountType = "deposit_account"
	AccountTypeUnknown    AccountType = ""
)

// ParseAccountType maps free-form extractor output onto a known account type.
func ParseAccountType(s string) AccountType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(AccountTypeCreditCard):
		return AccountTypeCreditCard
	case string(AccountTypeDeposit):
		return AccountTypeDeposit
	default:
		return AccountTypeUnknown
	}
}

// RawTransaction is one line item as produced by the extraction step.
// Amount arrives as whatever the extractor emitted: a JSON number, a
// string with currency noise, or worse.
type RawTransaction struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Amount      any    `json:"amount"`
}

// Statement is the extractor's output for one source document.
type Statement struct {
	Bank         string           `json:"bank"`
	AccountType  AccountType      `json:"account_type"`
	Transactions []RawTransaction `json:"transactions"`
}

// Transaction is one normalized, categorized ledger record. It is built
// once from a RawTransaction and never mutated afterwards.
type Transaction struct {
	Date             string
	Description      string
	Bank             string
	AccountType      AccountType
	Category         string
	ParsedAmount     float64
	NormalizedAmount float64
	IsBookkeeping    bool
}

// Header is the fixed six-column row schema shared by CSV output and the
// tabular store. Order matters; the section upsert protocol reproduces it
// verbatim in every section's title row.
var Header = []string{"Date", "Category", "Merchant/Description", "Amount", "Bank", "IsBookkeeping"}
