package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/calvescott/ledgerflow/internal/common"
	"github.com/calvescott/ledgerflow/internal/gcs"
	"github.com/calvescott/ledgerflow/internal/model"
)

// OFXExtractor reads transactions from OFX/QFX files exported from a bank,
// bypassing the document-understanding model entirely.
type OFXExtractor struct {
	logger *slog.Logger
}

// NewOFXExtractor creates an OFX/QFX statement extractor.
func NewOFXExtractor(logger *slog.Logger) *OFXExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &OFXExtractor{logger: logger}
}

var severityRe = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY values must be upper case (INFO, WARN, ERROR).
	content = severityRe.ReplaceAllStringFunc(content, strings.ToUpper)

	return content
}

// Extract parses the OFX document into raw transaction triples. Amounts
// keep the sign the file carries; the pipeline rederives signs anyway.
func (e *OFXExtractor) Extract(ctx context.Context, doc Document) (*model.Statement, error) {
	var content []byte
	var err error
	switch {
	case doc.GCSURI != "":
		content, err = gcs.Download(ctx, doc.GCSURI)
	case doc.LocalPath != "":
		content, err = os.ReadFile(doc.LocalPath)
	default:
		return nil, fmt.Errorf("%w: OFX extraction needs a local file or gs:// URI", common.ErrInvalidConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	stmt := &model.Statement{
		Bank:        doc.Bank,
		AccountType: doc.AccountType,
	}

	for _, msg := range resp.Bank {
		if bank, ok := msg.(*ofxgo.StatementResponse); ok && bank.BankTranList != nil {
			if stmt.AccountType == model.AccountTypeUnknown {
				stmt.AccountType = model.AccountTypeDeposit
			}
			for _, tx := range bank.BankTranList.Transactions {
				stmt.Transactions = append(stmt.Transactions, convertOFXTransaction(tx))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if cc, ok := msg.(*ofxgo.CCStatementResponse); ok && cc.BankTranList != nil {
			if stmt.AccountType == model.AccountTypeUnknown {
				stmt.AccountType = model.AccountTypeCreditCard
			}
			for _, tx := range cc.BankTranList.Transactions {
				stmt.Transactions = append(stmt.Transactions, convertOFXTransaction(tx))
			}
		}
	}

	if stmt.Bank == "" {
		stmt.Bank = string(resp.Signon.Org)
	}

	e.logger.Info("parsed OFX file",
		"source", doc.Source(),
		"transactions", len(stmt.Transactions))

	return stmt, nil
}

func convertOFXTransaction(tx ofxgo.Transaction) model.RawTransaction {
	desc := string(tx.Name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		desc = string(tx.Payee.Name)
	} else if tx.Memo != "" && desc == "" {
		desc = string(tx.Memo)
	}

	amount, _ := tx.TrnAmt.Float64()

	return model.RawTransaction{
		Date:        tx.DtPosted.Time.Format("2006-01-02"),
		Description: strings.TrimSpace(desc),
		Amount:      amount,
	}
}
