package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/calvescott/ledgerflow/internal/analytics"
	"github.com/calvescott/ledgerflow/internal/cli"
	"github.com/calvescott/ledgerflow/internal/common"
	"github.com/calvescott/ledgerflow/internal/config"
	"github.com/calvescott/ledgerflow/internal/extract"
	"github.com/calvescott/ledgerflow/internal/model"
	"github.com/calvescott/ledgerflow/internal/pipeline"
	"github.com/calvescott/ledgerflow/internal/sheets"
	"github.com/calvescott/ledgerflow/internal/storage"
)

type processOptions struct {
	bank        string
	accountType string
	out         string
	month       string
	label       string
	sheetID     string
	ofx         bool
	sheet       bool
	archive     bool
}

func processCmd() *cobra.Command {
	opts := &processOptions{}

	cmd := &cobra.Command{
		Use:   "process [documents...]",
		Short: "Extract, normalize and categorize statements, then write CSV and Sheets sections",
		Long: `Process one or more bank statement documents. Each document is either a
local path or a gs://bucket/object URI. PDF statements go through the
Gemini extractor; pass --ofx for OFX/QFX exports.

Examples:
  ledgerflow process --bank RBC --type deposit_account statements/rbc_chq_nov.pdf
  ledgerflow process --bank Scotiabank --type credit_card gs://statements/amex_nov.pdf \
      --sheet --label "Scotia Amex"
  ledgerflow process --bank RBC --type deposit_account --ofx export.qfx --sheet`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.bank, "bank", "", `bank name, e.g. "RBC" or "Scotiabank"`)
	cmd.Flags().StringVar(&opts.accountType, "type", "", "account type: credit_card or deposit_account")
	cmd.Flags().BoolVar(&opts.ofx, "ofx", false, "treat inputs as OFX/QFX files instead of PDFs")
	cmd.Flags().StringVar(&opts.out, "out", "", "output CSV filename (default: transactions_<bank>_<timestamp>.csv)")
	cmd.Flags().BoolVar(&opts.sheet, "sheet", false, "write results into the shared Google Sheet")
	cmd.Flags().StringVar(&opts.sheetID, "sheet-id", "", "spreadsheet id (or set SHEET_ID / sheets.spreadsheet_id)")
	cmd.Flags().StringVar(&opts.month, "month", "", "override the month tab key, e.g. 2025-11")
	cmd.Flags().StringVar(&opts.label, "label", "", `section label, e.g. "RBC CHQ" (default: "<bank> (<type>)")`)
	cmd.Flags().BoolVar(&opts.archive, "archive", false, "record the processed batch in the local run archive")

	_ = cmd.MarkFlagRequired("bank")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func runProcess(ctx context.Context, opts *processOptions, inputs []string) error {
	accountType := model.ParseAccountType(opts.accountType)
	if accountType == model.AccountTypeUnknown {
		return fmt.Errorf("invalid --type %q: want credit_card or deposit_account", opts.accountType)
	}

	// Configuration problems surface before any extraction work begins.
	var sheetsConfig sheets.Config
	if opts.sheet {
		sheetsConfig = config.LoadSheetsConfig()
		if opts.sheetID != "" {
			sheetsConfig.SpreadsheetID = opts.sheetID
		}
		if err := sheetsConfig.Validate(); err != nil {
			return common.NewUserError("cannot write to Google Sheets", err)
		}
	}

	extractor, err := buildExtractor(ctx, opts)
	if err != nil {
		return err
	}

	txns, bank, err := extractAll(ctx, extractor, opts.bank, accountType, inputs)
	if err != nil {
		return err
	}

	now := time.Now()
	outPath := opts.out
	if outPath == "" {
		outPath = pipeline.DefaultCSVName(bank, now)
	}
	if err := writeCSVFile(outPath, txns); err != nil {
		return err
	}

	summary := analytics.Summarize(txns)
	monthKey := opts.month
	if monthKey == "" {
		monthKey = pipeline.InferMonth(txns, now)
	}
	label := opts.label
	if label == "" {
		label = fmt.Sprintf("%s (%s)", bank, accountType)
	}

	if opts.sheet {
		anchor, err := upsertSection(ctx, sheetsConfig, bank, monthKey, label, txns, summary)
		if err != nil {
			return err
		}
		slog.Info("wrote sheet section",
			"month", monthKey,
			"label", label,
			"anchor", anchor)
	}

	if opts.archive {
		archive, err := storage.NewSQLiteArchive(config.ArchivePath())
		if err != nil {
			return err
		}
		defer func() { _ = archive.Close() }()

		runID, err := archive.SaveRun(ctx, monthKey, label, txns)
		if err != nil {
			return fmt.Errorf("failed to archive run: %w", err)
		}
		common.LogInfo("archived run", common.Fields{"run_id": runID, "rows": len(txns)})
	}

	fmt.Printf("Bank: %s | account_type: %s\n", bank, accountType)
	fmt.Printf("Wrote %d rows -> %s\n", len(txns), outPath)
	fmt.Println(cli.TitleStyle.Render("Spend summary"))
	fmt.Println(cli.RenderSummary(summary))

	return nil
}

// extractAll runs every input through the extractor and the deterministic
// pipeline, accumulating one combined batch. The bank the extractor reports
// wins over the caller's hint; the last non-empty report sticks.
func extractAll(ctx context.Context, extractor extract.Extractor, bankHint string, accountType model.AccountType, inputs []string) ([]model.Transaction, string, error) {
	bank := bankHint
	var txns []model.Transaction

	var bar *progressbar.ProgressBar
	if len(inputs) > 1 {
		bar = progressbar.Default(int64(len(inputs)), "processing statements")
	}

	for _, input := range inputs {
		doc := extract.Document{Bank: bankHint, AccountType: accountType}
		if strings.HasPrefix(input, "gs://") {
			doc.GCSURI = input
		} else {
			doc.LocalPath = input
		}

		stmt, err := extractor.Extract(ctx, doc)
		if err != nil {
			common.LogError(err, "extraction failed", common.Fields{"source": doc.Source()})
			return nil, "", fmt.Errorf("failed to extract %s: %w", doc.Source(), err)
		}
		if stmt.Bank != "" {
			bank = stmt.Bank
		}
		if stmt.AccountType == model.AccountTypeUnknown {
			stmt.AccountType = accountType
		}

		batch, err := pipeline.AssembleRows(stmt)
		if err != nil {
			return nil, "", fmt.Errorf("failed to process %s: %w", doc.Source(), err)
		}
		txns = append(txns, batch...)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return txns, bank, nil
}

func buildExtractor(ctx context.Context, opts *processOptions) (extract.Extractor, error) {
	if opts.ofx {
		return extract.NewOFXExtractor(slog.Default()), nil
	}
	return extract.NewGeminiExtractor(ctx, config.LoadGeminiConfig(), slog.Default())
}

func upsertSection(ctx context.Context, sheetsConfig sheets.Config, bank, monthKey, label string, txns []model.Transaction, summary []string) (int, error) {
	client, err := sheets.NewClient(ctx, sheetsConfig, slog.Default())
	if err != nil {
		return 0, err
	}

	engine := sheets.NewEngine(client, slog.Default())
	return engine.Upsert(ctx, monthKey, label, sheets.HeaderColorFor(bank), pipeline.Rows(txns), summary)
}

func writeCSVFile(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := pipeline.WriteCSV(f, txns); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
