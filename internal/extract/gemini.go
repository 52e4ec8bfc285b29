package extract

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"google.golang.org/genai"

	"github.com/calvescott/ledgerflow/internal/common"
	"github.com/calvescott/ledgerflow/internal/model"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// GeminiConfig holds Vertex AI settings for the Gemini extractor.
type GeminiConfig struct {
	Project  string
	Location string
	Model    string
}

// Validate checks that the required Vertex AI settings are present.
func (c *GeminiConfig) Validate() error {
	if c.Project == "" {
		return fmt.Errorf("%w: GCP project", common.ErrMissingConfig)
	}
	return nil
}

// GeminiExtractor extracts transactions from statement PDFs with Gemini on
// Vertex AI.
type GeminiExtractor struct {
	client *genai.Client
	logger *slog.Logger
	model  string
}

// NewGeminiExtractor creates a Gemini-backed statement extractor.
func NewGeminiExtractor(ctx context.Context, config GeminiConfig, logger *slog.Logger) (*GeminiExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Location == "" {
		config.Location = "us-central1"
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  config.Project,
		Location: config.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiExtractor{
		client: client,
		logger: logger,
		model:  config.Model,
	}, nil
}

// Extract sends the statement PDF and the extraction prompt to the model
// and decodes its JSON reply. Caller hints fill in anything the model
// leaves blank.
func (e *GeminiExtractor) Extract(ctx context.Context, doc Document) (*model.Statement, error) {
	pdfPart, err := pdfPart(doc)
	if err != nil {
		return nil, err
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				pdfPart,
				{Text: extractPrompt(doc.Bank)},
			},
		},
	}

	e.logger.Info("extracting statement", "source", doc.Source(), "model", e.model)

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", common.ErrBadModelOutput)
	}

	stmt, err := decodeStatement(text)
	if err != nil {
		return nil, err
	}
	if len(stmt.Transactions) == 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrNoTransactions, doc.Source())
	}

	if stmt.Bank == "" {
		stmt.Bank = doc.Bank
	}
	stmt.AccountType = model.ParseAccountType(string(stmt.AccountType))
	if stmt.AccountType == model.AccountTypeUnknown {
		stmt.AccountType = doc.AccountType
	}

	e.logger.Info("statement extracted",
		"bank", stmt.Bank,
		"account_type", string(stmt.AccountType),
		"transactions", len(stmt.Transactions))

	return stmt, nil
}

// pdfPart builds the document part: inline bytes for local files, a file
// reference for GCS objects.
func pdfPart(doc Document) (*genai.Part, error) {
	if doc.GCSURI != "" {
		return &genai.Part{
			FileData: &genai.FileData{
				FileURI:  doc.GCSURI,
				MIMEType: "application/pdf",
			},
		}, nil
	}

	if doc.LocalPath == "" {
		return nil, fmt.Errorf("%w: document needs a local path or a gs:// URI", common.ErrInvalidConfig)
	}

	data, err := os.ReadFile(doc.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read statement PDF: %w", err)
	}

	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: "application/pdf",
			Data:     data,
		},
	}, nil
}
