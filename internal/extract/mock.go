package extract

import (
	"context"

	"github.com/calvescott/ledgerflow/internal/model"
)

// MockExtractor is an Extractor for tests.
type MockExtractor struct {
	Statement *model.Statement
	Err       error
	Calls     []Document
}

// Extract implements Extractor.
func (m *MockExtractor) Extract(_ context.Context, doc Document) (*model.Statement, error) {
	m.Calls = append(m.Calls, doc)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Statement, nil
}
