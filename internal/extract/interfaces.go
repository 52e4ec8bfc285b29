// Package extract turns source documents into raw transaction statements.
// Extractors are deliberately narrow so the deterministic pipeline can be
// tested without any live network dependency.
package extract

import (
	"context"

	"github.com/calvescott/ledgerflow/internal/model"
)

// Document points at one source statement.
type Document struct {
	// LocalPath is a file on disk. Mutually exclusive with GCSURI.
	LocalPath string
	// GCSURI is a gs://bucket/object reference.
	GCSURI string
	// Bank is the caller-supplied bank name hint.
	Bank string
	// AccountType is the caller-supplied fallback account type.
	AccountType model.AccountType
}

// Source returns a printable label for the document's origin.
func (d Document) Source() string {
	if d.GCSURI != "" {
		return d.GCSURI
	}
	return d.LocalPath
}

// Extractor yields the raw transaction triples of one document. The
// extractor's own correctness is not this system's concern; only the
// output contract is.
type Extractor interface {
	Extract(ctx context.Context, doc Document) (*model.Statement, error)
}
