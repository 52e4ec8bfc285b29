package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvescott/ledgerflow/internal/model"
)

func newTestArchive(t *testing.T) *SQLiteArchive {
	t.Helper()
	archive, err := NewSQLiteArchive(filepath.Join(t.TempDir(), "ledgerflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func TestSaveRunAndReadBack(t *testing.T) {
	archive := newTestArchive(t)
	ctx := context.Background()

	txns := []model.Transaction{
		{
			Date:             "2025-11-05",
			Category:         "Eating Out",
			Description:      "Tim Hortons",
			NormalizedAmount: 6.25,
			Bank:             "RBC",
			AccountType:      model.AccountTypeDeposit,
		},
		{
			Date:             "2025-11-07",
			Category:         "Transfers",
			Description:      "E-Transfer",
			NormalizedAmount: -100,
			Bank:             "RBC",
			AccountType:      model.AccountTypeDeposit,
			IsBookkeeping:    true,
		},
	}

	runID, err := archive.SaveRun(ctx, "2025-11", "RBC CHQ", txns)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	rows, err := archive.RunRows(ctx, runID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"2025-11-05", "Eating Out", "Tim Hortons", "6.25", "RBC", "false"}, rows[0])
	assert.Equal(t, []string{"2025-11-07", "Transfers", "E-Transfer", "-100.00", "RBC", "true"}, rows[1])
}

func TestSaveRunEmptyBatch(t *testing.T) {
	archive := newTestArchive(t)

	runID, err := archive.SaveRun(context.Background(), "2025-11", "RBC CHQ", nil)
	require.NoError(t, err)

	rows, err := archive.RunRows(context.Background(), runID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRunRowsUnknownRun(t *testing.T) {
	archive := newTestArchive(t)

	rows, err := archive.RunRows(context.Background(), "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, rows)
}
