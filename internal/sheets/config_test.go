package sheets

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calvescott/ledgerflow/internal/common"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		config  Config
	}{
		{
			name: "service account",
			config: Config{
				SpreadsheetID:      "sheet-123",
				ServiceAccountPath: "/path/to/key.json",
			},
		},
		{
			name: "oauth credentials",
			config: Config{
				SpreadsheetID: "sheet-123",
				ClientID:      "client",
				ClientSecret:  "secret",
				RefreshToken:  "token",
			},
		},
		{
			name:    "missing spreadsheet id",
			config:  Config{ServiceAccountPath: "/path/to/key.json"},
			wantErr: common.ErrMissingConfig,
		},
		{
			name: "partial oauth credentials",
			config: Config{
				SpreadsheetID: "sheet-123",
				ClientID:      "client",
				RefreshToken:  "token",
			},
			wantErr: common.ErrMissingConfig,
		},
		{
			name: "both auth methods",
			config: Config{
				SpreadsheetID:      "sheet-123",
				ServiceAccountPath: "/path/to/key.json",
				ClientID:           "client",
				ClientSecret:       "secret",
				RefreshToken:       "token",
			},
			wantErr: common.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHeaderColorFor(t *testing.T) {
	assert.Equal(t, Color{Red: 0.86, Green: 0.93, Blue: 1.0}, HeaderColorFor("RBC"))
	assert.Equal(t, Color{Red: 0.98, Green: 0.92, Blue: 0.86}, HeaderColorFor("Scotiabank"))
	assert.Equal(t, Color{Red: 0.92, Green: 0.92, Blue: 0.92}, HeaderColorFor("Tangerine"))
}
