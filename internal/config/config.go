// Package config loads application configuration from Viper and
// environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/calvescott/ledgerflow/internal/extract"
	"github.com/calvescott/ledgerflow/internal/sheets"
)

// LoadSheetsConfig assembles the Google Sheets configuration. Precedence:
// Viper (config file or LEDGERFLOW_ env vars), then direct environment
// variables the original tooling used (SHEET_ID, GOOGLE_SHEETS_*).
func LoadSheetsConfig() sheets.Config {
	cfg := sheets.Config{
		ServiceAccountPath: expandPath(viper.GetString("sheets.service_account_path")),
		ClientID:           viper.GetString("sheets.client_id"),
		ClientSecret:       viper.GetString("sheets.client_secret"),
		RefreshToken:       viper.GetString("sheets.refresh_token"),
		SpreadsheetID:      viper.GetString("sheets.spreadsheet_id"),
	}

	if cfg.ServiceAccountPath == "" {
		cfg.ServiceAccountPath = expandPath(os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"))
	}
	if cfg.ClientID == "" {
		cfg.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if cfg.ClientSecret == "" {
		cfg.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if cfg.RefreshToken == "" {
		cfg.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if cfg.SpreadsheetID == "" {
		cfg.SpreadsheetID = os.Getenv("SHEET_ID")
	}

	return cfg
}

// LoadGeminiConfig assembles the Vertex AI extractor configuration.
func LoadGeminiConfig() extract.GeminiConfig {
	cfg := extract.GeminiConfig{
		Project:  viper.GetString("gcp.project"),
		Location: viper.GetString("gcp.location"),
		Model:    viper.GetString("gemini.model"),
	}

	if cfg.Project == "" {
		cfg.Project = os.Getenv("GCP_PROJECT")
	}
	if cfg.Location == "" {
		cfg.Location = os.Getenv("GCP_LOCATION")
	}
	if cfg.Model == "" {
		cfg.Model = os.Getenv("GEMINI_MODEL")
	}

	return cfg
}

// ArchivePath returns the local run-archive database path.
func ArchivePath() string {
	if v := viper.GetString("archive.path"); v != "" {
		return expandPath(v)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ledgerflow.db"
	}
	return filepath.Join(home, ".local", "share", "ledgerflow", "ledgerflow.db")
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
