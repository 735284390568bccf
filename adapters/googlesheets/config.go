package googlesheets

import (
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

// Config represents configuration specific to Google Sheets adapter
type Config struct {
	ValueInputOption string   // How written values are interpreted: RAW or USER_ENTERED (default: RAW)
	Scopes           []string // OAuth scopes requested for credentials (default: DefaultScopes)
}

// DefaultScopes allow reading and writing spreadsheets and looking them up by name
var DefaultScopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveReadonlyScope,
}

func (c Config) withDefaults() Config {
	if c.ValueInputOption == "" {
		c.ValueInputOption = "RAW"
	}
	if len(c.Scopes) == 0 {
		c.Scopes = DefaultScopes
	}
	return c
}
