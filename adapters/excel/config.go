package excel

import "path/filepath"

// Config holds configuration for Excel adapter
type Config struct {
	Dir       string // Directory searched when a workbook is opened by name
	Extension string // Extension appended to names without one (default: .xlsx)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Dir != "" && !filepath.IsAbs(c.Dir) {
		abs, err := filepath.Abs(c.Dir)
		if err != nil {
			return ErrInvalidDir
		}
		c.Dir = abs
	}
	if c.Extension == "" {
		c.Extension = ".xlsx"
	}
	return nil
}
