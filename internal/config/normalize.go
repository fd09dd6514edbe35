package config

import (
	"fmt"
	"regexp"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeScan(); err != nil {
		return err
	}
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	return nil
}

func (c *Config) normalizePaths() error {
	for _, entry := range []struct {
		name  string
		value *string
	}{
		{"paths.output_dir", &c.Paths.OutputDir},
		{"paths.log_dir", &c.Paths.LogDir},
		{"paths.journal_db", &c.Paths.JournalDB},
	} {
		expanded, err := expandPath(strings.TrimSpace(*entry.value))
		if err != nil {
			return fmt.Errorf("%s: %w", entry.name, err)
		}
		*entry.value = expanded
	}
	return nil
}

func (c *Config) normalizeScan() error {
	extensions := make([]string, 0, len(c.Scan.ImageExtensions))
	for _, ext := range c.Scan.ImageExtensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			extensions = append(extensions, ext)
		}
	}
	c.Scan.ImageExtensions = extensions

	c.skipPatterns = c.skipPatterns[:0]
	for _, pattern := range c.Scan.Skip {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("scan.skip pattern %q: %w", pattern, err)
		}
		c.skipPatterns = append(c.skipPatterns, re)
	}
	return nil
}
