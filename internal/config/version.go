package config

import (
	"os"
	"path/filepath"
	"strings"
)

// buildVersion is set at link time with -ldflags "-X bikeshare/internal/config.buildVersion=..."
var buildVersion string

// GetVersion returns the dashboard version: APP_VERSION, then the link-time
// value, then the VERSION file next to the binary's working directory.
func GetVersion() string {
	if envVersion := os.Getenv("APP_VERSION"); envVersion != "" {
		return envVersion
	}
	if buildVersion != "" {
		return buildVersion
	}
	return getBaseVersion()
}

// getBaseVersion reads the base version from VERSION file
func getBaseVersion() string {
	for _, p := range []string{"VERSION", filepath.Join("..", "VERSION")} {
		if content, err := os.ReadFile(p); err == nil {
			if v := strings.TrimSpace(string(content)); v != "" {
				return v
			}
		}
	}
	return "0.1.0"
}
