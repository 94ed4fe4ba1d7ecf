// Package config provides configuration management for the extdev toolkit.
package config

import "time"

// Default configuration values for extdev.
const (
	// DefaultExtensionName is the browser extension the tool is built around.
	DefaultExtensionName = "Klue"

	// DefaultWatchDir is the directory watched when none is specified.
	DefaultWatchDir = "."

	// DefaultInterval is the polling interval between change scans.
	DefaultInterval = time.Second

	// DefaultOutput is the report renderer used when none is specified.
	DefaultOutput = "pretty"

	// DefaultConfigDir is the default configuration directory path.
	DefaultConfigDir = "~/.config/extdev"

	// DefaultIconsDir is the directory icon files are written to.
	DefaultIconsDir = "icons"

	// DefaultIconBackground is the icon background fill color.
	DefaultIconBackground = "#4A90E2"

	// DefaultIconPanel is the rounded panel color behind the letter.
	DefaultIconPanel = "#FFFFFF"
)

// DefaultExtensions lists the file extensions watched by default. They cover
// the source files a Chrome extension reload actually picks up.
var DefaultExtensions = []string{".js", ".html", ".css", ".json"}

// DefaultIgnore lists filenames excluded from watching by default.
var DefaultIgnore = []string{"package-lock.json"}

// DefaultIgnorePatterns lists glob patterns for subtrees excluded from
// watching by default. node_modules alone would otherwise dominate every scan.
var DefaultIgnorePatterns = []string{"node_modules/**", ".git/**", "dist/**"}

// DefaultIconSizes lists the manifest icon sizes generated by default.
var DefaultIconSizes = []int{16, 32, 48, 128}
