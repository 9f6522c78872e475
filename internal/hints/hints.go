// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"runtime"
)

// ForConfigNotFound returns hints for config resolution failures.
// Suggests the MD2PDF_CONFIG override and creating the home dotfile.
func ForConfigNotFound(home string) string {
	hint := "set MD2PDF_CONFIG=/path/to/config.toml"
	if home != "" {
		hint += " or create " + filepath.Join(home, ".md2pdf.toml")
	}
	return format(hint)
}

// ForPandocNotFound returns a per-OS install hint for a missing pandoc.
func ForPandocNotFound() string {
	switch runtime.GOOS {
	case "darwin":
		return format("install pandoc: brew install pandoc")
	case "windows":
		return format("install pandoc: scoop install pandoc (or choco install pandoc)")
	default:
		return format("install pandoc: sudo apt-get install pandoc (or your package manager)")
	}
}

// ForEngineNotFound returns a hint for a PDF engine missing from PATH.
func ForEngineNotFound(engine string) string {
	return format("install a TeX distribution providing " + engine + ", or choose another --pdf-engine")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
