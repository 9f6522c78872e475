package main

import (
	"fmt"
	"io"
	"strings"
)

// envConfig holds configuration from environment variables.
// Environment values take precedence over the config file.
type envConfig struct {
	ConfigPath string // MD2PDF_CONFIG: config file path override
	Template   string // MD2PDF_TEMPLATE: pandoc template path
	Email      string // MD2PDF_EMAIL: contact email
	EmailOrg   string // MD2PDF_EMAIL_ORG: contact email used with --org
}

// knownEnvVars lists valid MD2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2PDF_CONFIG":    true,
	"MD2PDF_TEMPLATE":  true,
	"MD2PDF_EMAIL":     true,
	"MD2PDF_EMAIL_ORG": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	return &envConfig{
		ConfigPath: getenv("MD2PDF_CONFIG"),
		Template:   getenv("MD2PDF_TEMPLATE"),
		Email:      getenv("MD2PDF_EMAIL"),
		EmailOrg:   getenv("MD2PDF_EMAIL_ORG"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized MD2PDF_* variables.
// Helps catch typos like MD2PDF_TEMPLAT instead of MD2PDF_TEMPLATE.
// environ takes "KEY=value" entries as produced by os.Environ.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if strings.HasPrefix(env, "MD2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}
