// Package config locates, loads, and validates the md2pdf configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"md2pdf/internal/tomlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrConfigInvalid   = errors.New("invalid config")
	ErrSectionNotFound = errors.New("config section not found")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Field length limits.
const (
	MaxNameLength     = 100  // Organization name
	MaxEmailLength    = 254  // RFC 5321
	MaxPathLength     = 2048 // Template and logo paths
	MaxPlatformLength = 100  // Platform footer label
	MaxMarkerLength   = 100  // Workspace marker segment
)

// DefaultLogoWidth is the logo-width value used when the logo table
// does not set one.
const DefaultLogoWidth = 41

// Config holds the resolved configuration for one run.
type Config struct {
	Template  string // pandoc template path (empty = pandoc default)
	Email     string // contact email, shown in diagnostics
	Name      string // organization name used in footer branding
	Platform  string // platform footer label (empty = built-in default)
	Logo      LogoConfig
	Workspace WorkspaceConfig
}

// LogoConfig defines title-page logo injection.
type LogoConfig struct {
	Path          string // empty = no logo
	Width         int
	WorkspaceOnly bool // inject only when the main input is inside the workspace tree
}

// WorkspaceConfig defines the workspace-detection marker.
type WorkspaceConfig struct {
	Marker string // path segment identifying the workspace tree
}

// profileKeys are the scalar keys allowed at the top level and inside
// named section tables.
var profileKeys = map[string]bool{
	"template": true,
	"email":    true,
	"name":     true,
	"platform": true,
}

// Load reads the config file at path, validates it against the declared
// shape, and applies the named section's overrides when section is
// non-empty. The parsed mapping never outlives this call; callers get a
// plain value back.
func Load(path, section string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path resolved by Locate or user override
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	mapping, err := tomlutil.DecodeMapping(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return fromMapping(mapping, section)
}

// fromMapping validates the generic mapping and builds a Config.
// Top-level tables other than [logo] and [workspace] are named sections;
// any other unrecognized top-level key fails validation.
func fromMapping(mapping map[string]any, section string) (*Config, error) {
	cfg := &Config{Logo: LogoConfig{Width: DefaultLogoWidth}}

	sections := map[string]map[string]any{}
	for key, raw := range mapping {
		switch key {
		case "template", "email", "name", "platform":
			// applied below
		case "logo":
			table, err := asTable(key, raw)
			if err != nil {
				return nil, err
			}
			if err := applyLogo(table, &cfg.Logo); err != nil {
				return nil, err
			}
		case "workspace":
			table, err := asTable(key, raw)
			if err != nil {
				return nil, err
			}
			if err := applyWorkspace(table, &cfg.Workspace); err != nil {
				return nil, err
			}
		default:
			table, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w: unknown key %q", ErrConfigInvalid, key)
			}
			if err := validateSection(key, table); err != nil {
				return nil, err
			}
			sections[key] = table
		}
	}

	if err := applyProfile(mapping, cfg, ""); err != nil {
		return nil, err
	}

	if section != "" {
		table, ok := sections[section]
		if !ok {
			return nil, fmt.Errorf("%w: %q (available: %s)", ErrSectionNotFound, section, sectionNames(sections))
		}
		if err := applyProfile(table, cfg, section+"."); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyProfile copies the scalar profile keys from a mapping into cfg.
// prefix qualifies field names in error messages ("" or "section.").
func applyProfile(m map[string]any, cfg *Config, prefix string) error {
	fields := []struct {
		key string
		dst *string
	}{
		{"template", &cfg.Template},
		{"email", &cfg.Email},
		{"name", &cfg.Name},
		{"platform", &cfg.Platform},
	}
	for _, f := range fields {
		raw, ok := m[f.key]
		if !ok {
			continue
		}
		s, err := asString(prefix+f.key, raw)
		if err != nil {
			return err
		}
		*f.dst = s
	}
	return nil
}

// validateSection rejects keys outside the profile set inside a named
// section table.
func validateSection(name string, table map[string]any) error {
	for key := range table {
		if !profileKeys[key] {
			return fmt.Errorf("%w: unknown key %q in section %q", ErrConfigInvalid, key, name)
		}
	}
	return nil
}

func applyLogo(table map[string]any, logo *LogoConfig) error {
	for key, raw := range table {
		switch key {
		case "path":
			s, err := asString("logo.path", raw)
			if err != nil {
				return err
			}
			logo.Path = s
		case "width":
			n, err := asInt("logo.width", raw)
			if err != nil {
				return err
			}
			if n <= 0 {
				return fmt.Errorf("%w: logo.width must be positive, got %d", ErrConfigInvalid, n)
			}
			logo.Width = n
		case "workspace-only":
			b, err := asBool("logo.workspace-only", raw)
			if err != nil {
				return err
			}
			logo.WorkspaceOnly = b
		default:
			return fmt.Errorf("%w: unknown key %q in [logo]", ErrConfigInvalid, key)
		}
	}
	return nil
}

func applyWorkspace(table map[string]any, ws *WorkspaceConfig) error {
	for key, raw := range table {
		switch key {
		case "marker":
			s, err := asString("workspace.marker", raw)
			if err != nil {
				return err
			}
			ws.Marker = s
		default:
			return fmt.Errorf("%w: unknown key %q in [workspace]", ErrConfigInvalid, key)
		}
	}
	return nil
}

// Validate checks field lengths and value constraints. Called by Load,
// but available for consumers that construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("template", c.Template, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("email", c.Email, MaxEmailLength); err != nil {
		return err
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return fmt.Errorf("%w: email %q is not an address", ErrConfigInvalid, c.Email)
	}
	if err := validateFieldLength("name", c.Name, MaxNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("platform", c.Platform, MaxPlatformLength); err != nil {
		return err
	}
	if err := validateFieldLength("logo.path", c.Logo.Path, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("workspace.marker", c.Workspace.Marker, MaxMarkerLength); err != nil {
		return err
	}
	if strings.ContainsAny(c.Workspace.Marker, "/\\") {
		return fmt.Errorf("%w: workspace.marker must be a single path segment", ErrConfigInvalid)
	}
	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func asString(field string, raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string, got %T", ErrConfigInvalid, field, raw)
	}
	return s, nil
}

func asInt(field string, raw any) (int, error) {
	n, ok := raw.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: %s must be an integer, got %T", ErrConfigInvalid, field, raw)
	}
	return int(n), nil
}

func asBool(field string, raw any) (bool, error) {
	b, ok := raw.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean, got %T", ErrConfigInvalid, field, raw)
	}
	return b, nil
}

func asTable(field string, raw any) (map[string]any, error) {
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a table, got %T", ErrConfigInvalid, field, raw)
	}
	return table, nil
}

func sectionNames(sections map[string]map[string]any) string {
	if len(sections) == 0 {
		return "none"
	}
	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
