package config

import (
	"fmt"
	"path/filepath"

	"md2pdf/internal/fileutil"
)

// Severity classifies a locator outcome.
type Severity int

// Severity levels, from harmless to terminal.
const (
	SeverityOK Severity = iota
	SeverityWarn
	SeverityError
	SeverityFatal
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityOK:
		return "OK"
	case SeverityWarn:
		return "WARN"
	case SeverityError:
		return "ERROR"
	case SeverityFatal:
		return "FATAL"
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

// Outcome is the result of a config location attempt. Msg holds the
// resolved path when Status is SeverityOK and a human-readable reason
// otherwise. Immutable once constructed.
type Outcome struct {
	Status Severity
	Msg    string
}

// Err converts a non-OK outcome into an error whose message is exactly
// the locator's diagnostic, matchable against ErrConfigNotFound.
func (o Outcome) Err() error {
	if o.Status == SeverityOK {
		return nil
	}
	return &locateError{msg: o.Msg}
}

type locateError struct {
	msg string
}

func (e *locateError) Error() string { return e.msg }

func (e *locateError) Is(target error) bool { return target == ErrConfigNotFound }

// Environment variable names consumed by the locator.
const (
	EnvConfigPath = "MD2PDF_CONFIG"
	EnvHome       = "HOME"
)

// Config file locations probed under the home directory, in order.
const (
	homeDotfile   = ".md2pdf.toml"
	homeConfigDir = ".config/md2pdf/config.toml"
)

// Locate finds exactly one configuration file path for this run.
//
// Precedence: the MD2PDF_CONFIG override, then ~/.md2pdf.toml, then
// ~/.config/md2pdf/config.toml. An override pointing at a missing file
// is fatal rather than falling through to the probes. An empty or unset
// HOME skips the probes entirely; no candidate path is ever built from
// an empty home directory.
//
// Locate never fails with an error; callers must check Status before
// using Msg as a path.
func Locate(getenv func(string) string) Outcome {
	if override := getenv(EnvConfigPath); override != "" {
		if !fileutil.FileExists(override) {
			return Outcome{Status: SeverityFatal, Msg: fmt.Sprintf("Config file %s doesn't exist", override)}
		}
		return Outcome{Status: SeverityOK, Msg: override}
	}

	if home := getenv(EnvHome); home != "" {
		candidates := []string{
			filepath.Join(home, homeDotfile),
			filepath.Join(home, filepath.FromSlash(homeConfigDir)),
		}
		for _, candidate := range candidates {
			if fileutil.FileExists(candidate) {
				return Outcome{Status: SeverityOK, Msg: candidate}
			}
		}
	}

	return Outcome{Status: SeverityFatal, Msg: "No config file found"}
}
