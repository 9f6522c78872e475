// Package manifest resolves the authoritative input file list, expanding
// a single markdown file through its sidecar TOML manifest when present.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"md2pdf/internal/fileutil"
	"md2pdf/internal/tomlutil"
)

// Sentinel errors for input resolution.
var (
	ErrNoInput       = errors.New("no input files")
	ErrManifestParse = errors.New("failed to parse manifest")
	ErrEmptyFileList = errors.New("manifest file list is empty")
)

// manifestFile mirrors the sidecar shape: a [default] table carrying the
// ordered file list. Other tables in the sidecar are ignored.
type manifestFile struct {
	Default *defaultSection `toml:"default"`
}

type defaultSection struct {
	Files []string `toml:"files"`
}

// SidecarPath returns the manifest path for an input file: the input's
// extension replaced by .toml.
func SidecarPath(input string) string {
	return fileutil.ReplaceExt(input, ".toml")
}

// Resolve decides the final input list for the converter.
//
// An explicit multi-file invocation always wins and is returned
// unchanged. A single input is expanded through its sidecar manifest if
// one exists: default.files becomes the final ordered list. A sidecar
// without the expected structure produces a warning and falls back to
// the original file; an explicitly empty file list is an error, as is a
// sidecar that does not parse.
func Resolve(inputs []string) (files []string, warnings []string, err error) {
	if len(inputs) == 0 {
		return nil, nil, ErrNoInput
	}
	if len(inputs) > 1 {
		return inputs, nil, nil
	}

	sidecar := SidecarPath(inputs[0])
	if !fileutil.FileExists(sidecar) {
		return inputs, nil, nil
	}

	data, err := os.ReadFile(sidecar) // #nosec G304 -- sidecar derived from a user-supplied input path
	if err != nil {
		return nil, nil, fmt.Errorf("reading manifest %s: %w", sidecar, err)
	}

	var mf manifestFile
	if err := tomlutil.Unmarshal(data, &mf); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrManifestParse, sidecar, err)
	}

	if mf.Default == nil || mf.Default.Files == nil {
		return inputs, []string{fmt.Sprintf("no file names found in %s", sidecar)}, nil
	}
	if len(mf.Default.Files) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrEmptyFileList, sidecar)
	}
	return mf.Default.Files, nil, nil
}
