// Package pandoc assembles and runs the external pandoc invocation.
// It owns the engine enumeration, the derived output naming, the footer
// branding, and the single synchronous subprocess call. Pandoc's own
// rendering behavior is out of scope; this package only builds its
// argument list and reports its exit status.
package pandoc

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"md2pdf/internal/fileutil"
)

// Binary is the converter executable name, resolved via PATH.
const Binary = "pandoc"

// HighlightStyle is the fixed syntax highlighting style passed to pandoc.
const HighlightStyle = "pygments"

// Engine selects the PDF rendering engine passed to pandoc.
type Engine string

// Accepted engines. DefaultEngine applies when no flag is given.
const (
	EngineXeLaTeX  Engine = "xelatex"
	EngineLuaLaTeX Engine = "lualatex"
	EngineTectonic Engine = "tectonic"

	DefaultEngine = EngineXeLaTeX
)

// ErrInvalidEngine is returned for an engine name outside the accepted set.
var ErrInvalidEngine = errors.New("invalid pdf engine")

// Engines lists the accepted engine names in display order.
func Engines() []Engine {
	return []Engine{EngineXeLaTeX, EngineLuaLaTeX, EngineTectonic}
}

// ParseEngine validates an engine name.
func ParseEngine(s string) (Engine, error) {
	switch Engine(s) {
	case EngineXeLaTeX, EngineLuaLaTeX, EngineTectonic:
		return Engine(s), nil
	}
	return "", fmt.Errorf("%w: %q (must be one of xelatex, lualatex, tectonic)", ErrInvalidEngine, s)
}

// Options carries everything needed to assemble one pandoc invocation.
// Constructed once per run; Build does not mutate it.
type Options struct {
	Inputs       []string // resolved input files, in order
	OutputFile   string   // derived from the main input's stem
	Template     string   // empty = pandoc's default template
	Engine       Engine
	FooterCenter string
	NoTitle      bool
	NoTOC        bool
	Logo         string // empty = no logo injection
	LogoWidth    int
}

// OutputExt returns the output extension for the tex-file flag.
func OutputExt(texFile bool) string {
	if texFile {
		return ".tex"
	}
	return ".pdf"
}

// OutputFile derives the output filename from the main input file: its
// stem plus the derived extension, always in the current directory.
func OutputFile(mainInput string, texFile bool) string {
	return fileutil.Stem(mainInput) + OutputExt(texFile)
}

// MainInput returns the realpath-normalized first input file. The main
// file defines the output name and the workspace check. Resolution
// failures fall back to the absolute, then the original, path.
func MainInput(inputs []string) string {
	abs, err := filepath.Abs(inputs[0])
	if err != nil {
		return inputs[0]
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs
	}
	return resolved
}

// InWorkspace reports whether a normalized path sits inside a directory
// tree named by marker. The marker must match a whole path segment, so
// marker "work" does not match "/workshop". An empty marker never
// matches.
func InWorkspace(path, marker string) bool {
	if marker == "" {
		return false
	}
	p := filepath.ToSlash(path)
	return strings.Contains(p, "/"+marker+"/") || strings.HasSuffix(p, "/"+marker)
}

// Build assembles the pandoc argument list: the inputs in order, the
// output file, the fixed structural flags, then the template, engine,
// and conditional title/logo/toc tokens.
func Build(o Options) []string {
	args := make([]string, 0, len(o.Inputs)+32)
	args = append(args, o.Inputs...)
	args = append(args,
		"-o", o.OutputFile,
		"-f", "markdown+smart",
		"--number-sections",
		"-M", "colorlinks=true",
		"-V", "linkcolor=ForestGreen",
		"-V", "classoption=oneside",
		"-V", "listings",
		"-V", "footer-center="+o.FooterCenter,
		"-M", "toc-own-page=true",
	)
	if o.Template != "" {
		args = append(args, "--template", o.Template)
	}
	args = append(args,
		"--pdf-engine="+string(o.Engine),
		"--highlight-style", HighlightStyle,
	)
	if o.NoTitle {
		args = append(args, "-M", "titlepage=false")
	}
	if o.Logo != "" {
		args = append(args,
			"-V", "logo="+o.Logo,
			"-V", "logo-width="+strconv.Itoa(o.LogoWidth),
		)
	}
	if !o.NoTOC {
		args = append(args, "--toc")
	}
	return args
}

// CommandLine renders the invocation as a single space-joined line for
// debug echo.
func CommandLine(args []string) string {
	return strings.Join(append([]string{Binary}, args...), " ")
}
