package main

import (
	"os"

	flag "github.com/spf13/pflag"

	"md2pdf/internal/pandoc"
)

// documentFlags holds flags that shape the rendered document.
type documentFlags struct {
	noTOC   bool
	noTitle bool
	texFile bool
}

// brandingFlags holds the footer branding switches. When several are
// set, later layers override earlier ones (org < confidential < platform).
type brandingFlags struct {
	org          bool
	confidential bool
	platform     bool
}

// convertFlags holds all flags for the default convert invocation.
type convertFlags struct {
	section  string
	document documentFlags
	branding brandingFlags
	engine   string
	debug    bool
	version  bool
}

// addDocumentFlags adds document shaping flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVar(&f.noTOC, "no-toc", false, "omit the table of contents")
	fs.BoolVar(&f.noTitle, "no-title", false, "omit the title page")
	fs.BoolVar(&f.texFile, "tex", false, "create a TeX file instead of a PDF document")
}

// addBrandingFlags adds footer branding flags to a FlagSet.
func addBrandingFlags(fs *flag.FlagSet, f *brandingFlags) {
	fs.BoolVar(&f.org, "org", false, "mark as an organization document")
	fs.BoolVar(&f.confidential, "confidential", false, "mark as a confidential document")
	fs.BoolVar(&f.platform, "platform", false, "use the platform services footer")
}

// parseConvertFlags parses the convert surface and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("md2pdf", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.section, "section", "s", "", "section in the TOML config to use")
	addDocumentFlags(fs, &f.document)
	addBrandingFlags(fs, &f.branding)
	fs.StringVar(&f.engine, "pdf-engine", string(pandoc.DefaultEngine), "pdf engine: xelatex, lualatex, tectonic")
	fs.BoolVar(&f.debug, "debug", false, "echo the assembled pandoc command before running it")
	fs.BoolVarP(&f.version, "version", "V", false, "show version and exit")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
