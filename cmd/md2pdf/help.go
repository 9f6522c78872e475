package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2pdf [flags] <files...>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to PDF (or TeX) via pandoc.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  files    One or more existing markdown files. A single file may be")
	fmt.Fprintln(w, "           expanded through a sidecar <file>.toml manifest (default.files).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -s, --section <name>    Section in the TOML config to use")
	fmt.Fprintln(w, "      --no-toc            Omit the table of contents")
	fmt.Fprintln(w, "      --no-title          Omit the title page")
	fmt.Fprintln(w, "      --tex               Create a TeX file instead of a PDF document")
	fmt.Fprintln(w, "      --org               Mark as an organization document")
	fmt.Fprintln(w, "      --confidential      Mark as a confidential document")
	fmt.Fprintln(w, "      --platform          Use the platform services footer")
	fmt.Fprintln(w, "      --pdf-engine <s>    PDF engine: xelatex, lualatex, tectonic")
	fmt.Fprintln(w, "      --debug             Echo the assembled pandoc command")
	fmt.Fprintln(w, "  -V, --version           Show version and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  doctor        Check pandoc, engines, and configuration")
	fmt.Fprintln(w, "  completion    Generate shell completion script")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration is read from MD2PDF_CONFIG, ~/.md2pdf.toml, or")
	fmt.Fprintln(w, "~/.config/md2pdf/config.toml, in that order.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that pandoc, the PDF engines, and the configuration are usable.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
