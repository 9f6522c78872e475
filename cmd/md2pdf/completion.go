package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"md2pdf/internal/pandoc"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long   string   // --pdf-engine
	Short  string   // -s (empty if none)
	Bool   bool     // takes no value
	Desc   string   // help text
	Values []string // enum values, if any
}

// flagEnumValues maps flag names to their accepted values.
// Flag names and descriptions come from the FlagSet itself.
func flagEnumValues(name string) []string {
	if name != "pdf-engine" {
		return nil
	}
	engines := pandoc.Engines()
	values := make([]string, len(engines))
	for i, e := range engines {
		values[i] = string(e)
	}
	return values
}

// buildConvertFlagSet creates a FlagSet with the convert surface.
// This reuses the same flag registration as parseConvertFlags.
func buildConvertFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("md2pdf", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.section, "section", "s", "", "section in the TOML config to use")
	addDocumentFlags(fs, &f.document)
	addBrandingFlags(fs, &f.branding)
	fs.StringVar(&f.engine, "pdf-engine", string(pandoc.DefaultEngine), "pdf engine: xelatex, lualatex, tectonic")
	fs.BoolVar(&f.debug, "debug", false, "echo the assembled pandoc command before running it")
	fs.BoolVarP(&f.version, "version", "V", false, "show version and exit")

	return fs
}

// convertFlagDefs extracts flag definitions from the actual FlagSet,
// so completion stays in sync with the registered flags.
func convertFlagDefs() []flagDef {
	var defs []flagDef
	buildConvertFlagSet().VisitAll(func(f *flag.Flag) {
		defs = append(defs, flagDef{
			Long:   f.Name,
			Short:  f.Shorthand,
			Bool:   f.Value.Type() == "bool",
			Desc:   f.Usage,
			Values: flagEnumValues(f.Name),
		})
	})
	return defs
}

// subcommands lists the commands completed at the first position.
var subcommands = []struct {
	Name string
	Desc string
}{
	{"doctor", "Check pandoc, engines, and configuration"},
	{"completion", "Generate shell completion script"},
	{"version", "Show version information"},
	{"help", "Show help for a command"},
}

// GenerateCompletion writes a shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	case ShellPowerShell:
		return generatePowerShell(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2pdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2pdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(md2pdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2pdf completion fish > ~/.config/fish/completions/md2pdf.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    md2pdf completion powershell | Out-String | Invoke-Expression")
}

// generateBash writes the bash completion function.
func generateBash(w io.Writer) error {
	var longs, enums []string
	engineValues := ""
	for _, f := range convertFlagDefs() {
		longs = append(longs, "--"+f.Long)
		if len(f.Values) > 0 {
			enums = append(enums, "--"+f.Long)
			engineValues = strings.Join(f.Values, " ")
		}
	}
	var cmds []string
	for _, c := range subcommands {
		cmds = append(cmds, c.Name)
	}

	_, err := fmt.Fprintf(w, `_md2pdf() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "$prev" in
    %s)
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
        return
        ;;
    completion)
        COMPREPLY=($(compgen -W "bash zsh fish powershell" -- "$cur"))
        return
        ;;
    help)
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
        return
        ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
        return
    fi

    if [[ $COMP_CWORD -eq 1 ]]; then
        COMPREPLY=($(compgen -W "%s" -- "$cur"))
    fi
    COMPREPLY+=($(compgen -f -X '!*.md' -- "$cur") $(compgen -d -- "$cur"))
}
complete -F _md2pdf md2pdf
`,
		strings.Join(enums, "|"),
		engineValues,
		strings.Join(cmds, " "),
		strings.Join(longs, " "),
		strings.Join(cmds, " "))
	return err
}

// generateZsh writes the zsh completion function.
func generateZsh(w io.Writer) error {
	var b strings.Builder
	b.WriteString("#compdef md2pdf\n\n_md2pdf() {\n    _arguments \\\n")
	for _, f := range convertFlagDefs() {
		spec := "--" + f.Long
		if f.Short != "" {
			spec = fmt.Sprintf("{-%s,--%s}", f.Short, f.Long)
		}
		desc := strings.ReplaceAll(f.Desc, "'", "'\\''")
		switch {
		case len(f.Values) > 0:
			fmt.Fprintf(&b, "        '%s[%s]:engine:(%s)' \\\n", spec, desc, strings.Join(f.Values, " "))
		case f.Bool:
			fmt.Fprintf(&b, "        '%s[%s]' \\\n", spec, desc)
		default:
			fmt.Fprintf(&b, "        '%s[%s]:value:' \\\n", spec, desc)
		}
	}
	b.WriteString("        '1:command or file:->first' \\\n")
	b.WriteString("        '*:file:_files -g \"*.md\"'\n\n")
	b.WriteString("    case $state in\n    first)\n        local -a commands\n        commands=(\n")
	for _, c := range subcommands {
		fmt.Fprintf(&b, "            '%s:%s'\n", c.Name, c.Desc)
	}
	b.WriteString("        )\n        _describe 'command' commands\n")
	b.WriteString("        _files -g '*.md'\n        ;;\n    esac\n}\n\n_md2pdf \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// generateFish writes fish completion commands.
func generateFish(w io.Writer) error {
	var b strings.Builder
	for _, c := range subcommands {
		fmt.Fprintf(&b, "complete -c md2pdf -n '__fish_use_subcommand' -a %s -d '%s'\n", c.Name, c.Desc)
	}
	for _, f := range convertFlagDefs() {
		fmt.Fprintf(&b, "complete -c md2pdf -l %s", f.Long)
		if f.Short != "" {
			fmt.Fprintf(&b, " -s %s", f.Short)
		}
		if !f.Bool {
			b.WriteString(" -r")
		}
		if len(f.Values) > 0 {
			fmt.Fprintf(&b, " -a '%s'", strings.Join(f.Values, " "))
		}
		fmt.Fprintf(&b, " -d '%s'\n", strings.ReplaceAll(f.Desc, "'", "\\'"))
	}
	b.WriteString("complete -c md2pdf -n '__fish_seen_subcommand_from completion' -a 'bash zsh fish powershell'\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// generatePowerShell writes the PowerShell argument completer.
func generatePowerShell(w io.Writer) error {
	var items []string
	for _, c := range subcommands {
		items = append(items, fmt.Sprintf("        @{ Name = '%s'; Desc = '%s' }", c.Name, c.Desc))
	}
	for _, f := range convertFlagDefs() {
		items = append(items, fmt.Sprintf("        @{ Name = '--%s'; Desc = '%s' }", f.Long, strings.ReplaceAll(f.Desc, "'", "''")))
	}

	_, err := fmt.Fprintf(w, `Register-ArgumentCompleter -Native -CommandName md2pdf -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)
    $items = @(
%s
    )
    $items | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterValue', $_.Desc)
    }
}
`, strings.Join(items, "\n"))
	return err
}
