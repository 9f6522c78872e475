package main

// Notes:
// - runConvert is tested end to end with a fake Runner and an injected
//   getenv, so nothing touches the real environment or PATH. Config and
//   input files live in t.TempDir().
// - Argument assertions check tokens, not the full list; the exact
//   assembly order is covered by the pandoc package tests.
// - Time is pinned so the footer year is deterministic.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"md2pdf/internal/config"
	"md2pdf/internal/manifest"
	"md2pdf/internal/pandoc"
)

// fakeRunner records the invocation instead of executing it.
type fakeRunner struct {
	name string
	args []string
	runs int
	err  error
}

func (r *fakeRunner) Run(name string, args ...string) error {
	r.name = name
	r.args = args
	r.runs++
	return r.err
}

// testEnv returns an Environment wired to buffers and a fake runner.
func testEnv(vars map[string]string, runner *fakeRunner) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: func(key string) string { return vars[key] },
		Environ: func() []string {
			var entries []string
			for k, v := range vars {
				entries = append(entries, k+"="+v)
			}
			return entries
		},
		Runner: runner,
	}
	return env, stdout, stderr
}

// writeTestFile creates a file with content, failing the test on error.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

// setupConfig writes a config file and returns env vars pointing at it.
func setupConfig(t *testing.T, content string) map[string]string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	writeTestFile(t, path, content)
	return map[string]string{"MD2PDF_CONFIG": path}
}

// setupInput creates a markdown input file and returns its path.
func setupInput(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	writeTestFile(t, path, "# Title\n\nBody.\n")
	return path
}

func defaultFlags() *convertFlags {
	return &convertFlags{engine: string(pandoc.DefaultEngine)}
}

func hasToken(args []string, tok string) bool {
	for _, a := range args {
		if a == tok {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// TestRunConvert - Happy paths
// ---------------------------------------------------------------------------

func TestRunConvert(t *testing.T) {
	t.Parallel()

	t.Run("single file with minimal config", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, "name = \"Acme\"\n")
		runner := &fakeRunner{}
		env, stdout, _ := testEnv(vars, runner)

		if err := runConvert([]string{input}, defaultFlags(), env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}

		if runner.runs != 1 {
			t.Fatalf("runner invoked %d times, want 1", runner.runs)
		}
		if runner.name != "pandoc" {
			t.Errorf("runner name = %q, want pandoc", runner.name)
		}
		if runner.args[0] != input {
			t.Errorf("args[0] = %q, want the input", runner.args[0])
		}
		if !hasToken(runner.args, "notes.pdf") {
			t.Errorf("missing notes.pdf in %v", runner.args)
		}
		if !hasToken(runner.args, "--pdf-engine=xelatex") {
			t.Errorf("missing default engine in %v", runner.args)
		}
		if !hasToken(runner.args, "--toc") {
			t.Errorf("missing --toc in %v", runner.args)
		}
		if hasToken(runner.args, "--template") {
			t.Errorf("unset template must not appear in %v", runner.args)
		}
		if !strings.Contains(stdout.String(), "Compiling "+input) {
			t.Errorf("stdout missing compile line: %q", stdout.String())
		}
	})

	t.Run("tex flag switches the output extension", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, "name = \"Acme\"\n")
		runner := &fakeRunner{}
		env, _, _ := testEnv(vars, runner)

		flags := defaultFlags()
		flags.document.texFile = true

		if err := runConvert([]string{input}, flags, env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if !hasToken(runner.args, "notes.tex") {
			t.Errorf("missing notes.tex in %v", runner.args)
		}
		if hasToken(runner.args, "notes.pdf") {
			t.Errorf("notes.pdf present despite --tex in %v", runner.args)
		}
	})

	t.Run("config template is passed through", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, "template = \"/tpl/eisvogel.latex\"\n")
		runner := &fakeRunner{}
		env, _, _ := testEnv(vars, runner)

		if err := runConvert([]string{input}, defaultFlags(), env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if !hasToken(runner.args, "--template") || !hasToken(runner.args, "/tpl/eisvogel.latex") {
			t.Errorf("missing template pair in %v", runner.args)
		}
	})

	t.Run("MD2PDF_TEMPLATE overrides the config template", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, "template = \"/tpl/config.latex\"\n")
		vars["MD2PDF_TEMPLATE"] = "/tpl/env.latex"
		runner := &fakeRunner{}
		env, _, _ := testEnv(vars, runner)

		if err := runConvert([]string{input}, defaultFlags(), env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if !hasToken(runner.args, "/tpl/env.latex") {
			t.Errorf("env template missing in %v", runner.args)
		}
		if hasToken(runner.args, "/tpl/config.latex") {
			t.Errorf("config template should be overridden in %v", runner.args)
		}
	})

	t.Run("section selects overrides", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, `
template = "/tpl/base.latex"

[client]
template = "/tpl/client.latex"
`)
		runner := &fakeRunner{}
		env, _, _ := testEnv(vars, runner)

		flags := defaultFlags()
		flags.section = "client"

		if err := runConvert([]string{input}, flags, env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if !hasToken(runner.args, "/tpl/client.latex") {
			t.Errorf("section template missing in %v", runner.args)
		}
	})

	t.Run("org branding reaches the footer", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, "name = \"Acme Corp\"\n")
		runner := &fakeRunner{}
		env, _, _ := testEnv(vars, runner)

		flags := defaultFlags()
		flags.branding.org = true

		if err := runConvert([]string{input}, flags, env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if !hasToken(runner.args, "footer-center=2026 Acme Corp") {
			t.Errorf("missing branded footer in %v", runner.args)
		}
	})

	t.Run("debug echoes the command line", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, "name = \"Acme\"\n")
		runner := &fakeRunner{}
		env, stdout, _ := testEnv(vars, runner)

		flags := defaultFlags()
		flags.debug = true

		if err := runConvert([]string{input}, flags, env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		out := stdout.String()
		if !strings.Contains(out, "pandoc "+input) {
			t.Errorf("debug output missing command line: %q", out)
		}
		if !strings.Contains(out, "config: ") {
			t.Errorf("debug output missing config path: %q", out)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunConvertManifest - Sidecar expansion
// ---------------------------------------------------------------------------

func TestRunConvertManifest(t *testing.T) {
	t.Parallel()

	t.Run("sidecar expands the inputs", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := filepath.Join(dir, "book.md")
		writeTestFile(t, input, "# Book\n")
		writeTestFile(t, filepath.Join(dir, "book.toml"),
			"[default]\nfiles = [\"intro.md\", \"body.md\"]\n")
		vars := setupConfig(t, "name = \"Acme\"\n")
		runner := &fakeRunner{}
		env, stdout, _ := testEnv(vars, runner)

		if err := runConvert([]string{input}, defaultFlags(), env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if runner.args[0] != "intro.md" || runner.args[1] != "body.md" {
			t.Errorf("args = %v, want manifest files first", runner.args)
		}
		// Output name still derives from the first manifest entry.
		if !hasToken(runner.args, "intro.pdf") {
			t.Errorf("missing intro.pdf in %v", runner.args)
		}
		if !strings.Contains(stdout.String(), "Compiling intro.md") ||
			!strings.Contains(stdout.String(), "Compiling body.md") {
			t.Errorf("stdout missing compile lines: %q", stdout.String())
		}
	})

	t.Run("shapeless sidecar warns and falls back", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := filepath.Join(dir, "notes.md")
		writeTestFile(t, input, "# N\n")
		writeTestFile(t, filepath.Join(dir, "notes.toml"), "[default]\ntitle = \"N\"\n")
		vars := setupConfig(t, "name = \"Acme\"\n")
		runner := &fakeRunner{}
		env, _, stderr := testEnv(vars, runner)

		if err := runConvert([]string{input}, defaultFlags(), env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if runner.args[0] != input {
			t.Errorf("args[0] = %q, want fallback to the input", runner.args[0])
		}
		if !strings.Contains(stderr.String(), "no file names found in") {
			t.Errorf("stderr missing warning: %q", stderr.String())
		}
	})

	t.Run("zero-byte sidecar warns and still converts", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := filepath.Join(dir, "notes.md")
		writeTestFile(t, input, "# N\n")
		writeTestFile(t, filepath.Join(dir, "notes.toml"), "")
		vars := setupConfig(t, "name = \"Acme\"\n")
		runner := &fakeRunner{}
		env, _, stderr := testEnv(vars, runner)

		if err := runConvert([]string{input}, defaultFlags(), env); err != nil {
			t.Fatalf("runConvert() error = %v, want fallback not failure", err)
		}
		if runner.runs != 1 {
			t.Errorf("runner invoked %d times, want 1", runner.runs)
		}
		if runner.args[0] != input {
			t.Errorf("args[0] = %q, want fallback to the input", runner.args[0])
		}
		if !strings.Contains(stderr.String(), "no file names found in") {
			t.Errorf("stderr missing warning: %q", stderr.String())
		}
	})

	t.Run("empty sidecar list aborts before invocation", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		input := filepath.Join(dir, "notes.md")
		writeTestFile(t, input, "# N\n")
		writeTestFile(t, filepath.Join(dir, "notes.toml"), "[default]\nfiles = []\n")
		vars := setupConfig(t, "name = \"Acme\"\n")
		runner := &fakeRunner{}
		env, _, _ := testEnv(vars, runner)

		err := runConvert([]string{input}, defaultFlags(), env)
		if !errors.Is(err, manifest.ErrEmptyFileList) {
			t.Fatalf("runConvert() error = %v, want ErrEmptyFileList", err)
		}
		if runner.runs != 0 {
			t.Errorf("runner invoked %d times, want 0", runner.runs)
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunConvertLogo - Workspace-gated logo injection
// ---------------------------------------------------------------------------

func TestRunConvertLogo(t *testing.T) {
	t.Parallel()

	t.Run("logo injected when configured", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, "[logo]\npath = \"/assets/logo.pdf\"\nwidth = 50\n")
		runner := &fakeRunner{}
		env, _, _ := testEnv(vars, runner)

		if err := runConvert([]string{input}, defaultFlags(), env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if !hasToken(runner.args, "logo=/assets/logo.pdf") {
			t.Errorf("missing logo variable in %v", runner.args)
		}
		if !hasToken(runner.args, "logo-width=50") {
			t.Errorf("missing logo width in %v", runner.args)
		}
	})

	t.Run("workspace-only suppresses the logo outside the workspace", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, `
[logo]
path = "/assets/logo.pdf"
workspace-only = true

[workspace]
marker = "definitely-not-in-tempdir"
`)
		runner := &fakeRunner{}
		env, _, _ := testEnv(vars, runner)

		if err := runConvert([]string{input}, defaultFlags(), env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		if hasToken(runner.args, "logo=/assets/logo.pdf") {
			t.Errorf("logo injected outside the workspace: %v", runner.args)
		}
	})

	t.Run("no logo without a configured path", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, "name = \"Acme\"\n")
		runner := &fakeRunner{}
		env, _, _ := testEnv(vars, runner)

		if err := runConvert([]string{input}, defaultFlags(), env); err != nil {
			t.Fatalf("runConvert() error = %v", err)
		}
		for _, a := range runner.args {
			if strings.HasPrefix(a, "logo") {
				t.Errorf("unexpected logo token %q", a)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestRunConvertErrors - Failure paths
// ---------------------------------------------------------------------------

func TestRunConvertErrors(t *testing.T) {
	t.Parallel()

	t.Run("no inputs", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{}
		env, _, _ := testEnv(nil, runner)

		err := runConvert(nil, defaultFlags(), env)
		if !errors.Is(err, ErrNoInput) {
			t.Errorf("runConvert() error = %v, want ErrNoInput", err)
		}
	})

	t.Run("missing input file", func(t *testing.T) {
		t.Parallel()
		runner := &fakeRunner{}
		env, _, _ := testEnv(nil, runner)

		missing := filepath.Join(t.TempDir(), "nope.md")
		err := runConvert([]string{missing}, defaultFlags(), env)
		if !errors.Is(err, ErrInputNotFound) {
			t.Errorf("runConvert() error = %v, want ErrInputNotFound", err)
		}
		if !strings.Contains(err.Error(), missing) {
			t.Errorf("error should name the file, got: %v", err)
		}
	})

	t.Run("invalid engine stops before any invocation", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		runner := &fakeRunner{}
		env, _, _ := testEnv(nil, runner)

		flags := defaultFlags()
		flags.engine = "pdflatex"

		err := runConvert([]string{input}, flags, env)
		if !errors.Is(err, pandoc.ErrInvalidEngine) {
			t.Fatalf("runConvert() error = %v, want ErrInvalidEngine", err)
		}
		if runner.runs != 0 {
			t.Errorf("runner invoked %d times, want 0", runner.runs)
		}
	})

	t.Run("no config anywhere", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		runner := &fakeRunner{}
		env, _, _ := testEnv(map[string]string{"HOME": t.TempDir()}, runner)

		err := runConvert([]string{input}, defaultFlags(), env)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("runConvert() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "No config file found") {
			t.Errorf("error = %q, want the locator message", err.Error())
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error should carry a hint, got: %q", err.Error())
		}
		if runner.runs != 0 {
			t.Errorf("runner invoked %d times, want 0", runner.runs)
		}
	})

	t.Run("missing override names the path", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		missing := filepath.Join(t.TempDir(), "nope.toml")
		runner := &fakeRunner{}
		env, _, _ := testEnv(map[string]string{"MD2PDF_CONFIG": missing}, runner)

		err := runConvert([]string{input}, defaultFlags(), env)
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("runConvert() error = %v, want ErrConfigNotFound", err)
		}
		want := "Config file " + missing + " doesn't exist"
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error = %q, want it to contain %q", err.Error(), want)
		}
	})

	t.Run("unknown section", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, "name = \"Acme\"\n")
		runner := &fakeRunner{}
		env, _, _ := testEnv(vars, runner)

		flags := defaultFlags()
		flags.section = "nope"

		err := runConvert([]string{input}, flags, env)
		if !errors.Is(err, config.ErrSectionNotFound) {
			t.Errorf("runConvert() error = %v, want ErrSectionNotFound", err)
		}
	})

	t.Run("runner failure propagates", func(t *testing.T) {
		t.Parallel()
		input := setupInput(t, "notes.md")
		vars := setupConfig(t, "name = \"Acme\"\n")
		runner := &fakeRunner{err: pandoc.ErrPandocFailed}
		env, _, _ := testEnv(vars, runner)

		err := runConvert([]string{input}, defaultFlags(), env)
		if !errors.Is(err, pandoc.ErrPandocFailed) {
			t.Errorf("runConvert() error = %v, want ErrPandocFailed", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveEmail - Override precedence
// ---------------------------------------------------------------------------

func TestResolveEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cfgEmail string
		env      envConfig
		orgFlag  bool
		want     string
	}{
		{"config only", "cfg@acme.com", envConfig{}, false, "cfg@acme.com"},
		{"env wins over config", "cfg@acme.com", envConfig{Email: "env@acme.com"}, false, "env@acme.com"},
		{"org variable ignored without the flag", "cfg@acme.com", envConfig{EmailOrg: "org@acme.com"}, false, "cfg@acme.com"},
		{"org variable wins with the flag", "cfg@acme.com", envConfig{Email: "env@acme.com", EmailOrg: "org@acme.com"}, true, "org@acme.com"},
		{"org flag without org variable keeps env", "cfg@acme.com", envConfig{Email: "env@acme.com"}, true, "env@acme.com"},
		{"all empty", "", envConfig{}, true, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := &config.Config{Email: tt.cfgEmail}
			env := tt.env
			if got := resolveEmail(cfg, &env, tt.orgFlag); got != tt.want {
				t.Errorf("resolveEmail() = %q, want %q", got, tt.want)
			}
		})
	}
}
