package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/fatih/color"

	"md2pdf/internal/config"
	"md2pdf/internal/fileutil"
	"md2pdf/internal/hints"
	"md2pdf/internal/pandoc"
)

// lookPath is swappable in tests to avoid depending on the host PATH.
var lookPath = exec.LookPath

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Pandoc   pandocInfo   `json:"pandoc"`
	Engines  []engineInfo `json:"engines"`
	Config   configInfo   `json:"config"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// pandocInfo holds pandoc detection results.
type pandocInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// engineInfo holds PDF engine detection results.
type engineInfo struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// configInfo holds configuration resolution results.
type configInfo struct {
	Found         bool   `json:"found"`
	Path          string `json:"path,omitempty"`
	Template      string `json:"template,omitempty"`
	TemplateFound bool   `json:"template_found"`
	Email         string `json:"email,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	TempWritable bool   `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitError
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		System: systemInfo{OS: runtime.GOOS, Arch: runtime.GOARCH},
	}

	checkPandoc(result)
	checkEngines(result)
	checkConfig(result, env)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkPandoc detects the pandoc binary and its version.
func checkPandoc(result *doctorResult) {
	path, err := lookPath(pandoc.Binary)
	if err != nil {
		result.Errors = append(result.Errors,
			"pandoc not found on PATH"+hints.ForPandocNotFound())
		return
	}

	result.Pandoc.Found = true
	result.Pandoc.Path = path

	version, err := pandoc.Version(path)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("could not get pandoc version: %v", err))
		return
	}
	result.Pandoc.Version = version
}

// checkEngines probes every accepted PDF engine. A missing default
// engine is an error; missing alternates are warnings.
func checkEngines(result *doctorResult) {
	for _, engine := range pandoc.Engines() {
		info := engineInfo{Name: string(engine)}
		if path, err := lookPath(string(engine)); err == nil {
			info.Found = true
			info.Path = path
		} else if engine == pandoc.DefaultEngine {
			result.Errors = append(result.Errors,
				fmt.Sprintf("default engine %s not found", engine)+hints.ForEngineNotFound(string(engine)))
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("engine %s not found", engine))
		}
		result.Engines = append(result.Engines, info)
	}
}

// checkConfig resolves and loads the configuration the same way a
// conversion run would.
func checkConfig(result *doctorResult, env *Environment) {
	outcome := config.Locate(env.Getenv)
	if outcome.Status != config.SeverityOK {
		result.Errors = append(result.Errors,
			outcome.Msg+hints.ForConfigNotFound(env.Getenv(config.EnvHome)))
		return
	}

	result.Config.Found = true
	result.Config.Path = outcome.Msg

	cfg, err := config.Load(outcome.Msg, "")
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}

	envCfg := loadEnvConfig(env.Getenv)
	template := cfg.Template
	if envCfg.Template != "" {
		template = envCfg.Template
	}
	result.Config.Template = template
	result.Config.Email = resolveEmail(cfg, envCfg, false)

	if template != "" {
		result.Config.TemplateFound = fileutil.FileExists(template)
		if !result.Config.TemplateFound {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("template %s does not exist", template))
		}
	}
}

// checkSystem verifies the temp directory is writable, since pandoc and
// the TeX engines both spill intermediate files there.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "md2pdf-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	ok := color.GreenString("[OK]")
	warn := color.YellowString("[WARN]")
	fail := color.RedString("[ERROR]")

	fmt.Fprintln(w, "md2pdf doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Pandoc")
	if r.Pandoc.Found {
		fmt.Fprintf(w, "  %s Found at %s\n", ok, r.Pandoc.Path)
		if r.Pandoc.Version != "" {
			fmt.Fprintf(w, "  %s Version: %s\n", ok, r.Pandoc.Version)
		}
	} else {
		fmt.Fprintf(w, "  %s Not found\n", fail)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "PDF engines")
	for _, e := range r.Engines {
		if e.Found {
			fmt.Fprintf(w, "  %s %s: %s\n", ok, e.Name, e.Path)
		} else {
			fmt.Fprintf(w, "  %s %s: not found\n", warn, e.Name)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.Config.Found {
		fmt.Fprintf(w, "  %s Config: %s\n", ok, r.Config.Path)
		if r.Config.Template != "" {
			if r.Config.TemplateFound {
				fmt.Fprintf(w, "  %s Template: %s\n", ok, r.Config.Template)
			} else {
				fmt.Fprintf(w, "  %s Template: %s (missing)\n", warn, r.Config.Template)
			}
		}
		if r.Config.Email != "" {
			fmt.Fprintf(w, "  %s Email: %s\n", ok, r.Config.Email)
		}
	} else {
		fmt.Fprintf(w, "  %s No config file\n", fail)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  %s Platform: %s/%s\n", ok, r.System.OS, r.System.Arch)
	if r.System.TempWritable {
		fmt.Fprintf(w, "  %s Temp directory: writable\n", ok)
	} else {
		fmt.Fprintf(w, "  %s Temp directory: not writable\n", fail)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, msg := range r.Warnings {
			fmt.Fprintf(w, "  %s %s\n", warn, msg)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, msg := range r.Errors {
			fmt.Fprintf(w, "  %s %s\n", fail, msg)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
