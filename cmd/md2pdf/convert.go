package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"

	"md2pdf/internal/config"
	"md2pdf/internal/fileutil"
	"md2pdf/internal/hints"
	"md2pdf/internal/manifest"
	"md2pdf/internal/pandoc"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput       = errors.New("must specify at least one markdown file")
	ErrInputNotFound = errors.New("input file not found")
)

// runConvert orchestrates one conversion: locate and load the config,
// resolve the final input set, assemble the pandoc command line, and
// run it exactly once.
func runConvert(inputs []string, flags *convertFlags, env *Environment) error {
	if len(inputs) == 0 {
		return ErrNoInput
	}
	for _, in := range inputs {
		if !fileutil.FileExists(in) {
			return fmt.Errorf("%w: %s", ErrInputNotFound, in)
		}
	}

	// Engine validation happens before any other work so a bad engine
	// never reaches the invocation.
	engine, err := pandoc.ParseEngine(flags.engine)
	if err != nil {
		return err
	}

	outcome := config.Locate(env.Getenv)
	if outcome.Status != config.SeverityOK {
		return fmt.Errorf("%w%s", outcome.Err(), hints.ForConfigNotFound(env.Getenv(config.EnvHome)))
	}

	cfg, err := config.Load(outcome.Msg, flags.section)
	if err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	template := cfg.Template
	if envCfg.Template != "" {
		template = envCfg.Template
	}
	email := resolveEmail(cfg, envCfg, flags.branding.org)

	files, warnings, err := manifest.Resolve(inputs)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		fmt.Fprintf(env.Stderr, "%s %s\n", color.YellowString("warning:"), w)
	}
	for _, f := range files {
		fmt.Fprintf(env.Stdout, "Compiling %s\n", f)
	}

	mainInput := pandoc.MainInput(files)
	logoPath, logoWidth := resolveLogo(cfg, mainInput)

	opts := pandoc.Options{
		Inputs:     files,
		OutputFile: pandoc.OutputFile(mainInput, flags.document.texFile),
		Template:   template,
		Engine:     engine,
		FooterCenter: pandoc.FooterCenter(env.Now().Year(), cfg.Name, cfg.Platform, pandoc.BrandingFlags{
			Org:          flags.branding.org,
			Confidential: flags.branding.confidential,
			Platform:     flags.branding.platform,
		}),
		NoTitle:   flags.document.noTitle,
		NoTOC:     flags.document.noTOC,
		Logo:      logoPath,
		LogoWidth: logoWidth,
	}
	args := pandoc.Build(opts)

	if flags.debug {
		fmt.Fprintf(env.Stdout, "config: %s\n", outcome.Msg)
		fmt.Fprintf(env.Stdout, "template: %s\n", template)
		if email != "" {
			fmt.Fprintf(env.Stdout, "email: %s\n", email)
		}
		fmt.Fprintln(env.Stdout, pandoc.CommandLine(args))
	}

	return env.Runner.Run(pandoc.Binary, args...)
}

// resolveEmail applies the environment overrides to the config email.
// With --org, the org-specific variable wins over the general one.
func resolveEmail(cfg *config.Config, envCfg *envConfig, orgFlag bool) string {
	email := cfg.Email
	if envCfg.Email != "" {
		email = envCfg.Email
	}
	if orgFlag && envCfg.EmailOrg != "" {
		email = envCfg.EmailOrg
	}
	return email
}

// resolveLogo applies the logo configuration, honoring the
// workspace-only gate against the main input's resolved path.
func resolveLogo(cfg *config.Config, mainInput string) (string, int) {
	if cfg.Logo.Path == "" {
		return "", 0
	}
	if cfg.Logo.WorkspaceOnly && !pandoc.InWorkspace(mainInput, cfg.Workspace.Marker) {
		return "", 0
	}
	return cfg.Logo.Path, cfg.Logo.Width
}
