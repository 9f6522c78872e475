package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasDebugFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(run(os.Args[1:], DefaultEnv()))
}

// run dispatches subcommands and the default convert invocation,
// returning the process exit status.
func run(args []string, env *Environment) int {
	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion(env.Stdout)
			return ExitSuccess
		case "help":
			runHelp(args[1:], env)
			return ExitSuccess
		case "doctor":
			return runDoctorCmd(args[1:], env)
		case "completion":
			if err := runCompletion(args[1:], env); err != nil {
				fmt.Fprintln(env.Stderr, err)
				return exitCodeFor(err)
			}
			return ExitSuccess
		}
	}

	flags, inputs, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, err)
		return ExitError
	}

	if flags.version {
		printVersion(env.Stdout)
		return ExitSuccess
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())

	if err := runConvert(inputs, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		fmt.Fprintln(env.Stderr, "Exiting with errors...")
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// printVersion writes the version line for both `md2pdf version` and -V.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "md2pdf version %s\n", Version)
}

// hasDebugFlag peeks at raw args before flag parsing so runtime setup
// can log when debugging is requested.
func hasDebugFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--debug" {
			return true
		}
		if arg == "--" {
			return false
		}
	}
	return false
}
