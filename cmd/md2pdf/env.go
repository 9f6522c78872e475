package main

import (
	"io"
	"os"
	"time"

	"md2pdf/internal/pandoc"
)

// Environment holds injectable dependencies for testability:
// I/O, time, environment lookup, and the pandoc runner.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string
	Runner  pandoc.Runner
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		Runner:  &pandoc.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr},
	}
}
