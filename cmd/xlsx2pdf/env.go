package main

import (
	"io"
	"os"
	"time"

	xlsx2pdf "github.com/alnah/go-xlsx2pdf"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Runner xlsx2pdf.CommandRunner // nil = run the real compiler
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
