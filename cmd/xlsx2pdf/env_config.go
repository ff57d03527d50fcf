package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alnah/go-xlsx2pdf/internal/config"
)

// envPrefix marks the variables read by loadEnvConfig.
const envPrefix = "XLSX2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // XLSX2PDF_CONFIG: config file name or path
	Workbook   string        // XLSX2PDF_WORKBOOK: input workbook
	Output     string        // XLSX2PDF_OUTPUT: output PDF path
	Template   string        // XLSX2PDF_TEMPLATE: template set name
	Engine     string        // XLSX2PDF_ENGINE: latex or chrome
	Timeout    time.Duration // XLSX2PDF_TIMEOUT: conversion timeout
	Month      string        // XLSX2PDF_MONTH: month filter
	LaTeXBin   string        // XLSX2PDF_LATEX_BIN: pdflatex executable
}

// knownEnvVars lists valid XLSX2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"XLSX2PDF_CONFIG":    true,
	"XLSX2PDF_WORKBOOK":  true,
	"XLSX2PDF_OUTPUT":    true,
	"XLSX2PDF_TEMPLATE":  true,
	"XLSX2PDF_ENGINE":    true,
	"XLSX2PDF_TIMEOUT":   true,
	"XLSX2PDF_MONTH":     true,
	"XLSX2PDF_LATEX_BIN": true,
	"XLSX2PDF_CONTAINER": true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// An unparsable or non-positive XLSX2PDF_TIMEOUT is ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("XLSX2PDF_CONFIG"),
		Workbook:   os.Getenv("XLSX2PDF_WORKBOOK"),
		Output:     os.Getenv("XLSX2PDF_OUTPUT"),
		Template:   os.Getenv("XLSX2PDF_TEMPLATE"),
		Engine:     os.Getenv("XLSX2PDF_ENGINE"),
		Month:      os.Getenv("XLSX2PDF_MONTH"),
		LaTeXBin:   os.Getenv("XLSX2PDF_LATEX_BIN"),
	}

	if timeout := os.Getenv("XLSX2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized XLSX2PDF_* variables.
// Helps catch typos like XLSX2PDF_ENGIN.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config file values with the variables that are set.
// Precedence is CLI flags > env vars > config file > defaults; flags are
// applied afterwards by mergeFlags. The timeout is resolved separately.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Workbook != "" {
		cfg.Input.Workbook = env.Workbook
	}
	if env.Month != "" {
		cfg.Input.Month = env.Month
	}
	if env.Output != "" {
		cfg.Output.Path = env.Output
	}
	if env.Template != "" {
		cfg.Template.Name = env.Template
	}
	if env.Engine != "" {
		cfg.Engine.Name = env.Engine
	}
	if env.LaTeXBin != "" {
		cfg.Engine.LaTeXBin = env.LaTeXBin
	}
}
