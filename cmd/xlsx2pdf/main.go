package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommands. Anything else is read as build input.
var commands = []string{"build", "doctor", "completion", "version", "help"}

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches args[1:] to a command and returns the exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest, err := splitCommand(args[1:])
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	switch cmd {
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-xlsx2pdf %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	case "completion":
		err = runCompletion(rest, env)
	default:
		err = runBuild(ctx, rest, env)
	}

	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// splitCommand returns the command named by the first argument. Build is
// implied when args are empty, start with a flag, or name a workbook.
func splitCommand(args []string) (string, []string, error) {
	if len(args) == 0 {
		return "build", nil, nil
	}
	first := args[0]
	switch {
	case isCommand(first):
		return first, args[1:], nil
	case first == "-h" || first == "--help":
		return "help", nil, nil
	case first == "--version":
		return "version", nil, nil
	case strings.HasPrefix(first, "-"), looksLikeWorkbook(first):
		return "build", args, nil
	}
	return "", nil, fmt.Errorf("%w: %q", ErrUnknownCommand, first)
}

// isCommand reports whether arg names a subcommand (case-sensitive).
func isCommand(arg string) bool {
	return slices.Contains(commands, arg)
}

// looksLikeWorkbook reports whether arg is plausibly a workbook path.
func looksLikeWorkbook(arg string) bool {
	lower := strings.ToLower(arg)
	for _, ext := range workbookExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return strings.ContainsAny(arg, `/\`)
}

// hasVerboseFlag scans raw arguments for -v/--verbose before flag parsing.
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
		// Combined short flags such as -qv.
		if len(a) > 2 && a[0] == '-' && a[1] != '-' && strings.ContainsRune(a[1:], 'v') {
			return true
		}
	}
	return false
}
