package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed argument values, e.g. shell names
	FilePattern string   // glob for file arguments (e.g., "*.xlsx")
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"engine": {Values: []string{"latex", "chrome"}},
	"month": {Values: []string{
		"january", "february", "march", "april", "may", "june",
		"july", "august", "september", "october", "november", "december",
	}},

	"config": {FileGlob: "*.yaml,*.yml"},
	"output": {FileGlob: "*.pdf"},
	"style":  {FileGlob: "*.css"},

	"asset-path": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Hidden flags are skipped.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		if f.Hidden {
			return
		}
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Build flags are extracted from the real FlagSet.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:        "build",
			Desc:        "Render a workbook into a PDF report",
			Flags:       extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{})),
			FilePattern: "*.xlsx,*.xlsm",
		},
		{
			Name:  "doctor",
			Desc:  "Check pdflatex, Chrome and the temp directory",
			Flags: []flagDef{{Long: "json", Type: flagBool, Desc: "machine-readable output"}},
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w, getCommands())
	case ShellZsh:
		return generateZsh(w, getCommands())
	case ShellFish:
		return generateFish(w, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// generateBash writes a bash completion function built on compgen.
func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# bash completion for xlsx2pdf\n")
	b.WriteString("_xlsx2pdf() {\n")
	b.WriteString("  local cur prev cmd\n")
	b.WriteString("  cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("  prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("  cmd=\"${COMP_WORDS[1]}\"\n\n")

	fmt.Fprintf(&b, "  if [[ $COMP_CWORD -eq 1 && $cur != -* ]]; then\n")
	fmt.Fprintf(&b, "    COMPREPLY=($(compgen -W %q -- \"$cur\") $(compgen -f -X '!*.xlsx' -- \"$cur\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("    return\n  fi\n\n")

	b.WriteString("  case \"$cmd\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 {
			continue
		}
		pattern := c.Name
		if c.Name == "build" {
			// build is also the implied command.
			pattern = "build|-*|*.xlsx|*.xlsm|*/*"
		}
		fmt.Fprintf(&b, "    %s)\n", pattern)

		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "      COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(c.Args, " "))
			b.WriteString("      return\n      ;;\n")
			continue
		}

		b.WriteString("      case \"$prev\" in\n")
		for _, f := range c.Flags {
			var action string
			switch f.Type {
			case flagEnum:
				action = fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"$cur\"))", strings.Join(f.Values, " "))
			case flagFile:
				action = fmt.Sprintf("COMPREPLY=($(compgen -f -X '!%s' -- \"$cur\"))", firstGlob(f.FileGlob))
			case flagDir:
				action = "COMPREPLY=($(compgen -d -- \"$cur\"))"
			case flagBool:
				continue
			default:
				action = "COMPREPLY=()"
			}
			fmt.Fprintf(&b, "        %s)\n          %s\n          return\n          ;;\n", flagAlternatives(f, "|"), action)
		}
		b.WriteString("      esac\n")
		fmt.Fprintf(&b, "      if [[ $cur == -* ]]; then\n        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
		if c.FilePattern != "" {
			fmt.Fprintf(&b, "      else\n        COMPREPLY=($(compgen -f -X '!%s' -- \"$cur\"))\n", firstGlob(c.FilePattern))
		}
		b.WriteString("      fi\n      ;;\n")
	}
	b.WriteString("  esac\n}\n")
	b.WriteString("complete -o default -F _xlsx2pdf xlsx2pdf\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// generateZsh writes a compdef function using _arguments.
func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("#compdef xlsx2pdf\n\n")
	b.WriteString("_xlsx2pdf() {\n")
	b.WriteString("  local -a commands\n  commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("  )\n\n")

	b.WriteString("  if (( CURRENT == 2 )) && [[ $words[2] != -* ]]; then\n")
	b.WriteString("    _describe 'command' commands\n")
	b.WriteString("    _files -g '*.xlsx'\n")
	b.WriteString("    return\n  fi\n\n")

	b.WriteString("  case $words[2] in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 && len(c.Args) == 0 {
			continue
		}
		pattern := c.Name
		if c.Name == "build" {
			pattern = "build|-*|*.xlsx|*.xlsm|*/*"
		}
		fmt.Fprintf(&b, "    %s)\n", pattern)
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "      _values 'shell' %s\n      ;;\n", strings.Join(c.Args, " "))
			continue
		}
		b.WriteString("      _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "        %s \\\n", zshFlagSpec(f))
		}
		if c.FilePattern != "" {
			fmt.Fprintf(&b, "        '*:workbook:_files -g \"%s\"'\n", strings.ReplaceAll(c.FilePattern, ",", " "))
		} else {
			b.WriteString("        && return\n")
		}
		b.WriteString("      ;;\n")
	}
	b.WriteString("  esac\n}\n\n")
	b.WriteString("_xlsx2pdf \"$@\"\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshFlagSpec renders one _arguments spec for f.
func zshFlagSpec(f flagDef) string {
	names := "--" + f.Long
	if f.Short != "" {
		names = fmt.Sprintf("{-%s,--%s}", f.Short, f.Long)
	}

	desc := zshEscape(f.Desc)
	var action string
	switch f.Type {
	case flagBool:
		return fmt.Sprintf("'%s[%s]'", names, desc)
	case flagEnum:
		action = fmt.Sprintf(":%s:(%s)", f.Long, strings.Join(f.Values, " "))
	case flagFile:
		action = fmt.Sprintf(":file:_files -g \"%s\"", strings.ReplaceAll(f.FileGlob, ",", " "))
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ":"
	}
	if f.Short != "" {
		return fmt.Sprintf("%s'[%s]%s'", names, desc, action)
	}
	return fmt.Sprintf("'%s[%s]%s'", names, desc, action)
}

// generateFish writes one complete line per command and flag.
func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# fish completion for xlsx2pdf\n")
	b.WriteString("complete -c xlsx2pdf -f\n")
	names := strings.Join(commandNames(cmds), " ")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c xlsx2pdf -n 'not __fish_seen_subcommand_from %s' -a %s -d '%s'\n",
			names, c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("__fish_seen_subcommand_from %s", c.Name)
		if c.Name == "build" {
			cond = fmt.Sprintf("not __fish_seen_subcommand_from %s; or __fish_seen_subcommand_from build", strings.Join(otherCommands(cmds, "build"), " "))
		}
		for _, a := range c.Args {
			fmt.Fprintf(&b, "complete -c xlsx2pdf -n '%s' -a %s\n", cond, a)
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c xlsx2pdf -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
		if c.FilePattern != "" {
			fmt.Fprintf(&b, "complete -c xlsx2pdf -n '%s' -a '(__fish_complete_suffix .xlsx)'\n", cond)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

func otherCommands(cmds []commandDef, skip string) []string {
	var names []string
	for _, c := range cmds {
		if c.Name != skip {
			names = append(names, c.Name)
		}
	}
	return names
}

// flagWords lists every spelling of the flags, e.g. "-o --output".
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
		words = append(words, "--"+f.Long)
	}
	return words
}

func flagAlternatives(f flagDef, sep string) string {
	if f.Short == "" {
		return "--" + f.Long
	}
	return "-" + f.Short + sep + "--" + f.Long
}

func firstGlob(globs string) string {
	first, _, _ := strings.Cut(globs, ",")
	return first
}

func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: xlsx2pdf completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(xlsx2pdf completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(xlsx2pdf completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    xlsx2pdf completion fish > ~/.config/fish/completions/xlsx2pdf.fish")
}
