package xlsx2pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-xlsx2pdf/internal/fileutil"
	"github.com/alnah/go-xlsx2pdf/internal/process"
)

// compiler turns rendered template source into PDF bytes.
type compiler interface {
	Compile(ctx context.Context, source string) ([]byte, error)
	Close() error
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The command runs in
// its own process group, which is killed when ctx is done.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, string, error) {
	cmd := exec.Command(name, args...) // #nosec G204 -- binary comes from configuration
	cmd.Dir = dir
	process.SetProcessGroup(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("starting command: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return stdout.String(), stderr.String(), err
	case <-ctx.Done():
		process.KillProcessGroup(cmd.Process.Pid)
		<-done
		return stdout.String(), stderr.String(), ctx.Err()
	}
}

// auxExtensions are removed after a LaTeX run unless keepAux is set.
var auxExtensions = []string{"aux", "log", "out", "toc"}

// logTailLines is how much of the compiler log a CompileError carries.
const logTailLines = 30

// latexCompiler runs pdflatex (or a compatible binary) over rendered source.
type latexCompiler struct {
	runner  CommandRunner
	bin     string
	passes  int
	workDir string
	jobName string
	keepAux bool
	debug   io.Writer
	logger  *zap.Logger
}

// Compile writes <job>.tex, runs the compiler the configured number of
// passes and returns <job>.pdf.
func (c *latexCompiler) Compile(ctx context.Context, source string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := c.workDir
	if dir == "" {
		tmp, cleanup, err := fileutil.MakeWorkDir()
		if err != nil {
			return nil, err
		}
		defer cleanup()
		dir = tmp
	}

	texPath := filepath.Join(dir, c.jobName+".tex")
	if err := os.WriteFile(texPath, []byte(source), 0o600); err != nil {
		return nil, fmt.Errorf("writing %s: %w", texPath, err)
	}

	if !c.keepAux {
		defer func() {
			if err := fileutil.RemoveJobFiles(dir, c.jobName, auxExtensions...); err != nil {
				c.logger.Warn("removing auxiliary files", zap.String("dir", dir), zap.Error(err))
			}
		}()
	}

	args := []string{
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", dir,
		c.jobName + ".tex",
	}

	for pass := 1; pass <= c.passes; pass++ {
		c.logger.Debug("running compiler", zap.String("bin", c.bin), zap.Int("pass", pass), zap.String("dir", dir))

		stdout, stderr, err := c.runner.Run(ctx, dir, c.bin, args...)
		if c.debug != nil && stdout != "" {
			_, _ = io.WriteString(c.debug, stdout)
		}
		if err != nil {
			return nil, c.compileError(ctx, dir, pass, stdout, stderr, err)
		}
	}

	pdfPath := filepath.Join(dir, c.jobName+".pdf")
	pdf, err := os.ReadFile(pdfPath) // #nosec G304 -- path built from work dir and job name
	if err != nil {
		return nil, &CompileError{
			Engine:  c.bin,
			LogTail: c.logTail(dir, ""),
			Err:     fmt.Errorf("no PDF produced: %w", err),
		}
	}
	return pdf, nil
}

func (c *latexCompiler) compileError(ctx context.Context, dir string, pass int, stdout, stderr string, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(err, exec.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrCompilerNotFound, c.bin)
	}
	tail := c.logTail(dir, stdout)
	if len(tail) == 0 && stderr != "" {
		tail = lastLines(stderr, logTailLines)
	}
	return &CompileError{Engine: c.bin, Pass: pass, LogTail: tail, Err: err}
}

// logTail prefers the job log and falls back to captured stdout.
func (c *latexCompiler) logTail(dir, stdout string) []string {
	tail, err := fileutil.TailLines(filepath.Join(dir, c.jobName+".log"), logTailLines)
	if err == nil && len(tail) > 0 {
		return tail
	}
	return lastLines(stdout, logTailLines)
}

// Close is a no-op; every Compile call cleans up after itself.
func (c *latexCompiler) Close() error {
	return nil
}

func lastLines(s string, n int) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
