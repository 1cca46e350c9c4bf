// Package shell provides an os/exec based executor for external tools.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/modcache/internal/core/domain"
	"go.trai.ch/modcache/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// stderrTailLines bounds how much stderr is attached to a failure.
const stderrTailLines = 20

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger ports.Logger
}

// NewExecutor creates a new Executor streaming process output into logger.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger: logger,
	}
}

// Execute runs cmd to completion.
//
// Unless cmd.Quiet is set, stdout is streamed line by line at Info and stderr at Warn.
// Both streams are captured in full either way.
func (e *Executor) Execute(ctx context.Context, cmd domain.Command) (domain.CommandResult, error) {
	if cmd.Name == "" {
		return domain.CommandResult{}, zerr.With(domain.ErrCommandFailed, "reason", "empty command")
	}

	cmdEnv := resolveEnvironment(os.Environ(), cmd.Env)

	// Resolve the executable against the PATH the process will see.
	executable := cmd.Name
	if !filepath.IsAbs(cmd.Name) {
		if lp, err := lookPath(cmd.Name, cmdEnv); err == nil {
			executable = lp
		}
	}

	c := exec.CommandContext(ctx, executable, cmd.Args...) //nolint:gosec // configured tool invocation
	c.Args[0] = cmd.Name
	c.Dir = cmd.Dir
	c.Env = cmdEnv

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	var stdoutLog, stderrLog *logWriter
	if !cmd.Quiet {
		stdoutLog = &logWriter{logger: e.logger, level: levelInfo}
		stderrLog = &logWriter{logger: e.logger, level: levelWarn}
		c.Stdout = io.MultiWriter(&stdout, stdoutLog)
		c.Stderr = io.MultiWriter(&stderr, stderrLog)
	}

	runErr := c.Run()

	if !cmd.Quiet {
		// Flush any trailing partial lines.
		_ = stdoutLog.Close()
		_ = stderrLog.Close()
	}

	result := domain.CommandResult{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if runErr != nil {
		return result, commandError(runErr, cmd, stderr.Bytes())
	}

	return result, nil
}

func commandError(err error, cmd domain.Command, stderr []byte) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	wrapped := zerr.Wrap(err, domain.ErrCommandFailed.Error())
	wrapped = zerr.With(wrapped, "command", cmd.String())
	wrapped = zerr.With(wrapped, "exit_code", exitCode)
	if tail := tailLines(stderr, stderrTailLines); tail != "" {
		wrapped = zerr.With(wrapped, "stderr", tail)
	}
	return wrapped
}

// tailLines returns the last n non-empty lines of out.
func tailLines(out []byte, n int) string {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return ""
	}

	lines := strings.Split(trimmed, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

type logLevel int

const (
	levelInfo logLevel = iota
	levelWarn
)

type logWriter struct {
	logger ports.Logger
	level  logLevel
	buf    []byte
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	w.buf = append(w.buf, p...)

	// Scan for newlines
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}

		w.logLine(w.buf[:i])

		// Advance buffer
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(w.buf)
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line []byte) {
	msg := strings.TrimSuffix(string(line), "\r")
	if strings.TrimSpace(msg) == "" {
		return
	}

	if w.level == levelInfo {
		w.logger.Info(msg)
	} else {
		w.logger.Warn(msg)
	}
}

// resolveEnvironment applies overrides on top of the inherited environment.
// The result is sorted so that runs are reproducible.
func resolveEnvironment(sysEnv, overrides []string) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entries := range [][]string{sysEnv, overrides} {
		for _, entry := range entries {
			if k, v, ok := strings.Cut(entry, "="); ok && k != "" {
				envMap[k] = v
			}
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	if strings.Contains(file, string(filepath.Separator)) {
		return file, findExecutable(file)
	}

	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
