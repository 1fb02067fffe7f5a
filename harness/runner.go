package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	// ErrTimeout reports that the script exceeded its deadline
	ErrTimeout = errors.New("harness: build/run timed out")
	// ErrBuildFailed reports a non-zero script exit
	ErrBuildFailed = errors.New("harness: build/run failed")
	// ErrNoOutput reports that the script produced no emulator output
	ErrNoOutput = errors.New("harness: no emulator output")
)

// RunResult captures one build-and-emulate run
type RunResult struct {
	RunID     string
	ExitCode  int
	Stdout    string
	Stderr    string
	RawOutput string
	BuildLog  string
	TimedOut  bool
	Truncated bool
	Duration  time.Duration
}

// Runner invokes the build/emulate script for instrumented sketches
type Runner struct {
	config *Config
	logger *zap.Logger
}

// NewRunner creates a Runner. A nil logger disables logging.
func NewRunner(config *Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{config: config.Init(), logger: logger}
}

// Run executes the script against sketchPath under the configured timeout.
// A timeout, a non-zero exit, or empty emulator output makes the run
// unusable for grading and is returned as an error alongside the partial
// result.
func (r *Runner) Run(ctx context.Context, sketchPath string) (*RunResult, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	result := &RunResult{RunID: uuid.NewString(), ExitCode: -1}
	logger := r.logger.With(zap.String("runId", result.RunID), zap.String("sketch", sketchPath))

	// Stale output from a previous run must never be graded
	if r.config.RawOutputFile != "" {
		if err := os.Remove(r.config.RawOutputFile); err != nil && !os.IsNotExist(err) {
			logger.Warn("failed to remove previous output file", zap.Error(err))
		}
	}

	env, err := r.environment()
	if err != nil {
		return nil, err
	}

	execCtx, cancel := context.WithTimeout(ctx, r.config.Timeout())
	defer cancel()

	cmd := exec.CommandContext(execCtx, "bash", r.config.Script, sketchPath)
	cmd.Dir = r.config.WorkDir
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	stdoutLimited := &limitedWriter{w: &stdout, max: r.config.MaxOutputBytes}
	stderrLimited := &limitedWriter{w: &stderr, max: r.config.MaxOutputBytes}
	cmd.Stdout = stdoutLimited
	cmd.Stderr = stderrLimited

	logger.Info("starting build/run script",
		zap.String("script", r.config.Script),
		zap.Duration("timeout", r.config.Timeout()))

	started := time.Now()
	runErr := cmd.Run()
	result.Duration = time.Since(started)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	result.Truncated = stdoutLimited.truncated || stderrLimited.truncated

	if execCtx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		logger.Warn("script killed on timeout", zap.Duration("after", r.config.Timeout()))
		return result, fmt.Errorf("%w after %s", ErrTimeout, r.config.Timeout())
	}

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			result.BuildLog = r.readBuildLog()
			logger.Error("script exited non-zero",
				zap.Int("exitCode", result.ExitCode),
				zap.String("stderr", result.Stderr))
			return result, fmt.Errorf("%w: exit code %d", ErrBuildFailed, result.ExitCode)
		}
		logger.Error("script failed to run", zap.Error(runErr))
		return result, fmt.Errorf("harness: failed to run script: %w", runErr)
	}
	result.ExitCode = 0

	raw, err := os.ReadFile(r.config.RawOutputFile)
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		logger.Error("emulator produced no output", zap.String("file", r.config.RawOutputFile))
		return result, ErrNoOutput
	}
	result.RawOutput = string(raw)

	logger.Info("run completed",
		zap.Duration("duration", result.Duration),
		zap.Int("outputBytes", len(result.RawOutput)))
	return result, nil
}

// environment merges the process environment with the optional .env file
func (r *Runner) environment() ([]string, error) {
	env := os.Environ()
	if r.config.EnvFile == "" {
		return env, nil
	}
	extra, err := godotenv.Read(r.config.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("harness: failed to read env file %s: %w", r.config.EnvFile, err)
	}
	for key, value := range extra {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	return env, nil
}

func (r *Runner) readBuildLog() string {
	if r.config.BuildLogFile == "" {
		return ""
	}
	data, err := os.ReadFile(r.config.BuildLogFile)
	if err != nil {
		return ""
	}
	return string(data)
}

// limitedWriter caps how much captured output is kept
type limitedWriter struct {
	w         io.Writer
	max       int64
	written   int64
	truncated bool
}

func (lw *limitedWriter) Write(p []byte) (int, error) {
	n := len(p)
	if lw.written >= lw.max {
		lw.truncated = true
		return n, nil
	}
	remaining := lw.max - lw.written
	if int64(n) > remaining {
		lw.truncated = true
		written, err := lw.w.Write(p[:remaining])
		lw.written += int64(written)
		return n, err
	}
	written, err := lw.w.Write(p)
	lw.written += int64(written)
	return written, err
}
