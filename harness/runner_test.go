package harness_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inolab/pinspect/harness"
)

func writeScript(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "run.sh")
	assert.NoError(t, os.WriteFile(path, []byte("#!/bin/bash\n"+body), 0755))
	return path
}

func TestRunner_Run(t *testing.T) {
	dir := t.TempDir()
	rawOut := filepath.Join(dir, "output.txt")
	script := writeScript(t, dir, fmt.Sprintf(`echo "building $1"
printf 'I (100) TAG: PIN 5, HIGH\n' > %q
`, rawOut))

	runner := harness.NewRunner(&harness.Config{
		Script:        script,
		WorkDir:       dir,
		RawOutputFile: rawOut,
		TimeoutSec:    10,
	}, nil)

	result, err := runner.Run(context.Background(), "submission.ino")
	assert.NoError(t, err)
	assert.Equal(t, 0, result.ExitCode)
	assert.NotEmpty(t, result.RunID)
	assert.Contains(t, result.Stdout, "building submission.ino")
	assert.Contains(t, result.RawOutput, "PIN 5, HIGH")
	assert.False(t, result.TimedOut)
}

func TestRunner_Run_BuildFailure(t *testing.T) {
	dir := t.TempDir()
	buildLog := filepath.Join(dir, "build.log")
	script := writeScript(t, dir, fmt.Sprintf(`echo "undefined reference to loop()" > %q
exit 3
`, buildLog))

	runner := harness.NewRunner(&harness.Config{
		Script:        script,
		WorkDir:       dir,
		RawOutputFile: filepath.Join(dir, "output.txt"),
		BuildLogFile:  buildLog,
		TimeoutSec:    10,
	}, nil)

	result, err := runner.Run(context.Background(), "submission.ino")
	assert.True(t, errors.Is(err, harness.ErrBuildFailed))
	assert.Equal(t, 3, result.ExitCode)
	assert.Contains(t, result.BuildLog, "undefined reference")
}

func TestRunner_Run_Timeout(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "sleep 10\n")

	runner := harness.NewRunner(&harness.Config{
		Script:        script,
		WorkDir:       dir,
		RawOutputFile: filepath.Join(dir, "output.txt"),
		TimeoutSec:    1,
	}, nil)

	result, err := runner.Run(context.Background(), "submission.ino")
	assert.True(t, errors.Is(err, harness.ErrTimeout))
	assert.True(t, result.TimedOut)
}

func TestRunner_Run_NoOutput(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "true\n")

	runner := harness.NewRunner(&harness.Config{
		Script:        script,
		WorkDir:       dir,
		RawOutputFile: filepath.Join(dir, "output.txt"),
		TimeoutSec:    10,
	}, nil)

	_, err := runner.Run(context.Background(), "submission.ino")
	assert.True(t, errors.Is(err, harness.ErrNoOutput))
}

func TestRunner_Run_EnvFile(t *testing.T) {
	dir := t.TempDir()
	rawOut := filepath.Join(dir, "output.txt")
	envFile := filepath.Join(dir, "toolchain.env")
	assert.NoError(t, os.WriteFile(envFile, []byte("IDF_TARGET=esp32\n"), 0644))
	script := writeScript(t, dir, fmt.Sprintf(`printf 'target=%%s\n' "$IDF_TARGET" > %q
`, rawOut))

	runner := harness.NewRunner(&harness.Config{
		Script:        script,
		WorkDir:       dir,
		RawOutputFile: rawOut,
		EnvFile:       envFile,
		TimeoutSec:    10,
	}, nil)

	result, err := runner.Run(context.Background(), "submission.ino")
	assert.NoError(t, err)
	assert.Contains(t, result.RawOutput, "target=esp32")
}

func TestRunner_Run_StaleOutputRemoved(t *testing.T) {
	dir := t.TempDir()
	rawOut := filepath.Join(dir, "output.txt")
	// Output left over from a previous run must not be graded again.
	assert.NoError(t, os.WriteFile(rawOut, []byte("stale"), 0644))
	script := writeScript(t, dir, "true\n")

	runner := harness.NewRunner(&harness.Config{
		Script:        script,
		WorkDir:       dir,
		RawOutputFile: rawOut,
		TimeoutSec:    10,
	}, nil)

	_, err := runner.Run(context.Background(), "submission.ino")
	assert.True(t, errors.Is(err, harness.ErrNoOutput))
}

func TestRunner_InvalidConfig(t *testing.T) {
	runner := harness.NewRunner(&harness.Config{}, nil)
	_, err := runner.Run(context.Background(), "submission.ino")
	assert.Error(t, err)
}
