package pipeline_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inolab/pinspect/pipeline"
)

func TestWatcher_Watch(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "submission.ino", `void loop() { digitalWrite(5, HIGH); }`)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reports := make(chan *pipeline.Report, 4)
	p := pipeline.New(nil, nil)
	done := make(chan error, 1)
	go func() {
		done <- pipeline.NewWatcher(p).Watch(ctx, input, pipeline.Options{}, func(report *pipeline.Report, err error) {
			assert.NoError(t, err)
			reports <- report
		})
	}()

	// initial run fires immediately
	select {
	case report := <-reports:
		assert.Equal(t, 1, report.EditCount)
	case <-ctx.Done():
		t.Fatal("timed out waiting for initial run")
	}

	// a write re-triggers the pipeline after the debounce window
	time.Sleep(50 * time.Millisecond)
	assert.NoError(t, os.WriteFile(input, []byte(`void loop() {
  digitalWrite(5, HIGH);
  digitalWrite(6, LOW);
}`), 0644))

	select {
	case report := <-reports:
		assert.Equal(t, 2, report.EditCount)
	case <-ctx.Done():
		t.Fatal("timed out waiting for re-run")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
