// pinspect instruments Arduino-style sketches and verifies their pin usage.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inolab/pinspect/compare"
	"github.com/inolab/pinspect/harness"
	"github.com/inolab/pinspect/inspector/sketch"
	"github.com/inolab/pinspect/pipeline"
	"github.com/inolab/pinspect/verify"
)

var (
	verbose    bool
	outputFunc string
	logTag     string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pinspect",
	Short: "Instrument and verify hardware pin usage in Arduino-style sketches",
	Long: `pinspect parses Arduino-style C/C++ sketches, rewrites digital-output
calls into ESP_LOGI diagnostic statements, and statically verifies expected
hardware I/O operations against a CSV check table.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func analysisConfig() *sketch.Config {
	return (&sketch.Config{
		DigitalOutputFunc: outputFunc,
		LogTag:            logTag,
	}).Normalize()
}

var instrumentCmd = &cobra.Command{
	Use:   "instrument <input.ino> <output.ino>",
	Short: "Rewrite digital-output calls into diagnostic log statements",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := pipeline.New(analysisConfig(), logger)
		report, err := p.Run(cmd.Context(), args[0], pipeline.Options{OutputURL: args[1]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[OK] Written instrumented file: %s (%d call(s) rewritten)\n",
			args[1], report.EditCount)
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <input.ino> <check.csv>",
	Short: "Check expected hardware I/O operations against the sketch",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := pipeline.New(analysisConfig(), logger)
		results, err := p.Verify(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return verify.WriteReport(cmd.OutOrStdout(), results)
	},
}

var (
	harnessConfigPath string
	expectedPath      string
	watch             bool
	timeoutSec        int
	inOrder           bool
	weight            float64
)

var gradeCmd = &cobra.Command{
	Use:   "grade <input.ino> <output.ino> <check.csv>",
	Short: "Instrument, verify, build, and grade a sketch end to end",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		options := pipeline.Options{
			OutputURL: args[1],
			CheckURL:  args[2],
			Compare:   compare.Options{Weight: weight},
		}
		if inOrder {
			options.Compare.Mode = compare.Subsequence
		}

		if harnessConfigPath != "" {
			config, err := harness.LoadConfig(harnessConfigPath)
			if err != nil {
				return err
			}
			if timeoutSec > 0 {
				config.TimeoutSec = timeoutSec
			}
			options.Harness = config
		}
		if expectedPath != "" {
			expected, err := os.ReadFile(expectedPath)
			if err != nil {
				return fmt.Errorf("failed to read expected output %s: %w", expectedPath, err)
			}
			options.Expected = string(expected)
		}

		p := pipeline.New(analysisConfig(), logger)
		if watch {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			err := pipeline.NewWatcher(p).Watch(ctx, args[0], options, func(report *pipeline.Report, err error) {
				printReport(cmd, report, err)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}

		report, err := p.Run(cmd.Context(), args[0], options)
		printReport(cmd, report, err)
		return err
	},
}

func printReport(cmd *cobra.Command, report *pipeline.Report, err error) {
	out := cmd.OutOrStdout()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
	}
	if report == nil {
		return
	}
	if report.Project != nil && report.Project.Name != "" {
		fmt.Fprintf(out, "project: %s (%s)\n", report.Project.Name, report.Project.Type)
	}
	fmt.Fprintf(out, "[OK] Written instrumented file (%d call(s) rewritten)\n", report.EditCount)
	_ = verify.WriteReport(out, report.Verification)
	if report.HarnessResult != nil {
		fmt.Fprintf(out, "run %s: exit=%d duration=%s\n",
			report.HarnessResult.RunID, report.HarnessResult.ExitCode,
			report.HarnessResult.Duration.Round(time.Millisecond))
	}
	if report.Grade != nil {
		status := "FAIL"
		if report.Grade.Passed {
			status = "PASS"
		}
		fmt.Fprintf(out, "grade: %s (mark fraction %.2f)\n", status, report.Grade.MarkFraction)
		for _, line := range report.Grade.MissingLines {
			fmt.Fprintf(out, "  missing: %s\n", line)
		}
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&outputFunc, "output-func", "digitalWrite", "digital-output primitive to instrument")
	rootCmd.PersistentFlags().StringVar(&logTag, "log-tag", "TAG", "tag passed to the diagnostic macro")

	gradeCmd.Flags().StringVar(&harnessConfigPath, "harness-config", "", "YAML config for the build/emulate harness")
	gradeCmd.Flags().StringVar(&expectedPath, "expected", "", "file holding the expected emulator output")
	gradeCmd.Flags().BoolVar(&watch, "watch", false, "re-run whenever the sketch changes")
	gradeCmd.Flags().IntVar(&timeoutSec, "timeout", 0, "override harness timeout in seconds")
	gradeCmd.Flags().BoolVar(&inOrder, "in-order", false, "require expected lines to appear in order")
	gradeCmd.Flags().Float64Var(&weight, "weight", 1.0, "mark fraction awarded on a pass")

	rootCmd.AddCommand(instrumentCmd, verifyCmd, gradeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
