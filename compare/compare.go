// Package compare grades captured emulator output against expected output
// using line-oriented matching.
package compare

import (
	"strings"
)

// Mode selects the matching policy
type Mode int

const (
	// Liberal requires every expected line to appear as a substring of
	// some actual line, in any order. Extra output is ignored.
	Liberal Mode = iota
	// Subsequence requires expected lines to appear in order across the
	// actual lines.
	Subsequence
)

// Options configures a comparison
type Options struct {
	Mode Mode
	// Weight is the mark fraction awarded on a pass
	Weight float64
}

// Outcome is the result of one comparison
type Outcome struct {
	Passed       bool
	MarkFraction float64
	// MissingLines lists the expected lines that were not matched
	MissingLines []string
}

// Normalize trims whitespace per line and drops blank lines
func Normalize(s string) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Match grades actual output against expected output. Empty expected output
// passes as long as there is any actual output at all.
func Match(actual, expected string, options Options) Outcome {
	actualLines := Normalize(actual)
	expectedLines := Normalize(expected)

	outcome := Outcome{}
	if len(expectedLines) == 0 {
		outcome.Passed = len(actualLines) > 0
	} else {
		switch options.Mode {
		case Subsequence:
			outcome.MissingLines = matchSubsequence(actualLines, expectedLines)
		default:
			outcome.MissingLines = matchLiberal(actualLines, expectedLines)
		}
		outcome.Passed = len(outcome.MissingLines) == 0
	}

	if outcome.Passed {
		outcome.MarkFraction = options.Weight
	}
	return outcome
}

func matchLiberal(actual, expected []string) []string {
	var missing []string
	for _, want := range expected {
		if !anyContains(actual, want) {
			missing = append(missing, want)
		}
	}
	return missing
}

func matchSubsequence(actual, expected []string) []string {
	var missing []string
	cursor := 0
	for _, want := range expected {
		matched := false
		for cursor < len(actual) {
			line := actual[cursor]
			cursor++
			if strings.Contains(line, want) {
				matched = true
				break
			}
		}
		if !matched {
			missing = append(missing, want)
		}
	}
	return missing
}

func anyContains(lines []string, want string) bool {
	for _, line := range lines {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}
