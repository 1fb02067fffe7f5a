package verify

import (
	"sort"
	"strconv"

	"github.com/inolab/pinspect/inspector/cpp"
)

// Status classifies one check entry against the source
type Status int

const (
	// StatusFound means the function is called with the expected pin
	StatusFound Status = iota
	// StatusPresentDifferent means the function is called, but only with other pins
	StatusPresentDifferent
	// StatusMissing means the function is not called at all
	StatusMissing
)

func (s Status) String() string {
	switch s {
	case StatusFound:
		return "FOUND"
	case StatusPresentDifferent:
		return "PRESENT_DIFFERENT"
	default:
		return "MISSING"
	}
}

// Result is the classification of one check entry
type Result struct {
	Entry  Entry
	Status Status
	// ObservedPins holds the distinct resolved pin designations the
	// function was actually called with, sorted
	ObservedPins []string
	// Conventional annotates whether the expected pin belongs to the
	// function's pin namespace; it never affects Status
	Conventional bool
}

// unknownPin stands in for a call that carries no pin argument
const unknownPin = "?"

// Verify classifies every check entry against the parsed file.
// Pin arguments are resolved through the file's bindings (one hop) and
// coerced to integers when they parse as such; otherwise the symbolic text
// is kept.
func Verify(file *cpp.File, entries []Entry) []Result {
	bindings := file.Bindings()

	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		expected := coerce(entry.Pin)

		observed := map[string]struct{}{}
		for _, call := range file.FindCalls(entry.Function) {
			pin := unknownPin
			if args := file.Arguments(call); len(args) > 0 {
				pin = coerce(bindings.ResolveOrSelf(args[0]))
			}
			observed[pin] = struct{}{}
		}

		result := Result{
			Entry:        entry,
			ObservedPins: sortedKeys(observed),
			Conventional: Conventional(entry.Function, expected),
		}
		switch {
		case contains(observed, expected):
			result.Status = StatusFound
		case len(observed) > 0:
			result.Status = StatusPresentDifferent
		default:
			result.Status = StatusMissing
		}
		results = append(results, result)
	}
	return results
}

// coerce normalizes pin text: integer-parseable text is reduced to its
// canonical decimal form, anything else stays symbolic
func coerce(pin string) string {
	if value, err := strconv.Atoi(pin); err == nil {
		return strconv.Itoa(value)
	}
	return pin
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
