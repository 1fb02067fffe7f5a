package verify

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport emits one human-readable status line per check entry
func WriteReport(w io.Writer, results []Result) error {
	for _, result := range results {
		if err := writeLine(w, result); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, result Result) error {
	var err error
	switch result.Status {
	case StatusFound:
		_, err = fmt.Fprintf(w, "[FOUND] %s(%s) is present in the code.\n",
			result.Entry.Function, result.Entry.Pin)
	case StatusPresentDifferent:
		_, err = fmt.Fprintf(w, "[PRESENT] %s is used, but with different pin(s): %s\n",
			result.Entry.Function, strings.Join(result.ObservedPins, ", "))
	default:
		_, err = fmt.Fprintf(w, "[MISSING] %s(%s) is NOT present in the code.\n",
			result.Entry.Function, result.Entry.Pin)
	}
	return err
}
