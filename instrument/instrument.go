package instrument

import (
	"fmt"

	"github.com/inolab/pinspect/inspector/cpp"
	"github.com/inolab/pinspect/inspector/sketch"
)

// Instrumenter converts digital-output call sites into diagnostic statements
type Instrumenter struct {
	config *sketch.Config
}

// NewInstrumenter creates an Instrumenter with the provided configuration
func NewInstrumenter(config *sketch.Config) *Instrumenter {
	return &Instrumenter{config: config.Normalize()}
}

// CallRecord describes one rewritten call site
type CallRecord struct {
	Span      sketch.Span
	Line      int
	Pin       string // pin text after one-hop binding resolution
	Value     string // raw value text
	Statement string
}

// Result carries the rewritten buffer and what was replaced
type Result struct {
	Output []byte
	Calls  []CallRecord
}

// EditCount returns the number of replaced spans
func (r *Result) EditCount() int {
	return len(r.Calls)
}

// Rewrite replaces every digital-output call in the file with a diagnostic
// log statement. A file with no matching calls comes back byte-identical.
func (n *Instrumenter) Rewrite(file *cpp.File) (*Result, error) {
	if file == nil {
		return nil, fmt.Errorf("instrument: file was nil")
	}
	calls := file.FindCalls(n.config.DigitalOutputFunc)
	bindings := file.Bindings()

	result := &Result{}
	var edits []Edit
	for _, call := range calls {
		record := n.record(file, call, bindings)
		edits = append(edits, Edit{
			Span:        record.Span,
			Replacement: []byte(record.Statement),
		})
		result.Calls = append(result.Calls, record)
	}

	result.Output = Apply(file.Source.Data, edits)
	return result, nil
}

// record builds the replacement statement for one call site. Fewer than two
// arguments means both pin and value are unknown and render as placeholders.
func (n *Instrumenter) record(file *cpp.File, call *sketch.CallSite, bindings sketch.Bindings) CallRecord {
	pin, value := n.config.Placeholder, n.config.Placeholder
	if args := file.Arguments(call); len(args) >= 2 {
		pin, value = args[0], args[1]
		pin = bindings.ResolveOrSelf(pin)
	}
	return CallRecord{
		Span:      call.Span(),
		Line:      call.Location.Line,
		Pin:       pin,
		Value:     value,
		Statement: fmt.Sprintf(`ESP_LOGI(%s, "PIN %s, %s");`, n.config.LogTag, pin, value),
	}
}
