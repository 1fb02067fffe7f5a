package verify

import "fmt"

// Namespace is a fixed set of conventionally legal pin designations for one
// function category. Membership is informational only: the classifier never
// consults it, reports may annotate with it.
type Namespace struct {
	Name    string
	members map[string]struct{}
}

var (
	// Analog covers analogRead: A0..A5 plus bare 0..5
	Analog = newNamespace("analog", symbolicRange("A", 0, 5), numericRange(0, 5))
	// Digital covers digitalRead/digitalWrite: D0..D13 plus bare 0..13
	Digital = newNamespace("digital", symbolicRange("D", 0, 13), numericRange(0, 13))
)

func newNamespace(name string, sets ...[]string) *Namespace {
	members := make(map[string]struct{})
	for _, set := range sets {
		for _, pin := range set {
			members[pin] = struct{}{}
		}
	}
	return &Namespace{Name: name, members: members}
}

func symbolicRange(prefix string, lo, hi int) []string {
	var pins []string
	for i := lo; i <= hi; i++ {
		pins = append(pins, fmt.Sprintf("%s%d", prefix, i))
	}
	return pins
}

func numericRange(lo, hi int) []string {
	var pins []string
	for i := lo; i <= hi; i++ {
		pins = append(pins, fmt.Sprintf("%d", i))
	}
	return pins
}

// Contains reports whether pin (in string form) belongs to the namespace
func (n *Namespace) Contains(pin string) bool {
	_, ok := n.members[pin]
	return ok
}

// ForFunction returns the namespace conventionally associated with a
// function, or nil when the function is unconstrained
func ForFunction(name string) *Namespace {
	switch name {
	case "analogRead":
		return Analog
	case "digitalRead", "digitalWrite":
		return Digital
	default:
		return nil
	}
}

// Conventional reports whether pin is a conventionally legal designation for
// the given function. Functions without a namespace accept anything.
func Conventional(function, pin string) bool {
	namespace := ForFunction(function)
	if namespace == nil {
		return true
	}
	return namespace.Contains(pin)
}
