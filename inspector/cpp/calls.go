package cpp

import (
	"strings"

	"github.com/inolab/pinspect/inspector/sketch"
	sitter "github.com/smacker/go-tree-sitter"
)

// FindCalls collects every call expression whose callee text equals name,
// in document order. Matching is exact: no alias or namespace resolution.
func (f *File) FindCalls(name string) []*sketch.CallSite {
	var calls []*sketch.CallSite
	walk(f.Root(), func(node *sitter.Node) {
		if sketch.KindOf(node) != sketch.KindCallExpression {
			return
		}
		fn := node.ChildByFieldName("function")
		if fn == nil {
			return
		}
		if f.Source.NodeText(fn) == name {
			calls = append(calls, sketch.NewCallSite(node, name))
		}
	})
	return calls
}

// Arguments returns the raw text of each positional argument of a call,
// delimiter tokens excluded and whitespace trimmed. A call without an
// arguments field yields an empty list.
func (f *File) Arguments(call *sketch.CallSite) []string {
	args := call.Node.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	var values []string
	for idx := 0; idx < int(args.ChildCount()); idx++ {
		child := args.Child(idx)
		if sketch.KindOf(child) == sketch.KindToken {
			continue
		}
		values = append(values, strings.TrimSpace(f.Source.NodeText(child)))
	}
	return values
}

// walk visits nodes in pre-order, parents before children, siblings left to
// right. An explicit stack keeps deeply nested expressions off the Go stack.
func walk(root *sitter.Node, visit func(node *sitter.Node)) {
	if root == nil {
		return
	}
	stack := []*sitter.Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(node)
		for idx := int(node.ChildCount()) - 1; idx >= 0; idx-- {
			stack = append(stack, node.Child(idx))
		}
	}
}
