package cpp

import (
	"strings"

	"github.com/inolab/pinspect/inspector/sketch"
	sitter "github.com/smacker/go-tree-sitter"
)

// Bindings computes the variable-to-initializer map in one pre-order pass.
// When the same name is initialized more than once, the last declaration in
// document order wins; scoping is not modelled. The map is built once per
// file and cached.
func (f *File) Bindings() sketch.Bindings {
	if f.bindings != nil {
		return f.bindings
	}
	bindings := sketch.Bindings{}
	walk(f.Root(), func(node *sitter.Node) {
		if sketch.KindOf(node) != sketch.KindDeclaration {
			return
		}
		// A declaration may carry several init-declarators
		// (int ledPin = 13, buttonPin = 2;); each binds its own name.
		for idx := 0; idx < int(node.ChildCount()); idx++ {
			child := node.Child(idx)
			if sketch.KindOf(child) != sketch.KindInitDeclarator {
				continue
			}
			name, value := f.declaratorBinding(child)
			if name != "" && value != "" {
				bindings[name] = value
			}
		}
	})
	f.bindings = bindings
	return bindings
}

// declaratorBinding extracts the declared name and its initializer text
// from a single init-declarator node. Declarators without a recognizable
// initializer form yield an empty value and are skipped by the caller.
func (f *File) declaratorBinding(declarator *sitter.Node) (string, string) {
	nameNode := declarator.ChildByFieldName("declarator")
	if nameNode == nil {
		return "", ""
	}

	var value string
	for j := 0; j < int(declarator.ChildCount()); j++ {
		sub := declarator.Child(j)
		if sameNode(sub, nameNode) {
			continue
		}
		switch sketch.KindOf(sub) {
		case sketch.KindNumberLiteral, sketch.KindIdentifier, sketch.KindFieldIdentifier:
			value = strings.TrimSpace(f.Source.NodeText(sub))
		case sketch.KindAssignmentExpression:
			if right := sub.ChildByFieldName("right"); right != nil {
				value = strings.TrimSpace(f.Source.NodeText(right))
			}
		}
	}

	return strings.TrimSpace(f.Source.NodeText(nameNode)), value
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}
