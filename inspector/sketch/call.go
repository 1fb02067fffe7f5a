package sketch

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// CallSite is a read-only view over one call-expression node together with
// its resolved callee name. It does not own the node; the node stays valid
// only as long as the tree it belongs to.
type CallSite struct {
	Node     *sitter.Node
	Callee   string
	Location Location
}

func NewCallSite(node *sitter.Node, callee string) *CallSite {
	return &CallSite{
		Node:     node,
		Callee:   callee,
		Location: LocationOf(node),
	}
}

// Span returns the byte range the whole call expression covers
func (c *CallSite) Span() Span {
	return c.Location.Span
}
