package sketch

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Kind is a closed tag over the syntax node kinds this package consumes.
// Everything else collapses into KindUnknown.
type Kind int

const (
	KindUnknown Kind = iota
	KindCallExpression
	KindDeclaration
	KindInitDeclarator
	KindAssignmentExpression
	KindNumberLiteral
	KindIdentifier
	KindFieldIdentifier
	KindArgumentList
	KindComment
	// KindToken covers the argument-list delimiter tokens "(", ")" and ","
	KindToken
)

var kindByType = map[string]Kind{
	"call_expression":       KindCallExpression,
	"declaration":           KindDeclaration,
	"init_declarator":       KindInitDeclarator,
	"assignment_expression": KindAssignmentExpression,
	"number_literal":        KindNumberLiteral,
	"identifier":            KindIdentifier,
	"field_identifier":      KindFieldIdentifier,
	"argument_list":         KindArgumentList,
	"comment":               KindComment,
	"(":                     KindToken,
	")":                     KindToken,
	",":                     KindToken,
}

// KindOfType maps a tree-sitter node type string into the closed kind set
func KindOfType(nodeType string) Kind {
	if kind, ok := kindByType[nodeType]; ok {
		return kind
	}
	return KindUnknown
}

// KindOf returns the kind of a syntax node
func KindOf(node *sitter.Node) Kind {
	if node == nil {
		return KindUnknown
	}
	return KindOfType(node.Type())
}

func (k Kind) String() string {
	switch k {
	case KindCallExpression:
		return "call_expression"
	case KindDeclaration:
		return "declaration"
	case KindInitDeclarator:
		return "init_declarator"
	case KindAssignmentExpression:
		return "assignment_expression"
	case KindNumberLiteral:
		return "number_literal"
	case KindIdentifier:
		return "identifier"
	case KindFieldIdentifier:
		return "field_identifier"
	case KindArgumentList:
		return "argument_list"
	case KindComment:
		return "comment"
	case KindToken:
		return "token"
	default:
		return "unknown"
	}
}
