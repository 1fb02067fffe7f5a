package sketch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inolab/pinspect/inspector/sketch"
)

func TestKindOfType(t *testing.T) {
	tests := []struct {
		nodeType string
		expect   sketch.Kind
	}{
		{"call_expression", sketch.KindCallExpression},
		{"declaration", sketch.KindDeclaration},
		{"init_declarator", sketch.KindInitDeclarator},
		{"assignment_expression", sketch.KindAssignmentExpression},
		{"number_literal", sketch.KindNumberLiteral},
		{"identifier", sketch.KindIdentifier},
		{"field_identifier", sketch.KindFieldIdentifier},
		{"argument_list", sketch.KindArgumentList},
		{"comment", sketch.KindComment},
		{"(", sketch.KindToken},
		{")", sketch.KindToken},
		{",", sketch.KindToken},
		{"for_statement", sketch.KindUnknown},
		{"", sketch.KindUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, sketch.KindOfType(tt.nodeType), tt.nodeType)
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "call_expression", sketch.KindCallExpression.String())
	assert.Equal(t, "token", sketch.KindToken.String())
	assert.Equal(t, "unknown", sketch.KindUnknown.String())
}

func TestKindOfNil(t *testing.T) {
	assert.Equal(t, sketch.KindUnknown, sketch.KindOf(nil))
}
