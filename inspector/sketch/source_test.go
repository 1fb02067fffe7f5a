package sketch_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inolab/pinspect/inspector/sketch"
)

func TestSource_Text(t *testing.T) {
	source := sketch.NewSource("blink.ino", []byte("digitalWrite(13, HIGH);"))

	tests := []struct {
		name       string
		start, end int
		expect     string
	}{
		{name: "callee", start: 0, end: 12, expect: "digitalWrite"},
		{name: "pin", start: 13, end: 15, expect: "13"},
		{name: "whole buffer", start: 0, end: 23, expect: "digitalWrite(13, HIGH);"},
		{name: "empty span", start: 5, end: 5, expect: ""},
		{name: "out of range", start: 0, end: 100, expect: ""},
		{name: "inverted", start: 10, end: 2, expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, source.Text(tt.start, tt.end))
		})
	}
}

func TestSource_Fingerprint(t *testing.T) {
	a := sketch.NewSource("a.ino", []byte("void setup() {}"))
	b := sketch.NewSource("b.ino", []byte("void setup() {}"))
	c := sketch.NewSource("c.ino", []byte("void loop() {}"))

	hashA, err := a.Fingerprint()
	assert.NoError(t, err)
	hashB, err := b.Fingerprint()
	assert.NoError(t, err)
	hashC, err := c.Fingerprint()
	assert.NoError(t, err)

	assert.Equal(t, hashA, hashB, "same content must fingerprint identically")
	assert.NotEqual(t, hashA, hashC, "different content must fingerprint differently")
}

func TestBindings_Resolve(t *testing.T) {
	bindings := sketch.Bindings{"PIN": "5", "B": "A"}

	value, ok := bindings.Resolve("PIN")
	assert.True(t, ok)
	assert.Equal(t, "5", value)

	_, ok = bindings.Resolve("missing")
	assert.False(t, ok)

	assert.Equal(t, "A", bindings.ResolveOrSelf("B"))
	assert.Equal(t, "13", bindings.ResolveOrSelf("13"))
}
