package verify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inolab/pinspect/verify"
)

func TestNamespace_Contains(t *testing.T) {
	tests := []struct {
		namespace *verify.Namespace
		pin       string
		expect    bool
	}{
		{verify.Analog, "A0", true},
		{verify.Analog, "A5", true},
		{verify.Analog, "A6", false},
		{verify.Analog, "0", true},
		{verify.Analog, "5", true},
		{verify.Analog, "6", false},
		{verify.Digital, "D0", true},
		{verify.Digital, "D13", true},
		{verify.Digital, "D14", false},
		{verify.Digital, "13", true},
		{verify.Digital, "14", false},
		{verify.Digital, "A0", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expect, tt.namespace.Contains(tt.pin),
			"%s should report %v for %s", tt.namespace.Name, tt.expect, tt.pin)
	}
}

func TestForFunction(t *testing.T) {
	assert.Equal(t, verify.Analog, verify.ForFunction("analogRead"))
	assert.Equal(t, verify.Digital, verify.ForFunction("digitalRead"))
	assert.Equal(t, verify.Digital, verify.ForFunction("digitalWrite"))
	assert.Nil(t, verify.ForFunction("pinMode"))
}

func TestConventional(t *testing.T) {
	assert.True(t, verify.Conventional("digitalWrite", "13"))
	assert.False(t, verify.Conventional("digitalWrite", "99"))
	// unconstrained functions accept anything
	assert.True(t, verify.Conventional("pinMode", "99"))
}

func TestVerify_NamespaceIndependence(t *testing.T) {
	// A pin outside the digital namespace must not change classification.
	file := mustInspect(t, `void loop() { digitalWrite(42, HIGH); }`)
	results := verify.Verify(file, []verify.Entry{{Function: "digitalWrite", Pin: "42"}})
	if assert.Equal(t, 1, len(results)) {
		assert.Equal(t, verify.StatusFound, results[0].Status)
		assert.False(t, results[0].Conventional)
	}
}
