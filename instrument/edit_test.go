package instrument_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inolab/pinspect/inspector/sketch"
	"github.com/inolab/pinspect/instrument"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		edits  []instrument.Edit
		expect string
	}{
		{
			name:   "no edits is identity",
			src:    "void loop() {}",
			edits:  nil,
			expect: "void loop() {}",
		},
		{
			name: "single replacement",
			src:  "0123456789",
			edits: []instrument.Edit{
				{Span: sketch.Span{Start: 2, End: 4}, Replacement: []byte("XX")},
			},
			expect: "01XX456789",
		},
		{
			name: "growing replacement does not shift later spans",
			src:  "0123456789",
			edits: []instrument.Edit{
				{Span: sketch.Span{Start: 2, End: 4}, Replacement: []byte("XXXX")},
				{Span: sketch.Span{Start: 6, End: 8}, Replacement: []byte("Y")},
			},
			expect: "01XXXX45Y89",
		},
		{
			name: "edits supplied in ascending order still apply safely",
			src:  "aaa bbb ccc ddd",
			edits: []instrument.Edit{
				{Span: sketch.Span{Start: 0, End: 3}, Replacement: []byte("first")},
				{Span: sketch.Span{Start: 8, End: 11}, Replacement: []byte("third-and-longer")},
				{Span: sketch.Span{Start: 12, End: 15}, Replacement: []byte("x")},
			},
			expect: "first bbb third-and-longer x",
		},
		{
			name: "shrinking replacement",
			src:  "keep REMOVE keep",
			edits: []instrument.Edit{
				{Span: sketch.Span{Start: 5, End: 11}, Replacement: []byte("-")},
			},
			expect: "keep - keep",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := []byte(tt.src)
			out := instrument.Apply(src, tt.edits)
			assert.Equal(t, tt.expect, string(out))
			assert.Equal(t, tt.src, string(src), "input buffer must stay untouched")
		})
	}
}
