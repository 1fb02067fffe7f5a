package sketch

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Source holds the raw bytes of one sketch file. The buffer is treated as
// immutable for the lifetime of the analysis; rewriters produce new buffers.
type Source struct {
	Path string
	Data []byte
}

func NewSource(path string, data []byte) *Source {
	return &Source{Path: path, Data: data}
}

// Text returns the source text covered by the half-open byte span [start, end)
func (s *Source) Text(start, end int) string {
	if start < 0 || end > len(s.Data) || start > end {
		return ""
	}
	return string(s.Data[start:end])
}

// NodeText returns the source text covered by a syntax node
func (s *Source) NodeText(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(s.Data)
}

// Span is a half-open [Start, End) byte range into a source buffer
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes the span covers
func (s Span) Len() int {
	return s.End - s.Start
}

// Location identifies where a syntax node sits in the source
type Location struct {
	Span
	Line   int // 1-based
	Column int // 0-based, as reported by the parser
}

// LocationOf derives a Location from a syntax node
func LocationOf(node *sitter.Node) Location {
	if node == nil {
		return Location{}
	}
	point := node.StartPoint()
	return Location{
		Span:   Span{Start: int(node.StartByte()), End: int(node.EndByte())},
		Line:   int(point.Row) + 1,
		Column: int(point.Column),
	}
}
