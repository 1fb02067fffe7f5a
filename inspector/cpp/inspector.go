// Package cpp inspects Arduino-style C/C++ sketches using tree-sitter.
package cpp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inolab/pinspect/inspector/sketch"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
)

// Inspector provides functionality to inspect sketch code and extract
// call sites and variable bindings
type Inspector struct {
	config *sketch.Config
}

// NewInspector creates a new Inspector with the provided configuration
func NewInspector(config *sketch.Config) *Inspector {
	return &Inspector{config: config.Normalize()}
}

// InspectSource parses sketch source code from a byte slice. Raw source with
// no filename is parsed with the C++ grammar, which covers Arduino sketches.
func (i *Inspector) InspectSource(src []byte) (*File, error) {
	return i.inspect(src, "source.ino")
}

// InspectNamedSource parses in-memory source under its real filename, so the
// extension drives grammar selection the same way InspectFile does.
func (i *Inspector) InspectNamedSource(src []byte, filename string) (*File, error) {
	return i.inspect(src, filename)
}

// InspectFile parses a sketch source file
func (i *Inspector) InspectFile(filename string) (*File, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return i.inspect(src, filename)
}

func (i *Inspector) inspect(src []byte, filename string) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(languageFor(filename))

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	return &File{
		Path:   filename,
		Source: sketch.NewSource(filename, src),
		config: i.config,
		tree:   tree,
	}, nil
}

// languageFor picks the grammar by file extension; everything that is not
// plain C goes through the C++ grammar
func languageFor(filename string) *sitter.Language {
	if strings.ToLower(filepath.Ext(filename)) == ".c" {
		return c.GetLanguage()
	}
	return cpp.GetLanguage()
}

// File is one parsed sketch. It owns the syntax tree; call sites handed out
// by FindCalls stay valid as long as the File is reachable.
type File struct {
	Path   string
	Source *sketch.Source
	config *sketch.Config

	tree     *sitter.Tree
	bindings sketch.Bindings
}

// Root returns the root node of the parsed tree
func (f *File) Root() *sitter.Node {
	return f.tree.RootNode()
}

// Config returns the analysis configuration the file was inspected with
func (f *File) Config() *sketch.Config {
	return f.config
}

// Fingerprint returns the content hash of the underlying source
func (f *File) Fingerprint() (uint64, error) {
	return f.Source.Fingerprint()
}
