package inspector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/inolab/pinspect/inspector/cpp"
	"github.com/inolab/pinspect/inspector/sketch"
)

// Inspector provides an interface for inspecting sketch source code
type Inspector interface {
	// InspectSource parses source code from a byte slice
	InspectSource(src []byte) (*cpp.File, error)

	// InspectNamedSource parses in-memory source under its real filename
	InspectNamedSource(src []byte, filename string) (*cpp.File, error)

	// InspectFile parses a source file
	InspectFile(filename string) (*cpp.File, error)
}

// Factory creates appropriate inspectors based on file type
type Factory struct {
	config *sketch.Config
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *sketch.Config) *Factory {
	return &Factory{config: config.Normalize()}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".ino", ".pde", ".cpp", ".cc", ".cxx", ".c", ".h", ".hpp":
		return cpp.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// InspectFile is a convenience method that gets the appropriate inspector and inspects the file
func (f *Factory) InspectFile(filename string) (*cpp.File, error) {
	inspector, err := f.GetInspector(filename)
	if err != nil {
		return nil, err
	}
	return inspector.InspectFile(filename)
}
