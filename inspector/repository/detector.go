package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Detector identifies embedded-project root folders and provides
// project-related information
type Detector struct {
	// Common project root marker files/directories
	markers []string
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{
			"sketch.yaml",      // Arduino CLI sketch profile
			"sketch.json",      // Legacy Arduino sketch metadata
			"platformio.ini",   // PlatformIO projects
			"arduino-cli.yaml", // Arduino CLI config
			"CMakeLists.txt",   // ESP-IDF / CMake projects
			"Makefile",         // Make-driven projects
			".git",             // Generic VCS marker
		},
	}
}

// DetectProject identifies the project root for the given file path and returns project info
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	// If the path is a directory, start from there; for a file, start from
	// its parent directory
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)

	info := &Project{
		Type:     "unknown",
		RootPath: absPath,
	}
	if rootPath != "" {
		info.RootPath = rootPath
		info.Type = projectType
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)

	if projectType != "" {
		info.Name = d.extractProjectName(rootPath, projectType)
	}
	return info, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			markerPath := filepath.Join(dir, marker)
			if _, err := os.Stat(markerPath); err == nil {
				return dir, determineProjectType(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the filesystem root with no match
			break
		}
		dir = parent
	}
	return "", ""
}

// extractProjectName attempts to extract a project name from configuration files
func (d *Detector) extractProjectName(rootPath string, projectType string) string {
	switch projectType {
	case "arduino":
		if name := extractSketchName(filepath.Join(rootPath, "sketch.yaml")); name != "" {
			return name
		}
		return filepath.Base(rootPath)
	case "platformio":
		return extractPlatformIOName(filepath.Join(rootPath, "platformio.ini"), rootPath)
	case "idf":
		return extractCMakeProjectName(filepath.Join(rootPath, "CMakeLists.txt"), rootPath)
	default:
		return filepath.Base(rootPath)
	}
}

// extractSketchName reads the default_profile or name entry of a sketch.yaml
func extractSketchName(sketchPath string) string {
	fs := afs.New()
	content, err := fs.DownloadWithURL(context.Background(), sketchPath)
	if err != nil || len(content) == 0 {
		return ""
	}
	var doc struct {
		Name           string `yaml:"name"`
		DefaultProfile string `yaml:"default_profile"`
	}
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return ""
	}
	if doc.Name != "" {
		return doc.Name
	}
	return doc.DefaultProfile
}

// extractPlatformIOName pulls name from the [platformio] section of platformio.ini
func extractPlatformIOName(iniPath string, rootPath string) string {
	data, err := os.ReadFile(iniPath)
	if err != nil {
		return filepath.Base(rootPath)
	}
	inSection := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") {
			inSection = line == "[platformio]"
			continue
		}
		if inSection && strings.HasPrefix(line, "name") {
			if _, value, ok := strings.Cut(line, "="); ok {
				return strings.TrimSpace(value)
			}
		}
	}
	return filepath.Base(rootPath)
}

var cmakeProjectRegex = regexp.MustCompile(`project\(\s*([^\s)]+)`)

// extractCMakeProjectName pulls the project() name from CMakeLists.txt
func extractCMakeProjectName(cmakePath string, rootPath string) string {
	data, err := os.ReadFile(cmakePath)
	if err != nil {
		return filepath.Base(rootPath)
	}
	matches := cmakeProjectRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return filepath.Base(rootPath)
	}
	return string(matches[1])
}

// determineProjectType identifies the type of project based on the marker file
func determineProjectType(marker string) string {
	switch marker {
	case "sketch.yaml", "sketch.json", "arduino-cli.yaml":
		return "arduino"
	case "platformio.ini":
		return "platformio"
	case "CMakeLists.txt":
		return "idf"
	case "Makefile":
		return "make"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}
