// ABOUTME: Loads assembly inputs from YAML files and discovers named presets
// ABOUTME: Looks in SPRING_PRESETS_PATH or ./presets relative to the working tree

package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Kevin-Gith/spring-design-calculator/backend/models"
	"gopkg.in/yaml.v3"
)

// Preset is a named assembly stored on disk
type Preset struct {
	Name string // Filename without extension (e.g., "sensor-clip")
	Path string // Full path to the file
}

// Load reads an assembly from a YAML file. Missing fields take the form
// defaults so a preset only needs to list what differs.
func Load(path string) (models.AssemblyInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.AssemblyInput{}, fmt.Errorf("read assembly file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML assembly data over the form defaults.
func Parse(data []byte) (models.AssemblyInput, error) {
	in := models.DefaultAssemblyInput()

	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&in); err != nil {
		return models.AssemblyInput{}, fmt.Errorf("parse assembly YAML: %w", err)
	}
	return in, nil
}

// Save writes an assembly as YAML, creating parent directories.
func Save(path string, in models.AssemblyInput) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode assembly YAML: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Discover finds all YAML files in the given directory, sorted by name
func Discover(dir string) ([]Preset, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return []Preset{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var found []Preset
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		found = append(found, Preset{
			Name: strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].Name < found[j].Name })
	return found, nil
}

// FindPresetsDir locates the presets directory
// Checks in order:
// 1. SPRING_PRESETS_PATH environment variable
// 2. ./presets/ relative to given base path
func FindPresetsDir(basePath string) string {
	if envPath := os.Getenv("SPRING_PRESETS_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	dir := filepath.Join(basePath, "presets")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}

	return ""
}
