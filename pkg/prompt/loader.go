package prompt

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTemplate reads and parses a template YAML file.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	var template Template
	if err := yaml.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := template.Validate(); err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	template.extractParameters()
	return &template, nil
}

// SaveTemplate writes a template to a YAML file.
func SaveTemplate(path string, template *Template) error {
	if err := template.Validate(); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}

	data, err := yaml.Marshal(template)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0640); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}
	return nil
}

// LoadDirectory loads every *.yaml template in a directory into the
// manager. A missing directory is not an error.
func (m *Manager) LoadDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read template directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		template, err := LoadTemplate(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("template %s: %w", entry.Name(), err)
		}
		if err := m.Register(template); err != nil {
			return fmt.Errorf("template %s: %w", entry.Name(), err)
		}
	}

	return nil
}
