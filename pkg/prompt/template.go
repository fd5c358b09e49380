package prompt

import (
	"fmt"
	"regexp"
	"strings"
)

var parameterPattern = regexp.MustCompile(`\{\{(\w+)\}\}`)

// WorkflowStep names a stage of a task and the tools it invokes, in order.
type WorkflowStep struct {
	Stage string   `yaml:"stage"`
	Tools []string `yaml:"tools"`
}

// Template is a reusable prompt with {{parameter}} placeholders, an
// optional tool list, and an optional workflow outline.
type Template struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Text        string         `yaml:"template"`
	Tools       []string       `yaml:"tools"`
	Workflow    []WorkflowStep `yaml:"workflow"`

	parameters []string
}

// NewTemplate creates a template and extracts its parameter names.
func NewTemplate(name, description, text string) *Template {
	t := &Template{
		Name:        name,
		Description: description,
		Text:        text,
	}
	t.extractParameters()
	return t
}

// Parameters returns the placeholder names found in the template text,
// in order of first appearance.
func (t *Template) Parameters() []string {
	if t.parameters == nil {
		t.extractParameters()
	}
	return t.parameters
}

func (t *Template) extractParameters() {
	seen := make(map[string]bool)
	params := []string{}
	for _, match := range parameterPattern.FindAllStringSubmatch(t.Text, -1) {
		name := match[1]
		if !seen[name] {
			seen[name] = true
			params = append(params, name)
		}
	}
	t.parameters = params
}

// Render substitutes values into the template. Every placeholder must
// have a value.
func (t *Template) Render(values map[string]string) (string, error) {
	for _, param := range t.Parameters() {
		if _, ok := values[param]; !ok {
			return "", fmt.Errorf("missing required parameter: %s", param)
		}
	}

	return parameterPattern.ReplaceAllStringFunc(t.Text, func(match string) string {
		name := parameterPattern.FindStringSubmatch(match)[1]
		return values[name]
	}), nil
}

// Validate checks that the template is usable.
func (t *Template) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("template name cannot be empty")
	}
	if t.Text == "" {
		return fmt.Errorf("template %s: text cannot be empty", t.Name)
	}
	for i, step := range t.Workflow {
		if step.Stage == "" {
			return fmt.Errorf("template %s: workflow step %d has no stage name", t.Name, i)
		}
	}
	return nil
}

// Info is a human-readable summary of a template.
type Info struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	Parameters      string `json:"parameters"`
	Tools           string `json:"tools"`
	Workflow        string `json:"workflow"`
	TemplatePreview string `json:"template_preview"`
}

// Info summarizes the template for listings.
func (t *Template) Info() Info {
	preview := t.Text
	if len(preview) > 100 {
		preview = preview[:100] + "..."
	}

	workflow := make([]string, 0, len(t.Workflow))
	for _, step := range t.Workflow {
		workflow = append(workflow, fmt.Sprintf("%s: %s", step.Stage, strings.Join(step.Tools, ", ")))
	}

	return Info{
		Name:            t.Name,
		Description:     t.Description,
		Parameters:      strings.Join(t.Parameters(), "\n"),
		Tools:           strings.Join(t.Tools, "\n"),
		Workflow:        strings.Join(workflow, "\n"),
		TemplatePreview: preview,
	}
}
