package prompt

import (
	"fmt"
	"sort"
	"sync"
)

// Manager holds the registered prompt templates.
type Manager struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewManager creates a manager pre-loaded with the default templates.
func NewManager() *Manager {
	m := &Manager{
		templates: make(map[string]*Template),
	}
	m.registerDefaults()
	return m
}

// Register adds a template, replacing any existing one with the same name.
func (m *Manager) Register(template *Template) error {
	if err := template.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[template.Name] = template
	return nil
}

// Get returns the template with the given name.
func (m *Manager) Get(name string) (*Template, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	template, ok := m.templates[name]
	if !ok {
		return nil, fmt.Errorf("template not found: %s", name)
	}
	return template, nil
}

// List returns summaries of all templates, sorted by name.
func (m *Manager) List() []Info {
	m.mu.RLock()
	defer m.mu.RUnlock()

	infos := make([]Info, 0, len(m.templates))
	for _, template := range m.templates {
		infos = append(infos, template.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Render looks up a template and renders it with the given values.
func (m *Manager) Render(name string, values map[string]string) (string, error) {
	template, err := m.Get(name)
	if err != nil {
		return "", err
	}
	return template.Render(values)
}

func (m *Manager) registerDefaults() {
	webAutomation := &Template{
		Name:        "web_automation",
		Description: "General web automation over a browser session",
		Text:        "Complete the following task using the browser tools:\n\n{{task}}\n\nCreate a session first, interact with the page step by step, and close the session when done.",
		Tools: []string{
			"start_session - create a browser session",
			"navigate - load a URL",
			"click - click an element",
			"fill - fill a form input",
			"get_text - read element text",
			"get_attribute - read an element attribute",
			"page_info - current URL and title",
			"evaluate - run JavaScript",
			"screenshot - capture the page",
			"wait_for - wait for an element",
			"close_session - release the session",
		},
		Workflow: []WorkflowStep{
			{Stage: "Open", Tools: []string{"start_session", "navigate"}},
			{Stage: "Interact", Tools: []string{"click", "fill", "wait_for"}},
			{Stage: "Extract", Tools: []string{"get_text", "extract_content", "screenshot"}},
			{Stage: "Finish", Tools: []string{"close_session"}},
		},
	}

	formFilling := &Template{
		Name:        "form_filling",
		Description: "Fill and submit a form on a page",
		Text:        "Fill the form at {{url}} with the following data:\n\n{{form_data}}\n\nUse wait_for to make sure each field is visible before filling it, then submit and verify the result.",
		Tools: []string{
			"start_session - create a browser session",
			"navigate - load the form page",
			"wait_for - wait for fields to appear",
			"fill - fill text inputs",
			"select_option - choose dropdown options",
			"click - submit the form",
			"get_text - verify the result",
			"close_session - release the session",
		},
		Workflow: []WorkflowStep{
			{Stage: "Open", Tools: []string{"start_session", "navigate"}},
			{Stage: "Fill", Tools: []string{"wait_for", "fill", "select_option"}},
			{Stage: "Submit", Tools: []string{"click", "get_text"}},
			{Stage: "Finish", Tools: []string{"close_session"}},
		},
	}

	contentSummary := &Template{
		Name:        "content_summary",
		Description: "Summarize the content of a page",
		Text:        "Summarize the following content:\n\n{{content}}\n\nRequirements:\n- Length: {{length}}\n- Focus: {{focus}}",
	}

	for _, t := range []*Template{webAutomation, formFilling, contentSummary} {
		t.extractParameters()
		m.templates[t.Name] = t
	}
}
