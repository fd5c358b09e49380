package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_Defaults(t *testing.T) {
	manager := NewManager()

	for _, name := range []string{"web_automation", "form_filling", "content_summary"} {
		template, err := manager.Get(name)
		require.NoError(t, err, "default template %s", name)
		assert.NoError(t, template.Validate())
	}
}

func TestManager_Register(t *testing.T) {
	manager := NewManager()

	err := manager.Register(NewTemplate("custom", "A custom template", "Do {{thing}}"))
	require.NoError(t, err)

	template, err := manager.Get("custom")
	require.NoError(t, err)
	assert.Equal(t, []string{"thing"}, template.Parameters())
}

func TestManager_Register_Invalid(t *testing.T) {
	manager := NewManager()

	err := manager.Register(&Template{Name: "empty"})
	assert.Error(t, err)
}

func TestManager_Get_NotFound(t *testing.T) {
	manager := NewManager()

	_, err := manager.Get("nonexistent")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestManager_List(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.Register(NewTemplate("aaa_first", "", "text")))

	infos := manager.List()
	require.NotEmpty(t, infos)
	assert.Equal(t, "aaa_first", infos[0].Name, "list is sorted by name")

	names := make(map[string]bool)
	for _, info := range infos {
		names[info.Name] = true
	}
	assert.True(t, names["web_automation"])
}

func TestManager_Render(t *testing.T) {
	manager := NewManager()

	rendered, err := manager.Render("content_summary", map[string]string{
		"content": "Long article text",
		"length":  "100 words",
		"focus":   "key findings",
	})
	require.NoError(t, err)
	assert.Contains(t, rendered, "Long article text")
	assert.Contains(t, rendered, "100 words")
}

func TestManager_Render_MissingValues(t *testing.T) {
	manager := NewManager()

	_, err := manager.Render("content_summary", map[string]string{})
	assert.Error(t, err)
}

func TestLoadTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "research.yaml")
	content := `name: research
description: Research a topic across pages
template: |
  Research {{topic}} and report findings.
tools:
  - navigate - load a URL
  - extract_content - read the page
workflow:
  - stage: Gather
    tools: [navigate, extract_content]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0640))

	template, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "research", template.Name)
	assert.Equal(t, []string{"topic"}, template.Parameters())
	require.Len(t, template.Workflow, 1)
	assert.Equal(t, "Gather", template.Workflow[0].Stage)
}

func TestLoadTemplate_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: incomplete\n"), 0640))

	_, err := LoadTemplate(path)
	assert.Error(t, err)
}

func TestSaveAndLoadTemplate_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	original := NewTemplate("custom", "desc", "Do {{thing}} carefully")

	require.NoError(t, SaveTemplate(path, original))

	loaded, err := LoadTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, original.Name, loaded.Name)
	assert.Equal(t, original.Text, loaded.Text)
	assert.Equal(t, original.Parameters(), loaded.Parameters())
}

func TestManager_LoadDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.yaml"),
		[]byte("name: one\ntemplate: first {{a}}\n"), 0640))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.yml"),
		[]byte("name: two\ntemplate: second\n"), 0640))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"),
		[]byte("not yaml"), 0640))

	manager := NewManager()
	require.NoError(t, manager.LoadDirectory(dir))

	_, err := manager.Get("one")
	assert.NoError(t, err)
	_, err = manager.Get("two")
	assert.NoError(t, err)
}

func TestManager_LoadDirectory_Missing(t *testing.T) {
	manager := NewManager()
	assert.NoError(t, manager.LoadDirectory(filepath.Join(t.TempDir(), "nope")))
}
