package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanHTML_RemovesNoise(t *testing.T) {
	raw := `<html><head>
		<title>Shop</title>
		<meta name="description" content="An example shop">
		<style>body { color: red; }</style>
	</head><body>
		<script>window.track = true;</script>
		<noscript>enable js</noscript>
		<main><p>Hello</p></main>
	</body></html>`

	cleaned, err := cleanHTML(raw, 10000)
	require.NoError(t, err)

	assert.Equal(t, "Shop", cleaned.Title)
	assert.Equal(t, "An example shop", cleaned.Description)
	assert.False(t, cleaned.Truncated)
	assert.Contains(t, cleaned.HTML, "Hello")
	assert.NotContains(t, cleaned.HTML, "window.track")
	assert.NotContains(t, cleaned.HTML, "color: red")
	assert.NotContains(t, cleaned.HTML, "enable js")
}

func TestCleanHTML_PreservesTargetingAttributes(t *testing.T) {
	raw := `<body>
		<a href="/next" target="_blank" onclick="go()" style="color:blue">Next</a>
		<input name="email" type="text" placeholder="Email" tabindex="3">
		<div id="content" class="wrap" data-page="1" draggable="true">Body</div>
	</body>`

	cleaned, err := cleanHTML(raw, 10000)
	require.NoError(t, err)

	assert.Contains(t, cleaned.HTML, `href="/next"`)
	assert.Contains(t, cleaned.HTML, `target="_blank"`)
	assert.Contains(t, cleaned.HTML, `name="email"`)
	assert.Contains(t, cleaned.HTML, `placeholder="Email"`)
	assert.Contains(t, cleaned.HTML, `id="content"`)
	assert.Contains(t, cleaned.HTML, `class="wrap"`)
	assert.Contains(t, cleaned.HTML, `data-page="1"`)

	assert.NotContains(t, cleaned.HTML, "onclick")
	assert.NotContains(t, cleaned.HTML, "style=")
	assert.NotContains(t, cleaned.HTML, "tabindex")
	assert.NotContains(t, cleaned.HTML, "draggable")
}

func TestCleanHTML_Truncates(t *testing.T) {
	raw := "<body><p>" + strings.Repeat("word ", 1000) + "</p></body>"

	cleaned, err := cleanHTML(raw, 200)
	require.NoError(t, err)

	assert.True(t, cleaned.Truncated)
	assert.Contains(t, cleaned.HTML, "...")
}

func TestCleanHTML_VoidElements(t *testing.T) {
	raw := `<body><p>line one<br>line two</p><img src="/x.png" alt="x"></body>`

	cleaned, err := cleanHTML(raw, 10000)
	require.NoError(t, err)

	assert.Contains(t, cleaned.HTML, "<br>")
	assert.NotContains(t, cleaned.HTML, "</br>")
	assert.NotContains(t, cleaned.HTML, "</img>")
	assert.Contains(t, cleaned.HTML, `src="/x.png"`)
}
