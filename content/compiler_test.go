package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileHeadingAnchors(t *testing.T) {
	compiler := NewCompiler()

	out, err := compiler.Compile("## Getting Started\n\nText.\n\n### Configuration & Setup\n")
	require.NoError(t, err)

	assert.Contains(t, out.HTML, `<h2 id="getting-started">`)
	assert.Contains(t, out.HTML, `<a class="heading-anchor" href="#getting-started">`)
	assert.Contains(t, out.HTML, `<h3 id="configuration-setup">`)

	require.Len(t, out.Headings, 2)
	assert.Equal(t, "getting-started", out.Headings[0].ID)
	assert.Equal(t, "Getting Started", out.Headings[0].Text)
	assert.Equal(t, 2, out.Headings[0].Level)
}

func TestCompileDuplicateHeadingsGetDistinctAnchors(t *testing.T) {
	compiler := NewCompiler()

	out, err := compiler.Compile("## Usage\n\nOne.\n\n## Usage\n\nTwo.\n\n## Usage\n")
	require.NoError(t, err)

	require.Len(t, out.Headings, 3)
	ids := map[string]bool{}
	for _, h := range out.Headings {
		assert.False(t, ids[h.ID], "duplicate anchor %q", h.ID)
		ids[h.ID] = true
	}
	assert.Equal(t, "usage", out.Headings[0].ID)
	assert.Equal(t, "usage-2", out.Headings[1].ID)
	assert.Equal(t, "usage-3", out.Headings[2].ID)
}

func TestCompileHighlightsKnownLanguage(t *testing.T) {
	compiler := NewCompiler()

	out, err := compiler.Compile("```go\nfunc main() {}\n```\n")
	require.NoError(t, err)
	assert.Contains(t, out.HTML, `class="chroma"`)
	assert.Contains(t, out.HTML, `data-language="go"`)
}

func TestCompileUnknownLanguageFallsBackToPlainPre(t *testing.T) {
	compiler := NewCompiler()

	out, err := compiler.Compile("```nosuchlang\nhello <world>\n```\n")
	require.NoError(t, err)
	assert.Contains(t, out.HTML, `<pre><code class="language-nosuchlang">`)
	assert.Contains(t, out.HTML, "hello &lt;world&gt;")
}

func TestCompileNoLanguageFallsBackToPlainPre(t *testing.T) {
	compiler := NewCompiler()

	out, err := compiler.Compile("```\nplain text\n```\n")
	require.NoError(t, err)
	assert.Contains(t, out.HTML, "<pre><code>")
	assert.Contains(t, out.HTML, "plain text")
}

func TestCompileUnclosedFenceDoesNotFail(t *testing.T) {
	compiler := NewCompiler()

	out, err := compiler.Compile("Intro.\n\n```go\nfunc broken(\n")
	require.NoError(t, err)
	assert.NotEmpty(t, out.HTML)
}

func TestCompileIsPure(t *testing.T) {
	compiler := NewCompiler()
	body := "# Title\n\n## Usage\n\n## Usage\n\n```go\nx := 1\n```\n"

	first, err := compiler.Compile(body)
	require.NoError(t, err)
	second, err := compiler.Compile(body)
	require.NoError(t, err)

	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, first.Headings, second.Headings)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Getting Started", "getting-started"},
		{"Configuration & Setup", "configuration-setup"},
		{"  spaces  everywhere  ", "spaces-everywhere"},
		{"MiXeD CaSe", "mixed-case"},
		{"100% Coverage!", "100-coverage"},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestCompileEmptyHeadingGetsFallbackID(t *testing.T) {
	compiler := NewCompiler()

	out, err := compiler.Compile("## !!!\n")
	require.NoError(t, err)
	require.Len(t, out.Headings, 1)
	assert.True(t, strings.HasPrefix(out.Headings[0].ID, "section"))
}
