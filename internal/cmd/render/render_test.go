package render

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// neutralEnv blanks the configuration environment so tests see only
// their own flags and config files.
func neutralEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"WIKITEXT_LANGUAGE", "WIKITEXT_FORMAT", "WIKITEXT_LINK_BASE",
		"WIKITEXT_STYLE", "WIKI_LANGUAGE", "WIKI_FORMAT", "WIKI_LINK_BASE",
	} {
		t.Setenv(v, "")
	}
}

func testOptions(t *testing.T) (*renderOptions, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	neutralEnv(t)
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	opts := &renderOptions{
		configPath: filepath.Join(t.TempDir(), "config.yml"),
		noColor:    true,
		stdin:      strings.NewReader(""),
		stdout:     stdout,
		stderr:     stderr,
	}
	return opts, stdout, stderr
}

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.wiki")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunRender_HTMLFromFile(t *testing.T) {
	opts, stdout, _ := testOptions(t)
	file := writeSource(t, "Hello ''world''")

	err := runRender(file, opts)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hello <i>world</i></p>\n", stdout.String())
}

func TestRunRender_HTMLFromStdin(t *testing.T) {
	opts, stdout, _ := testOptions(t)
	opts.stdin = strings.NewReader("Plain text")

	err := runRender("", opts)
	require.NoError(t, err)
	assert.Equal(t, "<p>Plain text</p>\n", stdout.String())
}

func TestRunRender_DashReadsStdin(t *testing.T) {
	opts, stdout, _ := testOptions(t)
	opts.stdin = strings.NewReader("From a pipe")

	err := runRender("-", opts)
	require.NoError(t, err)
	assert.Equal(t, "<p>From a pipe</p>\n", stdout.String())
}

func TestRunRender_Events(t *testing.T) {
	opts, stdout, _ := testOptions(t)
	opts.format = "events"
	opts.stdin = strings.NewReader("ab")

	err := runRender("", opts)
	require.NoError(t, err)

	want := "begin-document\n" +
		"begin-paragraph\n" +
		"word \"ab\"\n" +
		"end-paragraph\n" +
		"end-document\n"
	assert.Equal(t, want, stdout.String())
}

func TestRunRender_Markdown(t *testing.T) {
	opts, stdout, _ := testOptions(t)
	opts.format = "markdown"
	file := writeSource(t, "== Title ==\n\nSome '''bold''' text.")

	err := runRender(file, opts)
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "## Title")
	assert.Contains(t, output, "**bold**")
	assert.True(t, strings.HasSuffix(output, "\n"))
}

func TestRunRender_FullPage(t *testing.T) {
	opts, stdout, _ := testOptions(t)
	opts.fullPage = true
	opts.title = "Front page"
	file := writeSource(t, "Welcome")

	err := runRender(file, opts)
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, "<!DOCTYPE html>")
	assert.Contains(t, output, "<title>Front page</title>")
	assert.Contains(t, output, "<p>Welcome</p>")
}

func TestRunRender_FullPageDefaultTitle(t *testing.T) {
	opts, stdout, _ := testOptions(t)
	opts.fullPage = true
	file := writeSource(t, "Welcome")

	err := runRender(file, opts)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "<title>page</title>")
}

func TestRunRender_FullPageOnlyAffectsHTML(t *testing.T) {
	opts, stdout, _ := testOptions(t)
	opts.fullPage = true
	opts.format = "events"
	opts.stdin = strings.NewReader("ab")

	err := runRender("", opts)
	require.NoError(t, err)
	assert.NotContains(t, stdout.String(), "<!DOCTYPE html>")
}

func TestRunRender_LinkBase(t *testing.T) {
	opts, stdout, _ := testOptions(t)
	opts.linkBase = "https://wiki.example.com"
	opts.stdin = strings.NewReader("[[Front page]]")

	err := runRender("", opts)
	require.NoError(t, err)
	assert.Equal(t,
		"<p><a href=\"https://wiki.example.com/Front_page\">Front page</a></p>\n",
		stdout.String())
}

func TestRunRender_ParseError(t *testing.T) {
	opts, stdout, stderr := testOptions(t)
	opts.stdin = strings.NewReader("''never closed")

	err := runRender("", opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "render failed")

	assert.Zero(t, stdout.Len(), "a failed render must not produce output")
	assert.Contains(t, stderr.String(), "-:1:1:")
	assert.Contains(t, stderr.String(), "unterminated italic")
	assert.Contains(t, stderr.String(), "''never closed")
}

func TestRunRender_InvalidFormat(t *testing.T) {
	opts, _, _ := testOptions(t)
	opts.format = "pdf"
	opts.stdin = strings.NewReader("ab")

	err := runRender("", opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format must be")
}

func TestRunRender_MissingFile(t *testing.T) {
	opts, _, _ := testOptions(t)

	err := runRender(filepath.Join(t.TempDir(), "absent.wiki"), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestRunRender_FormatFromConfigFile(t *testing.T) {
	opts, stdout, _ := testOptions(t)
	require.NoError(t, os.WriteFile(opts.configPath, []byte("format: events\n"), 0600))
	opts.stdin = strings.NewReader("ab")

	err := runRender("", opts)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "begin-document")
}

func TestRunRender_FlagOverridesConfigFile(t *testing.T) {
	opts, stdout, _ := testOptions(t)
	require.NoError(t, os.WriteFile(opts.configPath, []byte("format: events\n"), 0600))
	opts.format = "html"
	opts.stdin = strings.NewReader("ab")

	err := runRender("", opts)
	require.NoError(t, err)
	assert.Equal(t, "<p>ab</p>\n", stdout.String())
}

func TestPageTitle(t *testing.T) {
	tests := []struct {
		name  string
		file  string
		title string
		want  string
	}{
		{"explicit title wins", "page.wiki", "My title", "My title"},
		{"file stem", "docs/front.wiki", "", "front"},
		{"no extension", "README", "", "README"},
		{"stdin", "", "", "wikitext"},
		{"dash", "-", "", "wikitext"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pageTitle(tt.file, tt.title))
		})
	}
}

func TestNewCmdRender_Flags(t *testing.T) {
	cmd := NewCmdRender()

	assert.Equal(t, "render [file]", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	for _, name := range []string{"format", "full-page", "title", "language", "link-base", "style"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "flag %s", name)
	}
}
