package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(viper.New())
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestValidate(t *testing.T) {
	path := writeFile(t, "config.json", `{"links":[{"name":"NAS","url":"http://nas"}]}`)

	out, _, err := run(t, "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, `ok ("Homey", 1 links)`)
}

func TestValidateUsesConfigFlag(t *testing.T) {
	path := writeFile(t, "dash.json", `{"title":"x","links":[]}`)

	out, _, err := run(t, "validate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)
}

func TestValidateRejectsInvalidFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"title":"x"}`)

	_, _, err := run(t, "validate", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "links")
}

func TestFmtRewritesCanonically(t *testing.T) {
	path := writeFile(t, "config.json", `{"links":[{"url":"http://nas","name":"NAS"}],"title":"Lab"}`)

	_, _, err := run(t, "fmt", "--check", path)
	require.Error(t, err)

	out, _, err := run(t, "fmt", path)
	require.NoError(t, err)
	assert.Contains(t, out, "rewritten")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"title\": \"Lab\",\n  \"links\": [\n    {\n      \"name\": \"NAS\",\n      \"url\": \"http://nas\"\n    }\n  ]\n}\n", string(data))

	out, _, err = run(t, "fmt", "--check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "already canonical")
}

const services = `- Media:
    - Jellyfin:
        href: https://jellyfin.lan
    - Broken:
        href: ""
`

func TestImportHomepageToStdout(t *testing.T) {
	path := writeFile(t, "services.yaml", services)

	out, errOut, err := run(t, "import-homepage", "--title", "Lab", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"title": "Lab"`)
	assert.Contains(t, out, `"url": "https://jellyfin.lan"`)
	assert.Contains(t, errOut, "skipped Media/Broken: missing href")
}

func TestImportHomepageRefusesOverwrite(t *testing.T) {
	path := writeFile(t, "services.yaml", services)
	target := writeFile(t, "config.json", "keep me")

	_, _, err := run(t, "import-homepage", "--out", target, path)
	require.Error(t, err)
	data, _ := os.ReadFile(target)
	assert.Equal(t, "keep me", string(data))

	_, _, err = run(t, "import-homepage", "--out", target, "--force", path)
	require.NoError(t, err)

	_, _, err = run(t, "validate", target)
	assert.NoError(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "homey dev")
}
