// cmd/sftemplate/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: real filesystem in a temp dir
// PURPOSE: Test the commands end to end from arguments to written files

package sftemplate

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jdcrensh/sftemplate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const testConfig = `outputDir = "out"

[[files]]
template = "SinglePageApp"
apiName = "MyApp"
title = "My App"
`

func writeConfig(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sftemplate.toml"), []byte(testConfig), 0644))
}

func TestRoot_NoCommand(t *testing.T) {
	_, err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), MsgErrNoCommand)
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "sftemplate version")
}

func TestBuildCmd(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir)

	out, err := execute(t, "build")
	require.NoError(t, err)
	assert.Contains(t, out, "package.xml")

	page, err := os.ReadFile(filepath.Join(dir, "out", "pages", "MyApp.page"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "My App")

	assert.FileExists(t, filepath.Join(dir, "out", "pages", "MyApp.page-meta.xml"))
	assert.FileExists(t, filepath.Join(dir, "out", "package.xml"))
}

func TestBuildCmd_NoMeta(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir)

	_, err := execute(t, "build", "--no-meta", "--output-dir", "gen")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "gen", "pages", "MyApp.page"))
	assert.NoFileExists(t, filepath.Join(dir, "gen", "pages", "MyApp.page-meta.xml"))
	assert.NoFileExists(t, filepath.Join(dir, "gen", "package.xml"))
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestBuildCmd_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sftemplate.toml"), []byte("files = []\n"), 0644))

	_, err := execute(t, "build")
	require.Error(t, err)
	assert.True(t, errors.IsConfigurationError(err), "got %v", err)
}

func TestPlanCmd_WritesNothing(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir)

	out, err := execute(t, "plan", "--format", "text")
	require.NoError(t, err)
	assert.Contains(t, out, "MyApp.page")
	assert.Contains(t, out, "SinglePageApp")
	assert.NoDirExists(t, filepath.Join(dir, "out"))
}

func TestPlanCmd_BadFormat(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeConfig(t, dir)

	_, err := execute(t, "plan", "--format", "xml")
	require.Error(t, err)
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	out, err := execute(t, "init", "--api-name", "Portal")
	require.NoError(t, err)
	assert.Contains(t, out, "sftemplate.toml")

	data, err := os.ReadFile(filepath.Join(dir, "sftemplate.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Portal")

	_, err = execute(t, "init")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	_, err = execute(t, "init", "--force")
	require.NoError(t, err)
}

func TestKindsCmd(t *testing.T) {
	out, err := execute(t, "kinds")
	require.NoError(t, err)
	for _, name := range []string{"SinglePageApp", "Controller", "Package", "StaticResourceMeta"} {
		assert.Contains(t, out, name)
	}
}
