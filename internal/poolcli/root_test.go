package poolcli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amirouche/ouverture/internal/testsupport"
)

// execute runs a fresh command tree and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFixture(t *testing.T, source string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "unit.py")
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return path
}

func TestAddThenGet(t *testing.T) {
	root := t.TempDir()
	file := writeFixture(t, testsupport.AddEnglish)

	out, err := execute(t, "add", file, "--language", "eng", "--root", root)
	require.NoError(t, err)

	locator := strings.TrimSpace(out)
	parts := strings.Split(locator, "@")
	require.Len(t, parts, 3)
	require.Equal(t, testsupport.AddFunctionHash, parts[0])
	require.Equal(t, "eng", parts[1])

	source, err := execute(t, "get", locator, "--root", root)
	require.NoError(t, err)
	require.Equal(t, "def add(a, b):\n    \"\"\"Add two numbers\"\"\"\n    return a + b\n", source)

	// A sole overlay is selected implicitly.
	source, err = execute(t, "get", parts[0]+"@eng", "--root", root)
	require.NoError(t, err)
	require.Contains(t, source, "def add(a, b):")
}

func TestLanguagesAndOverlays(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, "add", writeFixture(t, testsupport.AddEnglish), "--language", "eng", "--root", root)
	require.NoError(t, err)
	_, err = execute(t, "add", writeFixture(t, testsupport.AddFrench), "--language", "fra", "--comment", "formal", "--root", root)
	require.NoError(t, err)

	out, err := execute(t, "languages", testsupport.AddFunctionHash, "--root", root)
	require.NoError(t, err)
	require.Equal(t, "eng\nfra\n", out)

	out, err = execute(t, "overlays", testsupport.AddFunctionHash, "fra", "--root", root)
	require.NoError(t, err)
	require.Contains(t, out, "formal")
}

func TestValidateCommand(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, "add", writeFixture(t, testsupport.AddEnglish), "--language", "eng", "--root", root)
	require.NoError(t, err)

	out, err := execute(t, "validate", testsupport.AddFunctionHash, "--root", root)
	require.NoError(t, err)
	require.Equal(t, "ok\n", out)
}

func TestGet_MissingFunction(t *testing.T) {
	root := t.TempDir()
	absent := strings.Repeat("ee", 32)

	_, err := execute(t, "get", absent+"@eng", "--root", root)
	require.Error(t, err)
	require.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestGet_RequiresLanguage(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, "get", strings.Repeat("ee", 32), "--root", root)
	require.Error(t, err)
	require.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRoot_RejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "languages", strings.Repeat("ee", 32), "--format", "xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid format")
}
