package objectstore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	fnHashA      = strings.Repeat("aa", 32)
	fnHashB      = strings.Repeat("bb", 32)
	overlayHashA = strings.Repeat("cc", 32)
	overlayHashB = strings.Repeat("dd", 32)
)

func seedPool(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	require.NoError(t, WriteFileAtomic(ObjectPath(root, fnHashA), []byte("{}")))
	require.NoError(t, WriteFileAtomic(ObjectPath(root, fnHashB), []byte("{}")))
	require.NoError(t, WriteFileAtomic(MappingPath(root, fnHashA, "eng", overlayHashA), []byte("{}")))
	require.NoError(t, WriteFileAtomic(MappingPath(root, fnHashA, "eng", overlayHashB), []byte("{}")))
	require.NoError(t, WriteFileAtomic(MappingPath(root, fnHashA, "fra", overlayHashA), []byte("{}")))
	return root
}

func TestListFunctions(t *testing.T) {
	root := seedPool(t)
	hashes, err := ListFunctions(root)
	require.NoError(t, err)
	require.Equal(t, []string{fnHashA, fnHashB}, hashes)
}

func TestListFunctions_EmptyRoot(t *testing.T) {
	hashes, err := ListFunctions(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, hashes)
}

func TestListLanguages(t *testing.T) {
	root := seedPool(t)

	languages, err := ListLanguages(root, fnHashA)
	require.NoError(t, err)
	require.Equal(t, []string{"eng", "fra"}, languages)

	languages, err = ListLanguages(root, fnHashB)
	require.NoError(t, err)
	require.Empty(t, languages)
}

func TestListOverlayHashes(t *testing.T) {
	root := seedPool(t)

	hashes, err := ListOverlayHashes(root, fnHashA, "eng")
	require.NoError(t, err)
	require.Equal(t, []string{overlayHashA, overlayHashB}, hashes)

	hashes, err = ListOverlayHashes(root, fnHashA, "deu")
	require.NoError(t, err)
	require.Empty(t, hashes)
}

func TestFunctionExists(t *testing.T) {
	root := seedPool(t)

	ok, err := FunctionExists(root, fnHashA)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = FunctionExists(root, strings.Repeat("ee", 32))
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLanguageExists(t *testing.T) {
	root := seedPool(t)

	ok, err := LanguageExists(root, fnHashA, "eng")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = LanguageExists(root, fnHashA, "deu")
	require.NoError(t, err)
	require.False(t, ok)
}
