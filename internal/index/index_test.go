package index

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	fnHash   = strings.Repeat("aa", 32)
	ovHashA  = strings.Repeat("bb", 32)
	ovHashB  = strings.Repeat("cc", 32)
	testLang = "eng"
)

func openIndex(t *testing.T) *Index {
	t.Helper()
	x, err := Open(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { x.Close() })
	return x
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.db")

	x, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, x.UpsertFunction(context.Background(), fnHash))
	require.NoError(t, x.Close())

	x, err = Open(path)
	require.NoError(t, err)
	defer x.Close()

	has, err := x.HasFunction(context.Background(), fnHash)
	require.NoError(t, err)
	require.True(t, has)
}

func TestUpsertFunction_DuplicatesIgnored(t *testing.T) {
	x := openIndex(t)
	ctx := context.Background()

	require.NoError(t, x.UpsertFunction(ctx, fnHash))
	require.NoError(t, x.UpsertFunction(ctx, fnHash))

	has, err := x.HasFunction(ctx, fnHash)
	require.NoError(t, err)
	require.True(t, has)
}

func TestHasFunction_Absent(t *testing.T) {
	x := openIndex(t)
	has, err := x.HasFunction(context.Background(), fnHash)
	require.NoError(t, err)
	require.False(t, has)
}

func TestOverlays_OrderedByHash(t *testing.T) {
	x := openIndex(t)
	ctx := context.Background()

	require.NoError(t, x.UpsertFunction(ctx, fnHash))
	require.NoError(t, x.UpsertOverlay(ctx, fnHash, testLang, ovHashB, "casual"))
	require.NoError(t, x.UpsertOverlay(ctx, fnHash, testLang, ovHashA, "formal"))

	overlays, err := x.Overlays(ctx, fnHash, testLang)
	require.NoError(t, err)
	require.Equal(t, []OverlayRow{
		{OverlayHash: ovHashA, Comment: "formal"},
		{OverlayHash: ovHashB, Comment: "casual"},
	}, overlays)
}

func TestLanguages_Distinct(t *testing.T) {
	x := openIndex(t)
	ctx := context.Background()

	require.NoError(t, x.UpsertFunction(ctx, fnHash))
	require.NoError(t, x.UpsertOverlay(ctx, fnHash, "fra", ovHashA, ""))
	require.NoError(t, x.UpsertOverlay(ctx, fnHash, "eng", ovHashA, ""))
	require.NoError(t, x.UpsertOverlay(ctx, fnHash, "eng", ovHashB, ""))

	languages, err := x.Languages(ctx, fnHash)
	require.NoError(t, err)
	require.Equal(t, []string{"eng", "fra"}, languages)
}

func TestReset_DropsEverything(t *testing.T) {
	x := openIndex(t)
	ctx := context.Background()

	require.NoError(t, x.UpsertFunction(ctx, fnHash))
	require.NoError(t, x.UpsertOverlay(ctx, fnHash, testLang, ovHashA, ""))
	require.NoError(t, x.Reset(ctx))

	has, err := x.HasFunction(ctx, fnHash)
	require.NoError(t, err)
	require.False(t, has)

	overlays, err := x.Overlays(ctx, fnHash, testLang)
	require.NoError(t, err)
	require.Empty(t, overlays)
}
