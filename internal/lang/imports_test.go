package lang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testPoolModule = "ouverture.pool"

var testHash = strings.Repeat("ab", 32)

func classify(t *testing.T, source string) []ImportInfo {
	t.Helper()
	u, err := Parse([]byte(source))
	require.NoError(t, err)
	infos, err := ClassifyImports(u, testPoolModule)
	require.NoError(t, err)
	return infos
}

func TestClassifyImports_External(t *testing.T) {
	source := "import math\nimport numpy as np\nfrom os import path as p\n\ndef f(x):\n    return x\n"
	infos := classify(t, source)
	require.Len(t, infos, 3)

	require.Equal(t, "import", infos[0].Kind)
	require.Equal(t, "math", infos[0].Items[0].Name)
	require.Equal(t, "math", infos[0].Items[0].BoundName)
	require.False(t, infos[0].Items[0].IsPool)

	require.Equal(t, "np", infos[1].Items[0].BoundName)
	require.Equal(t, "numpy", infos[1].Items[0].Name)

	require.Equal(t, "from", infos[2].Kind)
	require.Equal(t, "os", infos[2].Module)
	require.Equal(t, "p", infos[2].Items[0].BoundName)
}

func TestClassifyImports_Pool(t *testing.T) {
	source := "from ouverture.pool import object_" + testHash + " as twice\n\ndef f(x):\n    return twice(x)\n"
	infos := classify(t, source)
	require.Len(t, infos, 1)

	item := infos[0].Items[0]
	require.True(t, item.IsPool)
	require.Equal(t, testHash, item.PoolHash)
	require.Equal(t, "twice", item.Alias)
	require.Equal(t, "twice", item.BoundName)

	require.Equal(t, map[string]string{"twice": testHash}, PoolAliases(infos))
	require.Equal(t, map[string]string{testHash: "twice"}, AliasMapping(infos))
	require.True(t, ImportedNames(infos)["twice"])
}

func TestClassifyImports_PoolWithoutAlias(t *testing.T) {
	source := "from ouverture.pool import object_" + testHash + "\n\ndef f(x):\n    return x\n"
	infos := classify(t, source)

	item := infos[0].Items[0]
	require.True(t, item.IsPool)
	require.Equal(t, "object_"+testHash, item.BoundName)
	require.Equal(t, map[string]string{"object_" + testHash: testHash}, PoolAliases(infos))
	require.Empty(t, AliasMapping(infos))
}

func TestClassifyImports_PoolPrefixRequiresFullHash(t *testing.T) {
	// A from-import of the pool module that does not bind object_<64-hex> is
	// just an external import.
	source := "from ouverture.pool import object_zz\n\ndef f(x):\n    return x\n"
	infos := classify(t, source)
	require.False(t, infos[0].Items[0].IsPool)
}

func TestSortImports_Deterministic(t *testing.T) {
	source := "import zlib\nimport math\nfrom os import path\n\ndef f(x):\n    return x\n"
	sorted := SortImports(classify(t, source))

	var rendered []string
	for _, info := range sorted {
		rendered = append(rendered, RenderImport(info))
	}
	require.Equal(t, []string{
		"from os import path",
		"import math",
		"import zlib",
	}, rendered)
}

func TestRenderImport_StripsPoolAlias(t *testing.T) {
	source := "from ouverture.pool import object_" + testHash + " as twice\n\ndef f(x):\n    return x\n"
	infos := classify(t, source)
	require.Equal(t, "from ouverture.pool import object_"+testHash, RenderImport(infos[0]))
}

func TestRenderImportWithAlias_RestoresPoolAlias(t *testing.T) {
	source := "from ouverture.pool import object_" + testHash + "\n\ndef f(x):\n    return x\n"
	infos := classify(t, source)

	restored := RenderImportWithAlias(infos[0], map[string]string{testHash: "twice"})
	require.Equal(t, "from ouverture.pool import object_"+testHash+" as twice", restored)

	// Without a recorded alias the bare form is kept.
	bare := RenderImportWithAlias(infos[0], nil)
	require.Equal(t, "from ouverture.pool import object_"+testHash, bare)
}
