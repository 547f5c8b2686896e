package normalize

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/amirouche/ouverture/internal/canon"
	"github.com/amirouche/ouverture/internal/testsupport"
)

func normalizeSource(t *testing.T, source string) *Result {
	t.Helper()
	result, err := Normalize([]byte(source), Namespace, PoolModulePath)
	require.NoError(t, err)
	return result
}

func TestNormalize_SimpleFunction(t *testing.T) {
	result := normalizeSource(t, testsupport.AddEnglish)

	require.Equal(t, testsupport.AddEnglishCanonical, result.CanonicalCode)
	require.Equal(t, "Add two numbers", result.Mapping.Docstring)
	require.Equal(t, map[string]string{
		"_ouverture_v_0": "add",
		"_ouverture_v_1": "a",
		"_ouverture_v_2": "b",
	}, result.Mapping.NameMapping)
	require.Empty(t, result.Mapping.AliasMapping)

	require.Equal(t, testsupport.AddFunctionHash, canon.FunctionHash([]byte(result.CanonicalCode)))

	g := goldie.New(t)
	g.Assert(t, "canonical_add", []byte(result.CanonicalCode))
}

func TestNormalize_LanguageIndependentIdentity(t *testing.T) {
	english := normalizeSource(t, testsupport.AddEnglish)
	french := normalizeSource(t, testsupport.AddFrench)

	require.Equal(t, english.CanonicalCode, french.CanonicalCode)
	require.Equal(t, "Additionne deux nombres", french.Mapping.Docstring)
	require.Equal(t, "additionner", french.Mapping.NameMapping["_ouverture_v_0"])
	require.Equal(t, "x", french.Mapping.NameMapping["_ouverture_v_1"])
	require.Equal(t, "y", french.Mapping.NameMapping["_ouverture_v_2"])
}

func TestNormalize_DocstringIndependentIdentity(t *testing.T) {
	with := normalizeSource(t, testsupport.AddEnglish)
	without := normalizeSource(t, "def add(a, b):\n    return a + b\n")

	require.Equal(t, with.CanonicalCode, without.CanonicalCode)
	require.Equal(t, "", without.Mapping.Docstring)
}

func TestNormalize_PoolReference(t *testing.T) {
	source := fmt.Sprintf(`from ouverture.pool import object_%s as twice

def double_all(xs):
    """Double each element"""
    return [twice(x) for x in xs]
`, testsupport.HelperFunctionHash)

	result := normalizeSource(t, source)

	expected := fmt.Sprintf("from ouverture.pool import object_%s\n\n"+
		"def _ouverture_v_0(_ouverture_v_1):\n"+
		"    return [object_%s._ouverture_v_0(_ouverture_v_2) for _ouverture_v_2 in _ouverture_v_1]\n",
		testsupport.HelperFunctionHash, testsupport.HelperFunctionHash)
	require.Equal(t, expected, result.CanonicalCode)

	require.Equal(t, map[string]string{testsupport.HelperFunctionHash: "twice"}, result.Mapping.AliasMapping)
	require.Equal(t, "Double each element", result.Mapping.Docstring)
	require.Equal(t, map[string]string{
		"_ouverture_v_0": "double_all",
		"_ouverture_v_1": "xs",
		"_ouverture_v_2": "x",
	}, result.Mapping.NameMapping)
}

func TestNormalize_AsyncPreserved(t *testing.T) {
	result := normalizeSource(t, testsupport.AsyncFetch)

	expected := "async def _ouverture_v_0(_ouverture_v_1):\n" +
		"    _ouverture_v_2 = await _ouverture_v_3(_ouverture_v_1)\n" +
		"    return _ouverture_v_2\n"
	require.Equal(t, expected, result.CanonicalCode)

	// The free name "get" is slot-assigned like any other user-defined name.
	require.Equal(t, "get", result.Mapping.NameMapping["_ouverture_v_3"])

	g := goldie.New(t)
	g.Assert(t, "canonical_async", []byte(result.CanonicalCode))
}

func TestNormalize_BuiltinsAndImportsPreserved(t *testing.T) {
	source := "import math\n\ndef area(r):\n    return math.pi * float(r) ** 2\n"
	result := normalizeSource(t, source)

	expected := "import math\n\n" +
		"def _ouverture_v_0(_ouverture_v_1):\n" +
		"    return math.pi * float(_ouverture_v_1) ** 2\n"
	require.Equal(t, expected, result.CanonicalCode)
	for _, original := range result.Mapping.NameMapping {
		require.NotEqual(t, "math", original)
		require.NotEqual(t, "float", original)
	}
}

func TestNormalize_ImportsSorted(t *testing.T) {
	source := "import zlib\nimport math\n\ndef f(x):\n    return x\n"
	result := normalizeSource(t, source)
	require.Equal(t, "import math\nimport zlib\n\ndef _ouverture_v_0(_ouverture_v_1):\n    return _ouverture_v_1\n", result.CanonicalCode)
}

func TestNormalize_BareDecoratorPoolReference(t *testing.T) {
	source := fmt.Sprintf(`from ouverture.pool import object_%s as deco

@deco
def f(x):
    return x
`, testsupport.HelperFunctionHash)

	result := normalizeSource(t, source)

	expected := fmt.Sprintf("from ouverture.pool import object_%s\n\n"+
		"@object_%s._ouverture_v_0\n"+
		"def _ouverture_v_0(_ouverture_v_1):\n"+
		"    return _ouverture_v_1\n",
		testsupport.HelperFunctionHash, testsupport.HelperFunctionHash)
	require.Equal(t, expected, result.CanonicalCode)
}

func TestNormalize_NestedFunctionNamesSlotted(t *testing.T) {
	source := "def outer(x):\n    def inner(y):\n        return y + x\n    return inner(x)\n"
	result := normalizeSource(t, source)

	expected := "def _ouverture_v_0(_ouverture_v_1):\n" +
		"    def _ouverture_v_2(_ouverture_v_3):\n" +
		"        return _ouverture_v_3 + _ouverture_v_1\n" +
		"    return _ouverture_v_2(_ouverture_v_1)\n"
	require.Equal(t, expected, result.CanonicalCode)
}

func TestNormalize_KeywordArgumentNamesPreserved(t *testing.T) {
	source := "def f(items):\n    return sorted(items, reverse=True)\n"
	result := normalizeSource(t, source)

	// The keyword name at the call site is not a user-defined binding.
	require.Contains(t, result.CanonicalCode, "reverse = True")
	for _, original := range result.Mapping.NameMapping {
		require.NotEqual(t, "reverse", original)
	}
}

func TestNormalize_SlotAssignmentIsTraversalOrdered(t *testing.T) {
	a := normalizeSource(t, "def f(p, q):\n    s = p\n    return s + q\n")
	b := normalizeSource(t, "def g(alpha, beta):\n    acc = alpha\n    return acc + beta\n")
	require.Equal(t, a.CanonicalCode, b.CanonicalCode)
}
