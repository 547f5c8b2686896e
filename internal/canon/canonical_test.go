package canon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshal_SortsObjectKeys(t *testing.T) {
	data, err := Marshal(Object{
		"b": String("2"),
		"a": String("1"),
		"c": String("3"),
	})
	require.NoError(t, err)
	require.Equal(t, `{"a":"1","b":"2","c":"3"}`, string(data))
}

func TestMarshal_NoTrailingNewline(t *testing.T) {
	data, err := Marshal(String("x"))
	require.NoError(t, err)
	require.Equal(t, `"x"`, string(data))
}

func TestMarshal_UnicodePassesThroughUnescaped(t *testing.T) {
	data, err := Marshal(Object{"msg": String("héllo 世界")})
	require.NoError(t, err)
	require.Equal(t, `{"msg":"héllo 世界"}`, string(data))
}

func TestMarshal_NoHTMLEscaping(t *testing.T) {
	data, err := Marshal(String("a < b && c > d"))
	require.NoError(t, err)
	require.Equal(t, `"a < b && c > d"`, string(data))
}

func TestMarshal_NFCNormalization(t *testing.T) {
	// e + combining acute accent normalizes to the precomposed form.
	decomposed, err := Marshal(String("é"))
	require.NoError(t, err)
	precomposed, err := Marshal(String("é"))
	require.NoError(t, err)
	require.Equal(t, string(precomposed), string(decomposed))
}

func TestMarshal_LineSeparatorsUnescaped(t *testing.T) {
	data, err := Marshal(String("a b c"))
	require.NoError(t, err)
	require.Equal(t, "\"a b c\"", string(data))
}

func TestMarshal_EmptyObjectAndArray(t *testing.T) {
	obj, err := Marshal(Object{})
	require.NoError(t, err)
	require.Equal(t, "{}", string(obj))

	arr, err := Marshal(Array{})
	require.NoError(t, err)
	require.Equal(t, "[]", string(arr))
}

func TestMarshal_NestedShapes(t *testing.T) {
	data, err := Marshal(Object{
		"name_mapping": ObjectOf(map[string]string{
			"_ouverture_v_1": "a",
			"_ouverture_v_0": "add",
		}),
		"comment": String(""),
	})
	require.NoError(t, err)
	require.Equal(t, `{"comment":"","name_mapping":{"_ouverture_v_0":"add","_ouverture_v_1":"a"}}`, string(data))
}

func TestMarshal_GoNativeTypes(t *testing.T) {
	data, err := Marshal(map[string]string{"k": "v"})
	require.NoError(t, err)
	require.Equal(t, `{"k":"v"}`, string(data))
}

func TestObjectOf_NilIsEmpty(t *testing.T) {
	data, err := Marshal(ObjectOf(nil))
	require.NoError(t, err)
	require.Equal(t, "{}", string(data))
}

func TestSortedKeys_UTF16Order(t *testing.T) {
	// Under UTF-16 code unit order an astral character (surrogate pair
	// starting 0xD800) sorts before a BMP character above the surrogate
	// range, the opposite of code point order.
	obj := Object{
		"\U00010000": String("astral"),
		"\uFFFD":     String("bmp"),
	}
	keys := obj.SortedKeys()
	require.Equal(t, []string{"\U00010000", "\uFFFD"}, keys)
}
