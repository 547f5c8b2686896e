package canon

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFunctionHash_KnownVector(t *testing.T) {
	// sha256 of the ASCII bytes "hello\n".
	require.Equal(t,
		"5891b5b522d5df086d0ff0b110fbd9d21bb4fc7163af34d08286a2e846f6be03",
		FunctionHash([]byte("hello\n")))
}

func TestFunctionHash_ByteSensitive(t *testing.T) {
	require.NotEqual(t, FunctionHash([]byte("a")), FunctionHash([]byte("a ")))
}

func TestOverlayHash_MatchesCanonicalJSONBytes(t *testing.T) {
	data, err := Marshal(Object{
		"alias_mapping": ObjectOf(nil),
		"comment":       String(""),
		"docstring":     String("Add two numbers"),
		"name_mapping": ObjectOf(map[string]string{
			"_ouverture_v_0": "add",
			"_ouverture_v_1": "a",
			"_ouverture_v_2": "b",
		}),
	})
	require.NoError(t, err)
	require.Equal(t,
		`{"alias_mapping":{},"comment":"","docstring":"Add two numbers","name_mapping":{"_ouverture_v_0":"add","_ouverture_v_1":"a","_ouverture_v_2":"b"}}`,
		string(data))
	require.Equal(t,
		"ccec57edcd291e4237df0a55fc8a912074e733528e8cc962c1ac5af627f56c60",
		OverlayHash(data))
}
