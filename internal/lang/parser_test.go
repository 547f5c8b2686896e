package lang

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse_SimpleFunction(t *testing.T) {
	u, err := Parse([]byte("def add(a, b):\n    return a + b\n"))
	require.NoError(t, err)

	require.NotNil(t, u.FuncDef)
	require.Equal(t, "add", u.Text(u.FuncName()))
	require.False(t, u.IsAsync())
	require.Empty(t, u.Imports)
}

func TestParse_AsyncFunction(t *testing.T) {
	u, err := Parse([]byte("async def fetch(url):\n    return await get(url)\n"))
	require.NoError(t, err)
	require.True(t, u.IsAsync())
	require.Equal(t, "fetch", u.Text(u.FuncName()))
}

func TestParse_ImportsThenFunction(t *testing.T) {
	source := "import math\nfrom os import path\n\ndef f(x):\n    return x\n"
	u, err := Parse([]byte(source))
	require.NoError(t, err)
	require.Len(t, u.Imports, 2)
}

func TestParse_DecoratedFunction(t *testing.T) {
	source := "@wraps\ndef f(x):\n    return x\n"
	u, err := Parse([]byte(source))
	require.NoError(t, err)
	require.Equal(t, "decorated_definition", u.FuncOuter.Type())
	require.Equal(t, "function_definition", u.FuncDef.Type())
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse([]byte("def f(:\n    return\n"))
	requireKind(t, err, ErrInvalidSource)
}

func TestParse_UnsupportedUnit(t *testing.T) {
	cases := []struct {
		name   string
		source string
	}{
		{"no function", "import math\n"},
		{"two functions", "def f(x):\n    return x\n\ndef g(x):\n    return x\n"},
		{"top level statement", "x = 1\n\ndef f(x):\n    return x\n"},
		{"class definition", "class C:\n    pass\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.source))
			requireKind(t, err, ErrUnsupportedUnit)
		})
	}
}

func TestParse_NestedFunctionIsNotTheTarget(t *testing.T) {
	source := "def outer(x):\n    def inner(y):\n        return y\n    return inner(x)\n"
	u, err := Parse([]byte(source))
	require.NoError(t, err)
	require.Equal(t, "outer", u.Text(u.FuncName()))
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	var langErr *Error
	require.True(t, errors.As(err, &langErr), "want *lang.Error, got %v", err)
	require.Equal(t, kind, langErr.Kind)
}

func TestDocstringStatement(t *testing.T) {
	u, err := Parse([]byte("def f(x):\n    \"\"\"Docs here\"\"\"\n    return x\n"))
	require.NoError(t, err)
	node, text := u.DocstringStatement()
	require.NotNil(t, node)
	require.Equal(t, "Docs here", text)
}

func TestDocstringStatement_Absent(t *testing.T) {
	u, err := Parse([]byte("def f(x):\n    return x\n"))
	require.NoError(t, err)
	node, text := u.DocstringStatement()
	require.Nil(t, node)
	require.Equal(t, "", text)
}
