package lang

import sitter "github.com/smacker/go-tree-sitter"

// DocstringStatement returns the function body's first statement and its
// decoded text if that statement is a bare string-literal expression
// statement (a docstring), or (nil, "") otherwise.
func (u *Unit) DocstringStatement() (*sitter.Node, string) {
	block := u.FuncBody()
	if block == nil || block.ChildCount() == 0 {
		return nil, ""
	}
	first := block.Child(0)
	if first.Type() != "expression_statement" || first.ChildCount() != 1 {
		return nil, ""
	}
	str := first.Child(0)
	if str.Type() != "string" {
		return nil, ""
	}
	return first, DecodePythonString(u.Text(str))
}

// BuildDocstringStatement renders a fresh docstring expression statement for
// text, to be inserted as the first line of a function body.
func BuildDocstringStatement(text string) string {
	return EncodePythonTripleString(text)
}
