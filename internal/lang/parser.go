package lang

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Unit is a validated source unit: a tree-sitter parse tree whose top level
// is exactly zero-or-more import statements plus one function definition
// (plain or decorated, sync or async), in any order, with comments allowed.
type Unit struct {
	Source  []byte
	Tree    *sitter.Tree
	Root    *sitter.Node
	Imports []*sitter.Node // import_statement / import_from_statement, in source order

	// FuncOuter is the top-level node that represents the target function:
	// either a bare function_definition or the decorated_definition wrapping
	// one. FuncDef is always the inner function_definition node.
	FuncOuter *sitter.Node
	FuncDef   *sitter.Node
}

// Parse parses source as a single unit. It fails with an *Error of kind
// ErrInvalidSource if the text does not parse as the dialect at all, or
// ErrUnsupportedUnit if the top level is not imports plus one function.
func Parse(source []byte) (*Unit, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, invalidSourcef("python: %v", err)
	}
	root := tree.RootNode()
	if root == nil {
		return nil, invalidSourcef("python: empty parse tree")
	}
	if containsError(root) {
		return nil, invalidSourcef("python: source contains a syntax error")
	}

	u := &Unit{Source: source, Tree: tree, Root: root}

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		switch child.Type() {
		case "comment":
			continue
		case "import_statement", "import_from_statement", "future_import_statement":
			u.Imports = append(u.Imports, child)
		case "function_definition":
			if u.FuncOuter != nil {
				return nil, unsupportedUnitf("top level defines more than one function")
			}
			u.FuncOuter = child
			u.FuncDef = child
		case "decorated_definition":
			inner := soleFunctionDefinition(child)
			if inner == nil {
				return nil, unsupportedUnitf("decorated_definition at top level does not decorate a function")
			}
			if u.FuncOuter != nil {
				return nil, unsupportedUnitf("top level defines more than one function")
			}
			u.FuncOuter = child
			u.FuncDef = inner
		default:
			return nil, unsupportedUnitf("unsupported top-level statement of kind %q", child.Type())
		}
	}

	if u.FuncDef == nil {
		return nil, unsupportedUnitf("top level does not define a function")
	}
	return u, nil
}

func soleFunctionDefinition(decorated *sitter.Node) *sitter.Node {
	for i := 0; i < int(decorated.ChildCount()); i++ {
		c := decorated.Child(i)
		if c.Type() == "function_definition" {
			return c
		}
	}
	return nil
}

func containsError(n *sitter.Node) bool {
	if n.IsError() || n.IsMissing() {
		return true
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if containsError(n.Child(i)) {
			return true
		}
	}
	return false
}

// FuncName returns the function's declared name node (direct "identifier"
// child of FuncDef).
func (u *Unit) FuncName() *sitter.Node {
	for i := 0; i < int(u.FuncDef.ChildCount()); i++ {
		c := u.FuncDef.Child(i)
		if c.Type() == "identifier" {
			return c
		}
	}
	return nil
}

// FuncBody returns the "block" node holding the function's body statements.
func (u *Unit) FuncBody() *sitter.Node {
	for i := 0; i < int(u.FuncDef.ChildCount()); i++ {
		c := u.FuncDef.Child(i)
		if c.Type() == "block" {
			return c
		}
	}
	return nil
}

// IsAsync reports whether the function was declared with the async keyword.
func (u *Unit) IsAsync() bool {
	for i := 0; i < int(u.FuncDef.ChildCount()); i++ {
		if u.FuncDef.Child(i).Type() == "async" {
			return true
		}
	}
	return false
}

// Text returns the verbatim source text spanned by n.
func (u *Unit) Text(n *sitter.Node) string {
	return string(u.Source[n.StartByte():n.EndByte()])
}
