package lang

import sitter "github.com/smacker/go-tree-sitter"

// Span identifies a node by its byte range. tree-sitter node wrappers are not
// guaranteed to be pointer-stable across independent traversals of the same
// tree, so callers key rewrite tables by Span rather than by *sitter.Node.
type Span struct {
	Start, End uint32
}

// SpanOf returns n's byte-range key.
func SpanOf(n *sitter.Node) Span {
	return Span{Start: n.StartByte(), End: n.EndByte()}
}

// WalkIdentifiers visits every "identifier" node in root's subtree in
// depth-first, pre-order, definitional-child-order, the traversal order
// required by the name-mapping builder. For each it reports whether the
// identifier is structurally eligible for renaming at all (independent of
// whether its text happens to be a builtin, an imported name, or a pool
// alias — that exclusion is applied by the caller).
func WalkIdentifiers(root *sitter.Node, visit func(n *sitter.Node, structurallyRenameable bool)) {
	walkIdentifiers(root, nil, visit)
}

func walkIdentifiers(n, parent *sitter.Node, visit func(*sitter.Node, bool)) {
	if n.Type() == "identifier" {
		visit(n, isStructurallyRenameable(n, parent))
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		walkIdentifiers(n.Child(i), n, visit)
	}
}

func isStructurallyRenameable(n, parent *sitter.Node) bool {
	if parent == nil {
		return true
	}
	switch parent.Type() {
	case "attribute":
		if attr := parent.ChildByFieldName("attribute"); attr != nil && spansEqual(attr, n) {
			return false
		}
	case "keyword_argument":
		if name := parent.ChildByFieldName("name"); name != nil && spansEqual(name, n) {
			return false
		}
	case "global_statement", "nonlocal_statement":
		return false
	}
	return true
}

func spansEqual(a, b *sitter.Node) bool {
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte()
}

// FindPoolCallSites returns, for every "call" node in root's subtree whose
// callable is a bare identifier matching a key of poolAliases, the span of
// that identifier mapped to the referenced function hash.
func FindPoolCallSites(root *sitter.Node, src []byte, poolAliases map[string]string) map[Span]string {
	rewrites := make(map[Span]string)
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "call" {
			if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "identifier" {
				text := string(src[fn.StartByte():fn.EndByte()])
				if hash, ok := poolAliases[text]; ok {
					rewrites[SpanOf(fn)] = hash
				}
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return rewrites
}

// FindPoolDecoratorRefs returns, for every "decorator" node whose expression
// is a bare identifier matching a key of poolAliases, the span of that
// identifier mapped to the referenced function hash. Call-shaped decorators
// are already covered by FindPoolCallSites; this catches the bare "@alias"
// form, which holds no call node.
func FindPoolDecoratorRefs(root *sitter.Node, src []byte, poolAliases map[string]string) map[Span]string {
	rewrites := make(map[Span]string)
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "decorator" {
			for i := 0; i < int(n.ChildCount()); i++ {
				c := n.Child(i)
				if c.Type() == "identifier" {
					text := string(src[c.StartByte():c.EndByte()])
					if hash, ok := poolAliases[text]; ok {
						rewrites[SpanOf(c)] = hash
					}
				}
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return rewrites
}

// FindPoolDecoratorAttrs is the inverse direction: bare decorators of the
// shape "@object_<HEX>.<slotZero>", returned as the span of the attribute
// expression mapped to the referenced hash.
func FindPoolDecoratorAttrs(root *sitter.Node, src []byte, slotZero string) map[Span]string {
	rewrites := make(map[Span]string)
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "decorator" {
			for i := 0; i < int(n.ChildCount()); i++ {
				c := n.Child(i)
				if c.Type() != "attribute" {
					continue
				}
				obj := c.ChildByFieldName("object")
				attr := c.ChildByFieldName("attribute")
				if obj != nil && attr != nil && obj.Type() == "identifier" && attr.Type() == "identifier" {
					objText := string(src[obj.StartByte():obj.EndByte()])
					attrText := string(src[attr.StartByte():attr.EndByte()])
					if attrText == slotZero {
						if m := poolObjectName.FindStringSubmatch(objText); m != nil {
							rewrites[SpanOf(c)] = m[1]
						}
					}
				}
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return rewrites
}

// FindPoolAttributeCalls locates denormalized-direction call sites of the
// form object_<HEX>.<slotZero>(args): a "call" node whose callable is an
// "attribute" node of shape identifier(object_<HEX>) . identifier(slotZero).
// It returns, per such attribute node span, the referenced hash.
func FindPoolAttributeCalls(root *sitter.Node, src []byte, slotZero string) map[Span]string {
	rewrites := make(map[Span]string)
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "call" {
			if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "attribute" {
				obj := fn.ChildByFieldName("object")
				attr := fn.ChildByFieldName("attribute")
				if obj != nil && attr != nil && obj.Type() == "identifier" && attr.Type() == "identifier" {
					objText := string(src[obj.StartByte():obj.EndByte()])
					attrText := string(src[attr.StartByte():attr.EndByte()])
					if attrText == slotZero {
						if m := poolObjectName.FindStringSubmatch(objText); m != nil {
							rewrites[SpanOf(fn)] = m[1]
						}
					}
				}
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return rewrites
}
