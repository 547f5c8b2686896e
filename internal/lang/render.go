package lang

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const indentUnit = "    "

// clauseTypes are the node kinds that continue a compound statement on their
// own line at the same depth as the statement's opening keyword (elif/else
// for if-statements and loops, except/finally for try-statements, case for
// match-statements).
var clauseTypes = map[string]bool{
	"elif_clause":         true,
	"else_clause":         true,
	"except_clause":       true,
	"except_group_clause": true,
	"finally_clause":      true,
	"case_clause":         true,
}

// lineBreakTypes are node kinds that, when found as a direct child of
// decorated_definition, must start their own line rather than run together
// with sibling tokens.
var lineBreakTypes = map[string]bool{
	"decorator":           true,
	"function_definition": true,
	"class_definition":    true,
}

// pythonKeywords are the keyword tokens that keep a space before a following
// opening bracket: "return (x)" and "in [..]" rather than the call-style
// "f(x)" / subscript-style "a[0]" tight join.
var pythonKeywords = map[string]bool{
	"False": true, "None": true, "True": true, "and": true, "as": true,
	"assert": true, "async": true, "await": true, "break": true,
	"case": true, "class": true, "continue": true, "def": true, "del": true,
	"elif": true, "else": true, "except": true, "finally": true, "for": true,
	"from": true, "global": true, "if": true, "import": true, "in": true,
	"is": true, "lambda": true, "match": true, "nonlocal": true, "not": true,
	"or": true, "pass": true, "raise": true, "return": true, "try": true,
	"while": true, "with": true, "yield": true,
}

// Renderer serializes a tree-sitter subtree back to deterministic Python-like
// text. It is used both by the normalizer (producing canonical_code) and the
// denormalizer (producing a human-facing reconstruction).
type Renderer struct {
	Src []byte

	// SpanRewrite replaces an entire node's rendering with fixed text. Used
	// for pool call-site rewrites in both directions.
	SpanRewrite map[Span]string

	// IdentifierText returns the text to emit for an "identifier" leaf node
	// not covered by SpanRewrite. If nil, identifiers render verbatim.
	IdentifierText func(n *sitter.Node, original string) string

	// Omit marks nodes (typically the docstring statement) to drop entirely.
	Omit map[Span]bool

	// Inject maps a "block" node's span to a raw line of text to place as
	// that block's first statement, indented the same as its siblings. Used
	// by the denormalizer to reinsert a docstring that canonical_code never
	// carries as a real AST node.
	Inject map[Span]string
}

func indent(depth int) string { return strings.Repeat(indentUnit, depth) }

// RenderNode renders n and everything beneath it, at the given block-nesting
// depth (only meaningful for nodes containing a "block" descendant).
func (r *Renderer) RenderNode(n *sitter.Node, depth int) string {
	if n.Type() == "comment" {
		return ""
	}
	if text, ok := r.SpanRewrite[SpanOf(n)]; ok {
		return text
	}
	if n.Type() == "string" {
		return r.text(n)
	}
	if n.Type() == "identifier" {
		orig := r.text(n)
		if r.IdentifierText != nil {
			return r.IdentifierText(n, orig)
		}
		return orig
	}
	if n.ChildCount() == 0 {
		return r.text(n)
	}
	if n.Type() == "decorated_definition" || r.hasBlockOrClauseChild(n) {
		return r.renderCompound(n, depth)
	}
	return r.renderFlat(n, depth)
}

func (r *Renderer) text(n *sitter.Node) string {
	return string(r.Src[n.StartByte():n.EndByte()])
}

func (r *Renderer) hasBlockOrClauseChild(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		t := n.Child(i).Type()
		if t == "block" || clauseTypes[t] {
			return true
		}
	}
	return false
}

func (r *Renderer) renderFlat(n *sitter.Node, depth int) string {
	parts := make([]string, 0, n.ChildCount())
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "comment" || r.Omit[SpanOf(c)] {
			continue
		}
		s := r.RenderNode(c, depth)
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return joinTokens(parts)
}

// joinTokens assembles rendered sibling fragments into one logical line with
// deterministic spacing: punctuation attaches to its neighbor, call and
// subscript brackets bind tight to a preceding name, everything else gets a
// single space.
func joinTokens(parts []string) string {
	var b strings.Builder
	prev := ""
	for _, part := range parts {
		if prev != "" && needSpace(prev, part) {
			b.WriteString(" ")
		}
		b.WriteString(part)
		prev = part
	}
	return b.String()
}

func needSpace(prev, next string) bool {
	p := prev[len(prev)-1]
	n := next[0]
	switch n {
	case ',', ')', ']', '}', ':', ';':
		return false
	}
	if n == '.' || p == '.' {
		return false
	}
	switch p {
	case '(', '[', '{':
		return false
	}
	if prev == "@" {
		return false
	}
	if n == '(' || n == '[' {
		if (isIdentByte(p) || p == ')' || p == ']' || p == '"' || p == '\'') &&
			!pythonKeywords[trailingWord(prev)] {
			return false
		}
	}
	return true
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func trailingWord(s string) string {
	i := len(s)
	for i > 0 && isIdentByte(s[i-1]) {
		i--
	}
	return s[i:]
}

func (r *Renderer) renderCompound(n *sitter.Node, depth int) string {
	var b strings.Builder
	var header []string
	emitted := false

	emitLine := func(s string) {
		if s == "" {
			return
		}
		if emitted {
			b.WriteString("\n")
			b.WriteString(indent(depth))
		}
		b.WriteString(s)
		emitted = true
	}
	flushHeader := func() {
		if len(header) > 0 {
			emitLine(joinTokens(header))
			header = nil
		}
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c.Type() == "comment" || r.Omit[SpanOf(c)] {
			continue
		}
		switch {
		case c.Type() == "block":
			flushHeader()
			body := r.RenderBlockBody(c, depth+1)
			if body == "" {
				body = indent(depth+1) + "pass"
			}
			b.WriteString("\n")
			b.WriteString(body)
			emitted = true
		case clauseTypes[c.Type()]:
			flushHeader()
			emitLine(r.renderCompound(c, depth))
		case lineBreakTypes[c.Type()]:
			flushHeader()
			emitLine(r.RenderNode(c, depth))
		default:
			s := r.RenderNode(c, depth)
			if s != "" {
				header = append(header, s)
			}
		}
	}
	flushHeader()
	return b.String()
}

// RenderBlockBody renders every statement inside a "block" node, one per
// (possibly multi-line) logical line, each absolutely indented to depth.
func (r *Renderer) RenderBlockBody(block *sitter.Node, depth int) string {
	var lines []string
	pad := indent(depth)
	if extra, ok := r.Inject[SpanOf(block)]; ok {
		lines = append(lines, pad+extra)
	}
	for i := 0; i < int(block.ChildCount()); i++ {
		stmt := block.Child(i)
		if stmt.Type() == "comment" || r.Omit[SpanOf(stmt)] {
			continue
		}
		line := r.RenderNode(stmt, depth)
		if line == "" {
			continue
		}
		lines = append(lines, pad+line)
	}
	return strings.Join(lines, "\n")
}
