package normalize

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/amirouche/ouverture/internal/lang"
)

// Normalize parses source as a single unit and applies the eight canonical
// rewrites: import classification and sorting, pool-alias stripping,
// pool-call rewriting, name-mapping slot assignment, docstring extraction,
// and deterministic re-serialization. namespace is the fixed slot namespace
// ("ouverture" in this repository); poolModule is the dotted module path
// that marks a from-import as referencing the pool itself.
func Normalize(source []byte, namespace, poolModule string) (*Result, error) {
	u, err := lang.Parse(source)
	if err != nil {
		return nil, err
	}

	imports, err := lang.ClassifyImports(u, poolModule)
	if err != nil {
		return nil, err
	}
	sortedImports := lang.SortImports(imports)
	importedNames := lang.ImportedNames(imports)
	poolAliases := lang.PoolAliases(imports)
	aliasMapping := lang.AliasMapping(imports)

	funcNameNode := u.FuncName()
	funcName := u.Text(funcNameNode)
	slotZero := SlotName(namespace, 0)

	forward := map[string]string{funcName: slotZero}
	reverse := map[string]string{slotZero: funcName}
	excluded := map[lang.Span]bool{}
	next := 1

	lang.WalkIdentifiers(u.FuncOuter, func(n *sitter.Node, renameable bool) {
		if !renameable {
			excluded[lang.SpanOf(n)] = true
			return
		}
		text := u.Text(n)
		if text == funcName {
			return
		}
		if lang.PythonBuiltins[text] {
			return
		}
		if importedNames[text] {
			return
		}
		if _, ok := poolAliases[text]; ok {
			return
		}
		if _, ok := forward[text]; ok {
			return
		}
		slot := SlotName(namespace, next)
		next++
		forward[text] = slot
		reverse[slot] = text
	})

	callSites := lang.FindPoolCallSites(u.FuncOuter, source, poolAliases)
	spanRewrite := make(map[lang.Span]string, len(callSites))
	for span, hash := range callSites {
		spanRewrite[span] = fmt.Sprintf("object_%s.%s", hash, slotZero)
	}
	for span, hash := range lang.FindPoolDecoratorRefs(u.FuncOuter, source, poolAliases) {
		spanRewrite[span] = fmt.Sprintf("object_%s.%s", hash, slotZero)
	}

	docNode, docText := u.DocstringStatement()
	omit := map[lang.Span]bool{}
	if docNode != nil {
		omit[lang.SpanOf(docNode)] = true
	}

	renderer := &lang.Renderer{
		Src:         source,
		SpanRewrite: spanRewrite,
		Omit:        omit,
		IdentifierText: func(n *sitter.Node, original string) string {
			if excluded[lang.SpanOf(n)] {
				return original
			}
			if slot, ok := forward[original]; ok {
				return slot
			}
			return original
		},
	}

	funcText := renderer.RenderNode(u.FuncOuter, 0)

	importLines := make([]string, 0, len(sortedImports))
	for _, info := range sortedImports {
		importLines = append(importLines, lang.RenderImport(info))
	}

	return &Result{
		CanonicalCode: assemble(importLines, funcText),
		Mapping: Mapping{
			Docstring:    docText,
			NameMapping:  reverse,
			AliasMapping: aliasMapping,
		},
	}, nil
}

func assemble(importLines []string, funcText string) string {
	var b strings.Builder
	for _, line := range importLines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(importLines) > 0 {
		b.WriteString("\n")
	}
	b.WriteString(funcText)
	b.WriteString("\n")
	return b.String()
}
