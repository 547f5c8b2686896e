package normalize

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/amirouche/ouverture/internal/lang"
)

// Denormalize reconstructs a human-facing rendering from canonical code plus
// one stored overlay. It is the structural inverse of Normalize: slots turn
// back into the contributor's identifiers, pool imports regain their aliases,
// pool attribute-calls collapse back to bare alias calls, and the docstring
// is reinserted as the first statement of the outer function body.
func Denormalize(canonicalCode []byte, m Mapping, namespace, poolModule string) (string, error) {
	u, err := lang.Parse(canonicalCode)
	if err != nil {
		return "", err
	}

	imports, err := lang.ClassifyImports(u, poolModule)
	if err != nil {
		return "", err
	}
	slotZero := SlotName(namespace, 0)

	// The excluded set mirrors the normalizer's exactly, so a site the
	// normalizer left verbatim is also left verbatim here.
	excluded := map[lang.Span]bool{}
	lang.WalkIdentifiers(u.FuncOuter, func(n *sitter.Node, renameable bool) {
		if !renameable {
			excluded[lang.SpanOf(n)] = true
		}
	})

	spanRewrite := map[lang.Span]string{}
	for span, hash := range lang.FindPoolAttributeCalls(u.FuncOuter, canonicalCode, slotZero) {
		if alias, ok := m.AliasMapping[hash]; ok {
			spanRewrite[span] = alias
		}
	}
	for span, hash := range lang.FindPoolDecoratorAttrs(u.FuncOuter, canonicalCode, slotZero) {
		if alias, ok := m.AliasMapping[hash]; ok {
			spanRewrite[span] = alias
		}
	}

	inject := map[lang.Span]string{}
	if m.Docstring != "" {
		if body := u.FuncBody(); body != nil {
			inject[lang.SpanOf(body)] = lang.BuildDocstringStatement(m.Docstring)
		}
	}

	renderer := &lang.Renderer{
		Src:         canonicalCode,
		SpanRewrite: spanRewrite,
		Inject:      inject,
		IdentifierText: func(n *sitter.Node, original string) string {
			if excluded[lang.SpanOf(n)] {
				return original
			}
			if name, ok := m.NameMapping[original]; ok {
				return name
			}
			return original
		},
	}

	funcText := renderer.RenderNode(u.FuncOuter, 0)

	importLines := make([]string, 0, len(imports))
	for _, info := range imports {
		importLines = append(importLines, lang.RenderImportWithAlias(info, m.AliasMapping))
	}

	return assemble(importLines, funcText), nil
}
