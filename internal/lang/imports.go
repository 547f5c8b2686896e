package lang

import (
	"regexp"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// PoolImportPrefix is the mandatory prefix on a pool-object bound name: the
// prefix exists because a bare hex payload may start with a digit, which is
// not a legal leading identifier character.
const PoolImportPrefix = "object_"

var poolObjectName = regexp.MustCompile(`^object_([0-9a-f]{64})$`)

// ImportItem is one imported name inside an import or import-from statement,
// as it appeared in source: Name is the pre-alias name (a dotted path for
// plain "import", a bare or dotted name for "from ... import").
type ImportItem struct {
	Name      string
	Alias     string // "" if no "as" clause
	IsPool    bool
	PoolHash  string // set iff IsPool
	BoundName string // the name introduced into scope by this item
}

// ImportInfo is a classified top-level import statement.
type ImportInfo struct {
	Node   *sitter.Node
	Kind   string // "import" or "from"
	Module string // dotted module path, only set for Kind == "from"
	Items  []ImportItem
}

// ClassifyImports walks each top-level import node and extracts its
// structural shape. poolModule is the fixed dotted path that marks a
// from-import as a pool import (e.g. "ouverture.pool").
func ClassifyImports(u *Unit, poolModule string) ([]ImportInfo, error) {
	infos := make([]ImportInfo, 0, len(u.Imports))
	for _, node := range u.Imports {
		info, err := classifyOne(u, node, poolModule)
		if err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func classifyOne(u *Unit, node *sitter.Node, poolModule string) (ImportInfo, error) {
	switch node.Type() {
	case "import_statement":
		info := ImportInfo{Node: node, Kind: "import"}
		for i := 0; i < int(node.ChildCount()); i++ {
			c := node.Child(i)
			switch c.Type() {
			case "dotted_name":
				name := u.Text(c)
				info.Items = append(info.Items, ImportItem{Name: name, BoundName: dottedBoundName(name)})
			case "aliased_import":
				name, alias := splitAliasedImport(u, c)
				info.Items = append(info.Items, ImportItem{Name: name, Alias: alias, BoundName: firstNonEmpty(alias, dottedBoundName(name))})
			}
		}
		return info, nil

	case "import_from_statement", "future_import_statement":
		info := ImportInfo{Node: node, Kind: "from"}
		sawImport := false
		for i := 0; i < int(node.ChildCount()); i++ {
			c := node.Child(i)
			switch c.Type() {
			case "import":
				sawImport = true
			case "relative_import":
				info.Module = u.Text(c)
			case "dotted_name":
				if !sawImport {
					info.Module = u.Text(c)
				} else {
					name := u.Text(c)
					info.Items = append(info.Items, makeItem(name, "", info.Module, poolModule))
				}
			case "identifier":
				if sawImport {
					name := u.Text(c)
					info.Items = append(info.Items, makeItem(name, "", info.Module, poolModule))
				}
			case "aliased_import":
				name, alias := splitAliasedImport(u, c)
				info.Items = append(info.Items, makeItem(name, alias, info.Module, poolModule))
			case "wildcard_import":
				info.Items = append(info.Items, ImportItem{Name: "*", BoundName: "*"})
			}
		}
		return info, nil
	}
	return ImportInfo{}, invalidSourcef("unrecognized import node kind %q", node.Type())
}

func makeItem(name, alias, module, poolModule string) ImportItem {
	item := ImportItem{Name: name, Alias: alias}
	if module == poolModule {
		if m := poolObjectName.FindStringSubmatch(name); m != nil {
			item.IsPool = true
			item.PoolHash = m[1]
		}
	}
	item.BoundName = firstNonEmpty(alias, name)
	return item
}

func splitAliasedImport(u *Unit, node *sitter.Node) (name, alias string) {
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		switch c.Type() {
		case "dotted_name", "identifier":
			if name == "" {
				name = u.Text(c)
			} else {
				alias = u.Text(c)
			}
		}
	}
	return name, alias
}

func dottedBoundName(dotted string) string {
	parts := strings.Split(dotted, ".")
	return parts[0]
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// ImportedNames returns the set of names any import statement binds into the
// unit's scope.
func ImportedNames(infos []ImportInfo) map[string]bool {
	names := make(map[string]bool)
	for _, info := range infos {
		for _, item := range info.Items {
			if item.BoundName != "" && item.BoundName != "*" {
				names[item.BoundName] = true
			}
		}
	}
	return names
}

// PoolAliases returns pool_aliases: the map from the name a pool object is
// called by (its alias, or its bare object_<HEX> bound name if no alias) to
// the referenced function hash.
func PoolAliases(infos []ImportInfo) map[string]string {
	aliases := make(map[string]string)
	for _, info := range infos {
		for _, item := range info.Items {
			if item.IsPool {
				aliases[firstNonEmpty(item.Alias, PoolImportPrefix+item.PoolHash)] = item.PoolHash
			}
		}
	}
	return aliases
}

// AliasMapping returns alias_mapping: hash to alias, present only for pool
// imports that actually carried an explicit alias.
func AliasMapping(infos []ImportInfo) map[string]string {
	mapping := make(map[string]string)
	for _, info := range infos {
		for _, item := range info.Items {
			if item.IsPool && item.Alias != "" {
				mapping[item.PoolHash] = item.Alias
			}
		}
	}
	return mapping
}

func importSortKey(info ImportInfo) (string, string, []string) {
	names := make([]string, len(info.Items))
	for i, item := range info.Items {
		names[i] = item.Name
	}
	sort.Strings(names)
	return info.Kind, info.Module, names
}

// SortImports returns infos in the deterministic total order required by the
// normalizer: by kind, then module path, then sorted imported-name tuple.
func SortImports(infos []ImportInfo) []ImportInfo {
	out := make([]ImportInfo, len(infos))
	copy(out, infos)
	sort.SliceStable(out, func(i, j int) bool {
		ki, mi, ni := importSortKey(out[i])
		kj, mj, nj := importSortKey(out[j])
		if ki != kj {
			return ki < kj
		}
		if mi != mj {
			return mi < mj
		}
		return lessStringSlice(ni, nj)
	})
	return out
}

func lessStringSlice(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// RenderImport renders a single classified import statement back to source
// text, stripping any pool-import alias.
func RenderImport(info ImportInfo) string {
	var b strings.Builder
	switch info.Kind {
	case "import":
		b.WriteString("import ")
		for i, item := range info.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(item.Name)
			if item.Alias != "" {
				b.WriteString(" as ")
				b.WriteString(item.Alias)
			}
		}
	case "from":
		b.WriteString("from ")
		b.WriteString(info.Module)
		b.WriteString(" import ")
		for i, item := range info.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			if item.Name == "*" {
				b.WriteString("*")
				continue
			}
			b.WriteString(item.Name)
			if item.IsPool {
				// alias stripped: bound name becomes the bare object_<HEX> form.
				continue
			}
			if item.Alias != "" {
				b.WriteString(" as ")
				b.WriteString(item.Alias)
			}
		}
	}
	return b.String()
}

// RenderImportWithAlias renders a single classified import statement back to
// source text, restoring a pool alias from aliasMapping when present (used by
// the denormalizer).
func RenderImportWithAlias(info ImportInfo, aliasMapping map[string]string) string {
	var b strings.Builder
	switch info.Kind {
	case "import":
		b.WriteString(RenderImport(info))
	case "from":
		b.WriteString("from ")
		b.WriteString(info.Module)
		b.WriteString(" import ")
		for i, item := range info.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			if item.Name == "*" {
				b.WriteString("*")
				continue
			}
			b.WriteString(item.Name)
			alias := item.Alias
			if item.IsPool {
				if a, ok := aliasMapping[item.PoolHash]; ok && a != PoolImportPrefix+item.PoolHash {
					alias = a
				} else {
					alias = ""
				}
			}
			if alias != "" {
				b.WriteString(" as ")
				b.WriteString(alias)
			}
		}
	}
	return b.String()
}
