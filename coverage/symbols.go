package coverage

import (
	"sort"
	"strings"

	"github.com/crillab/varsat/block"
	"github.com/crillab/varsat/model"
)

// Symbol is one reported entry from EnumerateSymbols: a config-space
// name paired with its Kconfig type label.
type Symbol struct {
	Name string
	Type string
}

// canonicalSymbolName folds a tristate's "_MODULE" guard variant back
// onto its base name, mirroring model.Type's own stripping so the two
// forms dedup onto a single reported line.
func canonicalSymbolName(name string) string {
	return strings.TrimSuffix(name, "_MODULE")
}

// EnumerateSymbols walks every block's guard in tree and reports every
// config-space name a guard references, each labeled with m.TypeLabel,
// per the symbol-enumeration mode of §8 scenario 5. A symbol's
// "_MODULE" variant is folded into its base name's line rather than
// reported twice.
func EnumerateSymbols(tree block.Tree, m *model.Model) []Symbol {
	seed := make(map[string]struct{})
	for _, b := range tree.Blocks() {
		freeVars(b.Guard(), seed)
	}

	seenNames := make(map[string]bool)
	out := make([]Symbol, 0, len(seed))
	for name := range seed {
		if isBlockName(name) {
			continue
		}
		if !m.InConfigurationSpace(name) {
			continue
		}
		canon := canonicalSymbolName(name)
		if seenNames[canon] {
			continue
		}
		seenNames[canon] = true
		out = append(out, Symbol{Name: canon, Type: m.TypeLabel(canon)})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
