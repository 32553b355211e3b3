package block

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/crillab/varsat/expr"
)

// jsonBlock is one entry of the CLI's own JSON interchange format for a
// static block tree (§5.1's "block-fixture"): a document-order list of
// blocks naming their parent and previous sibling by Name, since the
// real preprocessor front end that would hand these links over directly
// is an external collaborator (§1 Non-goals).
type jsonBlock struct {
	Name            string `json:"name"`
	Parent          string `json:"parent"`
	PreviousSibling string `json:"previousSibling"`
	IsIf            bool   `json:"isIf"`
	Guard           string `json:"guard"`
	FileVar         string `json:"fileVar,omitempty"`
}

type jsonTree struct {
	Filename string      `json:"filename"`
	Blocks   []jsonBlock `json:"blocks"`
}

// LoadJSON decodes a block-fixture file into a StaticTree. Exactly one
// block must have an empty Parent; that block becomes the tree's root.
func LoadJSON(r io.Reader) (*StaticTree, error) {
	var jt jsonTree
	if err := json.NewDecoder(r).Decode(&jt); err != nil {
		return nil, fmt.Errorf("block: decoding JSON tree: %w", err)
	}
	if len(jt.Blocks) == 0 {
		return nil, fmt.Errorf("block: JSON tree has no blocks")
	}

	byName := make(map[string]*StaticBlock, len(jt.Blocks))
	order := make([]*StaticBlock, len(jt.Blocks))
	for i, jb := range jt.Blocks {
		if jb.Name == "" {
			return nil, fmt.Errorf("block: JSON tree has a block with an empty name")
		}
		guard, err := parseGuard(jb.Guard)
		if err != nil {
			return nil, fmt.Errorf("block: %s: parsing guard %q: %w", jb.Name, jb.Guard, err)
		}
		sb := &StaticBlock{name: jb.Name, isIf: jb.IsIf, guard: guard}
		byName[jb.Name] = sb
		order[i] = sb
	}

	var root *StaticBlock
	for i, jb := range jt.Blocks {
		sb := order[i]
		if jb.Parent == "" {
			if root != nil {
				return nil, fmt.Errorf("block: JSON tree has more than one root (%s and %s)", root.name, sb.name)
			}
			root = sb
			if jb.FileVar != "" {
				sb.fileVar = jb.FileVar
			} else {
				sb.fileVar = "FILE_" + jt.Filename
			}
			continue
		}
		parent, ok := byName[jb.Parent]
		if !ok {
			return nil, fmt.Errorf("block: %s: unknown parent %q", jb.Name, jb.Parent)
		}
		sb.parent = parent
		if jb.PreviousSibling != "" {
			prev, ok := byName[jb.PreviousSibling]
			if !ok {
				return nil, fmt.Errorf("block: %s: unknown previous sibling %q", jb.Name, jb.PreviousSibling)
			}
			sb.prevSib = prev
		}
	}
	if root == nil {
		return nil, fmt.Errorf("block: JSON tree has no root block (a block with an empty parent)")
	}

	nonRoot := make([]*StaticBlock, 0, len(order)-1)
	for _, sb := range order {
		if sb != root {
			nonRoot = append(nonRoot, sb)
		}
	}
	return &StaticTree{filename: jt.Filename, root: root, blocks: nonRoot}, nil
}

func parseGuard(s string) (expr.Expr, error) {
	if s == "" {
		return expr.True, nil
	}
	return expr.Parse(s)
}
