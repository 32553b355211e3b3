package block

import (
	"fmt"

	"github.com/crillab/varsat/expr"
)

// StaticBlock is an in-memory Block, built by hand (or by Builder) for
// fixtures and tests rather than parsed from real source.
type StaticBlock struct {
	name    string
	parent  *StaticBlock
	prevSib *StaticBlock
	isIf    bool
	guard   expr.Expr

	// fileVar is set only on a tree's root block, to the name of the
	// symbol representing that file's own presence condition.
	fileVar string
}

func (b *StaticBlock) Name() string { return b.name }

func (b *StaticBlock) Parent() Block {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

func (b *StaticBlock) PreviousSibling() Block {
	if b.prevSib == nil {
		return nil
	}
	return b.prevSib
}

func (b *StaticBlock) IsIfBlock() bool { return b.isIf }

func (b *StaticBlock) Guard() expr.Expr { return b.guard }

// CodeConstraints asserts this block's own name variable, conjoined
// with a defining equivalence "name <-> parent && guard" for it and
// every non-root ancestor (root's variable is trivially true so its
// own factor is omitted from the RHS of its immediate children's
// equations), and finally the root block's name variable itself as a
// bare literal — matching §4.6/§4.7's worked example in end-to-end
// scenario 2. Called directly on the root itself (a whole-file query),
// it additionally conjoins the root's biconditional with the file's
// own presence variable, e.g. "B00 <-> FILE_foo.c".
func (b *StaticBlock) CodeConstraints() expr.Expr {
	if b.parent == nil {
		self := expr.Var{Name: b.name}
		if b.fileVar == "" {
			return self
		}
		return expr.And{L: self, R: expr.Eq{L: self, R: expr.Var{Name: b.fileVar}}}
	}

	f := expr.Expr(expr.Var{Name: b.name})
	cur := b
	for cur.parent != nil {
		rhs := cur.guard
		if cur.parent.parent != nil {
			rhs = expr.And{L: expr.Var{Name: cur.parent.name}, R: cur.guard}
		}
		f = expr.And{L: f, R: expr.Eq{L: expr.Var{Name: cur.name}, R: rhs}}
		cur = cur.parent
	}
	// cur is now the root block.
	f = expr.And{L: f, R: expr.Var{Name: cur.name}}
	return f
}

// StaticTree is an in-memory Tree over a fixed set of StaticBlocks.
type StaticTree struct {
	filename string
	root     *StaticBlock
	blocks   []*StaticBlock
}

func (t *StaticTree) Root() Block { return t.root }

func (t *StaticTree) Blocks() []Block {
	out := make([]Block, len(t.blocks))
	for i, b := range t.blocks {
		out[i] = b
	}
	return out
}

func (t *StaticTree) Filename() string { return t.filename }

// Builder assembles a StaticTree one if-chain at a time, the way a
// preprocessor front end would emit blocks in document order. The
// implicit top block is always named "B00"; every block added through
// the builder gets a synthetic "B<n>" name in the order it was added.
type Builder struct {
	tree    *StaticTree
	nextIdx int
}

// NewBuilder starts a tree for filename with an implicit top block
// "B00" whose guard is always true.
func NewBuilder(filename string) *Builder {
	root := &StaticBlock{name: "B00", isIf: true, guard: expr.True, fileVar: "FILE_" + filename}
	return &Builder{tree: &StaticTree{filename: filename, root: root}}
}

// Root returns the tree's implicit top block.
func (b *Builder) Root() *StaticBlock { return b.tree.root }

func (b *Builder) freshName() string {
	name := fmt.Sprintf("B%d", b.nextIdx)
	b.nextIdx++
	return name
}

// AddIf opens a new if-chain as a child of parent (an `#if`/`#ifdef`
// block), with the given local guard.
func (b *Builder) AddIf(parent *StaticBlock, guard expr.Expr) *StaticBlock {
	blk := &StaticBlock{name: b.freshName(), parent: parent, isIf: true, guard: guard}
	b.tree.blocks = append(b.tree.blocks, blk)
	return blk
}

// AddElse continues prevSibling's if-chain (an `#else`/`#elif` block),
// sharing its parent. Its guard is the negation of prevSibling's own
// guard, additionally conjoined with extraGuard for an `#elif COND`
// (pass expr.True for a plain `#else`).
func (b *Builder) AddElse(prevSibling *StaticBlock, extraGuard expr.Expr) *StaticBlock {
	guard := expr.Expr(expr.Not{X: prevSibling.guard})
	if extraGuard != nil && !extraGuard.Equal(expr.True) {
		guard = expr.And{L: guard, R: extraGuard}
	}
	blk := &StaticBlock{
		name:    b.freshName(),
		parent:  prevSibling.parent,
		prevSib: prevSibling,
		isIf:    false,
		guard:   guard,
	}
	b.tree.blocks = append(b.tree.blocks, blk)
	return blk
}

// Build returns the assembled tree. The builder must not be reused
// afterward.
func (b *Builder) Build() *StaticTree { return b.tree }
