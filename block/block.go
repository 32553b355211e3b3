// Package block defines the read-only preprocessor block tree
// contract consumed by the coverage analyzer (C7): the source-level
// front end that turns raw C files into a tree of conditional blocks
// is an explicit non-goal, so this package only carries the
// interfaces and an in-memory implementation for fixtures and tests.
package block

import "github.com/crillab/varsat/expr"

// Block is one preprocessor-conditional region of a source file: an
// `#if`/`#ifdef`/`#else`/`#elif` region or the implicit top-level
// block spanning the whole file.
type Block interface {
	// Name is the block's unique synthetic identifier, of the form
	// "B<n>" (the top block is conventionally "B00").
	Name() string

	// Parent is the enclosing block, or nil for the top block.
	Parent() Block

	// PreviousSibling is the block immediately before this one at the
	// same nesting level (e.g. the preceding #elif), or nil if this
	// is the first block in its chain.
	PreviousSibling() Block

	// IsIfBlock reports whether this block opens a new if-chain
	// (`#if`/`#ifdef`), as opposed to continuing one (`#else`/`#elif`).
	IsIfBlock() bool

	// Guard is this block's own local condition, independent of its
	// ancestors (e.g. the `#if COND` text, or its negation for an
	// `#else`).
	Guard() expr.Expr

	// CodeConstraints is the formula that must hold for control flow
	// to reach this block's code: this block's presence variable,
	// conjoined with the defining equivalence of that variable and of
	// every ancestor's (each "name <-> parent && guard") up to the top
	// block's own presence variable.
	CodeConstraints() expr.Expr
}

// Tree is a whole parsed file's block structure.
type Tree interface {
	// Root is the implicit top-level block covering the whole file.
	Root() Block

	// Blocks returns every block in the tree, in document order.
	Blocks() []Block

	// Filename is the source file this tree was built from.
	Filename() string
}
