// Package kconfig loads the on-disk symbol dictionary dumped from a
// Kconfig-style description and computes each symbol's local
// dependency formula.
package kconfig

import (
	"fmt"

	"github.com/crillab/varsat/expr"
)

// SymbolType classifies a Kconfig symbol. The numeric order matches
// the DIMACS "c sym" type ids (1-indexed: Boolean is 1, and so on).
type SymbolType int

const (
	Boolean SymbolType = iota
	Tristate
	Int
	Hex
	String
	Other
)

func (t SymbolType) String() string {
	switch t {
	case Boolean:
		return "BOOLEAN"
	case Tristate:
		return "TRISTATE"
	case Int:
		return "INT"
	case Hex:
		return "HEX"
	case String:
		return "STRING"
	case Other:
		return "OTHER"
	default:
		return fmt.Sprintf("SymbolType(%d)", int(t))
	}
}

// TypeID returns the 1-indexed DIMACS "c sym" type id for t.
func (t SymbolType) TypeID() int { return int(t) + 1 }

// SymbolTypeFromTypeID inverts TypeID.
func SymbolTypeFromTypeID(id int) (SymbolType, error) {
	t := SymbolType(id - 1)
	if t < Boolean || t > Other {
		return 0, fmt.Errorf("kconfig: invalid symbol type id %d", id)
	}
	return t, nil
}

// ParseSymbolType maps the lowercase spelling used in "Item" lines to
// a SymbolType.
func ParseSymbolType(s string) (SymbolType, error) {
	switch s {
	case "boolean", "bool":
		return Boolean, nil
	case "tristate":
		return Tristate, nil
	case "int", "integer":
		return Int, nil
	case "hex":
		return Hex, nil
	case "string":
		return String, nil
	case "other", "unknown":
		return Other, nil
	default:
		return 0, fmt.Errorf("kconfig: unknown symbol type %q", s)
	}
}

// Default is one (value, visibility) pair from a Default fact.
type Default struct {
	Value      string
	Visibility string
}

// Select is one (target, visibility) pair from an ItemSelects fact,
// i.e. a reverse dependency: when Visibility holds, this symbol forces
// Target on.
type Select struct {
	Target     string
	Visibility string
}

// Choice describes a mutually-exclusive group of items sharing a
// ChoiceItem ChoiceID.
type Choice struct {
	ID        string
	Required  bool
	Tristate  bool
	Members   []string // symbol names, in file order
}

// Symbol is one Kconfig item's dumped facts, keyed without its
// CONFIG_ prefix.
type Symbol struct {
	Name           string
	Type           SymbolType
	Dependency     string // raw expression text from Depends, "" means true
	Defaults       []Default
	Selects        []Select
	ChoiceGroup    string // Choice ID, "" if not a choice member
	HasPrompts     int
	DefinitionSite string

	local expr.Expr // memoized LocalFormula, computed lazily
}

// Dictionary is the parsed symbol dictionary: every Symbol keyed by
// name, plus the Choice groups and any metadata lines (§4.5/§6).
type Dictionary struct {
	Symbols map[string]*Symbol
	Choices map[string]*Choice
	Meta    map[string][]string
}

func newDictionary() *Dictionary {
	return &Dictionary{
		Symbols: make(map[string]*Symbol),
		Choices: make(map[string]*Choice),
		Meta:    make(map[string][]string),
	}
}

func (d *Dictionary) symbol(name string) *Symbol {
	s, ok := d.Symbols[name]
	if !ok {
		s = &Symbol{Name: name, Type: Boolean}
		d.Symbols[name] = s
	}
	return s
}

// Lookup returns the symbol by name and whether it is known.
func (d *Dictionary) Lookup(name string) (*Symbol, bool) {
	s, ok := d.Symbols[name]
	return s, ok
}
