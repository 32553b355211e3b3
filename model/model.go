// Package model wraps a kconfig.Dictionary with the configuration
// space metadata (C6): the CONFIGURATION_SPACE_REGEX that decides
// which symbol names are externally visible, the ALWAYS_ON/ALWAYS_OFF
// closures, and the CONFIGURATION_SPACE_INCOMPLETE flag that weakens
// the missing-symbol closure rule used by the coverage analyzer.
package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/crillab/varsat/kconfig"
)

const (
	defaultConfigSpaceRegex = `^CONFIG_[^ ]+$`
	configPrefix            = "CONFIG_"
)

// Model is a loaded symbol dictionary plus its configuration-space
// metadata.
type Model struct {
	dict       *kconfig.Dictionary
	spaceRegex *regexp2.Regexp
	alwaysOn   map[string]bool
	alwaysOff  map[string]bool
	incomplete bool
}

// New builds a Model from dict, compiling its CONFIGURATION_SPACE_REGEX
// metadata (or the default `^CONFIG_[^ ]+$`) with PCRE-compatible
// semantics.
func New(dict *kconfig.Dictionary) (*Model, error) {
	pattern := defaultConfigSpaceRegex
	if vs, ok := dict.Meta["CONFIGURATION_SPACE_REGEX"]; ok && len(vs) > 0 {
		pattern = vs[0]
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("model: invalid CONFIGURATION_SPACE_REGEX %q: %w", pattern, err)
	}

	m := &Model{
		dict:       dict,
		spaceRegex: re,
		alwaysOn:   make(map[string]bool),
		alwaysOff:  make(map[string]bool),
	}
	for _, n := range dict.Meta["ALWAYS_ON"] {
		m.alwaysOn[n] = true
	}
	for _, n := range dict.Meta["ALWAYS_OFF"] {
		m.alwaysOff[n] = true
	}
	_, m.incomplete = dict.Meta["CONFIGURATION_SPACE_INCOMPLETE"]
	return m, nil
}

// baseName strips the "CONFIG_" prefix a block guard or CLI argument
// carries, matching the dictionary's internal unprefixed symbol keys.
func baseName(name string) string {
	return strings.TrimPrefix(name, configPrefix)
}

// fullName is baseName's inverse: it re-adds "CONFIG_" if name doesn't
// already carry it.
func fullName(name string) string {
	if strings.HasPrefix(name, configPrefix) {
		return name
	}
	return configPrefix + name
}

// InConfigurationSpace reports whether name (in either its bare or
// CONFIG_-prefixed form) is in the configuration space, i.e. its
// CONFIG_-prefixed form matches the compiled regex.
func (m *Model) InConfigurationSpace(name string) bool {
	ok, err := m.spaceRegex.MatchString(fullName(name))
	return err == nil && ok
}

// typeQueryBaseName strips the leading "CONFIG_" and, if present, a
// trailing "_MODULE" before a type lookup, so a tristate's module
// variant (as referenced in code guards) resolves to the same symbol
// as its non-module form.
func typeQueryBaseName(name string) string {
	b := baseName(name)
	return strings.TrimSuffix(b, "_MODULE")
}

// Type returns the symbol's Kconfig type and whether it is known at
// all to the dictionary.
func (m *Model) Type(name string) (kconfig.SymbolType, bool) {
	s, ok := m.dict.Lookup(typeQueryBaseName(name))
	if !ok {
		return 0, false
	}
	return s.Type, true
}

// TypeLabel is Type rendered the way the symbol-enumeration report
// wants it: the upper-case type name, or "MISSING" if the dictionary
// has no record of name at all.
func (m *Model) TypeLabel(name string) string {
	t, ok := m.Type(name)
	if !ok {
		return "MISSING"
	}
	return t.String()
}

// IsBoolean reports whether name is a known boolean symbol.
func (m *Model) IsBoolean(name string) bool {
	t, ok := m.Type(name)
	return ok && t == kconfig.Boolean
}

// IsTristate reports whether name is a known tristate symbol.
func (m *Model) IsTristate(name string) bool {
	t, ok := m.Type(name)
	return ok && t == kconfig.Tristate
}

// AlwaysOn returns the ALWAYS_ON metadata names, sorted.
func (m *Model) AlwaysOn() []string { return sortedKeys(m.alwaysOn) }

// AlwaysOff returns the ALWAYS_OFF metadata names, sorted.
func (m *Model) AlwaysOff() []string { return sortedKeys(m.alwaysOff) }

// Incomplete reports whether the dictionary carries the
// CONFIGURATION_SPACE_INCOMPLETE metadata flag.
func (m *Model) Incomplete() bool { return m.incomplete }

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
