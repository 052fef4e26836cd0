// Package markup provides the dialect-independent base layer for wiki
// markup processing: source locations, located error types, the macro
// library, the parse context, and the HTML and tsearch output writers.
package markup

import (
	"sort"
	"strings"
)

// Placement tells where a macro invocation sits in the document flow.
// Block invocations stand alone on their source line; everything else
// is inline.
type Placement string

const (
	Block  Placement = "block"
	Inline Placement = "inline"
)

// Macro is the common surface of all macro implementations. The concrete
// protocols (tag, raw, link) are defined by the dialect packages.
type Macro interface {
	// Name returns the canonical lowercase name used for lookup.
	Name() string
	// Allows reports whether the macro may appear in the given placement.
	Allows(p Placement) bool
}

// Library maps macro names to implementations.
type Library struct {
	macros map[string]Macro
}

// NewLibrary creates a Library containing the given macros.
func NewLibrary(macros ...Macro) *Library {
	lib := &Library{macros: make(map[string]Macro)}
	for _, m := range macros {
		lib.Register(m)
	}
	return lib
}

// Register adds a macro under its lowercased name. A later registration
// replaces an earlier one, so callers can override builtin macros.
func (l *Library) Register(m Macro) {
	l.macros[strings.ToLower(m.Name())] = m
}

// Get resolves a macro name, case-insensitively. An unregistered name is
// an UnknownMacroError at loc.
func (l *Library) Get(name string, loc Location) (Macro, error) {
	m, ok := l.macros[strings.ToLower(name)]
	if !ok {
		return nil, &UnknownMacroError{Name: name, Loc: loc}
	}
	return m, nil
}

// Extend copies all macros from other into l.
func (l *Library) Extend(other *Library) {
	for _, m := range other.macros {
		l.Register(m)
	}
}

// Names returns the registered macro names, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.macros))
	for name := range l.macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
