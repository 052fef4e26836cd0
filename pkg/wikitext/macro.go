// macro.go implements the three macro protocols of the dialect.
package wikitext

import (
	"strings"
	"unicode"

	"github.com/dvorberg/tinywikitext/pkg/markup"
)

// Invocation is one resolved macro call: the macro, where it sits in
// the document flow, and its parameters. Tag-style calls carry named
// Params, link-style calls carry positional Args.
type Invocation struct {
	Macro     markup.Macro
	Placement markup.Placement
	Params    map[string]string
	Args      []string
	Loc       markup.Location
}

// TagMacro wraps normally parsed wikitext between a start and an end
// marker, <div>...</div> for example.
type TagMacro interface {
	markup.Macro
	// StartTag renders the opening HTML of the invocation.
	StartTag(inv *Invocation) string
	// EndTag renders the closing HTML.
	EndTag(inv *Invocation) string
}

// RawMacro consumes the literal source up to its own closing tag and
// renders it itself. The source is never parsed as wikitext.
type RawMacro interface {
	markup.Macro
	HTML(inv *Invocation, source string) (string, error)
}

// LinkMacro is invoked with link syntax, [[image:file.jpg|left]] for
// example, and receives positional arguments only.
type LinkMacro interface {
	markup.Macro
	HTML(inv *Invocation) (string, error)
}

// SearchWeighter is implemented by tag macros that change the full text
// search weight of their content.
type SearchWeighter interface {
	BeginSearchableBlock(w *markup.TSearchWriter, inv *Invocation)
	EndSearchableBlock(w *markup.TSearchWriter)
}

// SearchTextContributor is implemented by raw and link macros whose
// invocation should contribute text to the search document. Source is
// empty for link macros.
type SearchTextContributor interface {
	AddSearchableText(w *markup.TSearchWriter, inv *Invocation, source string)
}

// ElementMacro is a TagMacro that renders the HTML element of its own
// name and passes invocation parameters through as attributes. It
// covers the write-HTML-into-wikitext use case directly.
type ElementMacro struct {
	name       string
	placements []markup.Placement
}

// NewElementMacro creates an ElementMacro allowed in the given
// placements.
func NewElementMacro(name string, placements ...markup.Placement) *ElementMacro {
	return &ElementMacro{name: strings.ToLower(name), placements: placements}
}

// Name returns the macro's name, which is also the rendered element.
func (m *ElementMacro) Name() string { return m.name }

// Allows reports whether the macro may appear in placement p.
func (m *ElementMacro) Allows(p markup.Placement) bool {
	for _, allowed := range m.placements {
		if allowed == p {
			return true
		}
	}
	return false
}

// StartTag renders the element's start tag with the invocation
// parameters as attributes.
func (m *ElementMacro) StartTag(inv *Invocation) string {
	return markup.StartTag(m.name, inv.Params)
}

// EndTag renders the element's end tag.
func (m *ElementMacro) EndTag(inv *Invocation) string {
	return markup.EndTag(m.name)
}

// parseTagParams parses the attribute text of a tag-style invocation
// into a parameter map. Values may be double- or single-quoted; a bare
// key parses as "true".
func parseTagParams(s string) map[string]string {
	params := make(map[string]string)
	pos := 0

	for pos < len(s) {
		for pos < len(s) && unicode.IsSpace(rune(s[pos])) {
			pos++
		}

		keyStart := pos
		for pos < len(s) && isParamKeyChar(s[pos]) {
			pos++
		}
		if pos == keyStart {
			// Not a key character, skip it.
			pos++
			continue
		}
		key := s[keyStart:pos]

		if pos >= len(s) || s[pos] != '=' {
			params[key] = "true"
			continue
		}
		pos++ // skip '='

		value, next := parseParamValue(s, pos)
		params[key] = value
		pos = next
	}

	return params
}

// parseParamValue reads a parameter value starting at pos, handling
// quoted strings, and returns the value and the position after it.
func parseParamValue(s string, pos int) (string, int) {
	if pos >= len(s) {
		return "", pos
	}

	if s[pos] == '"' || s[pos] == '\'' {
		quote := s[pos]
		pos++
		valueStart := pos
		for pos < len(s) && s[pos] != quote {
			pos++
		}
		value := s[valueStart:pos]
		if pos < len(s) {
			pos++ // skip closing quote
		}
		return value, pos
	}

	valueStart := pos
	for pos < len(s) && !unicode.IsSpace(rune(s[pos])) {
		pos++
	}
	return s[valueStart:pos], pos
}

func isParamKeyChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '-' || c == '_'
}
