// tokens.go defines the token vocabulary of the wikitext dialect.
package wikitext

import "github.com/dvorberg/tinywikitext/pkg/markup"

// TokenType identifies the syntactic class of a token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenComment
	TokenLinkMacro
	TokenLink
	TokenEOLs
	TokenHorizontalRule
	TokenListItem
	TokenDefinitionTerm
	TokenDefinitionDef
	TokenHeadingStart
	TokenHeadingEnd
	TokenLineBreak
	TokenTagStart
	TokenTagEnd
	TokenBoldItalic
	TokenBold
	TokenItalic
	TokenWhitespace
	TokenWord
	TokenOther
)

var tokenTypeNames = map[TokenType]string{
	TokenEOF:            "eof",
	TokenComment:        "comment",
	TokenLinkMacro:      "linkmacro",
	TokenLink:           "link",
	TokenEOLs:           "eols",
	TokenHorizontalRule: "hr",
	TokenListItem:       "listitem",
	TokenDefinitionTerm: "defterm",
	TokenDefinitionDef:  "defdef",
	TokenHeadingStart:   "headingstart",
	TokenHeadingEnd:     "headingend",
	TokenLineBreak:      "br",
	TokenTagStart:       "tagstart",
	TokenTagEnd:         "tagend",
	TokenBoldItalic:     "bolditalic",
	TokenBold:           "bold",
	TokenItalic:         "italic",
	TokenWhitespace:     "whitespace",
	TokenWord:           "word",
	TokenOther:          "other",
}

func (tt TokenType) String() string {
	if name, ok := tokenTypeNames[tt]; ok {
		return name
	}
	return "unknown"
}

// Token is one lexical unit of wikitext source.
//
// Value holds the type-specific payload: the marker signature for list
// items, the delimiter run for headings, the bare newlines for blank
// line runs, and the matched text otherwise. Groups holds captured
// subexpressions where a rule has them: surrounding whitespace for
// comments, text and target for links, name and parameters for macro
// calls and tags.
type Token struct {
	Type   TokenType
	Value  string
	Groups []string
	Loc    markup.Location
}

// Group returns the i-th captured subexpression, or "" when the group
// did not participate in the match.
func (t Token) Group(i int) string {
	if i < 0 || i >= len(t.Groups) {
		return ""
	}
	return t.Groups[i]
}
