// tokenizer.go turns wikitext source into the token stream the parser
// consumes.
package wikitext

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dvorberg/tinywikitext/pkg/markup"
)

// rule is one tokenizer pattern. Rules are tried in order at the cursor;
// the first match wins. Line-anchored rules only fire at the start of a
// line.
type rule struct {
	ttype        TokenType
	re           *regexp.Regexp
	lineAnchored bool
}

// The rule order encodes the dialect's matching priorities. Comments
// come first so they absorb the whitespace around them, macro calls
// come before plain links so the namespace form wins, longer emphasis
// markers come before shorter ones, and br stays ahead of tagstart so
// <br /> is never read as a generic tag.
var rules = []rule{
	{TokenComment, regexp.MustCompile(`(?s)\A(\s*)<!--.*?-->(\s*)`), false},
	{TokenLinkMacro, regexp.MustCompile(`(?s)\A\[\[([\p{L}_][\p{L}\p{N}_]+):(.*?)\]\]`), false},
	{TokenLink, regexp.MustCompile(`(?s)\A\[\[(.+?)(?:\|(.+?))?\]\]`), false},
	{TokenEOLs, regexp.MustCompile(`\A\n([\t ]*\n)*`), false},
	{TokenHorizontalRule, regexp.MustCompile(`\A----+`), true},
	{TokenListItem, regexp.MustCompile(`\A([*#]+)[ \t]*`), true},
	{TokenDefinitionTerm, regexp.MustCompile(`\A;[ \t]*`), true},
	{TokenDefinitionDef, regexp.MustCompile(`\A:[ \t]*`), true},
	{TokenHeadingStart, regexp.MustCompile(`\A(={1,6})[ \t]*`), true},
	{TokenHeadingEnd, regexp.MustCompile(`(?m)\A[ \t]*(={1,6})[^\n\S]*$`), false},
	{TokenLineBreak, regexp.MustCompile(`(?i)\A<br\s*/?>`), false},
	{TokenTagStart, regexp.MustCompile(`(?i)\A<([a-z]+)(?:\s+([^>]*))?>`), false},
	{TokenTagEnd, regexp.MustCompile(`(?i)\A</([a-z]+)>`), false},
	{TokenBoldItalic, regexp.MustCompile(`\A'''''`), false},
	{TokenBold, regexp.MustCompile(`\A'''`), false},
	{TokenItalic, regexp.MustCompile(`\A''`), false},
	{TokenWhitespace, regexp.MustCompile(`\A[ \t]+`), false},
	{TokenWord, regexp.MustCompile(`\A[\p{L}\p{N}_][\p{L}\p{N}_ \t]*[\p{L}\p{N}_]`), false},
	{TokenOther, regexp.MustCompile(`(?s)\A.`), false},
}

// Tokenizer scans wikitext source into Tokens. The cursor only moves
// forward; raw macro processing may skip it ahead with SeekForward.
type Tokenizer struct {
	source    string
	pos       int
	line      int
	lineStart int
}

// NewTokenizer creates a tokenizer over source, positioned at the start.
func NewTokenizer(source string) *Tokenizer {
	return &Tokenizer{source: source, line: 1}
}

// Source returns the complete source text.
func (t *Tokenizer) Source() string { return t.source }

// Pos returns the cursor's absolute byte offset.
func (t *Tokenizer) Pos() int { return t.pos }

// Remainder returns the unconsumed source from the cursor onward.
func (t *Tokenizer) Remainder() string { return t.source[t.pos:] }

// Location returns the cursor position.
func (t *Tokenizer) Location() markup.Location {
	return markup.Location{
		Line:   t.line,
		Column: utf8.RuneCountInString(t.source[t.lineStart:t.pos]) + 1,
		Offset: t.pos,
	}
}

// SeekForward moves the cursor to the absolute byte offset pos, which
// may not lie before the cursor: moving backward would emit tokens
// twice. Offsets past the end of input are clamped.
func (t *Tokenizer) SeekForward(pos int) error {
	if pos < t.pos {
		return markup.NewInternalError(t.Location(),
			"tokenizer cursor may only move forward (seek %d from %d)", pos, t.pos)
	}
	if pos > len(t.source) {
		pos = len(t.source)
	}
	t.advance(pos - t.pos)
	return nil
}

// Next returns the next token, or a TokenEOF token at the end of input.
func (t *Tokenizer) Next() (Token, error) {
	if t.pos >= len(t.source) {
		return Token{Type: TokenEOF, Loc: t.Location()}, nil
	}

	remaining := t.source[t.pos:]
	if r, size := utf8.DecodeRuneInString(remaining); r == utf8.RuneError && size == 1 {
		return Token{}, markup.NewTokenizationError(t.Location(), "source is not valid UTF-8")
	}

	atLineStart := t.pos == 0 || t.source[t.pos-1] == '\n'
	for _, rl := range rules {
		if rl.lineAnchored && !atLineStart {
			continue
		}
		m := rl.re.FindStringSubmatchIndex(remaining)
		if m == nil {
			continue
		}
		tok := makeToken(rl.ttype, remaining, m, t.Location())
		t.advance(m[1])
		return tok, nil
	}

	// Unreachable while the catch-all rule is last.
	return Token{}, markup.NewTokenizationError(t.Location(), "no rule matches input")
}

func (t *Tokenizer) advance(n int) {
	if n <= 0 {
		return
	}
	consumed := t.source[t.pos : t.pos+n]
	if k := strings.Count(consumed, "\n"); k > 0 {
		t.line += k
		t.lineStart = t.pos + strings.LastIndexByte(consumed, '\n') + 1
	}
	t.pos += n
}

// makeToken fills the type-specific Value and Groups fields.
func makeToken(ttype TokenType, remaining string, m []int, loc markup.Location) Token {
	matched := remaining[m[0]:m[1]]
	tok := Token{Type: ttype, Value: matched, Loc: loc}

	switch ttype {
	case TokenEOLs:
		// Only the newline count matters; interior blanks are dropped.
		tok.Value = strings.Repeat("\n", strings.Count(matched, "\n"))
	case TokenListItem, TokenHeadingStart, TokenHeadingEnd:
		tok.Value = matchGroup(remaining, m, 1)
	case TokenComment, TokenLink, TokenLinkMacro, TokenTagStart:
		tok.Groups = []string{matchGroup(remaining, m, 1), matchGroup(remaining, m, 2)}
	case TokenTagEnd:
		tok.Groups = []string{matchGroup(remaining, m, 1)}
	}
	return tok
}

func matchGroup(s string, m []int, i int) string {
	if 2*i+1 >= len(m) || m[2*i] < 0 {
		return ""
	}
	return s[m[2*i]:m[2*i+1]]
}
