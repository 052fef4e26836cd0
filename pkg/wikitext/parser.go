// Package wikitext parses the wiki dialect into an ordered event
// stream and renders it as HTML or as a PostgreSQL tsvector
// expression for full text indexing.
package wikitext

import (
	"regexp"
	"strings"

	"github.com/dvorberg/tinywikitext/pkg/markup"
)

// Lookahead patterns deciding how a construct continues after a line
// end, matched against the unconsumed remainder of the source.
var (
	nextListItemRe   = regexp.MustCompile(`\A[*#]+`)
	nextDefElementRe = regexp.MustCompile(`\A[;:]`)
	restIsLineEndRe  = regexp.MustCompile(`\A[ \t]*(\n|\z)`)
	blankLineRe      = regexp.MustCompile(`\n[ \t]*\n`)
)

// Parser translates wikitext into calls on a Compiler. It holds no
// per-document state; each Parse call runs independently, so a Parser
// may be shared.
type Parser struct {
	ctx *markup.Context
}

// NewParser creates a parser resolving macros and links through ctx.
func NewParser(ctx *markup.Context) *Parser {
	return &Parser{ctx: ctx}
}

// Parse tokenizes source and feeds the resulting events to compiler.
// The returned error is nil or one of the located error types from the
// markup package, except for errors the compiler itself produced,
// which are passed through unchanged.
func (p *Parser) Parse(source string, compiler Compiler) error {
	run := &parseRun{
		ctx:       p.ctx,
		tokenizer: NewTokenizer(source),
		compiler:  compiler,
	}
	return run.run()
}

// definitionMode tracks where we are within a definition list.
type definitionMode int

const (
	defNone definitionMode = iota
	defTerm                // inside a ";" line
	defDef                 // inside a ":" line
	defList                // between entries, list still open
)

// proceduralStart records an opened emphasis marker so an unterminated
// one can be reported at the place it was opened.
type proceduralStart struct {
	kind TokenType
	loc  markup.Location
}

type headingState struct {
	level int
	loc   markup.Location
}

// parseRun is the state of one Parse call.
type parseRun struct {
	ctx       *markup.Context
	tokenizer *Tokenizer
	compiler  Compiler

	procedural  []proceduralStart
	heading     *headingState
	prevItem    string // signature of the last closed list item
	currItem    string // signature of the open list item
	defMode     definitionMode
	tagStack    []*Invocation
	inParagraph bool
}

func (r *parseRun) run() error {
	r.compiler.BeginDocument()
	for {
		tok, err := r.tokenizer.Next()
		if err != nil {
			return err
		}
		if tok.Type == TokenEOF {
			break
		}
		if err := r.process(tok); err != nil {
			return err
		}
	}
	return r.finish()
}

func (r *parseRun) process(tok Token) error {
	switch tok.Type {
	case TokenBoldItalic, TokenBold, TokenItalic:
		return r.processEmphasis(tok)

	case TokenComment:
		return r.processComment(tok)

	case TokenLineBreak:
		r.compiler.LineBreak()
		return nil

	case TokenLink:
		if err := r.ensureParagraph(); err != nil {
			return err
		}
		r.compiler.Link(tok.Group(0), tok.Group(1))
		return nil

	case TokenHorizontalRule:
		r.compiler.HorizontalRule()
		return nil

	case TokenListItem:
		return r.processListItem(tok)

	case TokenDefinitionTerm:
		if r.defMode == defNone {
			r.compiler.BeginDefinitionList()
		}
		r.compiler.BeginDefinitionTerm()
		r.defMode = defTerm
		return nil

	case TokenDefinitionDef:
		if r.defMode == defNone {
			return markup.NewStructuralError(tok.Loc,
				"a definition must always follow a term")
		}
		r.compiler.BeginDefinitionDef()
		r.defMode = defDef
		return nil

	case TokenHeadingStart:
		return r.processHeadingStart(tok)

	case TokenHeadingEnd:
		return r.processHeadingEnd(tok)

	case TokenTagStart:
		return r.processMacroCall(tok, tok.Group(0),
			parseTagParams(tok.Group(1)), nil)

	case TokenTagEnd:
		return r.processTagEnd(tok)

	case TokenLinkMacro:
		var args []string
		if raw := tok.Group(1); raw != "" {
			args = strings.Split(raw, "|")
		}
		return r.processMacroCall(tok, tok.Group(0), nil, args)

	case TokenWhitespace:
		r.compiler.OtherCharacters(" ")
		return nil

	case TokenEOLs:
		return r.processLineEnds(tok)

	case TokenWord:
		if err := r.ensureParagraph(); err != nil {
			return err
		}
		r.compiler.Word(tok.Value)
		return nil

	case TokenOther:
		if err := r.ensureParagraph(); err != nil {
			return err
		}
		r.compiler.OtherCharacters(tok.Value)
		return nil
	}
	return markup.NewInternalError(tok.Loc, "unhandled token type %s", tok.Type)
}

// finish closes everything a trailing line end would have closed,
// verifies nothing is left open and ends the document.
func (r *parseRun) finish() error {
	if r.currItem != "" {
		r.compiler.EndListItem()
		if err := r.compiler.FinalizeList(); err != nil {
			return err
		}
		r.prevItem, r.currItem = "", ""
	}
	switch r.defMode {
	case defTerm:
		r.compiler.EndDefinitionTerm()
	case defDef:
		r.compiler.EndDefinitionDef()
	}
	if r.defMode != defNone {
		r.compiler.EndDefinitionList()
		r.defMode = defNone
	}
	if err := r.paragraphBreak(); err != nil {
		return err
	}
	if len(r.tagStack) > 0 {
		outermost := r.tagStack[0]
		return markup.NewStructuralError(outermost.Loc,
			"macro %q is never closed", outermost.Macro.Name())
	}
	return r.compiler.EndDocument()
}

// paragraphBreak ends the current paragraph. Emphasis and headings may
// not span paragraphs, so an open one is an error, reported where it
// was opened.
func (r *parseRun) paragraphBreak() error {
	if len(r.procedural) > 0 {
		top := r.procedural[len(r.procedural)-1]
		return markup.NewStructuralError(top.loc,
			"unterminated %s, missing the closing marker", top.kind)
	}
	if r.heading != nil {
		return markup.NewStructuralError(r.heading.loc,
			"unterminated heading, missing the closing delimiter")
	}
	if r.inParagraph {
		r.compiler.EndParagraph()
		r.inParagraph = false
	}
	return nil
}

// ensureParagraph opens a paragraph before flowing content unless the
// content already has a home (a list item, heading, term or
// definition).
func (r *parseRun) ensureParagraph() error {
	if r.defMode == defList {
		return markup.NewStructuralError(r.tokenizer.Location(),
			"cannot put contents in a definition list, expected a term or a definition")
	}
	if !r.inParagraph && r.currItem == "" && r.heading == nil &&
		r.defMode != defTerm && r.defMode != defDef {
		r.compiler.BeginParagraph()
		r.inParagraph = true
	}
	return nil
}

func (r *parseRun) processEmphasis(tok Token) error {
	if err := r.ensureParagraph(); err != nil {
		return err
	}
	if !r.topProceduralIs(tok.Type) {
		r.procedural = append(r.procedural,
			proceduralStart{kind: tok.Type, loc: tok.Loc})
		switch tok.Type {
		case TokenBoldItalic:
			r.compiler.BeginBold()
			r.compiler.BeginItalic()
		case TokenBold:
			r.compiler.BeginBold()
		case TokenItalic:
			r.compiler.BeginItalic()
		}
		return nil
	}
	r.procedural = r.procedural[:len(r.procedural)-1]
	switch tok.Type {
	case TokenBoldItalic:
		r.compiler.EndItalic()
		r.compiler.EndBold()
	case TokenBold:
		r.compiler.EndBold()
	case TokenItalic:
		r.compiler.EndItalic()
	}
	return nil
}

func (r *parseRun) topProceduralIs(tt TokenType) bool {
	return len(r.procedural) > 0 &&
		r.procedural[len(r.procedural)-1].kind == tt
}

// processComment handles the whitespace the comment rule swallowed
// around the comment itself. A blank line in it still breaks the
// paragraph, any other whitespace still separates words.
func (r *parseRun) processComment(tok Token) error {
	before, after := tok.Group(0), tok.Group(1)
	if blankLineRe.MatchString(before) || blankLineRe.MatchString(after) {
		return r.paragraphBreak()
	}
	if before != "" || after != "" {
		r.compiler.OtherCharacters(" ")
	}
	return nil
}

func (r *parseRun) processListItem(tok Token) error {
	if err := r.paragraphBreak(); err != nil {
		return err
	}
	if err := ValidateSignatures(r.prevItem, tok.Value, tok.Loc); err != nil {
		return err
	}
	if err := r.compiler.BeginListItem(tok.Value, tok.Loc); err != nil {
		return err
	}
	r.currItem = tok.Value
	return nil
}

func (r *parseRun) processHeadingStart(tok Token) error {
	if err := r.paragraphBreak(); err != nil {
		return err
	}
	if r.heading != nil {
		return markup.NewStructuralError(r.heading.loc, "headings cannot nest")
	}
	level := len(tok.Value)
	r.compiler.BeginHeading(level)
	r.heading = &headingState{level: level, loc: tok.Loc}
	return nil
}

func (r *parseRun) processHeadingEnd(tok Token) error {
	if r.heading == nil {
		return markup.NewStructuralError(tok.Loc, "no heading is open here")
	}
	level := len(tok.Value)
	if level != r.heading.level {
		return markup.NewStructuralError(r.heading.loc,
			"heading level mismatch: opened with %d, closed with %d",
			r.heading.level, level)
	}
	r.compiler.EndHeading(level)
	r.heading = nil
	return nil
}

func (r *parseRun) processTagEnd(tok Token) error {
	name := tok.Group(0)
	if len(r.tagStack) == 0 {
		return markup.NewStructuralError(tok.Loc,
			"cannot close macro %q, it is not open", name)
	}
	inv := r.tagStack[len(r.tagStack)-1]
	if !strings.EqualFold(inv.Macro.Name(), name) {
		return markup.NewStructuralError(tok.Loc,
			"macro nesting error: trying to close <%s> with </%s>",
			inv.Macro.Name(), name)
	}
	r.tagStack = r.tagStack[:len(r.tagStack)-1]
	if inv.Placement == markup.Block {
		if err := r.paragraphBreak(); err != nil {
			return err
		}
	}
	return r.compiler.EndTagMacro(inv)
}

// processLineEnds closes whatever construct the ending line belongs
// to. Definition elements always end with their line; a list item ends
// too, and lookahead decides whether the block continues. Outside of
// those a single line end is whitespace and a run of them breaks the
// paragraph.
func (r *parseRun) processLineEnds(tok Token) error {
	nlcount := len(tok.Value)

	switch {
	case r.defMode == defTerm:
		r.compiler.EndDefinitionTerm()
		r.defMode = defList

	case r.defMode == defDef:
		r.compiler.EndDefinitionDef()
		if nextDefElementRe.MatchString(r.tokenizer.Remainder()) {
			r.defMode = defList
		} else {
			r.compiler.EndDefinitionList()
			r.defMode = defNone
		}

	case r.currItem != "":
		r.compiler.EndListItem()
		if !nextListItemRe.MatchString(r.tokenizer.Remainder()) || nlcount > 1 {
			if err := r.compiler.FinalizeList(); err != nil {
				return err
			}
			r.prevItem, r.currItem = "", ""
		} else {
			r.prevItem, r.currItem = r.currItem, ""
		}

	case nlcount == 1:
		r.compiler.OtherCharacters(" ")

	default:
		return r.paragraphBreak()
	}
	return nil
}

// processMacroCall resolves and dispatches a macro invocation, from a
// tag (params non-nil) or from link syntax (args non-nil).
func (r *parseRun) processMacroCall(tok Token, name string,
	params map[string]string, args []string) error {

	m, err := r.ctx.Library.Get(name, tok.Loc)
	if err != nil {
		return err
	}

	placement := r.inferPlacement(tok, name)
	if !m.Allows(placement) {
		// A failed block invocation may still work as part of the
		// surrounding paragraph.
		if placement == markup.Block && m.Allows(markup.Inline) {
			placement = markup.Inline
		} else {
			return markup.NewUnsuitableMacroError(tok.Loc, name,
				"macro %q does not allow %s placement", name, placement)
		}
	}

	inv := &Invocation{
		Macro:     m,
		Placement: placement,
		Params:    params,
		Args:      args,
		Loc:       tok.Loc,
	}

	if tok.Type == TokenLinkMacro {
		if _, ok := m.(LinkMacro); !ok {
			return markup.NewUnsuitableMacroError(tok.Loc, name,
				"macro %q cannot be called with link syntax", name)
		}
		if err := r.alignParagraphs(placement); err != nil {
			return err
		}
		return r.compiler.ProcessLinkMacro(inv)
	}

	switch m.(type) {
	case TagMacro:
		if err := r.alignParagraphs(placement); err != nil {
			return err
		}
		r.tagStack = append(r.tagStack, inv)
		return r.compiler.BeginTagMacro(inv)

	case RawMacro:
		endTag := "</" + name + ">"
		remainder := r.tokenizer.Remainder()
		idx := strings.Index(remainder, endTag)
		if idx < 0 {
			return markup.NewStructuralError(tok.Loc,
				"unterminated <%s> macro", name)
		}
		source := remainder[:idx]
		if err := r.tokenizer.SeekForward(r.tokenizer.Pos() + idx + len(endTag)); err != nil {
			return err
		}
		if err := r.alignParagraphs(placement); err != nil {
			return err
		}
		return r.compiler.ProcessRawMacro(inv, source)

	case LinkMacro:
		return markup.NewUnsuitableMacroError(tok.Loc, name,
			"macro %q uses link syntax and cannot be opened as a tag", name)
	}
	return markup.NewInternalError(tok.Loc,
		"macro %q implements no invocation protocol", name)
}

// alignParagraphs keeps macro and paragraph events properly nested: a
// block macro may not start inside a paragraph, an inline macro needs
// one around it.
func (r *parseRun) alignParagraphs(placement markup.Placement) error {
	if placement == markup.Block {
		return r.paragraphBreak()
	}
	return r.ensureParagraph()
}

// inferPlacement decides whether an invocation stands on its own line.
// It does when it starts one and is immediately followed by a line end
// or by its own closing tag before the line runs out.
func (r *parseRun) inferPlacement(tok Token, name string) markup.Placement {
	source := r.tokenizer.Source()
	if tok.Loc.Offset > 0 && source[tok.Loc.Offset-1] != '\n' {
		return markup.Inline
	}
	remainder := r.tokenizer.Remainder()
	if restIsLineEndRe.MatchString(remainder) {
		return markup.Block
	}
	restOfLine, _, _ := strings.Cut(remainder, "\n")
	if strings.HasSuffix(restOfLine, "</"+name+">") {
		return markup.Block
	}
	return markup.Inline
}
