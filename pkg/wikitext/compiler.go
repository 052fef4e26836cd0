// compiler.go defines the event interface between the parser and its
// output backends.
package wikitext

import (
	"fmt"
	"io"

	"github.com/dvorberg/tinywikitext/pkg/markup"
)

// Compiler receives the parser's output as an ordered event stream. A
// successful parse emits BeginDocument first and EndDocument last, and
// every begin event is closed by its matching end event in LIFO order.
// Consumers never see parser internals, only events.
//
// Layout events cannot fail; backends that write output keep a sticky
// error and report it from EndDocument. The list and macro events return
// errors because backend invariants can break there mid-parse.
type Compiler interface {
	BeginDocument()
	EndDocument() error

	// Word carries a run of word characters, OtherCharacters anything
	// the tokenizer classified as punctuation or stray input.
	Word(s string)
	OtherCharacters(s string)
	LineBreak()
	HorizontalRule()

	BeginParagraph()
	EndParagraph()
	BeginBold()
	EndBold()
	BeginItalic()
	EndItalic()

	BeginHeading(level int)
	EndHeading(level int)

	// Link reports a bracket link. Target is empty when the link only
	// carries text.
	Link(text, target string)

	BeginListItem(signature string, loc markup.Location) error
	EndListItem()
	FinalizeList() error

	BeginDefinitionList()
	EndDefinitionList()
	BeginDefinitionTerm()
	EndDefinitionTerm()
	BeginDefinitionDef()
	EndDefinitionDef()

	BeginTagMacro(inv *Invocation) error
	EndTagMacro(inv *Invocation) error
	ProcessRawMacro(inv *Invocation, source string) error
	ProcessLinkMacro(inv *Invocation) error
}

// NopCompiler implements Compiler with no-ops. Embed it to build
// backends that only care about a subset of events.
type NopCompiler struct{}

func (NopCompiler) BeginDocument()                                    {}
func (NopCompiler) EndDocument() error                                { return nil }
func (NopCompiler) Word(string)                                       {}
func (NopCompiler) OtherCharacters(string)                            {}
func (NopCompiler) LineBreak()                                        {}
func (NopCompiler) HorizontalRule()                                   {}
func (NopCompiler) BeginParagraph()                                   {}
func (NopCompiler) EndParagraph()                                     {}
func (NopCompiler) BeginBold()                                        {}
func (NopCompiler) EndBold()                                          {}
func (NopCompiler) BeginItalic()                                      {}
func (NopCompiler) EndItalic()                                        {}
func (NopCompiler) BeginHeading(int)                                  {}
func (NopCompiler) EndHeading(int)                                    {}
func (NopCompiler) Link(string, string)                               {}
func (NopCompiler) BeginListItem(string, markup.Location) error       { return nil }
func (NopCompiler) EndListItem()                                      {}
func (NopCompiler) FinalizeList() error                               { return nil }
func (NopCompiler) BeginDefinitionList()                              {}
func (NopCompiler) EndDefinitionList()                                {}
func (NopCompiler) BeginDefinitionTerm()                              {}
func (NopCompiler) EndDefinitionTerm()                                {}
func (NopCompiler) BeginDefinitionDef()                               {}
func (NopCompiler) EndDefinitionDef()                                 {}
func (NopCompiler) BeginTagMacro(*Invocation) error                   { return nil }
func (NopCompiler) EndTagMacro(*Invocation) error                     { return nil }
func (NopCompiler) ProcessRawMacro(*Invocation, string) error         { return nil }
func (NopCompiler) ProcessLinkMacro(*Invocation) error                { return nil }

// TraceCompiler writes one line per event. It backs the events output
// format of the render command and is handy when debugging the parser.
type TraceCompiler struct {
	Out io.Writer
	err error
}

// NewTraceCompiler creates a TraceCompiler writing to out.
func NewTraceCompiler(out io.Writer) *TraceCompiler {
	return &TraceCompiler{Out: out}
}

func (c *TraceCompiler) event(format string, args ...any) {
	if c.err != nil {
		return
	}
	if _, err := fmt.Fprintf(c.Out, format+"\n", args...); err != nil {
		c.err = err
	}
}

func (c *TraceCompiler) BeginDocument() { c.event("begin-document") }

func (c *TraceCompiler) EndDocument() error {
	c.event("end-document")
	return c.err
}

func (c *TraceCompiler) Word(s string)            { c.event("word %q", s) }
func (c *TraceCompiler) OtherCharacters(s string) { c.event("characters %q", s) }
func (c *TraceCompiler) LineBreak()               { c.event("line-break") }
func (c *TraceCompiler) HorizontalRule()          { c.event("horizontal-rule") }
func (c *TraceCompiler) BeginParagraph()          { c.event("begin-paragraph") }
func (c *TraceCompiler) EndParagraph()            { c.event("end-paragraph") }
func (c *TraceCompiler) BeginBold()               { c.event("begin-bold") }
func (c *TraceCompiler) EndBold()                 { c.event("end-bold") }
func (c *TraceCompiler) BeginItalic()             { c.event("begin-italic") }
func (c *TraceCompiler) EndItalic()               { c.event("end-italic") }
func (c *TraceCompiler) BeginHeading(level int)   { c.event("begin-heading level=%d", level) }
func (c *TraceCompiler) EndHeading(level int)     { c.event("end-heading level=%d", level) }

func (c *TraceCompiler) Link(text, target string) {
	c.event("link text=%q target=%q", text, target)
}

func (c *TraceCompiler) BeginListItem(signature string, _ markup.Location) error {
	c.event("begin-list-item signature=%q", signature)
	return nil
}

func (c *TraceCompiler) EndListItem() { c.event("end-list-item") }

func (c *TraceCompiler) FinalizeList() error {
	c.event("finalize-list")
	return nil
}

func (c *TraceCompiler) BeginDefinitionList() { c.event("begin-definition-list") }
func (c *TraceCompiler) EndDefinitionList()   { c.event("end-definition-list") }
func (c *TraceCompiler) BeginDefinitionTerm() { c.event("begin-definition-term") }
func (c *TraceCompiler) EndDefinitionTerm()   { c.event("end-definition-term") }
func (c *TraceCompiler) BeginDefinitionDef()  { c.event("begin-definition-def") }
func (c *TraceCompiler) EndDefinitionDef()    { c.event("end-definition-def") }

func (c *TraceCompiler) BeginTagMacro(inv *Invocation) error {
	c.event("begin-tag-macro name=%q placement=%s", inv.Macro.Name(), inv.Placement)
	return nil
}

func (c *TraceCompiler) EndTagMacro(inv *Invocation) error {
	c.event("end-tag-macro name=%q", inv.Macro.Name())
	return nil
}

func (c *TraceCompiler) ProcessRawMacro(inv *Invocation, source string) error {
	c.event("raw-macro name=%q placement=%s source=%q", inv.Macro.Name(), inv.Placement, source)
	return nil
}

func (c *TraceCompiler) ProcessLinkMacro(inv *Invocation) error {
	c.event("link-macro name=%q args=%q", inv.Macro.Name(), inv.Args)
	return nil
}
