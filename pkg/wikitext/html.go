// html.go renders the event stream as HTML.
package wikitext

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/dvorberg/tinywikitext/pkg/markup"
)

// HTMLCompiler renders compiler events as an HTML fragment. Layout
// events map to their obvious elements; list events are buffered by a
// ListAssembler until the block is complete.
type HTMLCompiler struct {
	ctx    *markup.Context
	writer *markup.HTMLWriter
	list   *ListAssembler
}

// NewHTMLCompiler creates a compiler writing HTML to out. Macros and
// link targets resolve through ctx.
func NewHTMLCompiler(ctx *markup.Context, out io.Writer) *HTMLCompiler {
	return &HTMLCompiler{ctx: ctx, writer: markup.NewHTMLWriter(out)}
}

func (c *HTMLCompiler) BeginDocument() { c.list = nil }

// EndDocument reports the first write error, if any occurred.
func (c *HTMLCompiler) EndDocument() error { return c.writer.Err() }

// Word passes through verbatim: words cannot contain characters that
// need escaping.
func (c *HTMLCompiler) Word(s string) { c.writer.Raw(s) }

func (c *HTMLCompiler) OtherCharacters(s string) { c.writer.Text(s) }

func (c *HTMLCompiler) LineBreak()      { c.writer.Raw("<br />") }
func (c *HTMLCompiler) HorizontalRule() { c.writer.RawBlock("<hr />") }

func (c *HTMLCompiler) BeginParagraph() { c.writer.OpenBlock("p", nil) }
func (c *HTMLCompiler) EndParagraph()   { c.writer.CloseBlock("p") }

func (c *HTMLCompiler) BeginBold()   { c.writer.OpenInline("b", nil) }
func (c *HTMLCompiler) EndBold()     { c.writer.CloseInline("b") }
func (c *HTMLCompiler) BeginItalic() { c.writer.OpenInline("i", nil) }
func (c *HTMLCompiler) EndItalic()   { c.writer.CloseInline("i") }

func (c *HTMLCompiler) BeginHeading(level int) {
	c.writer.OpenBlock(fmt.Sprintf("h%d", level), nil)
}

func (c *HTMLCompiler) EndHeading(level int) {
	c.writer.CloseBlock(fmt.Sprintf("h%d", level))
}

func (c *HTMLCompiler) Link(text, target string) {
	if target == "" {
		target = text
	}
	c.writer.OpenInline("a", map[string]string{"href": c.ctx.LinkURL(target)})
	c.writer.Text(text)
	c.writer.CloseInline("a")
}

func (c *HTMLCompiler) BeginListItem(signature string, loc markup.Location) error {
	if c.list == nil {
		c.list = NewListAssembler(c.writer)
	}
	return c.list.BeginItem(signature, loc)
}

// EndListItem does nothing: writer output stays redirected into the
// item's buffer until the next item begins or the block finalizes.
func (c *HTMLCompiler) EndListItem() {}

func (c *HTMLCompiler) FinalizeList() error {
	if c.list == nil {
		return nil
	}
	err := c.list.Finalize()
	c.list = nil
	return err
}

func (c *HTMLCompiler) BeginDefinitionList() { c.writer.OpenBlock("dl", nil) }
func (c *HTMLCompiler) EndDefinitionList()   { c.writer.CloseBlock("dl") }
func (c *HTMLCompiler) BeginDefinitionTerm() { c.writer.OpenBlock("dt", nil) }
func (c *HTMLCompiler) EndDefinitionTerm()   { c.writer.CloseBlock("dt") }
func (c *HTMLCompiler) BeginDefinitionDef()  { c.writer.OpenBlock("dd", nil) }
func (c *HTMLCompiler) EndDefinitionDef()    { c.writer.CloseBlock("dd") }

func (c *HTMLCompiler) BeginTagMacro(inv *Invocation) error {
	tag, ok := inv.Macro.(TagMacro)
	if !ok {
		return markup.NewInternalError(inv.Loc,
			"macro %q is not a tag macro", inv.Macro.Name())
	}
	c.writeRaw(inv.Placement, tag.StartTag(inv))
	return nil
}

func (c *HTMLCompiler) EndTagMacro(inv *Invocation) error {
	tag, ok := inv.Macro.(TagMacro)
	if !ok {
		return markup.NewInternalError(inv.Loc,
			"macro %q is not a tag macro", inv.Macro.Name())
	}
	c.writeRaw(inv.Placement, tag.EndTag(inv))
	return nil
}

func (c *HTMLCompiler) ProcessRawMacro(inv *Invocation, source string) error {
	raw, ok := inv.Macro.(RawMacro)
	if !ok {
		return markup.NewInternalError(inv.Loc,
			"macro %q is not a raw macro", inv.Macro.Name())
	}
	rendered, err := raw.HTML(inv, source)
	if err != nil {
		return fmt.Errorf("macro %q: %w", inv.Macro.Name(), err)
	}
	c.writeRaw(inv.Placement, rendered)
	return nil
}

func (c *HTMLCompiler) ProcessLinkMacro(inv *Invocation) error {
	link, ok := inv.Macro.(LinkMacro)
	if !ok {
		return markup.NewInternalError(inv.Loc,
			"macro %q is not a link macro", inv.Macro.Name())
	}
	rendered, err := link.HTML(inv)
	if err != nil {
		return fmt.Errorf("macro %q: %w", inv.Macro.Name(), err)
	}
	c.writeRaw(inv.Placement, rendered)
	return nil
}

func (c *HTMLCompiler) writeRaw(placement markup.Placement, s string) {
	if placement == markup.Block {
		c.writer.RawBlock(s)
	} else {
		c.writer.Raw(s)
	}
}

// ToHTML parses source and returns it rendered as an HTML fragment.
func ToHTML(source string, ctx *markup.Context) (string, error) {
	var out strings.Builder
	if err := NewParser(ctx).Parse(source, NewHTMLCompiler(ctx, &out)); err != nil {
		return "", err
	}
	return out.String(), nil
}

// HTMLPage wraps an HTML fragment in a minimal standalone document.
func HTMLPage(title, fragment string) string {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	sb.WriteString("<meta charset=\"utf-8\" />\n")
	sb.WriteString("<title>" + html.EscapeString(title) + "</title>\n")
	sb.WriteString("</head>\n<body>\n")
	sb.WriteString(fragment)
	if !strings.HasSuffix(fragment, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("</body>\n</html>\n")
	return sb.String()
}
