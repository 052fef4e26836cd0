// tsearch.go renders the event stream as a PostgreSQL tsvector
// expression for full text indexing.
package wikitext

import (
	"io"
	"strings"

	"github.com/dvorberg/tinywikitext/pkg/markup"
)

// TSearchCompiler extracts the searchable text from a document. Words
// and link texts are collected, headings weigh their content, macros
// contribute through the search interfaces they implement, and all
// other layout is ignored.
type TSearchCompiler struct {
	NopCompiler
	writer *markup.TSearchWriter
}

// NewTSearchCompiler creates a compiler writing the tsvector
// expression to out. The text search configuration derives from the
// context's language.
func NewTSearchCompiler(ctx *markup.Context, out io.Writer) *TSearchCompiler {
	return &TSearchCompiler{writer: markup.NewTSearchWriter(out, ctx.Language)}
}

func (c *TSearchCompiler) Word(s string) { c.writer.Word(s) }

func (c *TSearchCompiler) Link(text, target string) { c.writer.Word(text) }

func (c *TSearchCompiler) EndParagraph() { c.writer.Break() }

// BeginHeading weights heading text above body text, the top two
// levels more than the rest.
func (c *TSearchCompiler) BeginHeading(level int) {
	if level < 3 {
		c.writer.PushWeight("B")
	} else {
		c.writer.PushWeight("C")
	}
}

func (c *TSearchCompiler) EndHeading(level int) { c.writer.PopWeight() }

func (c *TSearchCompiler) BeginTagMacro(inv *Invocation) error {
	if weighter, ok := inv.Macro.(SearchWeighter); ok {
		weighter.BeginSearchableBlock(c.writer, inv)
	}
	return nil
}

func (c *TSearchCompiler) EndTagMacro(inv *Invocation) error {
	if weighter, ok := inv.Macro.(SearchWeighter); ok {
		weighter.EndSearchableBlock(c.writer)
	}
	return nil
}

func (c *TSearchCompiler) ProcessRawMacro(inv *Invocation, source string) error {
	if contrib, ok := inv.Macro.(SearchTextContributor); ok {
		contrib.AddSearchableText(c.writer, inv, source)
	}
	return nil
}

func (c *TSearchCompiler) ProcessLinkMacro(inv *Invocation) error {
	if contrib, ok := inv.Macro.(SearchTextContributor); ok {
		contrib.AddSearchableText(c.writer, inv, "")
	}
	return nil
}

func (c *TSearchCompiler) EndDocument() error { return c.writer.EndDocument() }

// ToTSearch parses source and returns the tsvector expression indexing
// it, ready to be interpolated into an SQL statement.
func ToTSearch(source string, ctx *markup.Context) (string, error) {
	var out strings.Builder
	if err := NewParser(ctx).Parse(source, NewTSearchCompiler(ctx, &out)); err != nil {
		return "", err
	}
	return out.String(), nil
}
