// builtins.go ships the macros every installation gets.
package wikitext

import (
	"bytes"
	"html"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/dvorberg/tinywikitext/pkg/markup"
)

// Builtins returns a library with the stock macros: blockquote, div, s
// and u as HTML pass-through tags, pre and code for preformatted and
// highlighted text, markdown for embedded Markdown blocks, cite for
// citations and image for images.
func Builtins() *markup.Library {
	return markup.NewLibrary(
		NewElementMacro("blockquote", markup.Block),
		NewElementMacro("div", markup.Block),
		NewElementMacro("s", markup.Inline),
		NewElementMacro("u", markup.Inline),
		preMacro{},
		codeMacro{},
		markdownMacro{},
		citeMacro{},
		imageMacro{},
	)
}

// preMacro renders its content escaped in a pre element, attributes
// passed through.
type preMacro struct{}

func (preMacro) Name() string                   { return "pre" }
func (preMacro) Allows(p markup.Placement) bool { return p == markup.Block }

func (preMacro) HTML(inv *Invocation, source string) (string, error) {
	return markup.StartTag("pre", inv.Params) +
		html.EscapeString(source) + markup.EndTag("pre"), nil
}

// codeMacro highlights source code. The lang parameter picks the
// lexer, style the color scheme. Used inline it renders a highlighted
// code element instead of a pre block.
type codeMacro struct {
	defaultStyle string
}

// NewCodeMacro creates the code macro with the given default color
// scheme. An invocation's style parameter still overrides it.
func NewCodeMacro(defaultStyle string) markup.Macro {
	return codeMacro{defaultStyle: defaultStyle}
}

func (codeMacro) Name() string                 { return "code" }
func (codeMacro) Allows(markup.Placement) bool { return true }

func (m codeMacro) HTML(inv *Invocation, source string) (string, error) {
	source = strings.Trim(source, "\n")

	lexer := lexers.Get(inv.Params["lang"])
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", err
	}

	styleName := inv.Params["style"]
	if styleName == "" {
		styleName = m.defaultStyle
	}
	if styleName == "" {
		styleName = "friendly"
	}

	var opts []chromahtml.Option
	if inv.Placement == markup.Inline {
		opts = append(opts, chromahtml.PreventSurroundingPre(true))
	}

	var buf strings.Builder
	err = chromahtml.New(opts...).Format(&buf, styles.Get(styleName), iterator)
	if err != nil {
		return "", err
	}
	if inv.Placement == markup.Inline {
		return "<code>" + buf.String() + "</code>", nil
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// mdConverter is the shared Markdown renderer for the markdown macro,
// with the GFM table extension enabled.
var mdConverter = goldmark.New(goldmark.WithExtensions(extension.Table))

// markdownMacro renders its content as Markdown.
type markdownMacro struct{}

func (markdownMacro) Name() string                   { return "markdown" }
func (markdownMacro) Allows(p markup.Placement) bool { return p == markup.Block }

func (markdownMacro) HTML(inv *Invocation, source string) (string, error) {
	var buf bytes.Buffer
	if err := mdConverter.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// citeMacro marks up a citation. The cited title is part of the
// document's searchable text.
type citeMacro struct{}

func (citeMacro) Name() string                   { return "cite" }
func (citeMacro) Allows(p markup.Placement) bool { return p == markup.Inline }

func (citeMacro) HTML(inv *Invocation, source string) (string, error) {
	return "<cite>" + html.EscapeString(source) + "</cite>", nil
}

func (citeMacro) AddSearchableText(w *markup.TSearchWriter, inv *Invocation, source string) {
	if s := strings.TrimSpace(source); s != "" {
		w.Word(s)
	}
}

// imageMacro renders [[image:FILE|ALT|CLASS]] as an img element. The
// alternative text, when given, is part of the searchable text.
type imageMacro struct{}

func (imageMacro) Name() string                 { return "image" }
func (imageMacro) Allows(markup.Placement) bool { return true }

func (m imageMacro) HTML(inv *Invocation) (string, error) {
	if len(inv.Args) == 0 || inv.Args[0] == "" {
		return "", markup.NewUnsuitableMacroError(inv.Loc, "image",
			"the image macro needs a file argument")
	}
	attrs := map[string]string{"src": inv.Args[0]}
	if alt := m.alt(inv); alt != "" {
		attrs["alt"] = alt
	}
	if len(inv.Args) > 2 && inv.Args[2] != "" {
		attrs["class"] = inv.Args[2]
	}
	return markup.VoidTag("img", attrs), nil
}

func (m imageMacro) AddSearchableText(w *markup.TSearchWriter, inv *Invocation, source string) {
	if alt := m.alt(inv); alt != "" {
		w.Word(alt)
	}
}

func (imageMacro) alt(inv *Invocation) string {
	if len(inv.Args) > 1 {
		return inv.Args[1]
	}
	return ""
}
