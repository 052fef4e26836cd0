// htmlwriter.go assembles HTML output for markup compilers.
package markup

import (
	"html"
	"io"
	"sort"
	"strings"
)

// HTMLWriter writes HTML fragments. Block-level tags always start on a
// fresh line; inline tags and text are written as-is. Write errors stick
// to the writer and surface from Err, so event handlers do not need to
// check every write.
type HTMLWriter struct {
	out         io.Writer
	atLineStart bool
	err         error
}

// NewHTMLWriter creates a writer emitting to out.
func NewHTMLWriter(out io.Writer) *HTMLWriter {
	return &HTMLWriter{out: out, atLineStart: true}
}

// SwapOutput redirects subsequent writes to out and returns the previous
// destination. The new destination is assumed to start at a line
// boundary. List rendering uses this to buffer item content.
func (w *HTMLWriter) SwapOutput(out io.Writer) io.Writer {
	prev := w.out
	w.out = out
	w.atLineStart = true
	return prev
}

// Err returns the first error any write encountered, or nil.
func (w *HTMLWriter) Err() error { return w.err }

// OpenBlock writes the start tag of a block-level element on a fresh
// line. Content may follow on the same line.
func (w *HTMLWriter) OpenBlock(name string, attrs map[string]string) {
	w.breakLine()
	w.write(StartTag(name, attrs))
}

// CloseBlock writes the end tag of a block-level element and ends the
// line.
func (w *HTMLWriter) CloseBlock(name string) {
	w.write(EndTag(name))
	w.write("\n")
}

// OpenInline writes a start tag in place.
func (w *HTMLWriter) OpenInline(name string, attrs map[string]string) {
	w.write(StartTag(name, attrs))
}

// CloseInline writes an end tag in place.
func (w *HTMLWriter) CloseInline(name string) {
	w.write(EndTag(name))
}

// Text writes s HTML-escaped.
func (w *HTMLWriter) Text(s string) {
	w.write(html.EscapeString(s))
}

// Raw writes s without escaping.
func (w *HTMLWriter) Raw(s string) {
	w.write(s)
}

// RawBlock writes a self-contained fragment on a line of its own, for
// horizontal rules and block macro output.
func (w *HTMLWriter) RawBlock(s string) {
	w.breakLine()
	w.write(s)
	w.write("\n")
}

func (w *HTMLWriter) breakLine() {
	if !w.atLineStart {
		w.write("\n")
	}
}

func (w *HTMLWriter) write(s string) {
	if w.err != nil || s == "" {
		return
	}
	if _, err := io.WriteString(w.out, s); err != nil {
		w.err = err
		return
	}
	w.atLineStart = strings.HasSuffix(s, "\n")
}

// StartTag renders an HTML start tag. Attributes render sorted by name,
// values escaped, so output is deterministic.
func StartTag(name string, attrs map[string]string) string {
	return buildTag(name, attrs, ">")
}

// VoidTag renders a self-closing tag for void elements like img.
func VoidTag(name string, attrs map[string]string) string {
	return buildTag(name, attrs, " />")
}

// EndTag renders an HTML end tag.
func EndTag(name string) string {
	return "</" + name + ">"
}

func buildTag(name string, attrs map[string]string, end string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(name)
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(attrs[k]))
		sb.WriteString(`"`)
	}
	sb.WriteString(end)
	return sb.String()
}
