// context.go carries the collaborators a compilation run depends on.
package markup

// Context bundles what a compiler needs beyond the source text: the
// macro library, the document's root language, and link resolution.
// A Context is read-only during a parse and may be shared across
// sequential parses.
type Context struct {
	Library *Library

	// Language is the BCP-47 tag of the document's root language,
	// for example "en" or "de-DE". It selects the text search
	// configuration used by the tsearch writer.
	Language string

	// ResolveLink turns a link target from the source text into an
	// href value. Nil leaves targets unchanged.
	ResolveLink func(target string) string
}

// NewContext creates a Context with the given library and English as the
// root language.
func NewContext(lib *Library) *Context {
	return &Context{Library: lib, Language: "en"}
}

// LinkURL resolves a link target to an href value.
func (c *Context) LinkURL(target string) string {
	if c.ResolveLink == nil {
		return target
	}
	return c.ResolveLink(target)
}
