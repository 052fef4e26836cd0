// tsearch.go assembles PostgreSQL full text search expressions.
package markup

import (
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// postgresConfigurations lists the text search configurations PostgreSQL
// ships by default. Languages outside this set fall back to "simple".
var postgresConfigurations = map[string]bool{
	"arabic": true, "armenian": true, "basque": true, "catalan": true,
	"danish": true, "dutch": true, "english": true, "finnish": true,
	"french": true, "german": true, "greek": true, "hindi": true,
	"hungarian": true, "indonesian": true, "irish": true, "italian": true,
	"lithuanian": true, "nepali": true, "norwegian": true,
	"portuguese": true, "romanian": true, "russian": true, "serbian": true,
	"spanish": true, "swedish": true, "tamil": true, "turkish": true,
	"yiddish": true,
}

// SearchConfiguration maps a BCP-47 language tag to the PostgreSQL text
// search configuration for that language, "de-AT" to "german" for
// example. Unknown or unsupported languages map to "simple".
func SearchConfiguration(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return "simple"
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return "simple"
	}
	name := strings.ToLower(display.English.Languages().Name(language.Make(base.String())))
	if postgresConfigurations[name] {
		return name
	}
	return "simple"
}

// TSearchWriter collects document text into weighted spans and writes
// them as one PostgreSQL tsvector expression: to_tsvector terms joined
// by ||, wrapped in setweight where a weight label is active. Write
// errors stick to the writer and surface from EndDocument.
type TSearchWriter struct {
	out     io.Writer
	config  string
	weights []string
	words   []string
	wrote   bool
	err     error
}

// NewTSearchWriter creates a writer emitting to out. The text search
// configuration is derived from the BCP-47 language tag.
func NewTSearchWriter(out io.Writer, lang string) *TSearchWriter {
	return &TSearchWriter{out: out, config: SearchConfiguration(lang)}
}

// Configuration returns the PostgreSQL text search configuration in use.
func (w *TSearchWriter) Configuration() string { return w.config }

// Word adds one word to the current span.
func (w *TSearchWriter) Word(s string) {
	if s == "" {
		return
	}
	w.words = append(w.words, s)
}

// Break ends the current span. The next word starts a new to_tsvector
// term.
func (w *TSearchWriter) Break() {
	w.flush()
}

// PushWeight ends the current span and makes weight the active label for
// the following text. Weight is one of the PostgreSQL labels "A" to "D".
func (w *TSearchWriter) PushWeight(weight string) {
	w.flush()
	w.weights = append(w.weights, weight)
}

// PopWeight ends the current span and restores the previously active
// weight.
func (w *TSearchWriter) PopWeight() {
	w.flush()
	if len(w.weights) > 0 {
		w.weights = w.weights[:len(w.weights)-1]
	}
}

// EndDocument flushes the last span and returns any write error. A
// document without searchable text yields an empty to_tsvector term so
// the expression stays valid SQL.
func (w *TSearchWriter) EndDocument() error {
	w.flush()
	if !w.wrote {
		w.write("to_tsvector('" + w.config + "', '')")
	}
	w.write("\n")
	return w.err
}

func (w *TSearchWriter) flush() {
	if len(w.words) == 0 {
		return
	}
	text := strings.Join(w.words, " ")
	w.words = w.words[:0]

	expr := "to_tsvector('" + w.config + "', '" + escapeSQLString(text) + "')"
	if len(w.weights) > 0 {
		expr = "setweight(" + expr + ", '" + w.weights[len(w.weights)-1] + "')"
	}

	if w.wrote {
		w.write(" ||\n")
	}
	w.write(expr)
	w.wrote = true
}

func (w *TSearchWriter) write(s string) {
	if w.err != nil {
		return
	}
	if _, err := io.WriteString(w.out, s); err != nil {
		w.err = err
	}
}

// escapeSQLString doubles single quotes for embedding in a SQL string
// literal.
func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
