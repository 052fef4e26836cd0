package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvorberg/tinywikitext/pkg/markup"
)

func tokenize(t *testing.T, source string) []Token {
	t.Helper()
	tok := NewTokenizer(source)
	var tokens []Token
	for {
		token, err := tok.Next()
		require.NoError(t, err)
		if token.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, token)
	}
}

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestTokenizer_EmptyInput(t *testing.T) {
	tok := NewTokenizer("")
	token, err := tok.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenEOF, token.Type)

	// EOF is sticky.
	token, err = tok.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenEOF, token.Type)
}

func TestTokenizer_WordsSpanSpaces(t *testing.T) {
	tokens := tokenize(t, "Hello wiki world!")
	require.Len(t, tokens, 2)
	assert.Equal(t, TokenWord, tokens[0].Type)
	assert.Equal(t, "Hello wiki world", tokens[0].Value)
	assert.Equal(t, TokenOther, tokens[1].Type)
	assert.Equal(t, "!", tokens[1].Value)
}

func TestTokenizer_SingleLettersAreOther(t *testing.T) {
	tokens := tokenize(t, "a")
	require.Len(t, tokens, 1)
	assert.Equal(t, TokenOther, tokens[0].Type)
	assert.Equal(t, "a", tokens[0].Value)
}

func TestTokenizer_EmphasisMarkers(t *testing.T) {
	tests := []struct {
		input string
		want  TokenType
	}{
		{"''", TokenItalic},
		{"'''", TokenBold},
		{"'''''", TokenBoldItalic},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := tokenize(t, tt.input)
			require.Len(t, tokens, 1)
			assert.Equal(t, tt.want, tokens[0].Type)
		})
	}
}

func TestTokenizer_EmphasisAroundWord(t *testing.T) {
	tokens := tokenize(t, "''ab''")
	require.Equal(t,
		[]TokenType{TokenItalic, TokenWord, TokenItalic}, tokenTypes(tokens))
	assert.Equal(t, "ab", tokens[1].Value)
}

func TestTokenizer_CommentAbsorbsWhitespace(t *testing.T) {
	tokens := tokenize(t, "ab <!-- hidden --> cd")
	require.Equal(t,
		[]TokenType{TokenWord, TokenComment, TokenWord}, tokenTypes(tokens))
	assert.Equal(t, " ", tokens[1].Group(0))
	assert.Equal(t, " ", tokens[1].Group(1))
}

func TestTokenizer_CommentAbsorbsBlankLines(t *testing.T) {
	tokens := tokenize(t, "ab\n\n<!-- hidden -->\n\ncd")
	require.Equal(t,
		[]TokenType{TokenWord, TokenComment, TokenWord}, tokenTypes(tokens))
	assert.Equal(t, "\n\n", tokens[1].Group(0))
	assert.Equal(t, "\n\n", tokens[1].Group(1))
}

func TestTokenizer_LinkForms(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		ttype  TokenType
		groups []string
	}{
		{"plain", "[[Page name]]", TokenLink, []string{"Page name", ""}},
		{"with target", "[[text|target]]", TokenLink, []string{"text", "target"}},
		{"macro", "[[image:file.jpg|alt text]]", TokenLinkMacro,
			[]string{"image", "file.jpg|alt text"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := tokenize(t, tt.input)
			require.Len(t, tokens, 1)
			assert.Equal(t, tt.ttype, tokens[0].Type)
			assert.Equal(t, tt.groups, tokens[0].Groups)
		})
	}
}

func TestTokenizer_ListItemOnlyAtLineStart(t *testing.T) {
	tokens := tokenize(t, "* ab\n** cd")
	require.Equal(t, []TokenType{
		TokenListItem, TokenWord, TokenEOLs, TokenListItem, TokenWord,
	}, tokenTypes(tokens))
	assert.Equal(t, "*", tokens[0].Value)
	assert.Equal(t, "**", tokens[3].Value)

	// Mid-line the marker is just a character.
	tokens = tokenize(t, "ab * cd")
	require.Equal(t, []TokenType{
		TokenWord, TokenWhitespace, TokenOther, TokenWhitespace, TokenWord,
	}, tokenTypes(tokens))
	assert.Equal(t, "*", tokens[2].Value)
}

func TestTokenizer_EOLsKeepOnlyNewlines(t *testing.T) {
	tokens := tokenize(t, "ab\n\t\n  \ncd")
	require.Equal(t,
		[]TokenType{TokenWord, TokenEOLs, TokenWord}, tokenTypes(tokens))
	assert.Equal(t, "\n\n\n", tokens[1].Value)
}

func TestTokenizer_HeadingLine(t *testing.T) {
	tokens := tokenize(t, "== Title ==\n")
	require.Equal(t, []TokenType{
		TokenHeadingStart, TokenWord, TokenHeadingEnd, TokenEOLs,
	}, tokenTypes(tokens))
	assert.Equal(t, "==", tokens[0].Value)
	assert.Equal(t, "Title", tokens[1].Value)
	assert.Equal(t, "==", tokens[2].Value)
}

func TestTokenizer_HeadingEndRequiresLineEnd(t *testing.T) {
	// Text after the marker keeps it from closing the heading.
	tokens := tokenize(t, "== ab == cd")
	types := tokenTypes(tokens)
	assert.NotContains(t, types, TokenHeadingEnd)
}

func TestTokenizer_HorizontalRule(t *testing.T) {
	tokens := tokenize(t, "----\n")
	require.Equal(t,
		[]TokenType{TokenHorizontalRule, TokenEOLs}, tokenTypes(tokens))
}

func TestTokenizer_DefinitionMarkers(t *testing.T) {
	tokens := tokenize(t, "; term\n: definition\n")
	require.Equal(t, []TokenType{
		TokenDefinitionTerm, TokenWord, TokenEOLs,
		TokenDefinitionDef, TokenWord, TokenEOLs,
	}, tokenTypes(tokens))
}

func TestTokenizer_TagTokens(t *testing.T) {
	tokens := tokenize(t, `<div class="box">ab</div>`)
	require.Equal(t,
		[]TokenType{TokenTagStart, TokenWord, TokenTagEnd}, tokenTypes(tokens))
	assert.Equal(t, "div", tokens[0].Group(0))
	assert.Equal(t, `class="box"`, tokens[0].Group(1))
	assert.Equal(t, "div", tokens[2].Group(0))
}

func TestTokenizer_LineBreakBeforeTagStart(t *testing.T) {
	tests := []string{"<br>", "<br/>", "<br />", "<BR>"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tokens := tokenize(t, input)
			require.Len(t, tokens, 1)
			assert.Equal(t, TokenLineBreak, tokens[0].Type)
		})
	}
}

func TestTokenizer_LocationTracking(t *testing.T) {
	tokens := tokenize(t, "ab\ncd")
	require.Len(t, tokens, 3)

	assert.Equal(t, markup.Location{Line: 1, Column: 1, Offset: 0}, tokens[0].Loc)
	assert.Equal(t, markup.Location{Line: 1, Column: 3, Offset: 2}, tokens[1].Loc)
	assert.Equal(t, markup.Location{Line: 2, Column: 1, Offset: 3}, tokens[2].Loc)
}

func TestTokenizer_SeekForward(t *testing.T) {
	tok := NewTokenizer("<pre>skip me</pre>ab")

	token, err := tok.Next()
	require.NoError(t, err)
	require.Equal(t, TokenTagStart, token.Type)

	require.NoError(t, tok.SeekForward(tok.Pos()+len("skip me</pre>")))

	token, err = tok.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenWord, token.Type)
	assert.Equal(t, "ab", token.Value)
}

func TestTokenizer_SeekForwardRejectsBackwardMoves(t *testing.T) {
	tok := NewTokenizer("ab cd")
	_, err := tok.Next()
	require.NoError(t, err)

	err = tok.SeekForward(0)
	var internal *markup.InternalError
	require.ErrorAs(t, err, &internal)
}

func TestTokenizer_SeekForwardClampsToEnd(t *testing.T) {
	tok := NewTokenizer("ab")
	require.NoError(t, tok.SeekForward(100))

	token, err := tok.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenEOF, token.Type)
}

func TestTokenizer_InvalidUTF8(t *testing.T) {
	tok := NewTokenizer("ab\xffcd")

	token, err := tok.Next()
	require.NoError(t, err)
	require.Equal(t, TokenWord, token.Type)

	_, err = tok.Next()
	var tokErr *markup.TokenizationError
	require.ErrorAs(t, err, &tokErr)
	assert.Equal(t, 1, tokErr.Location().Line)
	assert.Equal(t, 3, tokErr.Location().Column)
}

func TestTokenizer_SeekForwardTracksLines(t *testing.T) {
	tok := NewTokenizer("<pre>a\nb\nc</pre>cd")
	_, err := tok.Next()
	require.NoError(t, err)

	require.NoError(t, tok.SeekForward(tok.Pos()+len("a\nb\nc</pre>")))
	assert.Equal(t, 3, tok.Location().Line)
}
