package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []TokenType {
	out := make([]TokenType, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func TestNextToken_Operators(t *testing.T) {
	tests := []struct {
		input string
		want  []TokenType
	}{
		{"+ - * / %", []TokenType{PLUS, MINUS, STAR, SLASH, PERCENT, EOF}},
		{"< <= > >= == != =", []TokenType{LT, LE, GT, GE, EQEQ, NEQ, EQUAL, EOF}},
		{"++ -- -> :=", []TokenType{INCREMENT, DECREMENT, ARROW, COLONEQ, EOF}},
		{"( ) { } [ ] , : ; .", []TokenType{LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, COLON, SEMICOLON, DOT, EOF}},
	}
	for _, tc := range tests {
		lex := NewLexer(tc.input)
		toks, err := lex.Tokenize()
		require.NoError(t, err)
		assert.Equal(t, tc.want, kinds(toks))
	}
}

func TestNextToken_NumbersAndIdentifiers(t *testing.T) {
	lex := NewLexer("x1 _y 42 3.14 callable")
	toks, err := lex.Tokenize()
	require.NoError(t, err)
	require.Len(t, toks, 6)
	assert.Equal(t, Token{Kind: ID, Lexeme: "x1", Line: 1, Column: 1}, toks[0])
	assert.Equal(t, Token{Kind: ID, Lexeme: "_y", Line: 1, Column: 4}, toks[1])
	assert.Equal(t, NUMBER, toks[2].Kind)
	assert.Equal(t, "42", toks[2].Lexeme)
	assert.Equal(t, NUMBER, toks[3].Kind)
	assert.Equal(t, "3.14", toks[3].Lexeme)
	assert.Equal(t, ID, toks[4].Kind)
	assert.Equal(t, "callable", toks[4].Lexeme)
}

func TestNextToken_StringsAndChars(t *testing.T) {
	lex := NewLexer(`"hello\nworld" 'a' '\n'`)
	toks, err := lex.Tokenize()
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, STRING, toks[0].Kind)
	assert.Equal(t, `"hello\nworld"`, toks[0].Lexeme)
	assert.Equal(t, CHAR, toks[1].Kind)
	assert.Equal(t, `'a'`, toks[1].Lexeme)
	assert.Equal(t, CHAR, toks[2].Kind)
	assert.Equal(t, `'\n'`, toks[2].Lexeme)
}

func TestNextToken_CommentsAndWhitespace(t *testing.T) {
	lex := NewLexer("x # this is a comment\n/* block\ncomment */y")
	toks, err := lex.Tokenize()
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, "x", toks[0].Lexeme)
	assert.Equal(t, "y", toks[1].Lexeme)
	assert.Equal(t, 3, toks[1].Line)
}

func TestNextToken_IllegalCharacter(t *testing.T) {
	lex := NewLexer("x @ y")
	_, err := lex.Tokenize()
	require.Error(t, err)
	lexErr, ok := err.(*LexError)
	require.True(t, ok)
	assert.Equal(t, byte('@'), lexErr.Char)
	assert.Equal(t, 1, lexErr.Line)
	assert.Equal(t, 3, lexErr.Column)
}

func TestNextToken_LongestMatchOrdering(t *testing.T) {
	// ++ must win over + followed by +.
	lex := NewLexer("+++a")
	toks, err := lex.Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []TokenType{INCREMENT, PLUS, ID, EOF}, kinds(toks))
}

func TestIsKeyword(t *testing.T) {
	assert.True(t, IsKeyword("callable"))
	assert.True(t, IsKeyword("auto"))
	assert.False(t, IsKeyword("myVar"))
}
