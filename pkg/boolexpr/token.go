package boolexpr

import (
	"regexp"
	"strings"
)

// TokenKind classifies a token.
type TokenKind int

// Possible values of TokenKind.
const (
	LiteralToken TokenKind = iota
	VariableToken
	OperatorToken
)

func (k TokenKind) String() string {
	switch k {
	case LiteralToken:
		return "literal"
	case VariableToken:
		return "variable"
	case OperatorToken:
		return "operator"
	default:
		return "!!token kind"
	}
}

// Token is one word of a postfix boolean expression.
type Token struct {
	Kind TokenKind
	Text string
}

// Lit returns a literal token.
func Lit(b bool) Token {
	if b {
		return Token{LiteralToken, "T"}
	}
	return Token{LiteralToken, "F"}
}

// Var returns a variable token.
func Var(name string) Token { return Token{VariableToken, name} }

// Sym returns an operator token.
func Sym(op Op) Token { return Token{OperatorToken, op.String()} }

var identRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Tokenize splits a line on whitespace and classifies each word. "T" and "F"
// are literals, identifiers are variables, and every other word is an
// operator token; unknown operator symbols are rejected by Eval.
func Tokenize(line string) []Token {
	words := strings.Fields(line)
	tokens := make([]Token, len(words))
	for i, word := range words {
		switch {
		case word == "T" || word == "F":
			tokens[i] = Token{LiteralToken, word}
		case identRegexp.MatchString(word):
			tokens[i] = Token{VariableToken, word}
		default:
			tokens[i] = Token{OperatorToken, word}
		}
	}
	return tokens
}

// Join returns the normalized text of a token sequence, with the words
// separated by single spaces.
func Join(tokens []Token) string {
	var sb strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(tok.Text)
	}
	return sb.String()
}
