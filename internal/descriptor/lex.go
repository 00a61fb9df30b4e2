package descriptor

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// binaryLexer splits binary descriptors. An Object token carries the leading
// 'L' and the slash separated path up to the next structural character.
var binaryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Object", Pattern: `L[^;<>]*`},
	{Name: "Primitive", Pattern: `[BCDFIJSVZ]`},
	{Name: "Array", Pattern: `\[`},
	{Name: "Punct", Pattern: `[<>;]`},
})

// sourceLexer splits source references such as "java.util.List<T>[]".
var sourceLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Dims", Pattern: `\[\]`},
	{Name: "Punct", Pattern: `[<>]`},
	{Name: "Name", Pattern: `[^<>\[\]]+`},
})

// tokens is a cursor over a fully lexed input. The last token is always EOF.
type tokens struct {
	symbols map[string]lexer.TokenType
	items   []lexer.Token
	pos     int
}

func lex(def *lexer.StatefulDefinition, s string) (*tokens, error) {
	l, err := def.LexString("descriptor", s)
	if err != nil {
		return nil, err
	}

	items, err := lexer.ConsumeAll(l)
	if err != nil {
		return nil, err
	}

	return &tokens{symbols: def.Symbols(), items: items}, nil
}

func (ts *tokens) peek() lexer.Token {
	return ts.items[ts.pos]
}

func (ts *tokens) next() lexer.Token {
	tok := ts.items[ts.pos]
	if !tok.EOF() {
		ts.pos++
	}

	return tok
}

func (ts *tokens) is(tok lexer.Token, symbol string) bool {
	return tok.Type == ts.symbols[symbol]
}

// accept consumes the next token when it is the punctuation value.
func (ts *tokens) accept(value string) bool {
	tok := ts.peek()
	if !ts.is(tok, "Punct") || tok.Value != value {
		return false
	}

	ts.pos++

	return true
}

func (ts *tokens) done() bool {
	return ts.peek().EOF()
}
