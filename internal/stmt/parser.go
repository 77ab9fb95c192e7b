package stmt

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var parser = buildParser()

func buildParser() *participle.Parser[Body] {
	p, err := participle.Build[Body](
		participle.Lexer(bodyLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.Unquote("String"),
		participle.UseLookahead(participle.MaxLookahead),
	)
	if err != nil {
		panic(fmt.Errorf("failed to build parser: %w", err))
	}
	return p
}

// Parse parses a method body. filename only labels positions in errors.
func Parse(filename, source string) (*Body, error) {
	body, err := parser.ParseString(filename, source)
	if err != nil {
		if pe, ok := err.(participle.Error); ok {
			return nil, &Error{Pos: pe.Position(), Message: pe.Message()}
		}
		return nil, err
	}
	return body, nil
}

// Error is a parse or lowering error at a position in a body.
type Error struct {
	Pos     lexer.Position
	Message string
}

func (e *Error) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return e.Message
}

func errorf(pos lexer.Position, format string, args ...any) *Error {
	return &Error{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
