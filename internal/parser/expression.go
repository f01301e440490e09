package parser

import (
	"strings"

	"github.com/dvorsky/jsonpath/internal/eval"
	"github.com/dvorsky/jsonpath/internal/lexer"
	"github.com/dvorsky/jsonpath/internal/ops"
	"github.com/dvorsky/jsonpath/internal/selector"
	"github.com/dvorsky/jsonpath/internal/value"
)

// parseExpression parses a filter or argument expression by precedence
// climbing over ops.BinaryOps, producing tokens in postfix order for
// eval.Evaluate to run over a value stack. minPrec is the lowest
// precedence a binary operator may have and still bind at this level.
func (p *Parser) parseExpression(minPrec int) ([]eval.Token, error) {
	lhs, err := p.parseUnaryOperand()
	if err != nil {
		return nil, err
	}

	for {
		symbol, ok := binaryOpSymbol(p.tok.Kind)
		if !ok {
			break
		}
		op := ops.BinaryOps[symbol]
		if op.Precedence < minPrec {
			break
		}
		if err := p.advance(true); err != nil {
			return nil, err
		}
		rhs, err := p.parseExpression(op.Precedence + 1)
		if err != nil {
			return nil, err
		}
		lhs = append(lhs, rhs...)
		lhs = append(lhs, eval.BinaryToken(op))
	}

	return lhs, nil
}

func binaryOpSymbol(kind lexer.Kind) (string, bool) {
	switch kind {
	case lexer.OrOr:
		return "||", true
	case lexer.AndAnd:
		return "&&", true
	case lexer.Eq:
		return "==", true
	case lexer.Ne:
		return "!=", true
	case lexer.Lt:
		return "<", true
	case lexer.Le:
		return "<=", true
	case lexer.Gt:
		return ">", true
	case lexer.Ge:
		return ">=", true
	case lexer.Plus:
		return "+", true
	case lexer.Minus:
		return "-", true
	case lexer.Star:
		return "*", true
	case lexer.Slash:
		return "/", true
	case lexer.Percent:
		return "%", true
	case lexer.Match:
		return "=~", true
	default:
		return "", false
	}
}

func (p *Parser) parseUnaryOperand() ([]eval.Token, error) {
	switch p.tok.Kind {
	case lexer.Not:
		if err := p.advance(true); err != nil {
			return nil, err
		}
		operand, err := p.parseUnaryOperand()
		if err != nil {
			return nil, err
		}
		return append(operand, eval.UnaryToken(ops.Not)), nil
	case lexer.Minus:
		if err := p.advance(true); err != nil {
			return nil, err
		}
		operand, err := p.parseUnaryOperand()
		if err != nil {
			return nil, err
		}
		return append(operand, eval.UnaryToken(ops.Negate)), nil
	default:
		return p.parsePrimaryOperand()
	}
}

func (p *Parser) parsePrimaryOperand() ([]eval.Token, error) {
	switch p.tok.Kind {
	case lexer.Dollar, lexer.At, lexer.Caret:
		return p.parseAnchorOperand()

	case lexer.LParen:
		if err := p.advance(true); err != nil {
			return nil, err
		}
		inner, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		if p.tok.Kind != lexer.RParen {
			return nil, p.errorf("expected ')', got %q", p.tok.Text)
		}
		if err := p.advance(false); err != nil {
			return nil, err
		}
		return []eval.Token{eval.ExpressionToken(inner)}, nil

	case lexer.String:
		v := value.NewString(p.tok.Text)
		if err := p.advance(false); err != nil {
			return nil, err
		}
		return []eval.Token{eval.ValueToken(v)}, nil

	case lexer.Integer, lexer.Number:
		v := value.NewNumberLiteral(p.tok.Text)
		if err := p.advance(false); err != nil {
			return nil, err
		}
		return []eval.Token{eval.ValueToken(v)}, nil

	case lexer.True:
		if err := p.advance(false); err != nil {
			return nil, err
		}
		return []eval.Token{eval.ValueToken(value.TrueValue)}, nil

	case lexer.False:
		if err := p.advance(false); err != nil {
			return nil, err
		}
		return []eval.Token{eval.ValueToken(value.FalseValue)}, nil

	case lexer.Null:
		if err := p.advance(false); err != nil {
			return nil, err
		}
		return []eval.Token{eval.ValueToken(value.NullValue)}, nil

	case lexer.Regex:
		// A bare regex literal's value is its compiled-pattern text,
		// matching the =~ operator's expectation that its right-hand
		// side is a String holding a Go regexp pattern.
		v := value.NewString(p.tok.Text)
		if err := p.advance(false); err != nil {
			return nil, err
		}
		return []eval.Token{eval.ValueToken(v)}, nil

	case lexer.JSONLiteral:
		v, err := decodeJSONLiteral(p.tok.Text)
		if err != nil {
			return nil, p.errorf("invalid embedded JSON value: %v", err)
		}
		if err := p.advance(false); err != nil {
			return nil, err
		}
		return []eval.Token{eval.ValueToken(v)}, nil

	case lexer.LBracket:
		// '[' has already been tokenized as a bracket-selector opener;
		// here, in operand position, it can only start a JSON array
		// literal, so pick the scan back up from where the lexer left off.
		leadPos := p.tok.Pos
		tok, err := p.lex.ScanJSONLiteralBody(leadPos)
		if err != nil {
			return nil, convertLexError(err)
		}
		v, err := decodeJSONLiteral(tok.Text)
		if err != nil {
			return nil, p.errorf("invalid embedded JSON value: %v", err)
		}
		if err := p.advance(false); err != nil {
			return nil, err
		}
		return []eval.Token{eval.ValueToken(v)}, nil

	case lexer.Identifier:
		name := p.tok.Text
		if err := p.advance(false); err != nil {
			return nil, err
		}
		if p.tok.Kind != lexer.LParen {
			return nil, p.errorf("unexpected identifier %q, expected a function call", name)
		}
		return p.parseFunctionCall(name)

	default:
		return nil, p.errorf("unexpected token %q in expression", p.tok.Text)
	}
}

// parseAnchorOperand parses a $, @ or ^ reference used as an expression
// operand. $ always wraps a Root selector (even with no further steps)
// so repeated references inside a filter share Root's memoized result
// instead of re-walking the same subquery once per candidate element.
// @ alone is cheap enough to skip that wrapping: with no further steps
// it just pushes the already-available current value, and with steps it
// wraps a Selector the same way $ does. ^ always wraps a Selector too,
// since walking up is the whole point of the reference.
func (p *Parser) parseAnchorOperand() ([]eval.Token, error) {
	switch p.tok.Kind {
	case lexer.Dollar:
		if err := p.advance(true); err != nil {
			return nil, err
		}
		id := p.nextID
		p.nextID++
		chain, err := p.parseChainTail(selector.NewRoot(id))
		if err != nil {
			return nil, err
		}
		return []eval.Token{eval.CurrentToken(), eval.Selector(chain)}, nil

	case lexer.At:
		if err := p.advance(true); err != nil {
			return nil, err
		}
		chain, err := p.parseChainTail(nil)
		if err != nil {
			return nil, err
		}
		if chain == nil {
			return []eval.Token{eval.CurrentToken()}, nil
		}
		return []eval.Token{eval.CurrentToken(), eval.Selector(chain)}, nil

	case lexer.Caret:
		depth, err := p.consumeCarets()
		if err != nil {
			return nil, err
		}
		chain, err := p.parseChainTail(selector.NewParent(depth))
		if err != nil {
			return nil, err
		}
		return []eval.Token{eval.CurrentToken(), eval.Selector(chain)}, nil

	default:
		return nil, p.errorf("expected an operand")
	}
}

func (p *Parser) parseFunctionCall(name string) ([]eval.Token, error) {
	fn, ok := ops.Functions[name]
	if !ok {
		return nil, p.errorf("unknown function %q", name)
	}
	if err := p.advance(true); err != nil { // consume '('
		return nil, err
	}

	var tokens []eval.Token
	argCount := 0
	if p.tok.Kind != lexer.RParen {
		for {
			arg, err := p.parseExpression(0)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, arg...)
			tokens = append(tokens, eval.ArgumentToken())
			argCount++

			if p.tok.Kind == lexer.Comma {
				if err := p.advance(true); err != nil {
					return nil, err
				}
				continue
			}
			break
		}
	}

	if p.tok.Kind != lexer.RParen {
		return nil, p.errorf("expected ')', got %q", p.tok.Text)
	}
	if err := p.advance(false); err != nil {
		return nil, err
	}

	if fn.Arity >= 0 && fn.Arity != argCount {
		return nil, p.errorf("function %q expects %d argument(s), got %d", name, fn.Arity, argCount)
	}

	tokens = append(tokens, eval.FunctionToken(fn))
	return tokens, nil
}

func decodeJSONLiteral(text string) (value.Value, error) {
	return value.Decode(strings.NewReader(text))
}
