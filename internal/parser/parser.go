// Package parser turns query text into a selector.Selector chain. It
// mirrors the precedence-climbing shape of the filter-expression grammar
// (see the ops.Prec* constants) for the operator sublanguage that lives inside
// [?...] filters and function arguments, and a small recursive-descent
// grammar of its own for the navigation chain (.name, [..], .., ^) that
// wraps around it.
package parser

import (
	"strconv"

	"github.com/dvorsky/jsonpath/internal/lexer"
	"github.com/dvorsky/jsonpath/internal/selector"
)

// Parser holds one token of lookahead over a Lexer plus the state needed
// to assign each Root selector encountered a distinct memoization id.
type Parser struct {
	lex    *lexer.Lexer
	tok    lexer.Token
	nextID int
}

// Parse compiles query text into a selector chain headed by $, @ or a
// run of ^ ancestor steps.
func Parse(query string) (selector.Selector, error) {
	p := &Parser{lex: lexer.New(query)}
	if err := p.advance(true); err != nil {
		return nil, err
	}

	chain, err := p.parseAnchorChain()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.EOF {
		return nil, p.errorf("unexpected token %q", p.tok.Text)
	}
	return chain, nil
}

func (p *Parser) advance(expectOperand bool) error {
	tok, err := p.lex.Next(expectOperand)
	if err != nil {
		return convertLexError(err)
	}
	p.tok = tok
	return nil
}

func (p *Parser) errorf(format string, args ...any) error {
	pos := p.tok.Pos
	return parseErrorf(pos.Line, pos.Column, format, args...)
}

func convertLexError(err error) error {
	if le, ok := err.(*lexer.Error); ok {
		return parseErrorf(le.Pos.Line, le.Pos.Column, "%s", le.Message)
	}
	return err
}

// parseAnchorChain parses one $ or @ (or a run of ^ ancestor steps) plus
// whatever navigation follows it, for a query's top-level chain. Filter
// and argument expressions parse their own anchor operands separately
// (see parseAnchorOperand), since there the anchor has to fold into a
// postfix token sequence rather than a bare Selector chain.
func (p *Parser) parseAnchorChain() (selector.Selector, error) {
	var head selector.Selector

	switch p.tok.Kind {
	case lexer.Dollar:
		if err := p.advance(true); err != nil {
			return nil, err
		}
		id := p.nextID
		p.nextID++
		head = selector.NewRoot(id)
	case lexer.At:
		if err := p.advance(true); err != nil {
			return nil, err
		}
		head = selector.NewCurrent()
	case lexer.Caret:
		depth, err := p.consumeCarets()
		if err != nil {
			return nil, err
		}
		head = selector.NewParent(depth)
	default:
		return nil, p.errorf("expected '$', '@' or '^', got %q", p.tok.Text)
	}

	return p.parseChainTail(head)
}

// consumeCarets accumulates a run of '^' tokens into an ancestor depth.
func (p *Parser) consumeCarets() (int, error) {
	depth := 0
	for p.tok.Kind == lexer.Caret {
		depth++
		if err := p.advance(true); err != nil {
			return 0, err
		}
	}
	return depth, nil
}

// parseChainTail parses zero or more navigation steps (.name, .*, .., [..])
// following an anchor or ancestor reference, appending each onto chain.
func (p *Parser) parseChainTail(chain selector.Selector) (selector.Selector, error) {
	for {
		if p.tok.Kind == lexer.Caret {
			depth, err := p.consumeCarets()
			if err != nil {
				return nil, err
			}
			chain = selector.AppendSelector(chain, selector.NewParent(depth))
			continue
		}

		switch p.tok.Kind {
		case lexer.Dot:
			if err := p.advance(true); err != nil {
				return nil, err
			}
			switch p.tok.Kind {
			case lexer.Star:
				chain = selector.AppendSelector(chain, selector.NewWildcard())
				if err := p.advance(false); err != nil {
					return nil, err
				}
			case lexer.Identifier, lexer.True, lexer.False, lexer.Null:
				chain = selector.AppendSelector(chain, selector.NewIdentifier(p.tok.Text))
				if err := p.advance(false); err != nil {
					return nil, err
				}
			default:
				return nil, p.errorf("expected a name or '*' after '.'")
			}
		case lexer.DotDot:
			if err := p.advance(true); err != nil {
				return nil, err
			}
			chain = selector.AppendSelector(chain, selector.NewRecursiveDescent())
			// ".." may be immediately followed by a step with no dot in
			// between, e.g. "$..title" or "$..[0]"; a bare ".." matches
			// every descendant on its own.
			switch p.tok.Kind {
			case lexer.Identifier, lexer.True, lexer.False, lexer.Null:
				chain = selector.AppendSelector(chain, selector.NewIdentifier(p.tok.Text))
				if err := p.advance(false); err != nil {
					return nil, err
				}
			case lexer.Star:
				chain = selector.AppendSelector(chain, selector.NewWildcard())
				if err := p.advance(false); err != nil {
					return nil, err
				}
			case lexer.LBracket:
				sel, err := p.parseBracket()
				if err != nil {
					return nil, err
				}
				chain = selector.AppendSelector(chain, sel)
			}
		case lexer.LBracket:
			sel, err := p.parseBracket()
			if err != nil {
				return nil, err
			}
			chain = selector.AppendSelector(chain, sel)
		default:
			return chain, nil
		}
	}
}

// parseBracket parses a bracketed selector list "[" item ("," item)* "]",
// wrapping more than one item in a Union.
func (p *Parser) parseBracket() (selector.Selector, error) {
	if err := p.advance(true); err != nil { // consume '['
		return nil, err
	}

	var items []selector.Selector
	for {
		item, err := p.parseBracketItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.tok.Kind == lexer.Comma {
			if err := p.advance(true); err != nil {
				return nil, err
			}
			continue
		}
		break
	}

	if p.tok.Kind != lexer.RBracket {
		return nil, p.errorf("expected ']', got %q", p.tok.Text)
	}
	if err := p.advance(false); err != nil { // consume ']'
		return nil, err
	}

	if len(items) == 1 {
		return items[0], nil
	}
	return selector.NewUnion(items), nil
}

func (p *Parser) parseBracketItem() (selector.Selector, error) {
	switch p.tok.Kind {
	case lexer.String:
		name := p.tok.Text
		if err := p.advance(false); err != nil {
			return nil, err
		}
		return selector.NewIdentifier(name), nil

	case lexer.Star:
		if err := p.advance(false); err != nil {
			return nil, err
		}
		return selector.NewWildcard(), nil

	case lexer.Question:
		if err := p.advance(true); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		return selector.NewFilter(expr), nil

	case lexer.Colon:
		return p.parseSlice(nil)

	case lexer.Integer:
		text := p.tok.Text
		if err := p.advance(false); err != nil {
			return nil, err
		}
		if p.tok.Kind == lexer.Colon {
			n, err := strconv.Atoi(text)
			if err != nil {
				return nil, p.errorf("invalid index %q", text)
			}
			return p.parseSlice(&n)
		}
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, p.errorf("invalid index %q", text)
		}
		return selector.NewIndex(n), nil

	default:
		return nil, p.errorf("unexpected token %q inside '[...]'", p.tok.Text)
	}
}

// parseSlice parses the ":stop:step" remainder of a slice selector, with
// p.tok positioned at the ':' that follows an already-consumed start
// (start may be nil when the slice omits it, e.g. "[:3]").
func (p *Parser) parseSlice(start *int) (selector.Selector, error) {
	if err := p.advance(true); err != nil { // consume ':'
		return nil, err
	}

	var stop *int
	if p.tok.Kind == lexer.Integer {
		n, err := strconv.Atoi(p.tok.Text)
		if err != nil {
			return nil, p.errorf("invalid slice bound %q", p.tok.Text)
		}
		stop = &n
		if err := p.advance(false); err != nil {
			return nil, err
		}
	}

	step := 1
	if p.tok.Kind == lexer.Colon {
		if err := p.advance(true); err != nil {
			return nil, err
		}
		if p.tok.Kind == lexer.Integer {
			n, err := strconv.Atoi(p.tok.Text)
			if err != nil {
				return nil, p.errorf("invalid slice step %q", p.tok.Text)
			}
			if n == 0 {
				return nil, p.errorf("slice step must not be zero")
			}
			step = n
			if err := p.advance(false); err != nil {
				return nil, err
			}
		}
	}

	return selector.NewSlice(start, stop, step), nil
}
