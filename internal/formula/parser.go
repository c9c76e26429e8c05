package formula

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenRef
	tokenOp
	tokenLParen
	tokenRParen
	tokenComma
)

type token struct {
	kind  tokenKind
	text  string
	pos   int
	value float64
}

// Parse turns a formula string into an expression tree. Whitespace-only
// input is reported as ErrEmptyFormula so callers can treat it as "no
// formula" rather than a malformed one.
func Parse(src string) (Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, ErrEmptyFormula
	}
	tokens, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	expr, err := p.parseSum()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, tok.text, tok.pos)
	}
	return expr, nil
}

func lex(src string) ([]token, error) {
	tokens := make([]token, 0, 8)
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c >= '0' && c <= '9':
			start := i
			for i < len(src) && src[i] >= '0' && src[i] <= '9' {
				i++
			}
			if i < len(src) && src[i] == '.' {
				i++
				for i < len(src) && src[i] >= '0' && src[i] <= '9' {
					i++
				}
			}
			text := src[start:i]
			value, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad number %q at offset %d", ErrSyntax, text, start)
			}
			// A trailing percent sign is cosmetic: values are already on
			// the 0..100 progress scale, so 50% means 50.
			if i < len(src) && src[i] == '%' {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: text, pos: start, value: value})
		case isRefChar(c):
			start := i
			end := i
			for i < len(src) {
				if isRefChar(src[i]) {
					i++
					end = i
					continue
				}
				if src[i] == ' ' {
					// References may contain spaces ("Actual KPI"); keep
					// consuming only if another word follows.
					j := i
					for j < len(src) && src[j] == ' ' {
						j++
					}
					if j < len(src) && isRefChar(src[j]) {
						i = j
						continue
					}
				}
				break
			}
			tokens = append(tokens, token{kind: tokenRef, text: src[start:end], pos: start})
		case c == '+' || c == '-' || c == '*' || c == '/':
			tokens = append(tokens, token{kind: tokenOp, text: string(c), pos: i})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: i})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: i})
			i++
		case c == ',':
			tokens = append(tokens, token{kind: tokenComma, text: ",", pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected character %q at offset %d", ErrSyntax, string(c), i)
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(src)})
	return tokens, nil
}

func isRefChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseSum() (Expr, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenOp || (tok.text != "+" && tok.text != "-") {
			return left, nil
		}
		p.next()
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: tok.text[0], Left: left, Right: right}
	}
}

func (p *parser) parseProduct() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokenOp || (tok.text != "*" && tok.text != "/") {
			return left, nil
		}
		p.next()
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Op: tok.text[0], Left: left, Right: right}
	}
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.next()
	switch tok.kind {
	case tokenNumber:
		return &Literal{Value: tok.value}, nil
	case tokenLParen:
		expr, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRParen {
			return nil, fmt.Errorf("%w: expected ) at offset %d", ErrSyntax, closing.pos)
		}
		return expr, nil
	case tokenRef:
		if normalizeRef(tok.text) == "min" && p.peek().kind == tokenLParen {
			return p.parseMinArgs()
		}
		return &Reference{Name: tok.text, key: normalizeRef(tok.text)}, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %q at offset %d", ErrSyntax, tok.text, tok.pos)
	}
}

func (p *parser) parseMinArgs() (Expr, error) {
	p.next() // consume (
	args := make([]Expr, 0, 2)
	for {
		arg, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		tok := p.next()
		if tok.kind == tokenRParen {
			return &MinCall{Args: args}, nil
		}
		if tok.kind != tokenComma {
			return nil, fmt.Errorf("%w: expected , or ) at offset %d", ErrSyntax, tok.pos)
		}
	}
}
