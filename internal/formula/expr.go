package formula

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	ErrEmptyFormula   = errors.New("empty formula")
	ErrSyntax         = errors.New("syntax error")
	ErrUnknownRef     = errors.New("unknown reference")
	ErrDivisionByZero = errors.New("division by zero")
)

// Expr is a parsed arithmetic expression. Trees are immutable after parsing
// and safe to share between concurrent evaluations.
type Expr interface {
	eval(binds map[string]float64) (float64, error)
}

type Literal struct {
	Value float64
}

type Reference struct {
	Name string
	key  string
}

type BinaryOp struct {
	Op    byte
	Left  Expr
	Right Expr
}

type MinCall struct {
	Args []Expr
}

func (l *Literal) eval(map[string]float64) (float64, error) {
	return l.Value, nil
}

func (r *Reference) eval(binds map[string]float64) (float64, error) {
	key := r.key
	if key == "" {
		key = normalizeRef(r.Name)
	}
	value, ok := binds[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRef, r.Name)
	}
	return value, nil
}

func (b *BinaryOp) eval(binds map[string]float64) (float64, error) {
	left, err := b.Left.eval(binds)
	if err != nil {
		return 0, err
	}
	right, err := b.Right.eval(binds)
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	default:
		return 0, fmt.Errorf("%w: operator %q", ErrSyntax, string(b.Op))
	}
}

func (m *MinCall) eval(binds map[string]float64) (float64, error) {
	min, err := m.Args[0].eval(binds)
	if err != nil {
		return 0, err
	}
	for _, arg := range m.Args[1:] {
		value, err := arg.eval(binds)
		if err != nil {
			return 0, err
		}
		if value < min {
			min = value
		}
	}
	return min, nil
}

// Evaluate computes an expression against bindings. Binding names are
// matched case and whitespace insensitively, so {"Actual KPI": 40} resolves
// a reference written as "actualkpi".
func Evaluate(expr Expr, bindings map[string]float64) (float64, error) {
	binds := make(map[string]float64, len(bindings))
	for name, value := range bindings {
		binds[normalizeRef(name)] = value
	}
	return expr.eval(binds)
}

// Eval parses src and evaluates it in one step, without caching.
func Eval(src string, bindings map[string]float64) (float64, error) {
	expr, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return Evaluate(expr, bindings)
}

func normalizeRef(name string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
	return strings.ToLower(stripped)
}
