package formula

import "strings"

// Kind names an aggregation strategy recognized from a stored formula
// string.
type Kind string

const (
	KindAverage    Kind = "average"
	KindWeighted   Kind = "weighted"
	KindMin        Kind = "min"
	KindExpression Kind = "expression"
	KindDefault    Kind = "default"
)

// Strategy is the classified form of a stored formula. Expr holds the raw
// source only for KindExpression. Weights for KindWeighted come from the
// child entities, not from the formula string.
type Strategy struct {
	Kind Kind
	Expr string
}

var keywords = []struct {
	word string
	kind Kind
}{
	{"AVERAGE", KindAverage},
	{"AVG", KindAverage},
	{"WEIGHTED", KindWeighted},
	{"MIN", KindMin},
}

// Classify maps a stored formula string to a strategy. Keyword strategies
// match case-insensitively by exact or prefix match ("Minimum", "AVERAGE of
// KRs"). A keyword immediately followed by an opening paren is a function
// call, so "MIN(KR1,KR2)" classifies as an expression. Blank input is the
// default strategy, which aggregation treats as average.
func Classify(raw string) Strategy {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Strategy{Kind: KindDefault}
	}
	upper := strings.ToUpper(trimmed)
	for _, kw := range keywords {
		if !strings.HasPrefix(upper, kw.word) {
			continue
		}
		rest := strings.TrimLeft(upper[len(kw.word):], " \t")
		if strings.HasPrefix(rest, "(") {
			break
		}
		return Strategy{Kind: kw.kind}
	}
	return Strategy{Kind: KindExpression, Expr: trimmed}
}
