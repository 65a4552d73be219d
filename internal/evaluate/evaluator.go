// Package evaluate extracts and computes a single arithmetic fact from free
// text: one binary operation ("25 + 17", "2 ** 10") or one percentage-of
// expression ("15% of 200").
package evaluate

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Fixed in-band messages returned by Evaluate
const (
	MsgDivisionByZero      = "Error: Division by zero is undefined."
	MsgUnsupportedOperator = "I can help with basic arithmetic operations (+, -, *, /, ^)."
	MsgPercentageParse     = "I had trouble parsing that percentage calculation."
	MsgTooLarge            = "The answer is too large to represent."
	MsgHelp                = "I can help with basic math problems. Try asking something like 'What is 15 + 27?' or '30% of 150'."
)

var (
	// ErrNoExpression means neither a binary operation nor a percentage-of expression was found
	ErrNoExpression = errors.New("no arithmetic expression found")
	// ErrDivisionByZero means the divisor of a matched division is exactly 0
	ErrDivisionByZero = errors.New("division by zero")
	// ErrUnsupportedOperator means the matched operator has no arithmetic mapping
	ErrUnsupportedOperator = errors.New("unsupported operator")
	// ErrNotFinite means the result overflowed to an infinity or NaN
	ErrNotFinite = errors.New("result is not finite")
)

// ParseError reports a numeral that could not be converted
type ParseError struct {
	Numeral string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not convert %q to a number: %v", e.Numeral, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Kind distinguishes the two supported expression shapes
type Kind string

const (
	KindBinary     Kind = "binary"
	KindPercentage Kind = "percentage"
)

// Expression is a matched and computed arithmetic expression
type Expression struct {
	Kind  Kind
	Left  float64 // Left operand, or the percentage for KindPercentage
	Op    string  // Operator token; "% of" for KindPercentage
	Right float64 // Right operand, or the base for KindPercentage
	Value float64
}

var (
	// "**" is listed first so the exponent token wins over a lone "*".
	binaryPattern  = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(\*\*|[+\-*/^])\s*(\d+(?:\.\d+)?)`)
	percentPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*of\s*(\d+(?:\.\d+)?)`)
)

// Evaluator computes arithmetic embedded in question text. The zero value is ready to use.
type Evaluator struct{}

// New returns an Evaluator
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate returns a natural-language answer for the first arithmetic
// expression in text. It never fails: every error condition is reported as
// a descriptive message.
func (e *Evaluator) Evaluate(text string) string {
	expr, err := e.Compute(text)
	if err != nil {
		var parseErr *ParseError
		switch {
		case errors.Is(err, ErrNoExpression):
			return MsgHelp
		case errors.Is(err, ErrDivisionByZero):
			return MsgDivisionByZero
		case errors.Is(err, ErrUnsupportedOperator):
			return MsgUnsupportedOperator
		case errors.Is(err, ErrNotFinite):
			return MsgTooLarge
		case errors.As(err, &parseErr) && expr.Kind == KindPercentage:
			return MsgPercentageParse
		default:
			return fmt.Sprintf("I encountered an error calculating that: %v", err)
		}
	}

	if expr.Kind == KindPercentage {
		return fmt.Sprintf("%s%% of %s is %s.", FormatOperand(expr.Left), FormatOperand(expr.Right), strconv.FormatFloat(expr.Value, 'f', 2, 64))
	}
	return fmt.Sprintf("The answer is %s.", FormatResult(expr.Value))
}

// Compute finds and evaluates the first arithmetic expression in text.
// A binary operation takes precedence; the percentage-of form is only
// tried when no binary operation is present. On error the returned
// Expression carries whatever was matched.
func (e *Evaluator) Compute(text string) (Expression, error) {
	if m := binaryPattern.FindStringSubmatch(text); m != nil {
		return computeBinary(m[1], m[2], m[3])
	}
	if m := percentPattern.FindStringSubmatch(text); m != nil {
		return computePercentage(m[1], m[2])
	}
	return Expression{}, ErrNoExpression
}

func computeBinary(lhs, op, rhs string) (Expression, error) {
	expr := Expression{Kind: KindBinary, Op: op}

	left, err := parseNumeral(lhs)
	if err != nil {
		return expr, err
	}
	right, err := parseNumeral(rhs)
	if err != nil {
		return expr, err
	}
	expr.Left, expr.Right = left, right

	switch op {
	case "+":
		expr.Value = left + right
	case "-":
		expr.Value = left - right
	case "*":
		expr.Value = left * right
	case "/":
		if right == 0 {
			return expr, ErrDivisionByZero
		}
		expr.Value = left / right
	case "^", "**":
		expr.Value = math.Pow(left, right)
	default:
		return expr, fmt.Errorf("%w: %q", ErrUnsupportedOperator, op)
	}

	if math.IsInf(expr.Value, 0) || math.IsNaN(expr.Value) {
		return expr, ErrNotFinite
	}
	return expr, nil
}

func computePercentage(pct, base string) (Expression, error) {
	expr := Expression{Kind: KindPercentage, Op: "% of"}

	p, err := parseNumeral(pct)
	if err != nil {
		return expr, err
	}
	b, err := parseNumeral(base)
	if err != nil {
		return expr, err
	}
	expr.Left, expr.Right = p, b
	expr.Value = (p / 100) * b

	if math.IsInf(expr.Value, 0) || math.IsNaN(expr.Value) {
		return expr, ErrNotFinite
	}
	return expr, nil
}

func parseNumeral(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ParseError{Numeral: s, Err: err}
	}
	return v, nil
}

// FormatResult renders integral values without a fractional part and
// everything else rounded to 2 decimal places
func FormatResult(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatOperand renders a parsed operand in its shortest exact form
func FormatOperand(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
