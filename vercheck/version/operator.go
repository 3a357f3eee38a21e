package version

import "fmt"

const (
	LT Operator = iota + 1
	EQ
	GT
)

// Operator is a comparison that can be stated between two versions.
type Operator int

func ParseOperator(symbol string) (Operator, error) {
	switch symbol {
	case "<":
		return LT, nil
	case "=":
		return EQ, nil
	case ">":
		return GT, nil
	}
	return 0, fmt.Errorf("unknown operator: '%s'", symbol)
}

func (o Operator) String() string {
	switch o {
	case LT:
		return "<"
	case EQ:
		return "="
	case GT:
		return ">"
	}
	return fmt.Sprintf("Operator(%d)", int(o))
}

// Holds reports whether the result of Compare satisfies the operator.
func (o Operator) Holds(comparison int) (bool, error) {
	switch o {
	case LT:
		return comparison < 0, nil
	case EQ:
		return comparison == 0, nil
	case GT:
		return comparison > 0, nil
	}
	return false, fmt.Errorf("unknown operator: %s", o)
}

// Evaluate reports whether "a <op> b" holds.
func Evaluate(a *Version, op Operator, b *Version) (bool, error) {
	c, err := a.Compare(b)
	if err != nil {
		return false, err
	}
	return op.Holds(c)
}
