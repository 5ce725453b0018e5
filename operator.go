package versionpager

import "fmt"

// Operator defines a comparison operator. It is used both by value filters
// and by the timestamp bounds of a point read.
type Operator string

const (
	OperatorGT Operator = ">"
	OperatorGE Operator = ">="
	OperatorLT Operator = "<"
	OperatorLE Operator = "<="
	OperatorEQ Operator = "="
	OperatorNE Operator = "<>"
)

func (o Operator) Valid() bool {
	switch o {
	case OperatorGT, OperatorGE, OperatorLT, OperatorLE, OperatorEQ, OperatorNE:
		return true
	default:
		return false
	}
}

// Holds reports whether a comparison result (as returned by bytes.Compare or
// cmp.Compare) satisfies the operator.
func (o Operator) Holds(cmp int) bool {
	switch o {
	case OperatorGT:
		return cmp > 0
	case OperatorGE:
		return cmp >= 0
	case OperatorLT:
		return cmp < 0
	case OperatorLE:
		return cmp <= 0
	case OperatorEQ:
		return cmp == 0
	case OperatorNE:
		return cmp != 0
	default:
		panic(fmt.Errorf("cannot evaluate operator '%s'", o))
	}
}
