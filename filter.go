package versionpager

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// ValueCondition compares a cell value against Operand, bytewise.
type ValueCondition struct {
	Operator Operator `json:"op"`
	Operand  []byte   `json:"operand"`
}

// Filter keeps the versions whose value satisfies every condition.
// An empty Filter keeps everything.
type Filter []ValueCondition

// Match reports whether value passes the filter.
func (f Filter) Match(value []byte) bool {
	return lo.EveryBy(f, func(c ValueCondition) bool {
		return c.Operator.Holds(bytes.Compare(value, c.Operand))
	})
}

func (f Filter) IsEmpty() bool {
	return len(f) == 0
}

func (f Filter) clone() Filter {
	if f == nil {
		return nil
	}

	return lo.Map(f, func(c ValueCondition, _ int) ValueCondition {
		return ValueCondition{Operator: c.Operator, Operand: slices.Clone(c.Operand)}
	})
}

func (f Filter) validate() error {
	for _, c := range f {
		if !c.Operator.Valid() {
			return fmt.Errorf("invalid filter operator '%s'", c.Operator)
		}
	}

	return nil
}

// toConditions expands the filter into conditions over the given value column.
func (f Filter) toConditions(column string) tConjunction {
	return lo.Map(f, func(c ValueCondition, _ int) tCondition {
		return tCondition{Column: column, Operator: c.Operator, Value: c.Operand}
	})
}
