package versionpager

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"gorm.io/gorm/clause"
)

type (
	// tCondition is the comparison "Column Operator Value".
	tCondition struct {
		Column   string
		Operator Operator
		Value    any
	}

	// tConjunction is a list of conditions joined by AND. Every point read
	// renders to one.
	tConjunction []tCondition
)

func (c tCondition) sql() string {
	return fmt.Sprintf("%s %s ?", c.Column, c.Operator)
}

// toGORMExpression joins the conditions with AND, nil when there are none.
func (c tConjunction) toGORMExpression() clause.Expression {
	return clause.And(lo.Map(c, func(cond tCondition, _ int) clause.Expression {
		return clause.Expr{SQL: cond.sql(), Vars: []any{cond.Value}}
	})...)
}

// toSQLClause renders the conjunction as "(K1 AND K2 AND K3)" with its values,
// or "TRUE" when there is nothing to render.
func (c tConjunction) toSQLClause() (string, []driver.Value) {
	if len(c) == 0 {
		return "TRUE", nil
	}

	clauses := lo.Map(c, func(cond tCondition, _ int) string { return cond.sql() })
	values := lo.Map(c, func(cond tCondition, _ int) driver.Value { return cond.Value })

	return "(" + strings.Join(clauses, " AND ") + ")", values
}
