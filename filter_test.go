package versionpager

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilter_Match(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		value  string
		want   bool
	}{
		{"empty filter", nil, "anything", true},
		{"equal", Filter{{Operator: OperatorEQ, Operand: []byte("abc")}}, "abc", true},
		{"not equal", Filter{{Operator: OperatorNE, Operand: []byte("abc")}}, "abc", false},
		{"greater", Filter{{Operator: OperatorGT, Operand: []byte("abc")}}, "abd", true},
		{"prefix is lower", Filter{{Operator: OperatorLT, Operand: []byte("abc")}}, "ab", true},
		{
			name: "range",
			filter: Filter{
				{Operator: OperatorGE, Operand: []byte("b")},
				{Operator: OperatorLE, Operand: []byte("d")},
			},
			value: "c",
			want:  true,
		},
		{
			name: "outside range",
			filter: Filter{
				{Operator: OperatorGE, Operand: []byte("b")},
				{Operator: OperatorLE, Operand: []byte("d")},
			},
			value: "e",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.filter.Match([]byte(tt.value)))
		})
	}
}

func TestFilter_toConditions(t *testing.T) {
	filter := Filter{
		{Operator: OperatorGE, Operand: []byte("b")},
		{Operator: OperatorNE, Operand: []byte("c")},
	}

	require.Equal(t, tConjunction{
		{Column: "val", Operator: OperatorGE, Value: []byte("b")},
		{Column: "val", Operator: OperatorNE, Value: []byte("c")},
	}, filter.toConditions("val"))

	require.Empty(t, Filter(nil).toConditions("val"))
}
