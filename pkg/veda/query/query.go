package query

import (
	"fmt"
	"sort"
	"strings"
)

// Condition is a single equality clause in the platform query language
type Condition struct {
	field string
	value any
}

func Eq(field string, value any) Condition {
	return Condition{field: field, value: value}
}

// String quotes string values and writes any other value verbatim
func (c Condition) String() string {
	if s, ok := c.value.(string); ok {
		return fmt.Sprintf("('%s'=='%s')", c.field, s)
	}
	return fmt.Sprintf("('%s'==%v)", c.field, c.value)
}

// And joins the conditions, in the order given, into a query string
func And(conditions ...Condition) string {
	parts := make([]string, 0, len(conditions))
	for _, c := range conditions {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " && ")
}

// FromMap builds a conjunction of equality clauses ordered by field name
func FromMap(conditions map[string]any) string {
	fields := make([]string, 0, len(conditions))
	for f := range conditions {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	conds := make([]Condition, 0, len(fields))
	for _, f := range fields {
		conds = append(conds, Eq(f, conditions[f]))
	}

	return And(conds...)
}
