package access

import (
	"fmt"
	"strings"
)

// Columns maps fields to qualified SQL column names for one table or join.
type Columns map[Field]string

// Where renders q as a SQL boolean expression using $n placeholders starting
// at firstArg. The returned args are in placeholder order.
func (q Query) Where(cols Columns, firstArg int) (string, []any, error) {
	var parts []string
	var args []any
	next := firstArg

	render := func(c Condition) (string, error) {
		col, ok := cols[c.Field]
		if !ok {
			return "", fmt.Errorf("no column mapped for field %q", c.Field)
		}
		args = append(args, c.Value)
		s := fmt.Sprintf("%s %s $%d", col, c.Op, next)
		next++
		return s, nil
	}

	switch {
	case q.Scope.IsNone():
		parts = append(parts, "FALSE")
	case !q.Scope.IsAll():
		var union []string
		for _, c := range q.Scope.anyOf {
			s, err := render(c)
			if err != nil {
				return "", nil, err
			}
			union = append(union, s)
		}
		parts = append(parts, "("+strings.Join(union, " OR ")+")")
	}

	for _, c := range q.Criteria {
		s, err := render(c)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, s)
	}

	if len(parts) == 0 {
		return "TRUE", nil, nil
	}
	return strings.Join(parts, " AND "), args, nil
}
